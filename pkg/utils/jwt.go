package utils

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt"
	"github.com/labstack/echo/v4"
)

const ContextUserIDKey = "userID"

var ErrInvalidToken = errors.New("invalid token")

type TokenUser struct {
	ID string `json:"id"`
}

type UserClaims struct {
	User TokenUser `json:"user"`
	jwt.StandardClaims
}

func CreateJWTToken(userID string, jwtSecretKey string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := UserClaims{
		User: TokenUser{ID: userID},
		StandardClaims: jwt.StandardClaims{
			IssuedAt: now.Unix(),
		},
	}

	if ttl > 0 {
		claims.ExpiresAt = now.Add(ttl).Unix()
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(jwtSecretKey))
}

// ParseJWTToken verifies the token against each secret in order, so the current
// secret goes first and rotated-out secrets after it.
func ParseJWTToken(tokenString string, secrets ...string) (string, error) {
	if tokenString == "" || len(secrets) == 0 {
		return "", ErrInvalidToken
	}

	var lastErr error
	for _, secret := range secrets {
		if secret == "" {
			continue
		}

		claims := UserClaims{}
		token, err := jwt.ParseWithClaims(tokenString, &claims, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
			}
			return []byte(secret), nil
		})
		if err != nil {
			lastErr = err
			var vErr *jwt.ValidationError
			if errors.As(err, &vErr) && vErr.Errors&jwt.ValidationErrorSignatureInvalid != 0 {
				continue
			}
			break
		}

		if !token.Valid || claims.User.ID == "" {
			return "", ErrInvalidToken
		}

		return claims.User.ID, nil
	}

	if lastErr == nil {
		lastErr = ErrInvalidToken
	}

	return "", fmt.Errorf("%w: %v", ErrInvalidToken, lastErr)
}

func ExtractTokenUser(c echo.Context) string {
	userID, ok := c.Get(ContextUserIDKey).(string)
	if !ok {
		return ""
	}

	return userID
}
