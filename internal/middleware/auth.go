package middleware

import (
	"net/http"

	"github.com/alimikegami/e-commerce/shop-service/pkg/errs"
	"github.com/alimikegami/e-commerce/shop-service/pkg/utils"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

const AuthTokenHeader = "auth-token"

type authErrorResponse struct {
	Errors string `json:"errors"`
}

// Authenticate rejects the request before next runs when the auth-token
// header is missing or does not verify against any of the secrets.
func Authenticate(secrets ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := c.Request().Header.Get(AuthTokenHeader)
			if token == "" {
				return c.JSON(http.StatusUnauthorized, authErrorResponse{Errors: errs.ErrNotLoggedIn.Error()})
			}

			userID, err := utils.ParseJWTToken(token, secrets...)
			if err != nil {
				log.Ctx(c.Request().Context()).Info().Err(err).Str("component", "Authenticate").Msg("")
				return c.JSON(http.StatusUnauthorized, authErrorResponse{Errors: errs.ErrNotLoggedIn.Error()})
			}

			c.Set(utils.ContextUserIDKey, userID)

			return next(c)
		}
	}
}
