package errs

import (
	"errors"
	"net/http"
)

const (
	ErrStatusInternalServer   = http.StatusInternalServerError
	ErrStatusClient           = http.StatusBadRequest
	ErrStatusNotLoggedIn      = http.StatusUnauthorized
	ErrStatusUnauthorized     = http.StatusUnauthorized
	ErrStatusNotFound         = http.StatusNotFound
	ErrStatusEmailAlreadyUsed = http.StatusBadRequest
	ErrStatusConflict         = http.StatusConflict
)

var (
	ErrInternalServer     = errors.New("Internal server error")
	ErrClient             = errors.New("Bad request")
	ErrNotLoggedIn        = errors.New("Please authenticate using a valid token")
	ErrInvalidCredentials = errors.New("Incorrect Password")
	ErrNotFound           = errors.New("Resource not found")
	ErrAccountNotFound    = errors.New("Email not registered")
	ErrEmailAlreadyUsed   = errors.New("Email already registered.")
	ErrInvalidCartItem    = errors.New("Cart item id is out of range")
	ErrNoFileUploaded     = errors.New("No file uploaded or file upload failed.")
	ErrConflict           = errors.New("Conflicting record found")
)

var errorMap = map[error]int{
	ErrInternalServer:     ErrStatusInternalServer,
	ErrClient:             ErrStatusClient,
	ErrNotLoggedIn:        ErrStatusNotLoggedIn,
	ErrInvalidCredentials: ErrStatusUnauthorized,
	ErrNotFound:           ErrStatusNotFound,
	ErrAccountNotFound:    ErrStatusNotFound,
	ErrEmailAlreadyUsed:   ErrStatusEmailAlreadyUsed,
	ErrInvalidCartItem:    ErrStatusClient,
	ErrNoFileUploaded:     ErrStatusClient,
	ErrConflict:           ErrStatusConflict,
}

// GetErrorStatusCode resolves wrapped sentinels too. Anything unknown is a 500.
func GetErrorStatusCode(err error) int {
	for e, code := range errorMap {
		if errors.Is(err, e) {
			return code
		}
	}

	return errorMap[ErrInternalServer]
}

// PublicMessage hides store and driver details behind the generic 500 message.
func PublicMessage(err error) string {
	for e := range errorMap {
		if errors.Is(err, e) {
			return e.Error()
		}
	}

	return ErrInternalServer.Error()
}
