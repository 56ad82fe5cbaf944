package response

import (
	"net/http"

	"github.com/alimikegami/e-commerce/shop-service/pkg/errs"
	"github.com/labstack/echo/v4"
)

type ErrorResponse struct {
	Success bool        `json:"success"`
	Errors  interface{} `json:"errors"`
}

func WriteSuccessResponse(c echo.Context, data interface{}) error {
	return c.JSON(http.StatusOK, data)
}

func WriteTextResponse(c echo.Context, message string) error {
	return c.String(http.StatusOK, message)
}

func WriteErrorResponse(c echo.Context, err error) error {
	resp := ErrorResponse{
		Success: false,
		Errors:  errs.PublicMessage(err),
	}

	return c.JSON(errs.GetErrorStatusCode(err), resp)
}
