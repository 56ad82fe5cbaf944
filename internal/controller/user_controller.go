package controller

import (
	"github.com/alimikegami/e-commerce/shop-service/internal/dto"
	"github.com/alimikegami/e-commerce/shop-service/internal/service"
	"github.com/alimikegami/e-commerce/shop-service/pkg/errs"
	"github.com/alimikegami/e-commerce/shop-service/pkg/response"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

type UserController struct {
	service service.UserService
}

func CreateUserController(e *echo.Group, service service.UserService) {
	uc := UserController{
		service: service,
	}
	e.POST("/signup", uc.Signup)
	e.POST("/login", uc.Login)
}

func (c *UserController) Signup(e echo.Context) error {
	payload := dto.SignupRequest{}
	if err := e.Bind(&payload); err != nil {
		log.Ctx(e.Request().Context()).Error().Err(err).Str("component", "Signup").Msg("")
		return response.WriteErrorResponse(e, errs.ErrClient)
	}

	resp, err := c.service.Register(e.Request().Context(), payload)
	if err != nil {
		return response.WriteErrorResponse(e, err)
	}

	return response.WriteSuccessResponse(e, resp)
}

func (c *UserController) Login(e echo.Context) error {
	payload := dto.LoginRequest{}
	if err := e.Bind(&payload); err != nil {
		log.Ctx(e.Request().Context()).Error().Err(err).Str("component", "Login").Msg("")
		return response.WriteErrorResponse(e, errs.ErrClient)
	}

	resp, err := c.service.Login(e.Request().Context(), payload)
	if err != nil {
		return response.WriteErrorResponse(e, err)
	}

	return response.WriteSuccessResponse(e, resp)
}
