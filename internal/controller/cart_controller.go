package controller

import (
	"github.com/alimikegami/e-commerce/shop-service/internal/dto"
	"github.com/alimikegami/e-commerce/shop-service/internal/service"
	"github.com/alimikegami/e-commerce/shop-service/pkg/errs"
	"github.com/alimikegami/e-commerce/shop-service/pkg/response"
	"github.com/alimikegami/e-commerce/shop-service/pkg/utils"
	"github.com/alimikegami/e-commerce/shop-service/pkg/validation"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

type CartController struct {
	service service.CartService
}

func CreateCartController(e *echo.Group, service service.CartService, isLoggedIn echo.MiddlewareFunc) {
	c := CartController{
		service: service,
	}
	e.POST("/addtocart", c.AddToCart, isLoggedIn)
	e.POST("/removefromcart", c.RemoveFromCart, isLoggedIn)
	e.POST("/getcart", c.GetCart, isLoggedIn)
}

func (c *CartController) AddToCart(e echo.Context) error {
	itemID, err := bindItemID(e, "AddToCart")
	if err != nil {
		return response.WriteErrorResponse(e, err)
	}

	err = c.service.AddItem(e.Request().Context(), utils.ExtractTokenUser(e), itemID)
	if err != nil {
		return response.WriteErrorResponse(e, err)
	}

	return response.WriteTextResponse(e, "Added")
}

func (c *CartController) RemoveFromCart(e echo.Context) error {
	itemID, err := bindItemID(e, "RemoveFromCart")
	if err != nil {
		return response.WriteErrorResponse(e, err)
	}

	err = c.service.RemoveItem(e.Request().Context(), utils.ExtractTokenUser(e), itemID)
	if err != nil {
		return response.WriteErrorResponse(e, err)
	}

	return response.WriteTextResponse(e, "Removed")
}

func (c *CartController) GetCart(e echo.Context) error {
	cart, err := c.service.GetCart(e.Request().Context(), utils.ExtractTokenUser(e))
	if err != nil {
		return response.WriteErrorResponse(e, err)
	}

	return response.WriteSuccessResponse(e, cart)
}

func bindItemID(e echo.Context, component string) (int, error) {
	payload := dto.CartItemRequest{}
	if err := e.Bind(&payload); err != nil {
		log.Ctx(e.Request().Context()).Error().Err(err).Str("component", component).Msg("")
		return 0, errs.ErrClient
	}

	if err := validation.Validate(payload); err != nil {
		return 0, err
	}

	return *payload.ItemID, nil
}
