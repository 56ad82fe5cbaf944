package controller

import (
	"github.com/alimikegami/e-commerce/shop-service/internal/dto"
	"github.com/alimikegami/e-commerce/shop-service/internal/service"
	"github.com/alimikegami/e-commerce/shop-service/pkg/errs"
	"github.com/alimikegami/e-commerce/shop-service/pkg/response"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

const PopularCategory = "women"

type ProductController struct {
	service service.ProductService
}

func CreateProductController(e *echo.Group, service service.ProductService) {
	c := ProductController{
		service: service,
	}
	e.POST("/addproduct", c.AddProduct)
	e.POST("/removeproduct", c.RemoveProduct)
	e.GET("/allproducts", c.GetAllProducts)
	e.GET("/newcollections", c.GetNewCollection)
	e.GET("/popularinwomen", c.GetPopularInWomen)
	e.POST("/upload", c.UploadImage)
}

func (c *ProductController) AddProduct(e echo.Context) error {
	payload := dto.ProductRequest{}
	if err := e.Bind(&payload); err != nil {
		log.Ctx(e.Request().Context()).Error().Err(err).Str("component", "AddProduct").Msg("")
		return response.WriteErrorResponse(e, errs.ErrClient)
	}

	resp, err := c.service.AddProduct(e.Request().Context(), payload)
	if err != nil {
		return response.WriteErrorResponse(e, err)
	}

	return response.WriteSuccessResponse(e, resp)
}

func (c *ProductController) RemoveProduct(e echo.Context) error {
	payload := dto.RemoveProductRequest{}
	if err := e.Bind(&payload); err != nil {
		log.Ctx(e.Request().Context()).Error().Err(err).Str("component", "RemoveProduct").Msg("")
		return response.WriteErrorResponse(e, errs.ErrClient)
	}

	resp, err := c.service.RemoveProduct(e.Request().Context(), payload.ID)
	if err != nil {
		return response.WriteErrorResponse(e, err)
	}

	return response.WriteSuccessResponse(e, resp)
}

func (c *ProductController) GetAllProducts(e echo.Context) error {
	resp, err := c.service.GetAllProducts(e.Request().Context())
	if err != nil {
		return response.WriteErrorResponse(e, err)
	}

	return response.WriteSuccessResponse(e, resp)
}

func (c *ProductController) GetNewCollection(e echo.Context) error {
	resp, err := c.service.GetNewCollection(e.Request().Context())
	if err != nil {
		return response.WriteErrorResponse(e, err)
	}

	return response.WriteSuccessResponse(e, resp)
}

func (c *ProductController) GetPopularInWomen(e echo.Context) error {
	resp, err := c.service.GetPopularInCategory(e.Request().Context(), PopularCategory)
	if err != nil {
		return response.WriteErrorResponse(e, err)
	}

	return response.WriteSuccessResponse(e, resp)
}

func (c *ProductController) UploadImage(e echo.Context) error {
	file, err := e.FormFile("product")
	if err != nil {
		log.Ctx(e.Request().Context()).Info().Err(err).Str("component", "UploadImage").Msg("")
		return response.WriteErrorResponse(e, errs.ErrNoFileUploaded)
	}

	src, err := file.Open()
	if err != nil {
		log.Ctx(e.Request().Context()).Error().Err(err).Str("component", "UploadImage").Msg("")
		return response.WriteErrorResponse(e, errs.ErrNoFileUploaded)
	}
	defer src.Close()

	resp, err := c.service.UploadImage(e.Request().Context(), file.Filename, src)
	if err != nil {
		return response.WriteErrorResponse(e, err)
	}

	return response.WriteSuccessResponse(e, resp)
}
