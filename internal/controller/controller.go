package controller

import (
	"errors"

	"github.com/alimikegami/point-of-sales/catalog-service/internal/dto"
	"github.com/alimikegami/point-of-sales/catalog-service/internal/service"
	"github.com/alimikegami/point-of-sales/catalog-service/pkg/errs"
	"github.com/alimikegami/point-of-sales/catalog-service/pkg/response"
	"github.com/alimikegami/point-of-sales/catalog-service/pkg/utils"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

type Controller struct {
	service service.ProductService
}

func CreateProductController(e *echo.Group, service service.ProductService, isLoggedIn echo.MiddlewareFunc) {
	c := Controller{
		service: service,
	}
	e.POST("/products", c.CreateProduct, isLoggedIn)
}

func (c *Controller) CreateProduct(e echo.Context) error {
	ownerID, userID, ok := utils.ExtractTokenPrincipal(e)
	if !ok {
		return response.WriteErrorResponse(e, errs.ErrNotLoggedIn)
	}

	payload := dto.ProductRequest{}
	if err := e.Bind(&payload); err != nil {
		log.Ctx(e.Request().Context()).Error().Err(err).Str("component", "CreateProduct").Msg("")
		return response.WriteErrorResponse(e, errs.ErrClient)
	}
	payload.Normalize()

	if err := e.Validate(&payload); err != nil {
		var validationErr *errs.ValidationError
		if !errors.As(err, &validationErr) {
			log.Ctx(e.Request().Context()).Error().Err(err).Str("component", "CreateProduct").Msg("")
		}
		return response.WriteErrorResponse(e, err)
	}

	principal := dto.Principal{OwnerID: ownerID, UserID: userID}
	product, err := c.service.CreateProduct(e.Request().Context(), principal, payload)
	if err != nil {
		if errs.GetErrorStatusCode(err) >= 500 {
			log.Ctx(e.Request().Context()).Error().Err(err).Str("component", "CreateProduct").Msg("")
		}
		return response.WriteErrorResponse(e, err)
	}

	return response.WriteSuccessResponse(e, "Product created is successfully!", product)
}
