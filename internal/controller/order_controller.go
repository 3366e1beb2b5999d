package controller

import (
	"github.com/labstack/echo/v4"
	"github.com/muna8646/airtisan/internal/dto"
	"github.com/muna8646/airtisan/internal/service"
	"github.com/muna8646/airtisan/pkg/errs"
	"github.com/muna8646/airtisan/pkg/response"
	"github.com/muna8646/airtisan/pkg/utils"
	"github.com/rs/zerolog/log"
)

type OrderController struct {
	service service.OrderService
}

func CreateOrderController(g *echo.Group, service service.OrderService, authenticate echo.MiddlewareFunc) {
	oc := OrderController{
		service: service,
	}

	orders := g.Group("/orders", authenticate)
	orders.POST("", oc.PlaceOrder)
	orders.GET("", oc.GetOrders)
	orders.GET("/:id", oc.GetOrderByID)
}

func (oc *OrderController) PlaceOrder(c echo.Context) error {
	user, ok := utils.ExtractTokenUser(c)
	if !ok {
		return response.WriteErrorResponse(c, errs.ErrNotLoggedIn, nil)
	}

	payload := dto.OrderRequest{}
	if err := c.Bind(&payload); err != nil {
		log.Ctx(c.Request().Context()).Info().Err(err).Str("component", "PlaceOrder").Msg("")
		return response.WriteErrorResponse(c, errs.ErrClient, nil)
	}
	payload.UserID = user.UserID
	payload.UserEmail = user.Email

	resp, err := oc.service.PlaceOrder(c.Request().Context(), payload)
	if err != nil {
		return response.WriteErrorResponse(c, err, nil)
	}

	return response.WriteSuccessResponse(c, "Order placed", resp)
}

func (oc *OrderController) GetOrders(c echo.Context) error {
	user, ok := utils.ExtractTokenUser(c)
	if !ok {
		return response.WriteErrorResponse(c, errs.ErrNotLoggedIn, nil)
	}

	resp, err := oc.service.GetOrders(c.Request().Context(), user.UserID)
	if err != nil {
		return response.WriteErrorResponse(c, err, nil)
	}

	return response.WriteSuccessResponse(c, "", resp)
}

func (oc *OrderController) GetOrderByID(c echo.Context) error {
	user, ok := utils.ExtractTokenUser(c)
	if !ok {
		return response.WriteErrorResponse(c, errs.ErrNotLoggedIn, nil)
	}

	resp, err := oc.service.GetOrderByID(c.Request().Context(), c.Param("id"), user.UserID)
	if err != nil {
		return response.WriteErrorResponse(c, err, nil)
	}

	return response.WriteSuccessResponse(c, "", resp)
}
