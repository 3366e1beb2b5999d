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

type AuthController struct {
	service service.AuthService
}

func CreateAuthController(g *echo.Group, service service.AuthService, authenticate echo.MiddlewareFunc) {
	ac := AuthController{
		service: service,
	}

	g.POST("/auth/register", ac.Register)
	g.POST("/auth/login", ac.Login)
	g.GET("/auth/me", ac.GetProfile, authenticate)
	g.PUT("/auth/me", ac.UpdateProfile, authenticate)
}

func (ac *AuthController) Register(c echo.Context) error {
	payload := dto.RegisterRequest{}
	if err := c.Bind(&payload); err != nil {
		log.Ctx(c.Request().Context()).Info().Err(err).Str("component", "Register").Msg("")
		return response.WriteErrorResponse(c, errs.ErrClient, nil)
	}

	resp, err := ac.service.Register(c.Request().Context(), payload)
	if err != nil {
		return response.WriteErrorResponse(c, err, nil)
	}

	return response.WriteSuccessResponse(c, "Registered", resp)
}

func (ac *AuthController) Login(c echo.Context) error {
	payload := dto.LoginRequest{}
	if err := c.Bind(&payload); err != nil {
		log.Ctx(c.Request().Context()).Info().Err(err).Str("component", "Login").Msg("")
		return response.WriteErrorResponse(c, errs.ErrClient, nil)
	}

	resp, err := ac.service.Login(c.Request().Context(), payload)
	if err != nil {
		return response.WriteErrorResponse(c, err, nil)
	}

	return response.WriteSuccessResponse(c, "", resp)
}

func (ac *AuthController) GetProfile(c echo.Context) error {
	user, ok := utils.ExtractTokenUser(c)
	if !ok {
		return response.WriteErrorResponse(c, errs.ErrNotLoggedIn, nil)
	}

	resp, err := ac.service.GetProfile(c.Request().Context(), user.UserID)
	if err != nil {
		return response.WriteErrorResponse(c, err, nil)
	}

	return response.WriteSuccessResponse(c, "", resp)
}

func (ac *AuthController) UpdateProfile(c echo.Context) error {
	user, ok := utils.ExtractTokenUser(c)
	if !ok {
		return response.WriteErrorResponse(c, errs.ErrNotLoggedIn, nil)
	}

	payload := dto.UpdateProfileRequest{}
	if err := c.Bind(&payload); err != nil {
		log.Ctx(c.Request().Context()).Info().Err(err).Str("component", "UpdateProfile").Msg("")
		return response.WriteErrorResponse(c, errs.ErrClient, nil)
	}
	payload.UserID = user.UserID

	resp, err := ac.service.UpdateProfile(c.Request().Context(), payload)
	if err != nil {
		return response.WriteErrorResponse(c, err, nil)
	}

	return response.WriteSuccessResponse(c, "Profile updated", resp)
}
