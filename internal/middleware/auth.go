package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/muna8646/airtisan/pkg/errs"
	"github.com/muna8646/airtisan/pkg/response"
	"github.com/muna8646/airtisan/pkg/utils"
	"github.com/rs/zerolog/log"
)

// Authenticate verifies the bearer token and stores the caller under
// utils.ContextKeyUser.
func Authenticate(jwtSecret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
			if authHeader == "" {
				return response.WriteErrorResponse(c, errs.ErrNotLoggedIn, nil)
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
				return response.WriteErrorResponse(c, errs.ErrInvalidToken, nil)
			}

			user, err := utils.ParseJWTToken(strings.TrimSpace(parts[1]), jwtSecret)
			if err != nil {
				log.Ctx(c.Request().Context()).Info().Err(err).Str("component", "Authenticate").Msg("rejected token")
				return response.WriteErrorResponse(c, errs.ErrInvalidToken, nil)
			}

			c.Set(utils.ContextKeyUser, user)

			return next(c)
		}
	}
}

// RequireSeller must run after Authenticate.
func RequireSeller(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		user, ok := utils.ExtractTokenUser(c)
		if !ok {
			return response.WriteErrorResponse(c, errs.ErrNotLoggedIn, nil)
		}

		if !user.IsSeller {
			return response.WriteErrorResponse(c, errs.ErrSellerOnly, nil)
		}

		return next(c)
	}
}
