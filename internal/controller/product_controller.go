package controller

import (
	"mime/multipart"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/muna8646/airtisan/internal/dto"
	"github.com/muna8646/airtisan/internal/middleware"
	"github.com/muna8646/airtisan/internal/service"
	pkgdto "github.com/muna8646/airtisan/pkg/dto"
	"github.com/muna8646/airtisan/pkg/errs"
	"github.com/muna8646/airtisan/pkg/response"
	"github.com/muna8646/airtisan/pkg/utils"
	"github.com/rs/zerolog/log"
)

const imagesFormField = "images"

type ProductController struct {
	service service.ProductService
}

func CreateProductController(g *echo.Group, service service.ProductService, authenticate echo.MiddlewareFunc) {
	pc := ProductController{
		service: service,
	}

	g.GET("/products", pc.GetProducts)
	g.GET("/products/:id", pc.GetProductByID)
	g.POST("/products", pc.AddProduct, authenticate, middleware.RequireSeller)
	g.PUT("/products/:id", pc.UpdateProduct, authenticate, middleware.RequireSeller)
	g.DELETE("/products/:id", pc.DeleteProduct, authenticate, middleware.RequireSeller)
}

func (pc *ProductController) AddProduct(c echo.Context) error {
	user, ok := utils.ExtractTokenUser(c)
	if !ok {
		return response.WriteErrorResponse(c, errs.ErrNotLoggedIn, nil)
	}

	payload := dto.ProductRequest{}
	if err := c.Bind(&payload); err != nil {
		log.Ctx(c.Request().Context()).Info().Err(err).Str("component", "AddProduct").Msg("")
		return response.WriteErrorResponse(c, errs.ErrClient, nil)
	}
	payload.SellerID = user.UserID

	var files []*multipart.FileHeader
	if strings.HasPrefix(c.Request().Header.Get(echo.HeaderContentType), echo.MIMEMultipartForm) {
		form, err := c.MultipartForm()
		if err != nil {
			log.Ctx(c.Request().Context()).Info().Err(err).Str("component", "AddProduct").Msg("")
			return response.WriteErrorResponse(c, errs.ErrClient, nil)
		}
		files = form.File[imagesFormField]
	}

	resp, err := pc.service.AddProduct(c.Request().Context(), payload, files)
	if err != nil {
		return response.WriteErrorResponse(c, err, nil)
	}

	return response.WriteSuccessResponse(c, "Product created", resp)
}

func (pc *ProductController) GetProducts(c echo.Context) error {
	filter := pkgdto.Filter{}
	if err := c.Bind(&filter); err != nil {
		log.Ctx(c.Request().Context()).Info().Err(err).Str("component", "GetProducts").Msg("")
		return response.WriteErrorResponse(c, errs.ErrClient, nil)
	}

	resp, err := pc.service.GetProducts(c.Request().Context(), filter)
	if err != nil {
		return response.WriteErrorResponse(c, err, nil)
	}

	return response.WriteSuccessResponse(c, "", resp)
}

func (pc *ProductController) GetProductByID(c echo.Context) error {
	resp, err := pc.service.GetProductByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return response.WriteErrorResponse(c, err, nil)
	}

	return response.WriteSuccessResponse(c, "", resp)
}

func (pc *ProductController) UpdateProduct(c echo.Context) error {
	user, ok := utils.ExtractTokenUser(c)
	if !ok {
		return response.WriteErrorResponse(c, errs.ErrNotLoggedIn, nil)
	}

	payload := dto.ProductRequest{}
	if err := c.Bind(&payload); err != nil {
		log.Ctx(c.Request().Context()).Info().Err(err).Str("component", "UpdateProduct").Msg("")
		return response.WriteErrorResponse(c, errs.ErrClient, nil)
	}
	payload.ID = c.Param("id")
	payload.SellerID = user.UserID

	if err := pc.service.UpdateProduct(c.Request().Context(), payload); err != nil {
		return response.WriteErrorResponse(c, err, nil)
	}

	return response.WriteSuccessResponse(c, "Product updated", nil)
}

func (pc *ProductController) DeleteProduct(c echo.Context) error {
	user, ok := utils.ExtractTokenUser(c)
	if !ok {
		return response.WriteErrorResponse(c, errs.ErrNotLoggedIn, nil)
	}

	if err := pc.service.DeleteProduct(c.Request().Context(), c.Param("id"), user.UserID); err != nil {
		return response.WriteErrorResponse(c, err, nil)
	}

	return response.WriteSuccessResponse(c, "Product deleted", nil)
}
