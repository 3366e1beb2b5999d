package response

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/muna8646/airtisan/pkg/errs"
)

type SuccessResponse struct {
	Status  string      `json:"status"`
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
}

type ErrorResponse struct {
	Status  string      `json:"status"`
	Message string      `json:"message"`
	Errors  interface{} `json:"errors"`
}

func WriteSuccessResponse(c echo.Context, message string, data interface{}) error {
	return WriteSuccessResponseWithStatus(c, http.StatusOK, message, data)
}

func WriteSuccessResponseWithStatus(c echo.Context, statusCode int, message string, data interface{}) error {
	resp := SuccessResponse{}
	resp.Status = "success"
	resp.Data = data
	resp.Message = message

	return c.JSON(statusCode, resp)
}

// WriteErrorResponse converts err to its status code. When errors is nil the
// detail is derived from err; internal failures never expose their message.
func WriteErrorResponse(c echo.Context, err error, errors interface{}) error {
	statusCode := errs.GetErrorStatusCode(err)
	resp := ErrorResponse{}
	resp.Status = "error"
	resp.Message = err.Error()
	resp.Errors = errors

	if statusCode == http.StatusInternalServerError {
		resp.Message = errs.ErrInternalServer.Error()
		resp.Errors = nil
	} else if resp.Errors == nil {
		resp.Errors = detailsOf(err)
	}

	return c.JSON(statusCode, resp)
}

func detailsOf(err error) interface{} {
	var validationErr *errs.ValidationError
	if errors.As(err, &validationErr) {
		return validationErr.Fields
	}

	var productErr *errs.ProductError
	if errors.As(err, &productErr) {
		return map[string]string{"product_id": productErr.ProductID}
	}

	return nil
}
