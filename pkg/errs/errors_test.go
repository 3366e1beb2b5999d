package errs

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetErrorStatusCode(t *testing.T) {
	type TestCase struct {
		Name     string
		Err      error
		Expected int
	}

	testCases := []TestCase{
		{Name: "validation", Err: NewValidationError(FieldError{Field: "email", Tag: "email"}), Expected: http.StatusBadRequest},
		{Name: "duplicate email", Err: ErrEmailAlreadyUsed, Expected: http.StatusBadRequest},
		{Name: "invalid credentials", Err: ErrInvalidCredentials, Expected: http.StatusBadRequest},
		{Name: "missing token", Err: ErrNotLoggedIn, Expected: http.StatusUnauthorized},
		{Name: "seller only", Err: ErrSellerOnly, Expected: http.StatusForbidden},
		{Name: "not owner", Err: ErrForbidden, Expected: http.StatusForbidden},
		{Name: "product not found", Err: ErrProductNotFound, Expected: http.StatusNotFound},
		{Name: "order not found", Err: ErrOrderNotFound, Expected: http.StatusNotFound},
		{Name: "cart line missing", Err: NewProductError("p1", ErrOrderProductNotFound), Expected: http.StatusBadRequest},
		{Name: "cart line short", Err: NewProductError("p1", ErrInsufficientStock), Expected: http.StatusBadRequest},
		{Name: "wrapped sentinel", Err: fmt.Errorf("update: %w", ErrForbidden), Expected: http.StatusForbidden},
		{Name: "unknown", Err: errors.New("pq: connection refused"), Expected: http.StatusInternalServerError},
	}

	for _, tc := range testCases {
		t.Run(tc.Name, func(t *testing.T) {
			assert.Equal(t, tc.Expected, GetErrorStatusCode(tc.Err))
		})
	}
}

func TestProductError(t *testing.T) {
	err := NewProductError("01HZX", ErrInsufficientStock)

	assert.Equal(t, "Insufficient stock for product 01HZX", err.Error())
	assert.ErrorIs(t, err, ErrInsufficientStock)

	var productErr *ProductError
	assert.True(t, errors.As(fmt.Errorf("place order: %w", err), &productErr))
	assert.Equal(t, "01HZX", productErr.ProductID)

	assert.Equal(t, "Product 01HZX not found", NewProductError("01HZX", ErrOrderProductNotFound).Error())
}
