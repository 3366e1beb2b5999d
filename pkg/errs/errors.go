package errs

import (
	"errors"
	"fmt"
	"net/http"
)

const (
	ErrStatusInternalServer   = http.StatusInternalServerError
	ErrStatusClient           = http.StatusBadRequest
	ErrStatusNotLoggedIn      = http.StatusUnauthorized
	ErrStatusNoPermission     = http.StatusForbidden
	ErrStatusNotFound         = http.StatusNotFound
	ErrStatusEmailAlreadyUsed = http.StatusBadRequest
	ErrStatusBusinessRule     = http.StatusBadRequest
)

var (
	ErrInternalServer       = errors.New("Internal server error")
	ErrClient               = errors.New("Bad request")
	ErrValidation           = errors.New("Invalid input")
	ErrNotLoggedIn          = errors.New("Authentication required")
	ErrInvalidToken         = errors.New("Invalid token")
	ErrInvalidCredentials   = errors.New("Invalid credentials")
	ErrForbidden            = errors.New("Not authorized")
	ErrSellerOnly           = errors.New("Artisan access required")
	ErrNotFound             = errors.New("Resource not found")
	ErrAccountNotFound      = errors.New("Account not found")
	ErrProductNotFound      = errors.New("Product not found")
	ErrOrderNotFound        = errors.New("Order not found")
	ErrOrderProductNotFound = errors.New("Product not found")
	ErrInsufficientStock    = errors.New("Insufficient stock")
	ErrEmailAlreadyUsed     = errors.New("Email already registered")
	ErrNotAnImage           = errors.New("Uploaded file is not an image")
)

var errorMap = map[error]int{
	ErrInternalServer:       ErrStatusInternalServer,
	ErrClient:               ErrStatusClient,
	ErrValidation:           ErrStatusClient,
	ErrNotLoggedIn:          ErrStatusNotLoggedIn,
	ErrInvalidToken:         ErrStatusNotLoggedIn,
	ErrInvalidCredentials:   ErrStatusClient,
	ErrForbidden:            ErrStatusNoPermission,
	ErrSellerOnly:           ErrStatusNoPermission,
	ErrNotFound:             ErrStatusNotFound,
	ErrAccountNotFound:      ErrStatusNotFound,
	ErrProductNotFound:      ErrStatusNotFound,
	ErrOrderNotFound:        ErrStatusNotFound,
	ErrOrderProductNotFound: ErrStatusBusinessRule,
	ErrInsufficientStock:    ErrStatusBusinessRule,
	ErrEmailAlreadyUsed:     ErrStatusEmailAlreadyUsed,
	ErrNotAnImage:           ErrStatusClient,
}

// GetErrorStatusCode resolves err to the status of the first sentinel found in its
// wrap chain. Unknown errors are reported as internal server errors.
func GetErrorStatusCode(err error) int {
	for e := err; e != nil; e = errors.Unwrap(e) {
		if code, ok := errorMap[e]; ok {
			return code
		}
	}
	return errorMap[ErrInternalServer]
}

type FieldError struct {
	Field   string `json:"field"`
	Tag     string `json:"tag"`
	Message string `json:"message"`
}

type ValidationError struct {
	Fields []FieldError
}

func NewValidationError(fields ...FieldError) *ValidationError {
	return &ValidationError{Fields: fields}
}

func (e *ValidationError) Error() string {
	return ErrValidation.Error()
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// ProductError ties an order placement failure to the cart line that caused it.
type ProductError struct {
	ProductID string
	Err       error
}

func NewProductError(productID string, err error) *ProductError {
	return &ProductError{ProductID: productID, Err: err}
}

func (e *ProductError) Error() string {
	if errors.Is(e.Err, ErrInsufficientStock) {
		return fmt.Sprintf("Insufficient stock for product %s", e.ProductID)
	}
	if errors.Is(e.Err, ErrOrderProductNotFound) {
		return fmt.Sprintf("Product %s not found", e.ProductID)
	}
	return fmt.Sprintf("%s: product %s", e.Err.Error(), e.ProductID)
}

func (e *ProductError) Unwrap() error {
	return e.Err
}
