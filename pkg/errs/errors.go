package errs

import (
	"errors"
	"fmt"
	"net/http"
)

const (
	ErrStatusInternalServer = http.StatusInternalServerError
	ErrStatusClient         = http.StatusBadRequest
	ErrStatusNotLoggedIn    = http.StatusUnauthorized
	ErrStatusNotFound       = http.StatusNotFound
	ErrStatusConflict       = http.StatusConflict
)

var (
	ErrInternalServer    = errors.New("Internal server error")
	ErrClient            = errors.New("Bad request")
	ErrNotLoggedIn       = errors.New("Unauthorized access")
	ErrNotFound          = errors.New("Resource not found")
	ErrConflict          = errors.New("Conflicting record found")
	ErrDuplicateSKU      = errors.New("Duplicate SKU found")
	ErrDuplicateBarcode  = errors.New("Duplicate barcode found")
	ErrZeroSellingPrice  = errors.New("Selling price must be greater than zero")
	ErrInvalidPriceValue = errors.New("Price must be a valid number")
)

var errorMap = map[error]int{
	ErrInternalServer:    ErrStatusInternalServer,
	ErrClient:            ErrStatusClient,
	ErrNotLoggedIn:       ErrStatusNotLoggedIn,
	ErrNotFound:          ErrStatusNotFound,
	ErrConflict:          ErrStatusConflict,
	ErrDuplicateSKU:      ErrStatusClient,
	ErrDuplicateBarcode:  ErrStatusConflict,
	ErrZeroSellingPrice:  ErrStatusClient,
	ErrInvalidPriceValue: ErrStatusClient,
}

// AppError is a request failure bound to a field path of the payload, e.g.
// "variants/0/buying_price". An empty Path means the failure is not tied to a field.
type AppError struct {
	StatusCode int
	Path       string
	Message    string
}

func NewAppError(statusCode int, path string, message string) *AppError {
	return &AppError{StatusCode: statusCode, Path: path, Message: message}
}

func NotFound(path string, format string, args ...any) *AppError {
	return NewAppError(http.StatusNotFound, path, fmt.Sprintf(format, args...))
}

func BadRequest(path string, format string, args ...any) *AppError {
	return NewAppError(http.StatusBadRequest, path, fmt.Sprintf(format, args...))
}

func (e *AppError) Error() string {
	return e.Message
}

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError collects every structural problem found in a request body.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	return "Invalid request payload"
}

// FieldErrors returns the field-level details carried by err, if any.
func FieldErrors(err error) []FieldError {
	var validationErr *ValidationError
	if errors.As(err, &validationErr) {
		return validationErr.Fields
	}

	var appErr *AppError
	if errors.As(err, &appErr) {
		return []FieldError{{Field: appErr.Path, Message: appErr.Message}}
	}

	return nil
}

func GetErrorStatusCode(err error) int {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.StatusCode
	}

	var validationErr *ValidationError
	if errors.As(err, &validationErr) {
		return ErrStatusClient
	}

	for sentinel, statusCode := range errorMap {
		if errors.Is(err, sentinel) {
			return statusCode
		}
	}

	return errorMap[ErrInternalServer]
}
