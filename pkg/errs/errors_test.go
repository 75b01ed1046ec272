package errs

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetErrorStatusCode(t *testing.T) {
	testCases := []struct {
		Name     string
		Err      error
		Expected int
	}{
		{Name: "sentinel", Err: ErrNotFound, Expected: http.StatusNotFound},
		{Name: "wrapped sentinel", Err: fmt.Errorf("lookup: %w", ErrConflict), Expected: http.StatusConflict},
		{Name: "app error", Err: NotFound("category", "This Category is not found!"), Expected: http.StatusNotFound},
		{Name: "wrapped app error", Err: fmt.Errorf("create: %w", BadRequest("variants", "bad")), Expected: http.StatusBadRequest},
		{Name: "validation", Err: &ValidationError{Fields: []FieldError{{Field: "name", Message: "This field is required!"}}}, Expected: http.StatusBadRequest},
		{Name: "unknown", Err: errors.New("boom"), Expected: http.StatusInternalServerError},
	}

	for _, tc := range testCases {
		t.Run(tc.Name, func(t *testing.T) {
			assert.Equal(t, tc.Expected, GetErrorStatusCode(tc.Err))
		})
	}
}

func TestAppErrorFormatting(t *testing.T) {
	err := NotFound("images", "This %d number Image is not found!", 2)

	assert.Equal(t, "images", err.Path)
	assert.Equal(t, "This 2 number Image is not found!", err.Error())
}

func TestFieldErrors(t *testing.T) {
	assert.Equal(t, []FieldError{{Field: "variants/1/sku", Message: "dup"}}, FieldErrors(BadRequest("variants/1/sku", "dup")))
	assert.Equal(t, []FieldError{{Field: "name", Message: "short"}}, FieldErrors(&ValidationError{Fields: []FieldError{{Field: "name", Message: "short"}}}))
	assert.Nil(t, FieldErrors(ErrNotLoggedIn))
}
