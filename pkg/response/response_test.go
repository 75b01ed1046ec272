package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alimikegami/point-of-sales/catalog-service/pkg/errs"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteErrorResponse(t *testing.T) {
	testCases := []struct {
		Name           string
		Err            error
		ExpectedStatus int
		Expected       ErrorResponse
	}{
		{
			Name:           "field error",
			Err:            errs.BadRequest("variants/0/buying_price", "Buying price must be less than selling price!"),
			ExpectedStatus: http.StatusBadRequest,
			Expected: ErrorResponse{
				Status:  "error",
				Message: "Buying price must be less than selling price!",
				Errors:  []errs.FieldError{{Field: "variants/0/buying_price", Message: "Buying price must be less than selling price!"}},
			},
		},
		{
			Name:           "sentinel",
			Err:            errs.ErrNotLoggedIn,
			ExpectedStatus: http.StatusUnauthorized,
			Expected:       ErrorResponse{Status: "error", Message: "Unauthorized access", Errors: []errs.FieldError{}},
		},
		{
			Name:           "unexpected",
			Err:            errors.New("connection reset by peer"),
			ExpectedStatus: http.StatusInternalServerError,
			Expected:       ErrorResponse{Status: "error", Message: "Internal server error", Errors: []errs.FieldError{}},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.Name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			c := echo.New().NewContext(httptest.NewRequest(http.MethodPost, "/", nil), rec)

			require.NoError(t, WriteErrorResponse(c, tc.Err))

			var body ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tc.ExpectedStatus, rec.Code)
			assert.Equal(t, tc.Expected, body)
		})
	}
}
