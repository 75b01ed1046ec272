package response

import (
	"net/http"

	"github.com/alimikegami/point-of-sales/catalog-service/pkg/errs"
	"github.com/labstack/echo/v4"
)

type SuccessResponse struct {
	Status  string      `json:"status"`
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
}

type ErrorResponse struct {
	Status  string            `json:"status"`
	Message string            `json:"message"`
	Errors  []errs.FieldError `json:"errors"`
}

func WriteSuccessResponse(c echo.Context, message string, data interface{}) error {
	resp := SuccessResponse{}
	resp.Status = "success"
	resp.Data = data
	resp.Message = message

	return c.JSON(http.StatusOK, resp)
}

// WriteErrorResponse hides the cause of unexpected failures behind the generic internal
// server error message.
func WriteErrorResponse(c echo.Context, err error) error {
	statusCode := errs.GetErrorStatusCode(err)
	resp := ErrorResponse{}
	resp.Status = "error"
	resp.Message = err.Error()
	resp.Errors = errs.FieldErrors(err)

	if statusCode == http.StatusInternalServerError {
		resp.Message = errs.ErrInternalServer.Error()
	}
	if resp.Errors == nil {
		resp.Errors = []errs.FieldError{}
	}

	return c.JSON(statusCode, resp)
}
