package middleware

import (
	"net/http"

	"github.com/alimikegami/point-of-sales/catalog-service/pkg/errs"
	"github.com/alimikegami/point-of-sales/catalog-service/pkg/response"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// IsLoggedIn validates the HS256 bearer token and stores it under the "user" context key.
func IsLoggedIn(secret string) echo.MiddlewareFunc {
	return middleware.JWTWithConfig(middleware.JWTConfig{
		SigningKey: []byte(secret),
		ErrorHandlerWithContext: func(err error, c echo.Context) error {
			return c.JSON(http.StatusUnauthorized, response.ErrorResponse{
				Status:  "error",
				Message: "Invalid or expired JWT",
				Errors:  []errs.FieldError{},
			})
		},
	})
}
