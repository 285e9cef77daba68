package http

import (
	"net/http"

	"fooddelivery/internal/pkg/auth"

	"github.com/labstack/echo/v4"
)

// Authenticate rejects requests without a valid bearer token and stores the
// caller's principal in the request context.
func Authenticate(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			p, err := auth.ParseBearer(c.Request().Header.Get(echo.HeaderAuthorization), secret)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, Error{
					Code:    http.StatusUnauthorized,
					Message: "User not authenticated",
				})
			}

			req := c.Request()
			c.SetRequest(req.WithContext(auth.WithPrincipal(req.Context(), p)))
			return next(c)
		}
	}
}

// RequireRole lets through callers whose principal has role.
func RequireRole(role string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			p, ok := auth.FromContext(c.Request().Context())
			if !ok {
				return c.JSON(http.StatusUnauthorized, Error{
					Code:    http.StatusUnauthorized,
					Message: "User not authenticated",
				})
			}
			if p.Role != role {
				return c.JSON(http.StatusForbidden, Error{
					Code:    http.StatusForbidden,
					Message: "role " + role + " required",
				})
			}
			return next(c)
		}
	}
}
