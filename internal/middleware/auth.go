package middleware

import (
	"net/http"
	"strings"

	"artmarket-backend/internal/auth"

	"github.com/labstack/echo/v4"
)

const principalKey = "principal"

// Auth resolves the bearer token into a principal and stores it on the
// request context. Handlers behind it can trust the principal.
func Auth(verifier *auth.Service) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get("Authorization")
			if !strings.HasPrefix(header, "Bearer ") {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing bearer token")
			}

			principal, err := verifier.Verify(strings.TrimPrefix(header, "Bearer "))
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid or expired token")
			}

			c.Set(principalKey, principal)
			return next(c)
		}
	}
}

// RequireRole rejects principals whose role is not in the allow list.
func RequireRole(roleIDs ...uint) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			principal, ok := Principal(c)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing bearer token")
			}
			for _, roleID := range roleIDs {
				if principal.RoleID == roleID {
					return next(c)
				}
			}
			return echo.NewHTTPError(http.StatusForbidden, "insufficient permissions")
		}
	}
}

func Principal(c echo.Context) (*auth.Principal, bool) {
	principal, ok := c.Get(principalKey).(*auth.Principal)
	return principal, ok
}
