package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/alshadows/product-catalog/internal/core/domain"
	"github.com/alshadows/product-catalog/internal/pkg/token"
)

// PrincipalKey is the echo context key holding the verified domain.Principal.
const PrincipalKey = "principal"

// TokenParser verifies a raw bearer token.
type TokenParser interface {
	Parse(raw string) (*token.Claims, error)
}

// Auth validates the JWT and injects the principal into both the echo
// context and the request context.
func Auth(parser TokenParser) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
			}

			claims, err := parser.Parse(parts[1])
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			principal := claims.Principal()
			c.Set(PrincipalKey, principal)
			c.SetRequest(c.Request().WithContext(domain.WithPrincipal(c.Request().Context(), principal)))

			return next(c)
		}
	}
}
