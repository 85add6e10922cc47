package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alshadows/product-catalog/internal/core/domain"
)

func TestRBAC_Allows(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set(PrincipalKey, domain.Principal{Username: "root", Role: domain.RoleAdmin})

	called := false
	handler := RBAC(domain.RoleAdmin, domain.RoleUser)(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})

	require.NoError(t, handler(c))
	assert.True(t, called, "next handler not called")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRBAC_Forbids(t *testing.T) {
	tests := []struct {
		name      string
		principal any
	}{
		{name: "insufficient role", principal: domain.Principal{Username: "bob", Role: domain.RoleUser}},
		{name: "no principal", principal: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)
			if tt.principal != nil {
				c.Set(PrincipalKey, tt.principal)
			}

			handler := RBAC(domain.RoleAdmin)(func(c echo.Context) error {
				t.Fatalf("should not reach next handler")
				return nil
			})

			err := handler(c)
			var he *echo.HTTPError
			require.ErrorAs(t, err, &he)
			assert.Equal(t, http.StatusForbidden, he.Code)
		})
	}
}
