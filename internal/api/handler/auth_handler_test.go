package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alshadows/product-catalog/internal/core/domain"
	"github.com/alshadows/product-catalog/internal/core/ports"
)

type stubAuthService struct {
	authenticateFn func(ctx context.Context, username, password string) (*ports.LoginResult, error)
}

func (s *stubAuthService) Authenticate(ctx context.Context, username, password string) (*ports.LoginResult, error) {
	return s.authenticateFn(ctx, username, password)
}

func newTestEcho() *echo.Echo {
	e := echo.New()
	e.Validator = NewValidator()
	return e
}

func jsonRequest(method, target, body string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	return req
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestAuthHandler_Login_Success(t *testing.T) {
	e := newTestEcho()
	expires := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)
	stub := &stubAuthService{
		authenticateFn: func(ctx context.Context, username, password string) (*ports.LoginResult, error) {
			assert.Equal(t, "admin", username)
			assert.Equal(t, "admin123", password)
			return &ports.LoginResult{
				Token:     "signed.jwt.token",
				ExpiresAt: expires,
				Username:  "admin",
				Roles:     []domain.Role{domain.RoleAdmin},
			}, nil
		},
	}
	h := NewAuthHandler(stub)

	rec := httptest.NewRecorder()
	c := e.NewContext(jsonRequest(http.MethodPost, "/api/v1/auth/login", `{"username":"admin","password":"admin123"}`), rec)

	require.NoError(t, h.Login(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	body := decodeEnvelope(t, rec)
	assert.Equal(t, "SUCCESS", body["status"])
	assert.Equal(t, "AUTH_SUCCESS", body["code"])

	data := body["data"].(map[string]any)
	assert.Equal(t, "signed.jwt.token", data["token"])
	assert.Equal(t, "admin", data["username"])
	assert.Equal(t, []any{"ADMIN"}, data["roles"])
	assert.Equal(t, "2026-05-01T10:00:00Z", data["expiresAt"])

	links := body["links"].(map[string]any)
	assert.Equal(t, "/api/v1/products", links["products"])
}

func TestAuthHandler_Login_BadCredentials(t *testing.T) {
	e := newTestEcho()
	h := NewAuthHandler(&stubAuthService{
		authenticateFn: func(ctx context.Context, username, password string) (*ports.LoginResult, error) {
			return nil, domain.ErrInvalidCredentials
		},
	})

	rec := httptest.NewRecorder()
	c := e.NewContext(jsonRequest(http.MethodPost, "/api/v1/auth/login", `{"username":"admin","password":"nope"}`), rec)

	err := h.Login(c)
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestAuthHandler_Login_Validation(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"missing password", `{"username":"admin"}`},
		{"blank username", `{"username":"   ","password":"x"}`},
		{"malformed json", `{"username":`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestEcho()
			h := NewAuthHandler(&stubAuthService{
				authenticateFn: func(ctx context.Context, username, password string) (*ports.LoginResult, error) {
					t.Fatal("service must not be called")
					return nil, nil
				},
			})

			c := e.NewContext(jsonRequest(http.MethodPost, "/api/v1/auth/login", tt.body), httptest.NewRecorder())

			var ve *domain.ValidationError
			require.ErrorAs(t, h.Login(c), &ve)
		})
	}
}

func TestAuthHandler_Login_StoreFailure(t *testing.T) {
	e := newTestEcho()
	storeErr := errors.New("connection refused")
	h := NewAuthHandler(&stubAuthService{
		authenticateFn: func(ctx context.Context, username, password string) (*ports.LoginResult, error) {
			return nil, storeErr
		},
	})

	c := e.NewContext(jsonRequest(http.MethodPost, "/api/v1/auth/login", `{"username":"a","password":"b"}`), httptest.NewRecorder())
	assert.ErrorIs(t, h.Login(c), storeErr)
}
