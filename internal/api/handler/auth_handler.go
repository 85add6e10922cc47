package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/alshadows/product-catalog/internal/api/metrics"
	"github.com/alshadows/product-catalog/internal/api/response"
	"github.com/alshadows/product-catalog/internal/core/domain"
	"github.com/alshadows/product-catalog/internal/core/ports"
)

type AuthHandler struct {
	authService ports.AuthService
}

func NewAuthHandler(authService ports.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Login authenticates a user and returns a JWT token.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  response.Envelope{data=loginResponse}
// @Failure      400   {object}  response.Envelope
// @Failure      401   {object}  response.Envelope
// @Failure      500   {object}  response.Envelope
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return &domain.ValidationError{Message: "invalid payload"}
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	result, err := h.authService.Authenticate(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			metrics.LoginAttemptsTotal.WithLabelValues("rejected").Inc()
		} else {
			metrics.LoginAttemptsTotal.WithLabelValues("error").Inc()
		}
		return err
	}
	metrics.LoginAttemptsTotal.WithLabelValues("success").Inc()

	roles := make([]string, 0, len(result.Roles))
	for _, r := range result.Roles {
		roles = append(roles, string(r))
	}

	return c.JSON(http.StatusOK, response.Success(
		response.CodeAuthSuccess,
		"authentication successful",
		loginResponse{
			Token:     result.Token,
			Username:  result.Username,
			Roles:     roles,
			ExpiresAt: result.ExpiresAt.UTC(),
		},
		response.Links{"products": productsPath},
	))
}
