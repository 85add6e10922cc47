package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/alshadows/product-catalog/internal/api/response"
	"github.com/alshadows/product-catalog/internal/core/domain"
)

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Renders business failures as 400 with their symbolic code.
//   - Renders credential failures as 401 without saying which part was wrong.
//   - Logs unexpected errors internally without leaking details to the client.
//
// Every response uses the failure envelope.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, body := resolveError(err, log, c)
		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(code)
			return
		}
		_ = c.JSON(code, body)
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, response.Envelope) {
	var pe *domain.ProductError
	if errors.As(err, &pe) {
		log.Info().Str("code", pe.Code).Str("path", c.Path()).Msg(pe.Message)
		return http.StatusBadRequest, response.Failure(pe.Code, pe.Message)
	}

	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		return http.StatusBadRequest, response.Failure(response.CodeValidationError, ve.Message)
	}

	if errors.Is(err, domain.ErrInvalidCredentials) {
		return http.StatusUnauthorized, response.Failure(response.CodeBadCredentials, domain.ErrInvalidCredentials.Error())
	}

	// Echo's own errors (bind failures, 404 from router, auth middleware, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) && he.Code < http.StatusInternalServerError {
		return he.Code, response.Failure(statusCode(he.Code), fmt.Sprintf("%v", he.Message))
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Str("request_id", c.Response().Header().Get(echo.HeaderXRequestID)).
		Msg("unhandled error")

	return http.StatusInternalServerError, response.Failure(response.CodeInternalServerError, "an unexpected error occurred")
}

// statusCode derives a symbolic code from an HTTP status, e.g. 404 -> NOT_FOUND.
func statusCode(status int) string {
	text := http.StatusText(status)
	if text == "" {
		return "HTTP_" + fmt.Sprint(status)
	}
	return strings.ToUpper(strings.NewReplacer(" ", "_", "-", "_", "'", "").Replace(text))
}
