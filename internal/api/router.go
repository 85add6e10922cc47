package api

import (
	"github.com/google/uuid"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/alshadows/product-catalog/internal/api/handler"
	"github.com/alshadows/product-catalog/internal/api/middleware"
	"github.com/alshadows/product-catalog/internal/core/domain"
	"github.com/alshadows/product-catalog/internal/core/ports"
)

// Dependencies are the collaborators the HTTP layer is built over.
type Dependencies struct {
	Products ports.ProductService
	Auth     ports.AuthService
	Tokens   middleware.TokenParser
	// Health maps a dependency name to its readiness check.
	Health map[string]handler.Pinger
	Log    zerolog.Logger
	// Registerer and Gatherer default to the global Prometheus registry.
	Registerer prometheus.Registerer
	Gatherer   prometheus.Gatherer
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestIDWithConfig(echomiddleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(requestLogger(deps.Log))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  "catalog",
		Registerer: deps.Registerer,
	}))

	// --- Operational endpoints (no auth required) ---
	healthHandler := handler.NewHealthHandler(deps.Health)
	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{
		Gatherer: deps.Gatherer,
	}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	v1 := e.Group("/api/v1")

	// --- Auth routes ---
	authHandler := handler.NewAuthHandler(deps.Auth)
	v1.POST("/auth/login", authHandler.Login)

	// --- Product routes ---
	productHandler := handler.NewProductHandler(deps.Products)
	products := v1.Group("/products", middleware.Auth(deps.Tokens))

	read := middleware.RBAC(domain.RoleAdmin, domain.RoleUser)
	write := middleware.RBAC(domain.RoleAdmin)

	products.GET("", productHandler.List, read)
	products.GET("/search", productHandler.Search, read)
	products.GET("/:id", productHandler.Get, read)
	products.POST("", productHandler.Create, write)
	products.PUT("/:id", productHandler.Update, write)
	products.DELETE("/:id", productHandler.Delete, write)

	return e
}

func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogURI:       true,
		LogMethod:    true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			event := log.Info()
			if v.Error != nil {
				event = log.Warn().Err(v.Error)
			}
			event.
				Str("request_id", v.RequestID).
				Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Msg("request")
			return nil
		},
	})
}
