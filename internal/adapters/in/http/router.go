package http

import (
	"net/http"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"
)

const openAPIPath = "/api/openapi.json"

// RouterConfig controls the cross-cutting behaviour of the router.
type RouterConfig struct {
	// QuietErrors stops server errors from being logged, e.g. in tests.
	QuietErrors bool
	// LogRequests enables per-request access logging.
	LogRequests bool
	// AllowOrigins lists the origins allowed by CORS. Empty allows any origin.
	AllowOrigins []string
}

// NewRouter builds the echo instance serving the order API, its OpenAPI
// document, the Swagger UI and the health probe.
func NewRouter(server ServerInterface, doc *openapi3.T, cfg RouterConfig) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = NewErrorHandler(cfg.QuietErrors)

	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{AllowOrigins: cfg.AllowOrigins}))
	if cfg.LogRequests {
		e.Use(RequestLogger())
	}

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})

	if doc != nil {
		e.GET(openAPIPath, func(c echo.Context) error {
			return c.JSON(http.StatusOK, doc)
		})
		e.GET("/swagger/*", echoSwagger.EchoWrapHandler(echoSwagger.URL(openAPIPath)))
	}

	RegisterHandlers(e, server)

	return e
}
