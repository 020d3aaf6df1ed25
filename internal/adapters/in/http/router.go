package http

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"foodorders/internal/pkg/metrics"

	"github.com/labstack/echo/v4"
)

// NewRouter builds the echo instance serving the API: request validation,
// request metrics, the API routes, swagger, /health and /metrics.
// serverMetrics may be nil.
func NewRouter(si ServerInterface, serverMetrics *metrics.ServerMetrics) (*echo.Echo, error) {
	doc, err := OpenAPI()
	if err != nil {
		return nil, err
	}
	validator, err := RequestValidator(doc)
	if err != nil {
		return nil, err
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	if serverMetrics != nil {
		e.Use(Metrics(serverMetrics))
	}
	e.Use(validator)

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})
	e.GET("/metrics", echo.WrapHandler(metrics.Handler()))
	if err = RegisterSwagger(e, doc); err != nil {
		return nil, err
	}

	RegisterHandlers(e, si)

	return e, nil
}

// Metrics counts requests by route template and status and records their
// latency.
func Metrics(m *metrics.ServerMetrics) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			start := time.Now()
			err := next(ctx)

			status := ctx.Response().Status
			var httpErr *echo.HTTPError
			if errors.As(err, &httpErr) {
				status = httpErr.Code
			}

			route := ctx.Path()
			if route == "" {
				route = "unmatched"
			}
			m.Requests.WithLabelValues(route, strconv.Itoa(status)).Inc()
			m.LatencyMS.WithLabelValues(route).Observe(float64(time.Since(start).Milliseconds()))
			return err
		}
	}
}
