package garden

import (
	"log/slog"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/eringen/garden/logfields"
)

func (a *App) setupMiddleware() {
	e := a.Echo

	e.HTTPErrorHandler = a.httpErrorHandler

	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus:  true,
		LogURI:     true,
		LogMethod:  true,
		LogLatency: true,
		LogError:   true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			level := slog.LevelInfo
			if v.Status >= 500 {
				level = slog.LevelError
			}
			a.Logger.LogAttrs(c.Request().Context(), level, "request",
				logfields.Method(v.Method),
				logfields.URI(v.URI),
				logfields.Status(v.Status),
				slog.Float64(logfields.KeyDurationMS, float64(v.Latency.Microseconds())/1000),
			)
			return nil
		},
	}))

	e.Use(a.Metrics.requestMiddleware())

	e.Use(middleware.Recover())

	e.Use(middleware.GzipWithConfig(middleware.GzipConfig{
		Level: 5,
		Skipper: func(c echo.Context) bool {
			return strings.HasPrefix(c.Request().URL.Path, "/static/")
		},
	}))

	e.Use(middleware.SecureWithConfig(middleware.SecureConfig{
		XSSProtection:         "1; mode=block",
		ContentTypeNosniff:    "nosniff",
		XFrameOptions:         "SAMEORIGIN",
		ReferrerPolicy:        "strict-origin-when-cross-origin",
		ContentSecurityPolicy: "default-src 'self'; script-src 'self' 'unsafe-inline'; style-src 'self' 'unsafe-inline'; img-src 'self' https: data:; font-src 'self' https:; connect-src 'self'; form-action 'self' https:",
	}))

	e.Use(cacheControlMiddleware)
}

// Pages change on every re-ingest, so only static files are cached for long.
func cacheControlMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		path := c.Request().URL.Path
		switch {
		case strings.HasPrefix(path, "/static/"):
			c.Response().Header().Set("Cache-Control", "public, max-age=3600")
		case path == "/sitemap.xml" || path == "/index.xml" || path == "/robots.txt":
			c.Response().Header().Set("Cache-Control", "public, max-age=300")
		case path == "/metrics":
			c.Response().Header().Set("Cache-Control", "no-store")
		default:
			c.Response().Header().Set("Cache-Control", "no-cache")
		}
		return next(c)
	}
}
