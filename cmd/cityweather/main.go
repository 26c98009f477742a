package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/adaptor/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/template/html/v2"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	httpapi "github.com/cityweather/cityweather/internal/api/http"
	"github.com/cityweather/cityweather/internal/config"
	"github.com/cityweather/cityweather/internal/observability"
	"github.com/cityweather/cityweather/internal/weather"
	"github.com/cityweather/cityweather/internal/weather/openweather"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	slogger := observability.NewLogger(cfg.LogLevel, cfg.LogFormat)
	metrics := observability.NewMetrics()

	// Shared HTTP client for outbound provider calls; the session adds
	// bounded 5xx retry on top and is reused across all requests.
	httpClient := &http.Client{
		Timeout: cfg.HTTPTimeout,
	}
	session := openweather.NewSession(httpClient, openweather.RetryConfig{
		MaxRetries:     cfg.RetryMax,
		InitialBackoff: cfg.RetryBackoff,
	}, metrics, slogger)

	client := openweather.NewClient(cfg.APIKey, session, metrics, slogger)
	service := weather.NewService(client, client, slogger)

	engine := html.New("./views", ".html")

	app := fiber.New(fiber.Config{
		AppName:               "cityweather",
		Views:                 engine,
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          30 * time.Second,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			// Anything not already mapped to a page becomes a generic failure.
			code := fiber.StatusInternalServerError
			var fe *fiber.Error
			if errors.As(err, &fe) {
				code = fe.Code
			}
			slogger.Error("unhandled request error", "path", c.Path(), "error", err)
			return c.Status(code).Render("error", fiber.Map{
				"Message": "Something went wrong. Please try again.",
			})
		},
	})

	app.Use(requestid.New())
	app.Use(logger.New())
	app.Use(recover.New())

	app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"service": "cityweather",
		})
	})
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	httpapi.RegisterRoutes(app, service, slogger)

	go func() {
		slogger.Info("server starting", "port", cfg.Port)
		if err := app.Listen(":" + cfg.Port); err != nil {
			slogger.Error("server stopped", "error", err)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()
	slogger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		slogger.Error("error during shutdown", "error", err)
	}
	httpClient.CloseIdleConnections()
	slogger.Info("shutdown complete")
}
