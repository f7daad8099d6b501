// Package routes defines the API routing configuration.
// Every endpoint is declared once in the route table below together with
// whether it sits behind the auth gate.
package routes

import (
	"errors"
	"strings"

	"antifraud/internal/config"
	"antifraud/internal/handlers"
	"antifraud/internal/middleware"
	"antifraud/internal/services/account"
	"antifraud/internal/services/antifraud"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Dependencies are the services the routes dispatch to. Health and Gatherer
// are optional; their routes are skipped when nil.
type Dependencies struct {
	Antifraud antifraud.Service
	Accounts  account.Service
	Health    *handlers.HealthHandler
	Gatherer  prometheus.Gatherer
}

type route struct {
	method    string
	path      string
	protected bool
	handler   fiber.Handler
}

// Middleware returns the global middleware in the order it is applied.
func Middleware(cfg config.Config) []fiber.Handler {
	return []fiber.Handler{
		requestid.New(requestid.Config{
			Generator: uuid.NewString,
		}),
		logger.New(logger.Config{
			Format: "[${time}] ${status} - ${latency} ${method} ${path} ${locals:requestid}\n",
		}),
		cors.New(cors.Config{
			AllowOrigins:     cfg.CORSAllowOrigins,
			AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
			AllowMethods:     "GET,POST,DELETE",
			AllowCredentials: !strings.Contains(cfg.CORSAllowOrigins, "*"),
		}),
	}
}

func routeTable(deps Dependencies) []route {
	antifraudHandler := handlers.NewAntifraudHandler(deps.Antifraud)
	accountHandler := handlers.NewAccountHandler(deps.Accounts)

	table := []route{
		{fiber.MethodPost, "/api/antifraud/transaction", true, antifraudHandler.EvaluateTransaction},
		{fiber.MethodPost, "/api/auth/user", false, accountHandler.Register},
		{fiber.MethodGet, "/api/auth/list", true, accountHandler.List},
		{fiber.MethodDelete, "/api/auth/user/:username", true, accountHandler.Delete},
	}
	if deps.Health != nil {
		table = append(table, route{fiber.MethodGet, "/health", false, deps.Health.HealthCheck})
	}
	if deps.Gatherer != nil {
		metricsHandler := adaptor.HTTPHandler(promhttp.HandlerFor(deps.Gatherer, promhttp.HandlerOpts{}))
		table = append(table, route{fiber.MethodGet, "/metrics", false, metricsHandler})
	}
	return table
}

// SetupRoutes applies the middleware chain and registers the route table.
func SetupRoutes(app *fiber.App, cfg config.Config, deps Dependencies) {
	for _, handler := range Middleware(cfg) {
		app.Use(handler)
	}

	auth := middleware.NewAuthMiddleware(deps.Accounts).Handler()
	for _, r := range routeTable(deps) {
		if r.protected {
			app.Add(r.method, r.path, auth, r.handler)
			continue
		}
		app.Add(r.method, r.path, r.handler)
	}
}

// ErrorHandler renders errors that escape the handlers as JSON.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "internal server error"

	var e *fiber.Error
	if errors.As(err, &e) {
		code = e.Code
		message = e.Message
	}
	return c.Status(code).JSON(fiber.Map{"error": message})
}
