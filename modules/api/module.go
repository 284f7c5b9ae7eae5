package api

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/types"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"

	"github.com/kongbaihui/todo---fullstack/modules/ratelimit"
	"github.com/kongbaihui/todo---fullstack/modules/todo"
)

// Config holds the HTTP surface settings.
type Config struct {
	// Port is the TCP port to listen on. Zero skips Listen, which tests use.
	Port int
	// AllowedOrigins is the CORS allow list, comma separated.
	AllowedOrigins string
}

// APIModule serves the todo HTTP API and the browser client.
type APIModule struct {
	app             *fiber.App
	todoPort        todo.TodoPort
	rateLimitModule *ratelimit.Module
	config          Config
	logger          types.Logger
}

// Compile-time interface checks.
var _ mono.Module = (*APIModule)(nil)
var _ mono.DependentModule = (*APIModule)(nil)
var _ mono.HealthCheckableModule = (*APIModule)(nil)

// NewModule creates a new APIModule.
func NewModule(config Config, logger types.Logger) *APIModule {
	if config.AllowedOrigins == "" {
		config.AllowedOrigins = "*"
	}
	return &APIModule{
		config: config,
		logger: logger.WithModule("api"),
	}
}

// Name returns the module name.
func (m *APIModule) Name() string {
	return "api"
}

// Dependencies returns the modules this module depends on.
func (m *APIModule) Dependencies() []string {
	return []string{"todo"}
}

// SetDependencyServiceContainer receives the service container from a dependency.
func (m *APIModule) SetDependencyServiceContainer(dependency string, container mono.ServiceContainer) {
	if dependency == "todo" {
		m.todoPort = todo.NewTodoAdapter(container)
	}
}

// SetRateLimitModule attaches the optional per-IP limiter to the /todos routes.
// It must be called before Start.
func (m *APIModule) SetRateLimitModule(rl *ratelimit.Module) {
	m.rateLimitModule = rl
}

// App returns the underlying Fiber app, nil before Start.
func (m *APIModule) App() *fiber.App {
	return m.app
}

// Health reports whether the HTTP app is up.
func (m *APIModule) Health(_ context.Context) mono.HealthStatus {
	if m.app == nil {
		return mono.HealthStatus{
			Healthy: false,
			Message: "server not started",
		}
	}
	return mono.HealthStatus{
		Healthy: true,
		Message: "operational",
		Details: map[string]any{
			"port":       m.config.Port,
			"rate_limit": m.rateLimitModule != nil,
		},
	}
}

// Start builds the Fiber app and begins listening.
func (m *APIModule) Start(_ context.Context) error {
	if m.todoPort == nil {
		return errors.New("required dependency 'todo' not initialized")
	}

	m.app = m.newApp()

	if m.config.Port == 0 {
		m.logger.Info("module started without listener")
		return nil
	}

	addr := fmt.Sprintf(":%d", m.config.Port)
	errCh := make(chan error, 1)
	go func() {
		if err := m.app.Listen(addr); err != nil {
			errCh <- err
		}
	}()

	// Catch immediate startup errors such as a port already in use.
	select {
	case err := <-errCh:
		return fmt.Errorf("HTTP server failed to start: %w", err)
	case <-time.After(100 * time.Millisecond):
	}

	m.logger.Info("HTTP server started", "addr", addr)
	return nil
}

// Stop gracefully shuts down the HTTP server.
func (m *APIModule) Stop(ctx context.Context) error {
	if m.app != nil {
		if err := m.app.ShutdownWithContext(ctx); err != nil {
			return fmt.Errorf("failed to shutdown server: %w", err)
		}
	}
	m.logger.Info("HTTP server stopped")
	return nil
}

// newApp creates the Fiber app with middleware and routes.
func (m *APIModule) newApp() *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "Todo",
		DisableStartupMessage: true,
		ErrorHandler:          m.errorHandler,
	})

	app.Use(recover.New())
	app.Use(requestid.New(requestid.Config{
		Generator: uuid.NewString,
	}))
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} ${method} ${path} ${latency} ${locals:requestid}\n",
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: m.config.AllowedOrigins,
		AllowMethods: "GET,POST,DELETE,OPTIONS",
		AllowHeaders: "Content-Type",
	}))

	m.app = app
	m.setupRoutes()
	return app
}

// errorHandler answers every unhandled error with an {"err": ...} body.
func (m *APIModule) errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal Server Error"

	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
		message = fe.Message
	}

	if code >= fiber.StatusInternalServerError {
		m.logger.Error("HTTP error", "code", code, "message", message, "error", err)
	}

	return c.Status(code).JSON(ErrorResponse{Err: message})
}
