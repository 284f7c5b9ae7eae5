package todo

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
	"github.com/go-monolith/mono/pkg/types"
	"gorm.io/gorm"
)

// Config holds the store settings.
type Config struct {
	// DBPath is the SQLite file, or ":memory:" for a throwaway database.
	DBPath string
	// Debug enables SQL statement logging.
	Debug bool
}

// TodoModule owns the todo store and exposes it as request-reply services.
type TodoModule struct {
	db     *gorm.DB
	repo   *Repository
	config Config
	logger types.Logger
}

// Compile-time interface checks.
var _ mono.Module = (*TodoModule)(nil)
var _ mono.ServiceProviderModule = (*TodoModule)(nil)
var _ mono.HealthCheckableModule = (*TodoModule)(nil)

// NewModule creates a new TodoModule.
func NewModule(config Config, logger types.Logger) *TodoModule {
	if config.DBPath == "" {
		config.DBPath = "todo.db"
	}
	return &TodoModule{
		config: config,
		logger: logger.WithModule("todo"),
	}
}

// Name returns the module name.
func (m *TodoModule) Name() string {
	return "todo"
}

// Health pings the database.
func (m *TodoModule) Health(ctx context.Context) mono.HealthStatus {
	if m.db == nil {
		return mono.HealthStatus{
			Healthy: false,
			Message: "database not initialized",
		}
	}

	sqlDB, err := m.db.DB()
	if err != nil {
		return mono.HealthStatus{
			Healthy: false,
			Message: fmt.Sprintf("failed to get sql.DB: %v", err),
		}
	}

	if err := sqlDB.PingContext(ctx); err != nil {
		return mono.HealthStatus{
			Healthy: false,
			Message: fmt.Sprintf("database ping failed: %v", err),
		}
	}

	return mono.HealthStatus{
		Healthy: true,
		Message: "operational",
		Details: map[string]any{
			"driver": "sqlite",
			"path":   m.config.DBPath,
		},
	}
}

// RegisterServices registers the list, create and delete services.
func (m *TodoModule) RegisterServices(container mono.ServiceContainer) error {
	if err := helper.RegisterTypedRequestReplyService(
		container, "list-todos", json.Unmarshal, json.Marshal, m.listTodos,
	); err != nil {
		return fmt.Errorf("failed to register list-todos service: %w", err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, "create-todo", json.Unmarshal, json.Marshal, m.createTodo,
	); err != nil {
		return fmt.Errorf("failed to register create-todo service: %w", err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, "delete-todo", json.Unmarshal, json.Marshal, m.deleteTodo,
	); err != nil {
		return fmt.Errorf("failed to register delete-todo service: %w", err)
	}

	m.logger.Info("registered services", "services", []string{"list-todos", "create-todo", "delete-todo"})
	return nil
}

// Start opens the database and makes sure the todos table exists.
// The handle stays open until Stop.
func (m *TodoModule) Start(_ context.Context) error {
	m.logger.Info("connecting to SQLite database", "path", m.config.DBPath)

	db, err := OpenDatabase(m.config.DBPath, m.config.Debug)
	if err != nil {
		return err
	}
	m.db = db

	if err := EnsureSchema(m.db); err != nil {
		return err
	}

	m.repo = NewRepository(m.db)

	m.logger.Info("module started")
	return nil
}

// Stop closes the database connection.
func (m *TodoModule) Stop(_ context.Context) error {
	if m.db == nil {
		return nil
	}

	sqlDB, err := m.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get sql.DB: %w", err)
	}

	if err := sqlDB.Close(); err != nil {
		return fmt.Errorf("failed to close database: %w", err)
	}

	m.logger.Info("database connection closed")
	return nil
}
