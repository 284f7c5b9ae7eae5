package todo

import (
	"errors"
	"fmt"
	"time"

	"github.com/mattn/go-sqlite3"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// memoryPath is the SQLite DSN for a private in-memory database.
const memoryPath = ":memory:"

// OpenDatabase opens the SQLite database at path.
// Every new connection to an in-memory database starts empty, so those are
// pinned to a single connection.
func OpenDatabase(path string, debug bool) (*gorm.DB, error) {
	logLevel := logger.Silent
	if debug {
		logLevel = logger.Info
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger:  logger.Default.LogMode(logLevel),
		NowFunc: func() time.Time { return time.Now().UTC() },
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if path == memoryPath {
		sqlDB, err := db.DB()
		if err != nil {
			return nil, fmt.Errorf("failed to get sql.DB: %w", err)
		}
		sqlDB.SetMaxOpenConns(1)
	}

	return db, nil
}

// EnsureSchema creates the todos table when it is missing.
// An existing table is left untouched.
func EnsureSchema(db *gorm.DB) error {
	migrator := db.Migrator()
	if migrator.HasTable(&Todo{}) {
		return nil
	}
	if err := migrator.CreateTable(&Todo{}); err != nil {
		return fmt.Errorf("failed to create todos table: %w", err)
	}
	return nil
}

// Repository provides access to todo storage.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new todo repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// FindAll retrieves every stored todo ordered by id.
func (r *Repository) FindAll() ([]*Todo, error) {
	var todos []*Todo
	if err := r.db.Order("id ASC").Find(&todos).Error; err != nil {
		return nil, classify(err)
	}
	return todos, nil
}

// Create stores a new todo with the given content and returns it with its
// assigned id and creation time.
func (r *Repository) Create(content string) (*Todo, error) {
	todo := &Todo{Content: content}
	if err := r.db.Create(todo).Error; err != nil {
		return nil, classify(err)
	}
	return todo, nil
}

// Delete removes the todo with the given id. Deleting an id that does not
// exist is not an error.
func (r *Repository) Delete(id int64) error {
	if err := r.db.Delete(&Todo{}, "id = ?", id).Error; err != nil {
		return classify(err)
	}
	return nil
}

// classify wraps a driver error in ErrConstraint or ErrStorage.
func classify(err error) error {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) && sqliteErr.Code == sqlite3.ErrConstraint {
		return fmt.Errorf("%w: %v", ErrConstraint, err)
	}
	return fmt.Errorf("%w: %v", ErrStorage, err)
}
