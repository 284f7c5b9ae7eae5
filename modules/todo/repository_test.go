package todo

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// setupTestDB creates an in-memory SQLite database with the todos table.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := OpenDatabase(":memory:", false)
	require.NoError(t, err)
	require.NoError(t, EnsureSchema(db))

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	return db
}

func TestEnsureSchema_Idempotent(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRepository(db)

	_, err := repo.Create("survives re-init")
	require.NoError(t, err)

	require.NoError(t, EnsureSchema(db))

	todos, err := repo.FindAll()
	require.NoError(t, err)
	require.Len(t, todos, 1)
	assert.Equal(t, "survives re-init", todos[0].Content)
}

func TestRepository_Create(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRepository(db)

	t.Run("assigns id and create time", func(t *testing.T) {
		todo, err := repo.Create("buy milk")
		require.NoError(t, err)

		assert.Equal(t, int64(1), todo.ID)
		assert.Equal(t, "buy milk", todo.Content)
		assert.False(t, todo.CreateTime.IsZero())

		todos, err := repo.FindAll()
		require.NoError(t, err)
		require.Len(t, todos, 1)
		assert.Equal(t, int64(1), todos[0].ID)
		assert.Equal(t, "buy milk", todos[0].Content)
		assert.False(t, todos[0].CreateTime.IsZero())
	})

	t.Run("keeps content verbatim", func(t *testing.T) {
		content := "  padded, 带中文 <b>and markup</b>  "
		todo, err := repo.Create(content)
		require.NoError(t, err)

		var found Todo
		require.NoError(t, db.First(&found, "id = ?", todo.ID).Error)
		assert.Equal(t, content, found.Content)
	})

	t.Run("empty content violates constraint", func(t *testing.T) {
		before, err := repo.FindAll()
		require.NoError(t, err)

		_, err = repo.Create("")
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrConstraint)
		assert.NotErrorIs(t, err, ErrStorage)

		after, err := repo.FindAll()
		require.NoError(t, err)
		assert.Len(t, after, len(before))
	})
}

func TestRepository_FindAll(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRepository(db)

	t.Run("empty database", func(t *testing.T) {
		todos, err := repo.FindAll()
		require.NoError(t, err)
		assert.Empty(t, todos)
	})

	for _, content := range []string{"first", "second", "third"} {
		_, err := repo.Create(content)
		require.NoError(t, err)
	}

	t.Run("ordered by id", func(t *testing.T) {
		todos, err := repo.FindAll()
		require.NoError(t, err)
		require.Len(t, todos, 3)
		for i := 1; i < len(todos); i++ {
			assert.Less(t, todos[i-1].ID, todos[i].ID)
		}
		assert.Equal(t, "first", todos[0].Content)
		assert.Equal(t, "third", todos[2].Content)
	})
}

func TestRepository_Delete(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRepository(db)

	first, err := repo.Create("first")
	require.NoError(t, err)
	second, err := repo.Create("second")
	require.NoError(t, err)

	t.Run("non-existent id is a no-op", func(t *testing.T) {
		require.NoError(t, repo.Delete(9999))

		todos, err := repo.FindAll()
		require.NoError(t, err)
		assert.Len(t, todos, 2)
	})

	t.Run("existing id removes exactly that record", func(t *testing.T) {
		require.NoError(t, repo.Delete(first.ID))

		todos, err := repo.FindAll()
		require.NoError(t, err)
		require.Len(t, todos, 1)
		assert.Equal(t, second.ID, todos[0].ID)
	})

	t.Run("repeated delete has the same end state", func(t *testing.T) {
		require.NoError(t, repo.Delete(first.ID))

		todos, err := repo.FindAll()
		require.NoError(t, err)
		require.Len(t, todos, 1)
		assert.Equal(t, second.ID, todos[0].ID)
	})
}

func TestRepository_IDsAreNotReused(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRepository(db)

	_, err := repo.Create("one")
	require.NoError(t, err)
	two, err := repo.Create("two")
	require.NoError(t, err)

	require.NoError(t, repo.Delete(two.ID))

	three, err := repo.Create("three")
	require.NoError(t, err)
	assert.Greater(t, three.ID, two.ID)
}

func TestRepository_StorageError(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRepository(db)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	_, err = repo.FindAll()
	assert.ErrorIs(t, err, ErrStorage)

	_, err = repo.Create("unreachable")
	assert.ErrorIs(t, err, ErrStorage)

	err = repo.Delete(1)
	assert.ErrorIs(t, err, ErrStorage)
}

func TestErrorKind(t *testing.T) {
	assert.Equal(t, "", ErrorKind(nil))
	assert.Equal(t, "constraint", ErrorKind(fmt.Errorf("%w: CHECK constraint failed", ErrConstraint)))
	assert.Equal(t, "storage", ErrorKind(classify(assert.AnError)))
	assert.Equal(t, "storage", ErrorKind(ErrStorage))
}
