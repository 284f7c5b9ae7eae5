package todo

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMapServiceError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		sentinel error
		message  string
	}{
		{
			name:     "constraint with transport prefix",
			err:      errors.New("service error: constraint violation: CHECK constraint failed: chk_todos_content"),
			sentinel: ErrConstraint,
			message:  "constraint violation: CHECK constraint failed: chk_todos_content",
		},
		{
			name:     "storage",
			err:      errors.New("storage failure: sql: database is closed"),
			sentinel: ErrStorage,
			message:  "storage failure: sql: database is closed",
		},
		{
			name:     "unknown error becomes storage",
			err:      errors.New("nats: timeout"),
			sentinel: ErrStorage,
			message:  "storage failure: nats: timeout",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := mapServiceError(tt.err)
			assert.ErrorIs(t, got, tt.sentinel)
			assert.Equal(t, tt.message, got.Error())
		})
	}

	assert.NoError(t, mapServiceError(nil))
}

func TestNewTodoAdapter_NilContainer(t *testing.T) {
	assert.Panics(t, func() {
		NewTodoAdapter(nil)
	})
}
