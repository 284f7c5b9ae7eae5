package todo

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
)

// todoAdapter wraps ServiceContainer for type-safe cross-module communication.
type todoAdapter struct {
	container mono.ServiceContainer
}

// NewTodoAdapter creates a new adapter for todo services.
// container is the ServiceContainer from the todo module received via SetDependencyServiceContainer.
func NewTodoAdapter(container mono.ServiceContainer) TodoPort {
	if container == nil {
		panic("todo adapter requires non-nil ServiceContainer")
	}
	return &todoAdapter{container: container}
}

// ListTodos returns every stored todo via the list-todos service.
func (a *todoAdapter) ListTodos(ctx context.Context) ([]TodoResponse, error) {
	req := ListTodosRequest{}
	var resp ListTodosResponse
	if err := helper.CallRequestReplyService(
		ctx,
		a.container,
		"list-todos",
		json.Marshal,
		json.Unmarshal,
		&req,
		&resp,
	); err != nil {
		return nil, mapServiceError(err)
	}
	return resp.Todos, nil
}

// CreateTodo stores a new todo via the create-todo service.
func (a *todoAdapter) CreateTodo(ctx context.Context, content string) (*TodoResponse, error) {
	req := CreateTodoRequest{Content: content}
	var resp TodoResponse
	if err := helper.CallRequestReplyService(
		ctx,
		a.container,
		"create-todo",
		json.Marshal,
		json.Unmarshal,
		&req,
		&resp,
	); err != nil {
		return nil, mapServiceError(err)
	}
	return &resp, nil
}

// DeleteTodo removes a todo via the delete-todo service.
func (a *todoAdapter) DeleteTodo(ctx context.Context, id int64) error {
	req := DeleteTodoRequest{ID: id}
	var resp DeleteTodoResponse
	if err := helper.CallRequestReplyService(
		ctx,
		a.container,
		"delete-todo",
		json.Marshal,
		json.Unmarshal,
		&req,
		&resp,
	); err != nil {
		return mapServiceError(err)
	}
	return nil
}

// mapServiceError converts a service error back to ErrConstraint or
// ErrStorage by checking the message, since errors lose their type when
// sent over NATS. The driver message after the sentinel prefix is kept.
// Anything unrecognised (timeouts, missing service) is a storage failure.
func mapServiceError(err error) error {
	if err == nil {
		return nil
	}

	msg := err.Error()
	for _, sentinel := range []error{ErrConstraint, ErrStorage} {
		prefix := sentinel.Error() + ": "
		if i := strings.Index(msg, prefix); i >= 0 {
			return fmt.Errorf("%w: %s", sentinel, msg[i+len(prefix):])
		}
	}

	return fmt.Errorf("%w: %s", ErrStorage, msg)
}
