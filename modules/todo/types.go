package todo

import (
	"context"
	"time"
)

// ListTodosRequest is the request for listing todos.
type ListTodosRequest struct{}

// ListTodosResponse is the response containing every stored todo.
type ListTodosResponse struct {
	Todos []TodoResponse `json:"todos"`
}

// CreateTodoRequest is the request for creating a todo.
type CreateTodoRequest struct {
	Content string `json:"content"`
}

// DeleteTodoRequest is the request for deleting a todo.
type DeleteTodoRequest struct {
	ID int64 `json:"id"`
}

// DeleteTodoResponse is the response after deleting a todo.
type DeleteTodoResponse struct {
	ID int64 `json:"id"`
}

// TodoResponse represents a todo in service responses.
type TodoResponse struct {
	ID         int64     `json:"id"`
	Content    string    `json:"content"`
	CreateTime time.Time `json:"createTime"`
}

// TodoPort defines the operations other modules use to reach the store.
// Errors wrap ErrConstraint or ErrStorage.
type TodoPort interface {
	ListTodos(ctx context.Context) ([]TodoResponse, error)
	CreateTodo(ctx context.Context, content string) (*TodoResponse, error)
	DeleteTodo(ctx context.Context, id int64) error
}
