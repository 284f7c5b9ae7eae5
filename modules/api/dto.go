package api

import "time"

// CreateTodoRequest is the HTTP request for creating a todo.
type CreateTodoRequest struct {
	Content string `json:"content"`
}

// TodoResponse is one element of the GET /todos array.
type TodoResponse struct {
	ID         int64     `json:"id"`
	Content    string    `json:"content"`
	CreateTime time.Time `json:"createTime"`
}

// CreateTodoResponse is the HTTP response for a created todo.
type CreateTodoResponse struct {
	ID      int64  `json:"id"`
	Content string `json:"content"`
}

// MessageResponse acknowledges a deletion.
type MessageResponse struct {
	Message string `json:"message"`
}

// HealthResponse is the HTTP response for health check.
type HealthResponse struct {
	Status  string         `json:"status"`
	Details map[string]any `json:"details,omitempty"`
}

// ErrorResponse is the HTTP response for every failure.
type ErrorResponse struct {
	Err string `json:"err"`
}
