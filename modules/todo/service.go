package todo

import (
	"context"

	"github.com/go-monolith/mono"
)

// listTodos handles the list-todos service request.
func (m *TodoModule) listTodos(_ context.Context, _ ListTodosRequest, _ *mono.Msg) (ListTodosResponse, error) {
	todos, err := m.repo.FindAll()
	if err != nil {
		m.logger.Error("list todos failed", "kind", ErrorKind(err), "error", err)
		return ListTodosResponse{}, err
	}

	response := ListTodosResponse{
		Todos: make([]TodoResponse, 0, len(todos)),
	}
	for _, todo := range todos {
		response.Todos = append(response.Todos, toTodoResponse(todo))
	}

	return response, nil
}

// createTodo handles the create-todo service request.
// Content is passed through as-is; the table constraint decides validity.
func (m *TodoModule) createTodo(_ context.Context, req CreateTodoRequest, _ *mono.Msg) (TodoResponse, error) {
	todo, err := m.repo.Create(req.Content)
	if err != nil {
		m.logger.Warn("create todo failed", "kind", ErrorKind(err), "error", err)
		return TodoResponse{}, err
	}

	m.logger.Debug("todo created", "id", todo.ID)
	return toTodoResponse(todo), nil
}

// deleteTodo handles the delete-todo service request.
func (m *TodoModule) deleteTodo(_ context.Context, req DeleteTodoRequest, _ *mono.Msg) (DeleteTodoResponse, error) {
	if err := m.repo.Delete(req.ID); err != nil {
		m.logger.Error("delete todo failed", "id", req.ID, "kind", ErrorKind(err), "error", err)
		return DeleteTodoResponse{}, err
	}

	m.logger.Debug("todo deleted", "id", req.ID)
	return DeleteTodoResponse{ID: req.ID}, nil
}

// toTodoResponse converts a Todo entity to a TodoResponse.
func toTodoResponse(todo *Todo) TodoResponse {
	return TodoResponse{
		ID:         todo.ID,
		Content:    todo.Content,
		CreateTime: todo.CreateTime,
	}
}
