package api

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/kongbaihui/todo---fullstack/modules/todo"
)

// deletedMessage is the acknowledgment body for DELETE /todos/:id.
const deletedMessage = "删除成功"

// setupRoutes configures all HTTP routes. The client assets are mounted
// last so they never shadow an API route.
func (m *APIModule) setupRoutes() {
	m.app.Get("/health", m.healthHandler)

	todos := m.app.Group("/todos")
	if m.rateLimitModule != nil {
		todos.Use(m.rateLimitModule.Middleware())
	}
	todos.Get("/", m.listTodos)
	todos.Post("/", m.createTodo)
	todos.Delete("/:id", m.deleteTodo)

	m.app.Use("/", clientHandler())
}

// healthHandler handles GET /health.
func (m *APIModule) healthHandler(c *fiber.Ctx) error {
	return c.JSON(HealthResponse{
		Status: "healthy",
		Details: map[string]any{
			"module": "api",
			"port":   m.config.Port,
		},
	})
}

// listTodos handles GET /todos.
func (m *APIModule) listTodos(c *fiber.Ctx) error {
	todos, err := m.todoPort.ListTodos(c.UserContext())
	if err != nil {
		return m.storeFailure(c, "list", err)
	}

	resp := make([]TodoResponse, 0, len(todos))
	for _, t := range todos {
		resp = append(resp, TodoResponse{
			ID:         t.ID,
			Content:    t.Content,
			CreateTime: t.CreateTime,
		})
	}

	return c.JSON(resp)
}

// createTodo handles POST /todos.
// An absent body or field is forwarded as empty content and rejected by the store.
func (m *APIModule) createTodo(c *fiber.Ctx) error {
	var req CreateTodoRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
				Err: "invalid request body: " + err.Error(),
			})
		}
	}

	created, err := m.todoPort.CreateTodo(c.UserContext(), req.Content)
	if err != nil {
		return m.storeFailure(c, "create", err)
	}

	return c.JSON(CreateTodoResponse{
		ID:      created.ID,
		Content: created.Content,
	})
}

// deleteTodo handles DELETE /todos/:id.
func (m *APIModule) deleteTodo(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Err: "invalid todo id: " + c.Params("id"),
		})
	}

	if err := m.todoPort.DeleteTodo(c.UserContext(), id); err != nil {
		return m.storeFailure(c, "delete", err)
	}

	return c.JSON(MessageResponse{Message: deletedMessage})
}

// storeFailure logs a failed store call and answers 500 with its message.
// Constraint and storage failures share the wire shape.
func (m *APIModule) storeFailure(c *fiber.Ctx, op string, err error) error {
	m.logger.Error("store call failed",
		"op", op,
		"kind", todo.ErrorKind(err),
		"request_id", c.Locals("requestid"),
		"error", err)

	return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
		Err: err.Error(),
	})
}
