package ratelimit

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-monolith/mono/pkg/types"
	"github.com/gofiber/fiber/v2"
	"github.com/kongbaihui/todo---fullstack/domain/ratelimit"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countingLimiter allows the first limit calls per key.
type countingLimiter struct {
	limit int
	seen  map[string]int
	err   error
}

func newCountingLimiter(limit int) *countingLimiter {
	return &countingLimiter{limit: limit, seen: make(map[string]int)}
}

func (l *countingLimiter) Allow(_ context.Context, key string) (*ratelimit.Decision, error) {
	if l.err != nil {
		return nil, l.err
	}
	l.seen[key]++
	if l.seen[key] > l.limit {
		return &ratelimit.Decision{
			Allowed:    false,
			ResetAt:    time.Now().Add(time.Minute),
			RetryAfter: 30 * time.Second,
		}, nil
	}
	return &ratelimit.Decision{
		Allowed:   true,
		Remaining: l.limit - l.seen[key],
		ResetAt:   time.Now().Add(time.Minute),
	}, nil
}

// mockLogger implements types.Logger for testing
type mockLogger struct{}

func (m *mockLogger) Debug(_ string, _ ...any)         {}
func (m *mockLogger) Info(_ string, _ ...any)          {}
func (m *mockLogger) Warn(_ string, _ ...any)          {}
func (m *mockLogger) Error(_ string, _ ...any)         {}
func (m *mockLogger) With(_ ...any) types.Logger       { return m }
func (m *mockLogger) WithModule(_ string) types.Logger { return m }
func (m *mockLogger) WithError(_ error) types.Logger   { return m }

func newLimitedApp(handler fiber.Handler) *fiber.App {
	app := fiber.New(fiber.Config{ProxyHeader: fiber.HeaderXForwardedFor})
	app.Get("/todos", handler, func(c *fiber.Ctx) error {
		return c.SendString("OK")
	})
	return app
}

func doGet(t *testing.T, app *fiber.App, ip string) *http.Response {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, "/todos", nil)
	req.Header.Set(fiber.HeaderXForwardedFor, ip)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func TestIPRateLimit(t *testing.T) {
	app := newLimitedApp(IPRateLimit(newCountingLimiter(2), 2))

	for i := 0; i < 2; i++ {
		resp := doGet(t, app, "192.168.1.100")
		assert.Equal(t, http.StatusOK, resp.StatusCode, "request %d", i+1)
		assert.Equal(t, "2", resp.Header.Get("X-RateLimit-Limit"))
	}

	resp := doGet(t, app, "192.168.1.100")
	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
	assert.Equal(t, "30", resp.Header.Get("Retry-After"))

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `"err":"rate limit exceeded`)

	// Another client has its own budget.
	resp = doGet(t, app, "10.0.0.7")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestIPRateLimit_FailOpen(t *testing.T) {
	limiter := newCountingLimiter(0)
	limiter.err = errors.New("redis down")
	app := newLimitedApp(IPRateLimit(limiter, 0))

	resp := doGet(t, app, "192.168.1.100")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "redis down", resp.Header.Get("X-RateLimit-Error"))
}

func TestModule_MiddlewareBeforeStart(t *testing.T) {
	m := NewModule("localhost:6379", ratelimit.DefaultPolicy(), &mockLogger{})
	assert.Equal(t, "rate-limiter", m.Name())
	assert.False(t, m.Health(context.Background()).Healthy)

	app := newLimitedApp(m.Middleware())
	resp := doGet(t, app, "192.168.1.100")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Empty(t, resp.Header.Get("X-RateLimit-Limit"))
}
