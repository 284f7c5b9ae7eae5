package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/types"
	"github.com/gofiber/fiber/v2"
	"github.com/kongbaihui/todo---fullstack/domain/ratelimit"
	"github.com/redis/go-redis/v9"
)

// Module provides per-IP rate limiting backed by Redis.
type Module struct {
	client    *redis.Client
	limiter   *SlidingWindowLimiter
	policy    ratelimit.Policy
	redisAddr string
	logger    types.Logger
}

// Compile-time interface checks.
var _ mono.Module = (*Module)(nil)
var _ mono.HealthCheckableModule = (*Module)(nil)

// NewModule creates a new rate limiting module.
func NewModule(redisAddr string, policy ratelimit.Policy, logger types.Logger) *Module {
	return &Module{
		redisAddr: redisAddr,
		policy:    policy,
		logger:    logger.WithModule("rate-limiter"),
	}
}

// Name returns the module name.
func (m *Module) Name() string {
	return "rate-limiter"
}

// Start connects to Redis and builds the limiter.
func (m *Module) Start(ctx context.Context) error {
	m.client = redis.NewClient(&redis.Options{
		Addr:         m.redisAddr,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	if err := m.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("failed to connect to Redis at %s: %w", m.redisAddr, err)
	}

	m.limiter = NewSlidingWindowLimiter(m.client, m.policy, "todo:ratelimit:ip:")
	m.logger.Info("connected to Redis",
		"addr", m.redisAddr,
		"limit", m.policy.Limit,
		"window", m.policy.Window)
	return nil
}

// Stop closes the Redis connection.
func (m *Module) Stop(_ context.Context) error {
	if m.client != nil {
		if err := m.client.Close(); err != nil {
			m.logger.Error("failed to close Redis connection", "error", err)
			return err
		}
	}
	m.logger.Info("module stopped")
	return nil
}

// Health pings Redis.
func (m *Module) Health(ctx context.Context) mono.HealthStatus {
	if m.client == nil {
		return mono.HealthStatus{
			Healthy: false,
			Message: "Redis client not initialized",
		}
	}
	if err := m.client.Ping(ctx).Err(); err != nil {
		return mono.HealthStatus{
			Healthy: false,
			Message: fmt.Sprintf("Redis ping failed: %v", err),
		}
	}
	return mono.HealthStatus{
		Healthy: true,
		Message: "operational",
		Details: map[string]any{
			"redis_addr": m.redisAddr,
			"limit":      m.policy.Limit,
			"window":     m.policy.Window.String(),
		},
	}
}

// Middleware returns the Fiber handler enforcing the limit.
// Requests pass through untouched until the module has started.
func (m *Module) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if m.limiter == nil {
			return c.Next()
		}
		return IPRateLimit(m.limiter, m.policy.Limit)(c)
	}
}
