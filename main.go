package main

import (
	"context"
	"errors"
	"io/fs"
	"log"
	"os"
	"strconv"
	"time"

	gfshutdown "github.com/gelmium/graceful-shutdown"
	"github.com/go-monolith/mono"
	"github.com/joho/godotenv"

	domainratelimit "github.com/kongbaihui/todo---fullstack/domain/ratelimit"
	"github.com/kongbaihui/todo---fullstack/modules/api"
	"github.com/kongbaihui/todo---fullstack/modules/ratelimit"
	"github.com/kongbaihui/todo---fullstack/modules/todo"
)

func main() {
	// A missing .env file is fine; the process environment still applies.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Fatalf("Failed to load .env: %v", err)
	}

	httpPort := getEnvInt("HTTP_PORT", 3000)
	dbPath := getEnv("DB_PATH", "todo.db")
	dbDebug := getEnvBool("DB_DEBUG", false)
	corsOrigins := getEnv("CORS_ALLOWED_ORIGINS", "*")
	redisAddr := getEnv("REDIS_ADDR", "")
	ratePerMinute := getEnvInt("RATE_LIMIT_PER_MINUTE", 100)
	shutdownTimeout := getEnvDuration("SHUTDOWN_TIMEOUT", 30*time.Second)

	app, err := mono.NewMonoApplication(
		mono.WithLogLevel(mono.LogLevelInfo),
		mono.WithLogFormat(mono.LogFormatText),
		mono.WithShutdownTimeout(shutdownTimeout),
	)
	if err != nil {
		log.Fatalf("Failed to create application: %v", err)
	}

	logger := app.Logger()

	todoModule := todo.NewModule(todo.Config{
		DBPath: dbPath,
		Debug:  dbDebug,
	}, logger)
	apiModule := api.NewModule(api.Config{
		Port:           httpPort,
		AllowedOrigins: corsOrigins,
	}, logger)

	if err := app.Register(todoModule); err != nil {
		log.Fatalf("Failed to register todo module: %v", err)
	}

	if redisAddr != "" {
		rateLimitModule := ratelimit.NewModule(redisAddr, domainratelimit.PerMinute(ratePerMinute), logger)
		if err := app.Register(rateLimitModule); err != nil {
			log.Fatalf("Failed to register rate limiter module: %v", err)
		}
		apiModule.SetRateLimitModule(rateLimitModule)
	}

	if err := app.Register(apiModule); err != nil {
		log.Fatalf("Failed to register api module: %v", err)
	}

	if err := app.Start(context.Background()); err != nil {
		log.Fatalf("Failed to start application: %v", err)
	}

	printStartupInfo(httpPort, dbPath, redisAddr)

	wait := gfshutdown.GracefulShutdown(
		context.Background(),
		shutdownTimeout,
		map[string]gfshutdown.Operation{
			"mono-app": func(ctx context.Context) error {
				logger.Info("Graceful shutdown initiated")
				return app.Stop(ctx)
			},
		},
	)

	exitCode := <-wait
	log.Printf("Application exited with code: %d", exitCode)
	os.Exit(exitCode)
}

func printStartupInfo(port int, dbPath, redisAddr string) {
	log.Println("Todo service started")
	log.Printf("  Client:   http://localhost:%d/", port)
	log.Printf("  API:      http://localhost:%d/todos", port)
	log.Printf("  Database: %s", dbPath)
	if redisAddr != "" {
		log.Printf("  Rate limiting via Redis at %s", redisAddr)
	} else {
		log.Println("  Rate limiting disabled (REDIS_ADDR not set)")
	}
	log.Println("Press Ctrl+C to shutdown")
}

// getEnv returns the environment variable value or a default.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		log.Fatalf("Invalid %s %q: %v", key, value, err)
	}
	return n
}

func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		log.Fatalf("Invalid %s %q: %v", key, value, err)
	}
	return b
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		log.Fatalf("Invalid %s %q: %v", key, value, err)
	}
	return d
}
