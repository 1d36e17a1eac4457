package main

import (
	"context"
	"errors"
	"time"

	"github.com/SPRIME01/structlog"
)

func main() {
	cfg := structlog.LoadConfig()
	logger := structlog.New(cfg)
	defer logger.Close()

	logger.Info("Service starting", "component", "example", "pid_check", true)
	logger.Debug("Debug detail", "cache_size", 128)

	reqLogger := logger.WithRequest(structlog.NewRequestID(), "")
	reqLogger.LogRequest("GET", "/api/items", "userAgent", "curl/8.0")
	reqLogger.LogResponse("GET", "/api/items", 200, 42)

	traced := logger.WithTrace("4bf92f3577b34da6a3ce929d0e0e4736", "00f067aa0ba902b7")
	traced.Warn("Upstream latency above threshold", "duration_ms", 850)

	logger.LogError(errors.New("connection refused"), "component", "db")

	// Drain pending collector deliveries before exit.
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	logger.Flush(ctx)

	logger.Info("Last message before exit")
}
