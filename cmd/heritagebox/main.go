package main

import (
	"context"
	"errors"
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"github.com/justingrant1/heritagebox-app-v1/internal/ops"
	"github.com/justingrant1/heritagebox-app-v1/internal/ops/app/core"
	"github.com/justingrant1/heritagebox-app-v1/internal/xpkg/logger"
)

func main() {
	// Secrets come from .env in development; absence is fine in production.
	_ = godotenv.Load()

	level := os.Getenv("LOG_LEVEL")
	if level == "" {
		level = "INFO"
	}
	mylogger, err := logger.New(level)
	if err != nil {
		log.Fatalf("log error: %v", err)
	}

	l := mylogger.With("service", "heritagebox-ops")
	l.Action("ops_service_started").Info("Successfully started")

	// Strip the program name; everything else belongs to the service flags.
	args := os.Args[1:]
	if len(args) > 0 && strings.HasPrefix(args[0], "--mode") {
		// Single-service deployment; the historical --mode flag is accepted
		// and ignored.
		args = args[1:]
	}

	if err := ops.Execute(context.Background(), l, args); err != nil {
		if errors.Is(err, core.ErrHelp) {
			return
		}
		l.Action("ops_service_failed").Error("Error in operations service", err)
		log.Fatalf("failed to execute operations service: %s", err)
	}
	l.Action("ops_service_completed").Info("Successfully completed")
}
