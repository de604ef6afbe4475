package ops

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/justingrant1/heritagebox-app-v1/internal/ops/api/http"
	"github.com/justingrant1/heritagebox-app-v1/internal/ops/app/core"
	"github.com/justingrant1/heritagebox-app-v1/internal/xpkg/config"
	"github.com/justingrant1/heritagebox-app-v1/internal/xpkg/logger"
)

type params struct {
	serverParams *core.ServerParams
	configPath   string
	cfg          *config.Config
}

// Execute starts the operations service and blocks until shutdown.
func Execute(ctx context.Context, mylog logger.Logger, args []string) error {
	newCtx, stop := signal.NotifyContext(ctx, syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	params, err := parseParams(args)
	if err != nil {
		mylog.Action("command_parse_failed").Error("Invalid command received", err)
		return err
	}
	if err = validateParams(params); err != nil {
		mylog.Action("command_validation_failed").Error("Invalid command received", err)
		return err
	}
	mylog.Action("command_validation_completed").Info("Successfully validated params")

	server := http.NewServer(newCtx, params.cfg, params.serverParams, mylog)

	g, gctx := errgroup.WithContext(newCtx)
	g.Go(func() error {
		return server.Run()
	})
	g.Go(func() error {
		<-gctx.Done()
		mylog.Action("shutdown_signal_received").Info("Shutdown signal received")
		return server.Stop(context.Background())
	})

	if err := g.Wait(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		mylog.Action("ops_service_failed").Error("Server failed unexpectedly", err)
		return err
	}
	mylog.Action("server_stopped").Info("Server exited normally")
	return nil
}

// parseParams parses params from the terminal.
func parseParams(args []string) (*params, error) {
	fs := flag.NewFlagSet("heritagebox", flag.ContinueOnError)
	showHelp := fs.Bool("help", false, "Show help")
	configPath := fs.String("config-path", "config.yaml", "path for config yaml")

	port := fs.Int("port", 8080, "Port to run the operations service")

	if err := fs.Parse(args); err != nil {
		return nil, core.ErrParseCmd
	}

	if *showHelp {
		fs.Usage()
		return nil, core.ErrHelp
	}

	return &params{
		serverParams: &core.ServerParams{
			Port: *port,
		},
		configPath: *configPath,
	}, nil
}

// validateParams validates params and loads the config, falling back to
// environment variables when no yaml file is present.
func validateParams(params *params) error {
	cfg, err := config.LoadConfig(params.configPath)
	if errors.Is(err, os.ErrNotExist) {
		cfg, err = config.LoadDotEnv()
	}
	if err != nil {
		return err
	}
	params.cfg = cfg

	if params.serverParams.Port <= 0 || params.serverParams.Port >= 65536 {
		return fmt.Errorf("port must be in [0: 65,535]: %d", params.serverParams.Port)
	}

	return nil
}
