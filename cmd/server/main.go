// Command server serves the card extraction API.
package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"

	"github.com/phrazzld/scry-notes/internal/config"
	"github.com/phrazzld/scry-notes/internal/generation"
	"github.com/phrazzld/scry-notes/internal/parser"
	"github.com/phrazzld/scry-notes/internal/platform/logger"
)

// application holds the dependencies shared by the HTTP layer.
type application struct {
	config    *config.Config
	logger    *slog.Logger
	generator generation.Generator
	options   parser.Options
}

func main() {
	app, err := newApplication()
	if err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}

	if err := app.startHTTPServer(context.Background(), app.setupRouter()); err != nil {
		app.logger.Error("Server exited with error", "error", err)
		log.Fatal(err)
	}
}

// newApplication loads configuration and builds the application components.
func newApplication() (*application, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return newApplicationWithConfig(cfg)
}

func newApplicationWithConfig(cfg *config.Config) (*application, error) {
	l, err := logger.Setup(cfg.Server)
	if err != nil {
		return nil, fmt.Errorf("failed to set up logger: %w", err)
	}

	l.Info("Server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel,
		"log_format", cfg.Server.LogFormat)

	return &application{
		config:    cfg,
		logger:    l,
		generator: generation.NewMarkdownGenerator(l),
		options:   cfg.Parser.Options(),
	}, nil
}
