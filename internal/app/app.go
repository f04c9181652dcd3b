package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/vk/envgrid/internal/config"
	"github.com/vk/envgrid/internal/ctxlog"
	"github.com/vk/envgrid/internal/resolve"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW     io.Writer
	logW     io.Writer
	logger   *slog.Logger
	config   *Config
	suite    *config.Suite
	resolver *resolve.Resolver
}

// NewApp is the constructor for the main application. It returns a fully
// initialized App instance with its own isolated logger, the suite loaded
// and the resolver built. Results go to outW; logs go to logW so machine
// consumers of the output never see log lines.
func NewApp(outW, logW io.Writer, appConfig *Config, loader config.Loader) *App {
	logger := newLogger(appConfig.LogLevel, appConfig.LogFormat, logW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	// Load the suite into the format-agnostic model first.
	suite, err := loader.Load(ctx, appConfig.SuitePath)
	if err != nil {
		// A failure to load the suite is a fatal startup error.
		panic(fmt.Errorf("failed to load suite: %w", err))
	}
	logger.Debug("Suite loaded.", "suite", suite.Name)

	if err := checkMinVersion(suite.MinVersion); err != nil {
		panic(err)
	}

	resolver, err := resolve.New(suite)
	if err != nil {
		// The axes or override patterns are inconsistent; nothing can
		// be expanded or resolved from this suite.
		panic(fmt.Errorf("invalid suite: %w", err))
	}
	logger.Debug("Matrix expanded.", "environments", len(resolver.IDs()))

	return &App{
		outW:     outW,
		logW:     logW,
		logger:   logger,
		config:   appConfig,
		suite:    suite,
		resolver: resolver,
	}
}

// Suite returns the loaded suite model. This is primarily for testing.
func (a *App) Suite() *config.Suite {
	return a.suite
}

// Resolver returns the application's resolver. This is primarily for testing.
func (a *App) Resolver() *resolve.Resolver {
	return a.resolver
}
