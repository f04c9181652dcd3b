package app

import (
	"context"
	"fmt"
	"os"

	"github.com/vk/envgrid/internal/ctxlog"
	"github.com/vk/envgrid/internal/resolve"
)

// Run executes the mode selected in the configuration and writes the
// result to the output writer.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.", "mode", a.config.Mode)

	var err error
	switch a.config.Mode {
	case ModeList:
		err = a.runList()
	case ModeShow:
		err = a.runShow()
	case ModeOrder:
		err = a.runOrder()
	case ModeValidate:
		err = a.runValidate(ctx)
	default:
		err = fmt.Errorf("unknown mode %q", a.config.Mode)
	}

	a.logger.Debug("App.Run method finished.", "error", err)
	return err
}

func (a *App) runList() error {
	if a.config.Format == "json" {
		return writeJSON(a.outW, a.resolver.IDs())
	}
	return writeLines(a.outW, a.resolver.IDs())
}

// showDocument is the ModeShow output: the resolved environment, plus
// the shell variables its pass_env patterns admit when requested.
type showDocument struct {
	*resolve.Environment
	Passthrough []string `json:"passthrough,omitempty"`
}

func (a *App) runShow() error {
	env, err := a.resolver.Resolve(a.config.EnvID)
	if err != nil {
		return err
	}

	doc := showDocument{Environment: env}
	if a.config.Passthrough {
		doc.Passthrough = resolve.PassthroughEnv(env, os.Environ())
	}

	if a.config.Format == "json" {
		return writeJSON(a.outW, doc)
	}
	if err := writeEnvironment(a.outW, env); err != nil {
		return err
	}
	writeList(a.outW, "passthrough", doc.Passthrough)
	return nil
}

func (a *App) runOrder() error {
	order, err := a.resolver.RunOrder()
	if err != nil {
		return err
	}
	if a.config.Format == "json" {
		return writeJSON(a.outW, order)
	}
	return writeLines(a.outW, order)
}

// runValidate resolves every environment and checks the run order, so
// any configuration error in the suite surfaces here. On success it
// reports the matrix size.
func (a *App) runValidate(ctx context.Context) error {
	logger := ctxlog.FromContext(ctx)

	envs, err := a.resolver.ResolveAll()
	if err != nil {
		return err
	}
	if _, err := a.resolver.RunOrder(); err != nil {
		return err
	}

	logger.Info("Suite is valid.", "suite", a.suite.Name, "environments", len(envs))
	fmt.Fprintf(a.outW, "ok: %d environments\n", len(envs))
	return nil
}
