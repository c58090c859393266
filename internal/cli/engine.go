package cli

import (
	"io"
	"log/slog"

	"github.com/n-tennyson/physics-simulator/internal/catalog"
	"github.com/n-tennyson/physics-simulator/internal/engine"
)

// setupLogging installs the default logger. Debug under --verbose, Info otherwise.
func setupLogging(verbose bool, w io.Writer) {
	logLevel := slog.LevelInfo
	if verbose {
		logLevel = slog.LevelDebug
	}
	handler := slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: logLevel,
	})
	slog.SetDefault(slog.New(handler))
}

// loadTable compiles the catalog named by --rules, or the built-in one.
func loadTable(opts *RootOptions) (*engine.Table, error) {
	if opts.Rules == "" {
		table, err := catalog.Default()
		if err != nil {
			return nil, WrapExitError(ExitCommandError, "failed to compile built-in catalog", err)
		}
		return table, nil
	}

	table, err := catalog.Load(opts.Rules)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "failed to load rule catalog", err)
	}
	slog.Debug("rule catalog loaded", "path", opts.Rules, "rules", table.Len())
	return table, nil
}

// loadEngine builds an engine over loadTable's result.
func loadEngine(opts *RootOptions) (*engine.Engine, error) {
	table, err := loadTable(opts)
	if err != nil {
		return nil, err
	}
	return engine.New(table), nil
}
