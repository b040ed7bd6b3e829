package app

import (
	"io"
	"log/slog"

	"github.com/OpenVGLab/OmniSVG-train/internal/normalize"
	"github.com/OpenVGLab/OmniSVG-train/internal/picosvg"
)

// App encapsulates the application's dependencies, configuration, and
// lifecycle.
type App struct {
	outW   io.Writer
	logger *slog.Logger
	config *Config
	proc   *normalize.Processor
}

// New is the constructor for the main application. It resolves the run
// configuration and returns a fully initialized App instance with its own
// isolated logger.
func New(outW io.Writer, opts *Options) (*App, error) {
	cfg, err := NewConfig(opts)
	if err != nil {
		return nil, err
	}

	logger := newLogger(cfg.LogLevel, cfg.LogFormat, outW)
	logger.Debug("Logger configured successfully.")
	logger.Debug("Configuration resolved.", "batch", cfg.Batch, "picosvg", cfg.PicosvgBinary)

	runner := picosvg.New(cfg.PicosvgBinary, cfg.PicosvgTimeout)
	proc := normalize.NewProcessor(runner, normalize.Options{
		Scale:    cfg.Scale,
		Width:    cfg.Width,
		Height:   cfg.Height,
		MaxDist:  cfg.MaxDist,
		Simplify: cfg.Simplify,
	})

	return &App{
		outW:   outW,
		logger: logger,
		config: cfg,
		proc:   proc,
	}, nil
}

// Config returns the resolved configuration. This is primarily for testing.
func (a *App) Config() *Config {
	return a.config
}
