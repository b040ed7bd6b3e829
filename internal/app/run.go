package app

import (
	"context"
	"fmt"

	"github.com/OpenVGLab/OmniSVG-train/internal/ctxlog"
)

// Run executes the resolved mode. In single-file mode a processing failure
// is returned as an error; in batch mode failures are counted per file and
// Run itself succeeds.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	if a.config.Batch {
		stats, err := a.proc.Batch(ctx, a.config.InputDir, a.config.OutputDir)
		if err != nil {
			return fmt.Errorf("batch processing failed: %w", err)
		}
		a.logger.Info("Batch processing finished.",
			"succeeded", stats.Succeeded,
			"failed", stats.Failed,
			"total", stats.Total(),
		)
		return nil
	}

	if err := a.proc.Process(ctx, a.config.Input, a.config.Output); err != nil {
		return fmt.Errorf("failed to process %s: %w", a.config.Input, err)
	}
	a.logger.Info("Saved processed SVG.", "output", a.config.Output)
	return nil
}
