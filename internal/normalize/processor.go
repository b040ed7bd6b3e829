// Package normalize runs the per-file pipeline: picosvg preprocessing, then
// geometric normalization and optional path simplification, with a batch
// driver that isolates each file's failure.
package normalize

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/OpenVGLab/OmniSVG-train/internal/ctxlog"
	"github.com/OpenVGLab/OmniSVG-train/internal/picosvg"
	"github.com/OpenVGLab/OmniSVG-train/internal/svg"
)

// Options are the processing parameters shared by every file of a run.
type Options struct {
	Scale    float64
	Width    int
	Height   int
	MaxDist  int
	Simplify bool
}

// Processor applies the pipeline to individual files.
type Processor struct {
	pico *picosvg.Runner
	opts Options
}

// NewProcessor returns a Processor invoking pico for preprocessing.
func NewProcessor(pico *picosvg.Runner, opts Options) *Processor {
	return &Processor{pico: pico, opts: opts}
}

// Process converts one file. The preprocessed markup is written to
// outputPath first and transformed in place; any failure after that point
// removes the partial output, so a failed Process leaves no file behind.
func (p *Processor) Process(ctx context.Context, inputPath, outputPath string) error {
	logger := ctxlog.FromContext(ctx)

	if dir := filepath.Dir(outputPath); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}
	}

	data, err := p.pico.Run(ctx, inputPath)
	if err != nil {
		return fmt.Errorf("preprocess: %w", err)
	}

	if err := os.WriteFile(outputPath, data, 0o644); err != nil {
		return fmt.Errorf("write preprocessed output: %w", err)
	}
	logger.Debug("Preprocessed SVG saved.", "path", outputPath)

	if err := p.transform(outputPath); err != nil {
		if rmErr := os.Remove(outputPath); rmErr != nil && !os.IsNotExist(rmErr) {
			logger.Warn("Failed to remove partial output.", "path", outputPath, "error", rmErr)
		}
		return err
	}
	return nil
}

// transform loads, normalizes and re-saves the document at path.
func (p *Processor) transform(path string) error {
	doc, err := svg.Load(path)
	if err != nil {
		return fmt.Errorf("load: %w", err)
	}

	doc.Zoom(p.opts.Scale)
	if err := doc.Normalize(svg.NewBbox(float64(p.opts.Width), float64(p.opts.Height))); err != nil {
		return fmt.Errorf("normalize: %w", err)
	}

	if p.opts.Simplify {
		doc.SimplifyArcs()
		doc.SimplifyHeuristic()
		doc.Split(float64(p.opts.MaxDist))
	}

	if err := doc.Save(path); err != nil {
		return fmt.Errorf("save: %w", err)
	}
	return nil
}
