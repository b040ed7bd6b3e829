package normalize

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/OpenVGLab/OmniSVG-train/internal/ctxlog"
	"github.com/OpenVGLab/OmniSVG-train/internal/fsutil"
)

// Stats counts per-file outcomes of a batch run. Succeeded+Failed always
// equals the number of .svg files found under the input root.
type Stats struct {
	Succeeded int
	Failed    int
}

// Total returns the number of files the batch attempted.
func (s Stats) Total() int { return s.Succeeded + s.Failed }

// Batch processes every .svg file under inputDir, mirroring each file's
// relative path under outputDir. One file's failure is logged and counted
// but never stops the walk.
func (p *Processor) Batch(ctx context.Context, inputDir, outputDir string) (Stats, error) {
	logger := ctxlog.FromContext(ctx)

	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return Stats{}, fmt.Errorf("create output directory: %w", err)
	}

	files, err := fsutil.FindFilesByExtension(inputDir, ".svg")
	if err != nil {
		return Stats{}, fmt.Errorf("scan input directory: %w", err)
	}
	logger.Debug("Discovered SVG files.", "count", len(files), "dir", inputDir)

	var stats Stats
	for _, inputPath := range files {
		rel, err := filepath.Rel(inputDir, inputPath)
		if err != nil {
			logger.Error("Failed to process file.", "input", inputPath, "error", err)
			stats.Failed++
			continue
		}
		outputPath := filepath.Join(outputDir, rel)

		if err := p.Process(ctx, inputPath, outputPath); err != nil {
			logger.Error("Failed to process file.", "input", inputPath, "error", err)
			stats.Failed++
			continue
		}
		logger.Info("Processed file.", "input", inputPath, "output", outputPath)
		stats.Succeeded++
	}
	return stats, nil
}
