package cli

import (
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/OpenVGLab/OmniSVG-train/internal/app"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// Parse processes command-line arguments. It returns the raw Options, a
// boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*app.Options, bool, error) {
	flagSet := flag.NewFlagSet("svgprep", flag.ContinueOnError)
	flagSet.SetOutput(output)

	// Custom usage/help text function
	flagSet.Usage = func() {
		fmt.Fprint(output, `
svgprep - Batch SVG normalization for vector graphics datasets.

Usage:
  svgprep --input file.svg [--output out.svg] [options]
  svgprep --input_dir ./svgs [--output_dir ./out] [options]

Options:
`)
		flagSet.PrintDefaults()
	}

	opts := &app.Options{}
	flagSet.StringVar(&opts.Input, "input", "", "Single SVG file to process.")
	flagSet.StringVar(&opts.Input, "i", "", "Single SVG file to process (shorthand).")
	flagSet.StringVar(&opts.Output, "output", "", "Output path for single file processing.")
	flagSet.StringVar(&opts.Output, "o", "", "Output path for single file processing (shorthand).")
	flagSet.StringVar(&opts.InputDir, "input_dir", "", "Directory containing SVG files for batch processing.")
	flagSet.StringVar(&opts.OutputDir, "output_dir", "", "Output directory for batch processing.")
	flagSet.Float64Var(&opts.Scale, "scale", 1.0, "SVG zoom scale factor.")
	flagSet.IntVar(&opts.Width, "width", 200, "Output SVG width.")
	flagSet.IntVar(&opts.Height, "height", 200, "Output SVG height.")
	flagSet.IntVar(&opts.MaxDist, "max_dist", 5, "Maximum segment length before splitting.")
	flagSet.BoolVar(&opts.Simplify, "simplify", false, "Enable path simplification.")
	flagSet.StringVar(&opts.Profile, "profile", "", "Path to an HCL profile file with defaults.")
	flagSet.StringVar(&opts.LogFormat, "log-format", "text", "Log output format. Options: 'text' or 'json'.")
	flagSet.StringVar(&opts.LogLevel, "log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	// Record which flags were given so the profile cannot override them.
	flagSet.Visit(func(f *flag.Flag) {
		opts.MarkSet(canonicalFlag(f.Name))
	})

	singleMode := opts.Input != ""
	batchMode := opts.InputDir != ""
	switch {
	case !singleMode && !batchMode:
		return nil, false, &ExitError{Code: 2, Message: "specify --input for single file or --input_dir for batch processing"}
	case singleMode && batchMode:
		return nil, false, &ExitError{Code: 2, Message: "cannot use both --input and --input_dir simultaneously"}
	case opts.Output != "" && !singleMode:
		return nil, false, &ExitError{Code: 2, Message: "--output requires --input"}
	case opts.OutputDir != "" && !batchMode:
		return nil, false, &ExitError{Code: 2, Message: "--output_dir requires --input_dir"}
	}

	opts.LogFormat = strings.ToLower(opts.LogFormat)
	if opts.LogFormat != "text" && opts.LogFormat != "json" {
		return nil, false, &ExitError{Code: 2, Message: "invalid log-format: must be 'text' or 'json'"}
	}

	opts.LogLevel = strings.ToLower(opts.LogLevel)
	switch opts.LogLevel {
	case "debug", "info", "warn", "error":
		// valid
	default:
		return nil, false, &ExitError{Code: 2, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}

	return opts, false, nil
}

// canonicalFlag folds the shorthand spellings onto their long names.
func canonicalFlag(name string) string {
	switch name {
	case "i":
		return "input"
	case "o":
		return "output"
	}
	return name
}
