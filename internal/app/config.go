package app

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/OpenVGLab/OmniSVG-train/internal/picosvg"
	"github.com/OpenVGLab/OmniSVG-train/internal/profile"
)

// ErrUsage marks configuration errors the user can fix on the command line.
// The entrypoint maps it to exit code 2.
var ErrUsage = errors.New("invalid arguments")

// Options carries the raw command-line selections before profile merging.
type Options struct {
	Input     string
	Output    string
	InputDir  string
	OutputDir string

	Scale    float64
	Width    int
	Height   int
	MaxDist  int
	Simplify bool

	Profile   string
	LogFormat string
	LogLevel  string

	set map[string]bool
}

// MarkSet records that the named flag was given explicitly, which protects
// it from being overridden by the profile.
func (o *Options) MarkSet(name string) {
	if o.set == nil {
		o.set = make(map[string]bool)
	}
	o.set[name] = true
}

func (o *Options) explicit(name string) bool { return o.set[name] }

// Config is the fully resolved run configuration: flags merged with the
// profile, defaults derived, and the picosvg executable located.
type Config struct {
	Batch     bool
	Input     string
	Output    string
	InputDir  string
	OutputDir string

	Scale    float64
	Width    int
	Height   int
	MaxDist  int
	Simplify bool

	PicosvgBinary  string
	PicosvgTimeout time.Duration

	LogFormat string
	LogLevel  string
}

// NewConfig resolves Options into a validated Config. Precedence is explicit
// flag, then profile value, then built-in default.
func NewConfig(opts *Options) (*Config, error) {
	cfg := &Config{
		Batch:     opts.InputDir != "",
		Input:     opts.Input,
		Output:    opts.Output,
		InputDir:  opts.InputDir,
		OutputDir: opts.OutputDir,
		Scale:     opts.Scale,
		Width:     opts.Width,
		Height:    opts.Height,
		MaxDist:   opts.MaxDist,
		Simplify:  opts.Simplify,
		LogFormat: opts.LogFormat,
		LogLevel:  opts.LogLevel,
	}

	var configuredBin string
	if opts.Profile != "" {
		prof, err := profile.Load(opts.Profile)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrUsage, err)
		}
		applyProfile(cfg, opts, prof)
		configuredBin = prof.PicosvgBinary()
		timeout, err := prof.PicosvgTimeout()
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrUsage, err)
		}
		cfg.PicosvgTimeout = timeout
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUsage, err)
	}

	// Derived output defaults, matching the documented naming scheme.
	if !cfg.Batch && cfg.Output == "" {
		ext := filepath.Ext(cfg.Input)
		cfg.Output = strings.TrimSuffix(cfg.Input, ext) + "_processed" + ext
	}
	if cfg.Batch && cfg.OutputDir == "" {
		cfg.OutputDir = filepath.Clean(cfg.InputDir) + "_processed"
	}

	// Executable discovery failures are startup errors, not per-file ones.
	bin, err := picosvg.Find(configuredBin)
	if err != nil {
		return nil, err
	}
	cfg.PicosvgBinary = bin

	return cfg, nil
}

// applyProfile merges profile defaults into cfg, skipping every field the
// user set explicitly on the command line.
func applyProfile(cfg *Config, opts *Options, prof *profile.Profile) {
	def := prof.Defaults
	if def == nil {
		return
	}
	if def.Scale != nil && !opts.explicit("scale") {
		cfg.Scale = *def.Scale
	}
	if def.Width != nil && !opts.explicit("width") {
		cfg.Width = *def.Width
	}
	if def.Height != nil && !opts.explicit("height") {
		cfg.Height = *def.Height
	}
	if def.MaxDist != nil && !opts.explicit("max_dist") {
		cfg.MaxDist = *def.MaxDist
	}
	if def.Simplify != nil && !opts.explicit("simplify") {
		cfg.Simplify = *def.Simplify
	}
}

func (c *Config) validate() error {
	if c.Scale <= 0 {
		return fmt.Errorf("scale must be greater than 0, got %g", c.Scale)
	}
	if c.Width < 1 {
		return fmt.Errorf("width must be at least 1, got %d", c.Width)
	}
	if c.Height < 1 {
		return fmt.Errorf("height must be at least 1, got %d", c.Height)
	}
	if c.MaxDist < 1 {
		return fmt.Errorf("max_dist must be at least 1, got %d", c.MaxDist)
	}
	return nil
}
