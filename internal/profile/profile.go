// Package profile loads the optional HCL profile file that supplies default
// processing parameters and picosvg settings. Profile expressions may read
// the process environment through the `env` variable.
package profile

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
)

// Profile is the decoded profile file. Absent blocks and attributes stay
// nil, so only fields the user actually wrote participate in merging.
type Profile struct {
	Defaults *Defaults `hcl:"defaults,block"`
	Picosvg  *Picosvg  `hcl:"picosvg,block"`
}

// Defaults overrides the built-in processing parameters. Explicit CLI flags
// still win over these.
type Defaults struct {
	Scale    *float64 `hcl:"scale,optional"`
	Width    *int     `hcl:"width,optional"`
	Height   *int     `hcl:"height,optional"`
	MaxDist  *int     `hcl:"max_dist,optional"`
	Simplify *bool    `hcl:"simplify,optional"`
}

// Picosvg configures the external simplification tool.
type Picosvg struct {
	Binary  *string `hcl:"binary,optional"`
	Timeout *string `hcl:"timeout,optional"`
}

// Load parses and decodes the profile file at path.
func Load(path string) (*Profile, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse profile %s: %w", path, diags)
	}

	var p Profile
	diags = gohcl.DecodeBody(file.Body, evalContext(), &p)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode profile %s: %w", path, diags)
	}
	return &p, nil
}

// PicosvgBinary returns the configured executable path, or "" when unset.
func (p *Profile) PicosvgBinary() string {
	if p.Picosvg == nil || p.Picosvg.Binary == nil {
		return ""
	}
	return *p.Picosvg.Binary
}

// PicosvgTimeout parses the configured subprocess timeout. Absent means no
// bound.
func (p *Profile) PicosvgTimeout() (time.Duration, error) {
	if p.Picosvg == nil || p.Picosvg.Timeout == nil {
		return 0, nil
	}
	d, err := time.ParseDuration(*p.Picosvg.Timeout)
	if err != nil {
		return 0, fmt.Errorf("invalid picosvg.timeout: %w", err)
	}
	if d < 0 {
		return 0, fmt.Errorf("invalid picosvg.timeout: must not be negative")
	}
	return d, nil
}

// evalContext exposes the process environment as the `env` object, so
// profiles can write e.g. `binary = env.PICOSVG_BIN`.
func evalContext() *hcl.EvalContext {
	env := make(map[string]cty.Value)
	for _, kv := range os.Environ() {
		if k, v, ok := strings.Cut(kv, "="); ok {
			env[k] = cty.StringVal(v)
		}
	}
	return &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"env": cty.ObjectVal(env),
		},
	}
}
