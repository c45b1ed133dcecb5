// Package config loads optional ceiling and verbosity overrides for the cnf
// engine from a YAML file, in the same "absence is not an error" style
// iguana loads its own settings.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/wedgepath/cnfengine/cnf"
)

// Config overrides the engine's compiled-in cnf.DefaultLimits, plus the
// logging verbosity cmd/cnfdemo runs with.
type Config struct {
	Limits  LimitsOverride `yaml:"limits"`
	Verbose bool           `yaml:"verbose"`
}

// LimitsOverride mirrors cnf.Limits with every field optional: a zero field
// means "keep the default for this ceiling."
type LimitsOverride struct {
	SimplifyMaxClauses           int `yaml:"simplify_max_clauses"`
	SimplifyUnknownOnlyThreshold int `yaml:"simplify_unknown_only_threshold"`
	SimplifyThreeWayMax          int `yaml:"simplify_three_way_max"`
	GroupMaxClauses              int `yaml:"group_max_clauses"`
	CombineMaxClauses            int `yaml:"combine_max_clauses"`
}

// Load reads <root>/cnfdemo.yaml. It returns a nil *Config, without error,
// if the file does not exist: absence means "use defaults", not a failure.
func Load(root string) (*Config, error) {
	path := filepath.Join(root, "cnfdemo.yaml")
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	var c Config
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("unmarshal %s: %w", path, err)
	}
	return &c, nil
}

// ResolveLimits returns cnf.DefaultLimits with every non-zero field of c's
// LimitsOverride applied on top. Safe to call on a nil *Config receiver.
func (c *Config) ResolveLimits() cnf.Limits {
	limits := cnf.DefaultLimits
	if c == nil {
		return limits
	}
	o := c.Limits
	if o.SimplifyMaxClauses != 0 {
		limits.SimplifyMaxClauses = o.SimplifyMaxClauses
	}
	if o.SimplifyUnknownOnlyThreshold != 0 {
		limits.SimplifyUnknownOnlyThreshold = o.SimplifyUnknownOnlyThreshold
	}
	if o.SimplifyThreeWayMax != 0 {
		limits.SimplifyThreeWayMax = o.SimplifyThreeWayMax
	}
	if o.GroupMaxClauses != 0 {
		limits.GroupMaxClauses = o.GroupMaxClauses
	}
	if o.CombineMaxClauses != 0 {
		limits.CombineMaxClauses = o.CombineMaxClauses
	}
	return limits
}

// IsVerbose reports c's verbosity flag. Safe to call on a nil *Config
// receiver.
func (c *Config) IsVerbose() bool {
	return c != nil && c.Verbose
}
