// Package config defines the run configuration of a reconstruction.
package config

import (
	"fmt"
	"path/filepath"

	"github.com/pkg/errors"

	"go.viam.com/mof/logging"
	"go.viam.com/mof/utils"
)

// Defaults for the tunables. Ensure replaces a zero Tolerance or MaxIterations with them. A zero
// MinFraction is a valid setting, so its default only applies when a config file omits it.
const (
	DefaultTolerance     = 1e-10
	DefaultMaxIterations = 200
	DefaultMinFraction   = 1e-6
)

// A Config describes one reconstruction run: which mesh and volume fraction fields to read, where
// to write the interface surface, and how hard to search for each cell's plane.
type Config struct {
	ConfigFilePath string `json:"-"`

	// Mesh is a mesh file, JSON or PLY. Relative paths are taken from the config file directory.
	Mesh string `json:"mesh"`
	// Fields holds the per-cell volume fractions and reference centroids.
	Fields string `json:"fields"`
	// Output is the VTK file receiving the interface surface. Nothing is written when empty.
	Output string `json:"output,omitempty"`

	// Tolerance is the absolute volume fraction error accepted when placing a plane.
	Tolerance float64 `json:"tolerance,omitempty"`
	// MaxIterations bounds both the plane placement and the orientation search per cell.
	MaxIterations int `json:"max_iterations,omitempty"`
	// MinFraction excludes nearly empty and nearly full cells from reconstruction. Zero keeps every
	// cell with a volume fraction strictly between 0 and 1.
	MinFraction float64 `json:"min_fraction,omitempty"`
	// Parallelism is the number of cells reconstructed concurrently.
	Parallelism int `json:"parallelism,omitempty"`

	LogLevel logging.Level `json:"log_level,omitempty"`
}

// Default returns a config with every tunable set to its default.
func Default() *Config {
	return &Config{
		Tolerance:     DefaultTolerance,
		MaxIterations: DefaultMaxIterations,
		MinFraction:   DefaultMinFraction,
		Parallelism:   utils.ParallelFactor,
		LogLevel:      logging.INFO,
	}
}

// Validate ensures all parts of the config are valid.
func (c *Config) Validate(path string) error {
	if c.Mesh == "" {
		return utils.NewConfigValidationFieldRequiredError(path, "mesh")
	}
	if c.Fields == "" {
		return utils.NewConfigValidationFieldRequiredError(path, "fields")
	}
	return c.validateTunables(path)
}

func (c *Config) validateTunables(path string) error {
	if c.Tolerance < 0 {
		return utils.NewConfigValidationError(fmt.Sprintf("%s.%s", path, "tolerance"),
			errors.Errorf("must not be negative, got %g", c.Tolerance))
	}
	if c.MaxIterations < 0 {
		return utils.NewConfigValidationError(fmt.Sprintf("%s.%s", path, "max_iterations"),
			errors.Errorf("must not be negative, got %d", c.MaxIterations))
	}
	if c.MinFraction < 0 || c.MinFraction >= 0.5 {
		return utils.NewConfigValidationError(fmt.Sprintf("%s.%s", path, "min_fraction"),
			errors.Errorf("must be in [0, 0.5), got %g", c.MinFraction))
	}
	if c.Parallelism < 0 {
		return utils.NewConfigValidationError(fmt.Sprintf("%s.%s", path, "parallelism"),
			errors.Errorf("must not be negative, got %d", c.Parallelism))
	}
	return nil
}

// Ensure validates the config and fills unset tunables with defaults.
func (c *Config) Ensure() error {
	if err := c.Validate("config"); err != nil {
		return err
	}
	c.fillDefaults()
	return nil
}

// Tuned returns a copy of the config with its tunables validated and zero ones defaulted. Unlike
// Ensure it does not require input files, so it suits configs built in code.
func (c *Config) Tuned() (*Config, error) {
	tuned := *c
	if err := tuned.validateTunables("config"); err != nil {
		return nil, err
	}
	tuned.fillDefaults()
	return &tuned, nil
}

// fillDefaults sets every zero tunable to its default. A zero MinFraction is a valid setting and
// is kept.
func (c *Config) fillDefaults() {
	if c.Tolerance == 0 {
		c.Tolerance = DefaultTolerance
	}
	if c.MaxIterations == 0 {
		c.MaxIterations = DefaultMaxIterations
	}
	if c.Parallelism == 0 {
		c.Parallelism = utils.ParallelFactor
	}
}

// resolvePaths rewrites relative file paths to be relative to the config file.
func (c *Config) resolvePaths() {
	if c.ConfigFilePath == "" {
		return
	}
	dir := filepath.Dir(c.ConfigFilePath)
	for _, p := range []*string{&c.Mesh, &c.Fields, &c.Output} {
		if *p != "" && !filepath.IsAbs(*p) {
			*p = filepath.Join(dir, *p)
		}
	}
}
