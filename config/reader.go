package config

import (
	"bytes"
	"encoding/json"
	"io"

	"github.com/a8m/envsubst"
	"github.com/pkg/errors"

	"go.viam.com/mof/logging"
)

// Read reads a config from the given file, substituting environment variables first.
func Read(filePath string, logger logging.Logger) (*Config, error) {
	buf, err := envsubst.ReadFile(filePath)
	if err != nil {
		return nil, err
	}

	return FromReader(filePath, bytes.NewReader(buf), logger)
}

// FromReader reads a config from the given reader and specifies
// where, if applicable, the file the reader originated from.
func FromReader(originalPath string, r io.Reader, logger logging.Logger) (*Config, error) {
	// Decode over the defaults so omitted fields keep them.
	cfg := Default()
	cfg.ConfigFilePath = originalPath
	if err := json.NewDecoder(r).Decode(cfg); err != nil {
		return nil, errors.Wrapf(err, "failed to decode Config from json")
	}
	if err := cfg.Ensure(); err != nil {
		return nil, errors.Wrapf(err, "failed to process Config")
	}
	cfg.resolvePaths()

	logger.Debugw("config read",
		"path", originalPath,
		"mesh", cfg.Mesh,
		"fields", cfg.Fields,
		"tolerance", cfg.Tolerance,
		"max_iterations", cfg.MaxIterations,
		"min_fraction", cfg.MinFraction,
		"parallelism", cfg.Parallelism,
	)
	return cfg, nil
}
