package config

import (
	"testing"

	"go.viam.com/test"

	"go.viam.com/mof/logging"
)

func TestValidate(t *testing.T) {
	valid := func() *Config {
		c := Default()
		c.Mesh = "mesh.json"
		c.Fields = "fields.json"
		return c
	}
	test.That(t, valid().Validate("config"), test.ShouldBeNil)

	for _, tc := range []struct {
		name   string
		modify func(c *Config)
		errStr string
	}{
		{"tolerance", func(c *Config) { c.Tolerance = -1 }, `"config.tolerance": must not be negative`},
		{"max iterations", func(c *Config) { c.MaxIterations = -1 }, `"config.max_iterations"`},
		{"min fraction", func(c *Config) { c.MinFraction = -0.1 }, `"config.min_fraction"`},
		{"parallelism", func(c *Config) { c.Parallelism = -2 }, `"config.parallelism"`},
		{"mesh", func(c *Config) { c.Mesh = "" }, `"mesh" is required`},
	} {
		t.Run(tc.name, func(t *testing.T) {
			c := valid()
			tc.modify(c)
			err := c.Validate("config")
			test.That(t, err, test.ShouldNotBeNil)
			test.That(t, err.Error(), test.ShouldContainSubstring, tc.errStr)
		})
	}
}

func TestEnsureKeepsZeroMinFraction(t *testing.T) {
	c := &Config{Mesh: "m", Fields: "f"}
	test.That(t, c.Ensure(), test.ShouldBeNil)
	test.That(t, c.MinFraction, test.ShouldEqual, 0.)
	test.That(t, c.Tolerance, test.ShouldEqual, DefaultTolerance)
	test.That(t, c.Parallelism, test.ShouldBeGreaterThan, 0)
}

func TestTuned(t *testing.T) {
	c := &Config{}
	tuned, err := c.Tuned()
	test.That(t, err, test.ShouldBeNil)
	test.That(t, tuned.Tolerance, test.ShouldEqual, DefaultTolerance)
	test.That(t, tuned.MaxIterations, test.ShouldEqual, DefaultMaxIterations)
	test.That(t, tuned.Parallelism, test.ShouldBeGreaterThan, 0)
	// The receiver is left alone.
	test.That(t, c.MaxIterations, test.ShouldEqual, 0)

	_, err = (&Config{MaxIterations: -3}).Tuned()
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, `"config.max_iterations"`)
}

func TestInitLoggingSettings(t *testing.T) {
	logger := logging.NewTestLogger(t)
	cfg := &Config{LogLevel: logging.WARN}

	InitLoggingSettings(logger, cfg, false)
	test.That(t, logger.GetLevel(), test.ShouldEqual, logging.WARN)

	InitLoggingSettings(logger, cfg, true)
	test.That(t, logger.GetLevel(), test.ShouldEqual, logging.DEBUG)

	InitLoggingSettings(logger, nil, false)
	test.That(t, logger.GetLevel(), test.ShouldEqual, logging.INFO)
}
