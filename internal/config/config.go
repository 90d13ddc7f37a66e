// Package config loads codecheck settings from defaults, an optional
// .codecheck.yaml file, CODECHECK_* environment variables and command
// flags, in increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"runtime"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/unbound-force/codecheck/internal/check"
	"github.com/unbound-force/codecheck/internal/discover"
	"github.com/unbound-force/codecheck/internal/metrics"
)

// EnvPrefix is the prefix of environment variable overrides, e.g.
// CODECHECK_THRESHOLDS_MAX_COMPLEXITY.
const EnvPrefix = "CODECHECK"

// FileName is the config file searched for in the working directory
// when no explicit path is given. Both .yaml and .yml are accepted.
const FileName = ".codecheck"

// ScanConfig controls directory mode.
type ScanConfig struct {
	// Include lists doublestar patterns a file must match, relative
	// to the scanned root.
	Include []string `mapstructure:"include"`

	// Exclude lists doublestar patterns that remove files or whole
	// directories from the scan.
	Exclude []string `mapstructure:"exclude"`

	// Workers bounds the number of files analyzed concurrently.
	Workers int `mapstructure:"workers"`

	// Top is how many ranked files the directory summary lists.
	Top int `mapstructure:"top"`

	// SkipHidden skips dot-directories and dot-files.
	SkipHidden bool `mapstructure:"skip_hidden"`
}

// Config is the full codecheck configuration.
type Config struct {
	Thresholds     check.Thresholds `mapstructure:"thresholds"`
	DangerousCalls []string         `mapstructure:"dangerous_calls"`
	ParseTimeout   time.Duration    `mapstructure:"parse_timeout"`
	Scan           ScanConfig       `mapstructure:"scan"`

	// File is the config file that was read, or empty.
	File string `mapstructure:"-"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Thresholds:     check.DefaultThresholds(),
		DangerousCalls: append([]string(nil), metrics.DefaultDangerousCalls...),
		ParseTimeout:   5 * time.Second,
		Scan: ScanConfig{
			Include:    []string{"**/*.py"},
			Exclude:    []string{},
			Workers:    runtime.NumCPU(),
			Top:        10,
			SkipHidden: true,
		},
	}
}

// flagKeys maps command flag names to config keys. Flags that are
// absent from the FlagSet are ignored.
var flagKeys = map[string]string{
	"max-function-length": "thresholds.max_function_length",
	"max-complexity":      "thresholds.max_complexity",
	"max-parameters":      "thresholds.max_parameters",
	"max-line-length":     "thresholds.max_line_length",
	"exclude":             "scan.exclude",
	"workers":             "scan.workers",
	"top":                 "scan.top",
	"parse-timeout":       "parse_timeout",
}

// Load builds the configuration. path names an explicit config file;
// when empty, .codecheck.yaml or .codecheck.yml in the working
// directory is used if present. flags may be nil.
func Load(path string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	setDefaults(v, Default())

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(FileName)
		v.AddConfigPath(".")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if flags != nil {
		for name, key := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("binding flag --%s: %w", name, err)
				}
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decoding configuration: %w", err)
	}
	cfg.File = v.ConfigFileUsed()

	if err := cfg.Validate(); err != nil {
		if cfg.File != "" {
			return nil, fmt.Errorf("invalid config file %s: %w", cfg.File, err)
		}
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper, d *Config) {
	v.SetDefault("thresholds.max_function_length", d.Thresholds.MaxFunctionLength)
	v.SetDefault("thresholds.max_complexity", d.Thresholds.MaxComplexity)
	v.SetDefault("thresholds.max_parameters", d.Thresholds.MaxParameters)
	v.SetDefault("thresholds.max_line_length", d.Thresholds.MaxLineLength)
	v.SetDefault("dangerous_calls", d.DangerousCalls)
	v.SetDefault("parse_timeout", d.ParseTimeout)
	v.SetDefault("scan.include", d.Scan.Include)
	v.SetDefault("scan.exclude", d.Scan.Exclude)
	v.SetDefault("scan.workers", d.Scan.Workers)
	v.SetDefault("scan.top", d.Scan.Top)
	v.SetDefault("scan.skip_hidden", d.Scan.SkipHidden)
}

// Validate rejects settings analysis cannot run with.
func (c *Config) Validate() error {
	limits := []struct {
		key   string
		value int
	}{
		{"thresholds.max_function_length", c.Thresholds.MaxFunctionLength},
		{"thresholds.max_complexity", c.Thresholds.MaxComplexity},
		{"thresholds.max_parameters", c.Thresholds.MaxParameters},
		{"thresholds.max_line_length", c.Thresholds.MaxLineLength},
		{"scan.workers", c.Scan.Workers},
		{"scan.top", c.Scan.Top},
	}
	for _, l := range limits {
		if l.value < 1 {
			return fmt.Errorf("%s must be at least 1, got %d", l.key, l.value)
		}
	}
	if c.ParseTimeout < 0 {
		return fmt.Errorf("parse_timeout must not be negative, got %s", c.ParseTimeout)
	}
	if len(c.Scan.Include) == 0 {
		return fmt.Errorf("scan.include must list at least one pattern")
	}
	patterns := append(append([]string(nil), c.Scan.Include...), c.Scan.Exclude...)
	if bad := discover.ValidatePatterns(patterns); bad != "" {
		return fmt.Errorf("scan pattern %q is malformed", bad)
	}
	for _, name := range c.DangerousCalls {
		if strings.TrimSpace(name) == "" {
			return fmt.Errorf("dangerous_calls must not contain empty names")
		}
	}
	return nil
}

// AnalysisOptions returns the per-file analysis options. An empty
// dangerous_calls list disables the check instead of falling back to
// the defaults.
func (c *Config) AnalysisOptions() check.Options {
	return check.Options{
		Thresholds:     c.Thresholds,
		DangerousCalls: append(make([]string, 0, len(c.DangerousCalls)), c.DangerousCalls...),
		ParseTimeout:   c.ParseTimeout,
	}
}
