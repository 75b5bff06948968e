// Package config loads the optional drvreport.yaml file. Every field has a
// default, so running with no config file at all is the normal case.
package config

import (
	"fmt"
	"os"
	"time"

	shellwords "github.com/mattn/go-shellwords"
	"gopkg.in/yaml.v3"
)

// DefaultPath is probed when no --config flag is given; its absence is fine.
const DefaultPath = "drvreport.yaml"

type Config struct {
	// OutputPath is where the rendered report lands, relative to the
	// working directory unless absolute.
	OutputPath string `yaml:"output_path"`
	// QueryTimeout bounds each enumeration query. Generous on purpose: a
	// healthy system answers in seconds, a broken driver stack may not.
	QueryTimeout string `yaml:"query_timeout"`
	// PauseOnError keeps the console window readable when the tool was
	// launched by double-click. "0s" disables the pause.
	PauseOnError string `yaml:"pause_on_error"`
	// Command overrides, parsed shell-style. Mostly useful for tests and
	// for machines where driverquery lives outside PATH.
	VerboseCommand   string `yaml:"verbose_command"`
	SignatureCommand string `yaml:"signature_command"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		OutputPath:       "report.txt",
		QueryTimeout:     "120s",
		PauseOnError:     "10s",
		VerboseCommand:   "driverquery /v /fo list",
		SignatureCommand: "driverquery /si /fo csv",
	}
}

// Load reads and validates a yaml config file. Fields missing from the file
// keep their defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %q: %w", path, err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %q: %w", path, err)
	}
	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("config error in %q: %w", path, err)
	}
	return cfg, nil
}

func validate(cfg *Config) error {
	if cfg.OutputPath == "" {
		return fmt.Errorf("output_path must not be empty")
	}
	if _, err := time.ParseDuration(cfg.QueryTimeout); err != nil {
		return fmt.Errorf("invalid query_timeout %q: %w", cfg.QueryTimeout, err)
	}
	if _, err := time.ParseDuration(cfg.PauseOnError); err != nil {
		return fmt.Errorf("invalid pause_on_error %q: %w", cfg.PauseOnError, err)
	}
	for name, cmdline := range map[string]string{
		"verbose_command":   cfg.VerboseCommand,
		"signature_command": cfg.SignatureCommand,
	} {
		argv, err := shellwords.Parse(cmdline)
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", name, cmdline, err)
		}
		if len(argv) == 0 {
			return fmt.Errorf("%s must not be empty", name)
		}
	}
	return nil
}

// ParsedQueryTimeout returns the query timeout as a duration. validate already
// rejected unparseable values.
func (c *Config) ParsedQueryTimeout() time.Duration {
	d, err := time.ParseDuration(c.QueryTimeout)
	if err != nil {
		return 120 * time.Second
	}
	return d
}

// ParsedPause returns the post-error pause as a duration.
func (c *Config) ParsedPause() time.Duration {
	d, err := time.ParseDuration(c.PauseOnError)
	if err != nil {
		return 10 * time.Second
	}
	return d
}

// VerboseArgv returns the verbose enumeration command split into argv form.
func (c *Config) VerboseArgv() ([]string, error) {
	return shellwords.Parse(c.VerboseCommand)
}

// SignatureArgv returns the signature enumeration command split into argv form.
func (c *Config) SignatureArgv() ([]string, error) {
	return shellwords.Parse(c.SignatureCommand)
}
