package app

import "errors"

// Mode selects what the App does with the loaded suite.
type Mode string

const (
	// ModeList prints every expanded environment identifier.
	ModeList Mode = "list"
	// ModeShow prints the resolved settings of one environment.
	ModeShow Mode = "show"
	// ModeOrder prints the identifiers in dependency order.
	ModeOrder Mode = "order"
	// ModeValidate loads, expands and resolves everything, reporting
	// configuration errors without producing output.
	ModeValidate Mode = "validate"
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	SuitePath string // hcl file or directory
	Mode      Mode
	EnvID     string // identifier for ModeShow

	// Passthrough additionally lists, in ModeShow, the invoking shell's
	// variables admitted by the environment's pass_env patterns.
	Passthrough bool

	Format    string // "text" or "json"
	LogFormat string
	LogLevel  string
}

// NewConfig validates a Config and applies defaults.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.SuitePath == "" {
		return nil, errors.New("SuitePath is a required configuration field and cannot be empty")
	}
	if cfg.Mode == "" {
		cfg.Mode = ModeList
	}
	if cfg.Mode == ModeShow && cfg.EnvID == "" {
		return nil, errors.New("show mode requires an environment identifier")
	}
	if cfg.Format == "" {
		cfg.Format = "text"
	}
	if cfg.Format != "text" && cfg.Format != "json" {
		return nil, errors.New("format must be 'text' or 'json'")
	}

	return &cfg, nil
}
