package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/yndnr/medqueue-go/internal/core/domain"
)

// CLIConfig is the configuration for medqueue-cli.
type CLIConfig struct {
	Server  ServerConfig  `koanf:"server" yaml:"server" json:"server"`
	Storage StorageConfig `koanf:"storage" yaml:"storage" json:"storage"`
	Session SessionConfig `koanf:"session" yaml:"session" json:"session"`
	Log     LogConfig     `koanf:"log" yaml:"log" json:"log"`

	// Output is the default output format: table, json, yaml.
	Output string `koanf:"output" yaml:"output" json:"output"`
}

// ServerConfig describes how to reach the clinic API.
type ServerConfig struct {
	BaseURL string `koanf:"base_url" yaml:"base_url" json:"base_url"`
	// Timeout bounds each request; 0 leaves it to the transport.
	Timeout time.Duration `koanf:"timeout" yaml:"timeout" json:"timeout"`
	// CAFile is an extra PEM bundle to trust for HTTPS.
	CAFile string `koanf:"ca_file" yaml:"ca_file" json:"ca_file"`
	// RateLimit caps requests per second; 0 disables the limit.
	RateLimit float64 `koanf:"rate_limit" yaml:"rate_limit" json:"rate_limit"`
	RateBurst int     `koanf:"rate_burst" yaml:"rate_burst" json:"rate_burst"`
}

// StorageConfig locates the durable client state.
type StorageConfig struct {
	Dir string `koanf:"dir" yaml:"dir" json:"dir"`
	// Encrypt seals durable values with a key kept next to the store.
	Encrypt bool `koanf:"encrypt" yaml:"encrypt" json:"encrypt"`
}

// SessionConfig controls token persistence.
type SessionConfig struct {
	// Remember saves login tokens to the durable tier instead of the
	// process-scoped one.
	Remember bool `koanf:"remember" yaml:"remember" json:"remember"`
}

// LogConfig controls diagnostic logging on stderr.
type LogConfig struct {
	Level  string `koanf:"level" yaml:"level" json:"level"`
	Format string `koanf:"format" yaml:"format" json:"format"`
}

// Default returns the default CLI configuration.
func Default() *CLIConfig {
	return &CLIConfig{
		Server: ServerConfig{
			BaseURL:   "http://localhost:5000/api",
			RateBurst: 1,
		},
		Storage: StorageConfig{
			Dir:     "~/.medqueue/state",
			Encrypt: true,
		},
		Session: SessionConfig{Remember: true},
		Log: LogConfig{
			Level:  "warn",
			Format: "text",
		},
		Output: "table",
	}
}

// defaultsMap is Default in koanf's nested-map form.
func defaultsMap() map[string]any {
	d := Default()
	return map[string]any{
		"server": map[string]any{
			"base_url":   d.Server.BaseURL,
			"timeout":    d.Server.Timeout.String(),
			"ca_file":    d.Server.CAFile,
			"rate_limit": d.Server.RateLimit,
			"rate_burst": d.Server.RateBurst,
		},
		"storage": map[string]any{
			"dir":     d.Storage.Dir,
			"encrypt": d.Storage.Encrypt,
		},
		"session": map[string]any{
			"remember": d.Session.Remember,
		},
		"log": map[string]any{
			"level":  d.Log.Level,
			"format": d.Log.Format,
		},
		"output": d.Output,
	}
}

var (
	validLevels  = []string{"debug", "info", "warn", "error"}
	validFormats = []string{"text", "json"}
	validOutputs = []string{"table", "json", "yaml"}
)

// Validate checks the configuration for values the CLI cannot use.
func (c *CLIConfig) Validate() error {
	var problems []string

	if c.Server.BaseURL == "" {
		problems = append(problems, "server.base_url is required")
	} else if u, err := url.Parse(c.Server.BaseURL); err != nil {
		problems = append(problems, fmt.Sprintf("server.base_url: %v", err))
	} else if u.Scheme != "" && u.Scheme != "http" && u.Scheme != "https" {
		problems = append(problems, fmt.Sprintf("server.base_url: unsupported scheme %q", u.Scheme))
	}
	if c.Server.Timeout < 0 {
		problems = append(problems, "server.timeout must not be negative")
	}
	if c.Server.RateLimit < 0 {
		problems = append(problems, "server.rate_limit must not be negative")
	}
	if c.Server.RateBurst < 0 {
		problems = append(problems, "server.rate_burst must not be negative")
	}
	if c.Storage.Dir == "" {
		problems = append(problems, "storage.dir is required")
	}
	if !oneOf(c.Log.Level, validLevels) {
		problems = append(problems, fmt.Sprintf("log.level %q: want one of %s", c.Log.Level, strings.Join(validLevels, ", ")))
	}
	if !oneOf(c.Log.Format, validFormats) {
		problems = append(problems, fmt.Sprintf("log.format %q: want one of %s", c.Log.Format, strings.Join(validFormats, ", ")))
	}
	if !oneOf(c.Output, validOutputs) {
		problems = append(problems, fmt.Sprintf("output %q: want one of %s", c.Output, strings.Join(validOutputs, ", ")))
	}

	if len(problems) > 0 {
		return domain.ErrConfigInvalid.WithDetails(strings.Join(problems, "; "))
	}
	return nil
}

func oneOf(v string, allowed []string) bool {
	for _, a := range allowed {
		if strings.EqualFold(v, a) {
			return true
		}
	}
	return false
}
