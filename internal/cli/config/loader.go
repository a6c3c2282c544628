package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/yndnr/medqueue-go/internal/core/domain"
	"github.com/yndnr/medqueue-go/internal/infra/confloader"
)

// EnvPrefix prefixes every configuration environment variable.
const EnvPrefix = "MEDQUEUE_"

// DefaultDir returns ~/.medqueue.
func DefaultDir() string {
	homeDir, _ := os.UserHomeDir()
	return filepath.Join(homeDir, ".medqueue")
}

// DefaultConfigPath returns the default CLI config file path.
func DefaultConfigPath() string {
	return filepath.Join(DefaultDir(), "cli.yaml")
}

// Load builds the configuration from defaults, the file at path,
// MEDQUEUE_* variables and flag overrides (dotted keys), in rising
// priority. An empty path means the default file, which may be absent;
// an explicit path must exist.
func Load(path string, overrides map[string]any) (*CLIConfig, error) {
	fileOpt := confloader.WithConfigFile(path)
	if path == "" {
		fileOpt = confloader.WithOptionalConfigFile(DefaultConfigPath())
	}

	loader := confloader.NewLoader(
		confloader.WithEnvPrefix(EnvPrefix),
		confloader.WithDefaults(defaultsMap()),
		fileOpt,
	)

	cfg := &CLIConfig{}
	if err := loader.Load(cfg); err != nil {
		return nil, domain.ErrConfigLoad.WithCause(err)
	}

	if len(overrides) > 0 {
		if err := loader.LoadMap(overrides); err != nil {
			return nil, domain.ErrConfigLoad.WithCause(err)
		}
		if err := loader.Unmarshal(cfg); err != nil {
			return nil, domain.ErrConfigLoad.WithCause(err)
		}
	}

	cfg.Storage.Dir = ExpandHome(cfg.Storage.Dir)
	return cfg, nil
}

// Save writes cfg as YAML to path (mode 0600), creating the directory.
// An empty path means the default file.
func Save(cfg *CLIConfig, path string) error {
	if path == "" {
		path = DefaultConfigPath()
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	data, err := Marshal(cfg)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Marshal renders cfg as YAML.
func Marshal(cfg *CLIConfig) ([]byte, error) {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("marshal config: %w", err)
	}
	return data, nil
}

// ExpandHome replaces a leading "~" with the user's home directory.
func ExpandHome(p string) string {
	if p != "~" && !strings.HasPrefix(p, "~/") {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return p
	}
	return filepath.Join(home, strings.TrimPrefix(p, "~"))
}
