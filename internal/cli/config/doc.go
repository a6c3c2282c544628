// Package config provides medqueue-cli configuration.
//
//   - spec.go: CLIConfig struct and validation
//   - loader.go: loading (~/.medqueue/cli.yaml + MEDQUEUE_* + flags) and saving
package config
