// Package confloader loads layered configuration with koanf.
//
// Priority (highest to lowest):
//
//  1. Flag overrides (LoadMap)
//  2. Environment variables (MEDQUEUE_SECTION_KEY)
//  3. Configuration file (YAML)
//  4. Defaults (WithDefaults)
//
// Watcher reports edits to the configuration file via fsnotify.
package confloader
