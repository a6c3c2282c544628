// Package output renders medqueue-cli results.
//
//   - formatter.go: Formatter interface and factory
//   - table.go: aligned tables for API objects and lists
//   - json.go: indented JSON
//   - yaml.go: YAML, keyed like the JSON form
//   - spinner.go: stderr animation while a request is in flight
package output
