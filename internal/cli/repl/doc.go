// Package repl provides the interactive shell for medqueue-cli.
//
//   - repl.go: read-eval-print loop and line splitting
//   - completer.go: command-prefix suggestions ("pat?" lists matches)
//   - history.go: command history persisted to ~/.medqueue/history
package repl
