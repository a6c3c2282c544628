// Package main provides the entry point for medqueue-cli.
//
// The CLI is a client for the MedQueue clinic API:
//
//   - Sign in, sign up, log out and reset passwords
//   - Patient registration, search and queue management
//   - Doctor assignment and the clinic dashboard
//   - Local preferences (theme) and configuration
//
// Usage:
//
//	medqueue-cli login --email nurse@clinic.example
//	medqueue-cli patient list -o json
//	medqueue-cli queue add P1A --emergency --priority 1
//	medqueue-cli shell
//
// The CLI supports both single-command mode and interactive shell mode.
package main
