// Package buildinfo exposes version information for medqueue-cli.
//
// Version and BuildTime are injected via ldflags:
//
//	go build -ldflags "-X github.com/yndnr/medqueue-go/internal/infra/buildinfo.Version=v1.0.0"
//
// Commit and GoVersion fall back to what the Go toolchain embedded in the binary.
package buildinfo
