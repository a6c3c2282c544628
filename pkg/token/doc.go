// Package token provides helpers around opaque bearer tokens.
//
// The client never parses or generates bearer tokens; the backend issues
// them. This package only covers what the client needs around them:
//
//   - RandomBytes: CSPRNG bytes for local key material
//   - Fingerprint: a short, non-reversible identifier for display and logs
package token
