// Package domain defines the core domain types for medqueue.
//
// The client holds very little domain state of its own. This package contains:
//
//   - User: the opaque identity payload returned by the backend
//   - AuthError: the failure variant of every session operation
//   - Errors: coded error definitions shared by storage, config and CLI
//
// Nothing here performs IO.
package domain
