// Package connection is the HTTP transport for medqueue-cli.
//
// HTTPClient sends JSON requests to the clinic API and stamps each one
// with a request ID and the CLI user agent. Callers supply their own
// headers, so credentials are never held here.
package connection
