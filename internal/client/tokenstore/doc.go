// Package tokenstore keeps the single bearer token across two storage tiers.
//
// The durable tier outlives the process; the session tier does not. Get
// prefers the durable tier. Save writes one tier and leaves the other
// untouched; Remove clears both.
package tokenstore
