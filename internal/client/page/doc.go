// Package page builds the per-process client context.
//
// A Context owns the two token tiers, the API transport and every client
// component built on them. Components receive their collaborators from
// the Context; none of them look anything up in package-level state.
package page
