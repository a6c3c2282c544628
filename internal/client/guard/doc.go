// Package guard decides whether a page may render without a session.
//
// The guard is a convenience gate that keeps privileged views from
// rendering before a redirect. It is not a security boundary: the API
// authorizes every request on its own.
package guard
