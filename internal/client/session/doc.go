// Package session performs the network operations that create, check and
// destroy a login session.
//
// Every fallible operation returns its payload with a nil error, or a
// *domain.AuthError whose Kind tells network failures, server rejections
// and unusable answers apart. The two read-only checks, CurrentUser and
// CheckAdminAccess, fold every failure into a negative result instead.
//
// The Client also builds the headers that the resource client attaches to
// authenticated requests.
package session
