// Package cmap provides a concurrent-safe sharded map.
//
// It backs the session-scoped storage tier, which may be read by a
// resource call while a login response is writing to it.
//
// Usage:
//
//	m := cmap.New[string, []byte]()
//	m.Set("token", []byte("..."))
//	val, ok := m.Get("token")
//
// Read operations (Get, Has, Count) take a shard read lock; writes take
// the shard write lock.
package cmap
