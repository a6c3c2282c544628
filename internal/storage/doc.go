// Package storage provides the key-value tiers behind the token store.
//
//   - BadgerEngine: durable tier, survives process restarts (Badger v3)
//   - MemoryKV: session-scoped tier, lives as long as the process
//   - LoadOrCreateKey: at-rest key for sealing durable values
//
// Both tiers implement KV. Keys are short fixed names ("token", "theme").
package storage
