// Package adaptive provides authenticated encryption with algorithm selection.
//
// The durable storage tier seals every value before it reaches disk:
//
//   - AES-256-GCM where the platform has hardware AES
//   - ChaCha20-Poly1305 elsewhere
//
// Ciphertexts carry their nonce as a prefix. Additional data binds a
// ciphertext to the storage key it was written under, so a value copied
// to another key fails to open.
package adaptive
