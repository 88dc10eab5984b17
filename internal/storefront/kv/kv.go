// Package kv is the storefront's durable key-value layer: the local
// analogue of the browser's localStorage. Values are stored as JSON text,
// one document per key. Saves are write-through and best-effort; callers
// treat the in-memory state as authoritative and degrade to an empty
// default when a load fails.
package kv

// Store persists JSON-serializable values under string keys.
type Store interface {
	// Save serializes v and writes it under key, overwriting any prior
	// value.
	Save(key string, v any) error
	// Load reads the value under key into dest. A missing key or an
	// undecodable value returns an error; callers fall back to their
	// empty default and never propagate it.
	Load(key string, dest any) error
	// Delete removes key. Deleting an absent key is a no-op.
	Delete(key string) error
}
