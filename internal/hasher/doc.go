// Package hasher provides concrete implementations of the ring.Hasher
// capability: a deterministic, side-effect-free, thread-safe
// Sum64([]byte) uint64. None of them are imported by package ring itself
// — callers choose one and pass it in through ring.Config.
package hasher
