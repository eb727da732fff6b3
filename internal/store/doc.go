// Package store holds the in-memory paste state for bin-server. It provides
// a thread-safe insertion-ordered store with per-device retention: each
// device keeps its most recent pastes up to a fixed limit, and the oldest
// are rotated out when that device inserts again. Lookups are ownership
// checked — a paste is only visible to the device that stored it, and a
// wrong-device lookup is indistinguishable from a miss.
package store
