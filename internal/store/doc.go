// Package store provides SQLite-backed durable storage for the device's
// save slot.
//
// The store is a small key/value blob table keyed by (namespace, key). It
// survives the device's sleep cycles but is not relied on across a full
// power loss: every read path has a cold-start fallback.
//
// # Database Configuration
//
//   - WAL mode: concurrent reads during writes
//   - synchronous=NORMAL: balance durability/performance
//   - busy_timeout=5000: wait for locks up to 5 seconds
//   - foreign_keys=ON: enforce referential integrity
//
// Snapshot serialization lives in marshal.go: the engine snapshot is stored
// as versioned JSON so that an incompatible layout is rejected before the
// engine ever sees it.
package store
