// Package session provides session management for Wild Wild Trader.
//
// The session package implements:
//   - Thread-safe session storage and retrieval
//   - Session ID generation and validation
//   - File and SQLite persistence
//   - Session cleanup and expiration
//
// Core Types:
//
// Manager is the main session manager that handles all session operations.
// Session is one running game: the world built from a map config, the turn
// counter and metadata like creation and last access time.
//
// Session Identifiers:
//
// Generated IDs are the first eight hex digits of a random UUID. Caller
// supplied IDs may use letters, digits, '-' and '_'. Lookups ignore case.
//
// Persistence:
//
// Sessions are persisted as text map rows, the live entities with their ids
// and the world's next id, plus metadata (PersistedSessionData). Entity ids
// are the same after a reload. FilePersistence writes one JSON file per
// session; SQLitePersistence keeps one row per session in a database migrated
// from embedded SQL files.
//
// Usage:
//
//	store, err := session.NewFilePersistence("sessions")
//	manager := session.NewManagerWithPersistence(store)
//
//	sess, err := manager.Create("", "duel", mapConfig)
//	sess, err = manager.Get(sess.ID)
package session
