// Package store provides persistent storage for the marketplace chat backend
// using SQLite.
//
// # Architecture
//
// Two interfaces cover the storage surface:
//
//   - Store: conversations and messages
//   - UserStore: registered accounts
//
// SQLiteStore implements both in a single struct.
//
// # Data Models
//
//   - Conversation: deduplicated two-party channel scoped to one offer. The
//     participant pair is stored canonically (smaller id in ParticipantLow);
//     a UNIQUE index on (offer_id, participant_low, participant_high) makes
//     the database the enforcement point for the at-most-one-conversation
//     invariant. Concurrent creators lose with ErrDuplicateConversation and
//     are expected to re-read.
//   - Message: immutable, append-only, ordered by (created_at, id).
//   - User: account with bcrypt password hash, unique email.
//
// # SQLite Configuration
//
// The store uses SQLite with WAL mode for concurrent reads:
//
//	PRAGMA journal_mode=WAL;
//	PRAGMA foreign_keys=ON;
//
// # Error Handling
//
// Common errors:
//
//   - ErrNotFound: requested entity does not exist
//   - ErrDuplicateConversation: conversation exists for the (offer, pair) triple
//   - ErrDuplicateUser: email already registered
//
// All methods accept context.Context for cancellation support.
//
// # Testing
//
// Use NewMockStore() for unit tests; it enforces the same uniqueness
// invariants in memory. Use NewSQLiteStore in a t.TempDir() for integration
// tests with real SQLite.
package store
