// Package chat implements the conversation engine for the marketplace.
//
// A conversation is a deduplicated one-to-one channel between two users about
// a single offer. Identity is canonical: the participant pair is stored with
// the numerically smaller id first, so (a, b) and (b, a) always resolve to the
// same row. The database's UNIQUE index is the enforcement point for the
// at-most-one-conversation invariant; when two first-contact requests race,
// the losing insert is treated as a benign conflict and resolved by one retry
// lookup.
//
// The engine exposes four operations:
//
//   - GetOrCreateConversation: resolve or create the canonical conversation
//   - SendMessage: append a message, guarded by participation, touch updated_at
//   - ListMessages: all messages oldest first
//   - ListConversations: recency-ordered summaries with an 80-char preview
//
// All operations run synchronously within the calling request; the only
// contended resource is the conversation row itself.
//
// The clock is injected so tests control timestamp ordering deterministically.
package chat
