// ABOUTME: SQLite implementation of the Store interface using modernc.org/sqlite
// ABOUTME: Provides conversation/message persistence with automatic schema creation

package store

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

// SQLiteStore implements the Store and UserStore interfaces using SQLite
type SQLiteStore struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewSQLiteStore creates a new SQLite store at the given path.
// The schema is automatically created if it doesn't exist.
// Parent directories are created if needed.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	logger := slog.Default().With("component", "store")

	// Ensure parent directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating database directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// Enable WAL mode for better concurrent performance
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling WAL mode: %w", err)
	}

	// Enable foreign keys
	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}

	s := &SQLiteStore{
		db:     db,
		logger: logger,
	}

	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	logger.Info("SQLite store initialized", "path", path)
	return s, nil
}

// createSchema creates the database tables if they don't exist
func (s *SQLiteStore) createSchema() error {
	schema := `
		CREATE TABLE IF NOT EXISTS users (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			email TEXT NOT NULL UNIQUE,
			username TEXT NOT NULL,
			password_hash TEXT NOT NULL,
			created_at TEXT NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_users_email ON users(email);

		CREATE TABLE IF NOT EXISTS conversations (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			offer_id INTEGER NOT NULL,
			participant_low INTEGER NOT NULL,
			participant_high INTEGER NOT NULL,
			created_at TEXT NOT NULL,
			updated_at TEXT NOT NULL,

			UNIQUE(offer_id, participant_low, participant_high)
		);

		CREATE INDEX IF NOT EXISTS idx_conversations_offer ON conversations(offer_id);
		CREATE INDEX IF NOT EXISTS idx_conversations_updated ON conversations(updated_at DESC);
		CREATE INDEX IF NOT EXISTS idx_conversations_low ON conversations(participant_low);
		CREATE INDEX IF NOT EXISTS idx_conversations_high ON conversations(participant_high);

		CREATE TABLE IF NOT EXISTS messages (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			conversation_id INTEGER NOT NULL,
			sender_id INTEGER NOT NULL,
			text TEXT NOT NULL,
			created_at TEXT NOT NULL,
			FOREIGN KEY (conversation_id) REFERENCES conversations(id)
		);

		CREATE INDEX IF NOT EXISTS idx_messages_conversation_created
			ON messages(conversation_id, created_at);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection
func (s *SQLiteStore) Close() error {
	s.logger.Info("closing SQLite store")
	return s.db.Close()
}

// isConstraintViolation checks if the error is a SQLite UNIQUE constraint violation
func isConstraintViolation(err error) bool {
	if err == nil {
		return false
	}
	errStr := err.Error()
	return strings.Contains(errStr, "UNIQUE constraint failed") ||
		strings.Contains(errStr, "constraint failed")
}

// CreateConversation inserts a new conversation and assigns its generated id.
// If a conversation already exists for the same (offer, participant pair) it
// returns ErrDuplicateConversation; the UNIQUE index is the invariant's real
// enforcement point, application lookups are only the fast path.
func (s *SQLiteStore) CreateConversation(ctx context.Context, conv *Conversation) error {
	query := `
		INSERT INTO conversations (offer_id, participant_low, participant_high, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
	`

	result, err := s.db.ExecContext(ctx, query,
		conv.OfferID,
		conv.ParticipantLow,
		conv.ParticipantHigh,
		conv.CreatedAt.UTC().Format(time.RFC3339),
		conv.UpdatedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		if isConstraintViolation(err) {
			return ErrDuplicateConversation
		}
		return fmt.Errorf("inserting conversation: %w", err)
	}

	conv.ID, err = result.LastInsertId()
	if err != nil {
		return fmt.Errorf("reading conversation id: %w", err)
	}

	s.logger.Debug("created conversation",
		"id", conv.ID,
		"offer_id", conv.OfferID,
		"participant_low", conv.ParticipantLow,
		"participant_high", conv.ParticipantHigh)
	return nil
}

// GetConversation retrieves a conversation by ID.
// Returns ErrNotFound if the conversation doesn't exist.
func (s *SQLiteStore) GetConversation(ctx context.Context, id int64) (*Conversation, error) {
	query := `
		SELECT id, offer_id, participant_low, participant_high, created_at, updated_at
		FROM conversations
		WHERE id = ?
	`
	return s.scanConversation(s.db.QueryRowContext(ctx, query, id))
}

// GetConversationByOfferAndParticipants retrieves the conversation for an offer
// and a participant pair, matching the pair in either orientation. Writes always
// canonicalize low/high, so the reversed branch is a safety net for rows written
// before canonicalization was enforced.
// Returns ErrNotFound if no conversation exists for the triple.
func (s *SQLiteStore) GetConversationByOfferAndParticipants(ctx context.Context, offerID, a, b int64) (*Conversation, error) {
	query := `
		SELECT id, offer_id, participant_low, participant_high, created_at, updated_at
		FROM conversations
		WHERE offer_id = ?
		  AND ((participant_low = ? AND participant_high = ?)
		    OR (participant_low = ? AND participant_high = ?))
	`
	return s.scanConversation(s.db.QueryRowContext(ctx, query, offerID, a, b, b, a))
}

// scanConversation scans a single conversation row
func (s *SQLiteStore) scanConversation(row *sql.Row) (*Conversation, error) {
	var conv Conversation
	var createdAtStr, updatedAtStr string

	err := row.Scan(
		&conv.ID,
		&conv.OfferID,
		&conv.ParticipantLow,
		&conv.ParticipantHigh,
		&createdAtStr,
		&updatedAtStr,
	)

	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scanning conversation: %w", err)
	}

	conv.CreatedAt, err = time.Parse(time.RFC3339, createdAtStr)
	if err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}

	conv.UpdatedAt, err = time.Parse(time.RFC3339, updatedAtStr)
	if err != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", err)
	}

	return &conv, nil
}

// TouchConversation bumps a conversation's updated_at timestamp.
// The update uses max() so updated_at never moves backwards, even if a slow
// request lands after a newer message already touched the row.
// Returns ErrNotFound if the conversation doesn't exist.
func (s *SQLiteStore) TouchConversation(ctx context.Context, id int64, updatedAt time.Time) error {
	query := `
		UPDATE conversations
		SET updated_at = max(updated_at, ?)
		WHERE id = ?
	`

	result, err := s.db.ExecContext(ctx, query,
		updatedAt.UTC().Format(time.RFC3339),
		id,
	)
	if err != nil {
		return fmt.Errorf("touching conversation: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return ErrNotFound
	}

	s.logger.Debug("touched conversation", "id", id)
	return nil
}

// ListConversationsByUser retrieves all conversations where the user is a
// participant, ordered by most recent activity. Ties on updated_at are broken
// by id so the ordering is stable across identical inputs.
func (s *SQLiteStore) ListConversationsByUser(ctx context.Context, userID int64) ([]*Conversation, error) {
	query := `
		SELECT id, offer_id, participant_low, participant_high, created_at, updated_at
		FROM conversations
		WHERE participant_low = ? OR participant_high = ?
		ORDER BY updated_at DESC, id DESC
	`

	rows, err := s.db.QueryContext(ctx, query, userID, userID)
	if err != nil {
		return nil, fmt.Errorf("querying conversations: %w", err)
	}
	defer rows.Close()

	var convs []*Conversation
	for rows.Next() {
		var conv Conversation
		var createdAtStr, updatedAtStr string

		if err := rows.Scan(
			&conv.ID,
			&conv.OfferID,
			&conv.ParticipantLow,
			&conv.ParticipantHigh,
			&createdAtStr,
			&updatedAtStr,
		); err != nil {
			return nil, fmt.Errorf("scanning conversation row: %w", err)
		}

		conv.CreatedAt, err = time.Parse(time.RFC3339, createdAtStr)
		if err != nil {
			return nil, fmt.Errorf("parsing created_at: %w", err)
		}

		conv.UpdatedAt, err = time.Parse(time.RFC3339, updatedAtStr)
		if err != nil {
			return nil, fmt.Errorf("parsing updated_at: %w", err)
		}

		convs = append(convs, &conv)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating conversation rows: %w", err)
	}

	return convs, nil
}

// SaveMessage inserts a message and assigns its generated id
func (s *SQLiteStore) SaveMessage(ctx context.Context, msg *Message) error {
	query := `
		INSERT INTO messages (conversation_id, sender_id, text, created_at)
		VALUES (?, ?, ?, ?)
	`

	result, err := s.db.ExecContext(ctx, query,
		msg.ConversationID,
		msg.SenderID,
		msg.Text,
		msg.CreatedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting message: %w", err)
	}

	msg.ID, err = result.LastInsertId()
	if err != nil {
		return fmt.Errorf("reading message id: %w", err)
	}

	s.logger.Debug("saved message", "id", msg.ID, "conversation_id", msg.ConversationID)
	return nil
}

// GetConversationMessages retrieves all messages for a conversation in
// chronological order (oldest first), ties broken by insertion order.
func (s *SQLiteStore) GetConversationMessages(ctx context.Context, conversationID int64) ([]*Message, error) {
	query := `
		SELECT id, conversation_id, sender_id, text, created_at
		FROM messages
		WHERE conversation_id = ?
		ORDER BY created_at ASC, id ASC
	`

	rows, err := s.db.QueryContext(ctx, query, conversationID)
	if err != nil {
		return nil, fmt.Errorf("querying messages: %w", err)
	}
	defer rows.Close()

	var messages []*Message
	for rows.Next() {
		var msg Message
		var createdAtStr string

		if err := rows.Scan(&msg.ID, &msg.ConversationID, &msg.SenderID, &msg.Text, &createdAtStr); err != nil {
			return nil, fmt.Errorf("scanning message row: %w", err)
		}

		msg.CreatedAt, err = time.Parse(time.RFC3339, createdAtStr)
		if err != nil {
			return nil, fmt.Errorf("parsing message created_at: %w", err)
		}

		messages = append(messages, &msg)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating message rows: %w", err)
	}

	return messages, nil
}

// GetLatestMessage retrieves the most recent message in a conversation, used
// for listing previews. Returns ErrNotFound if the conversation has no messages.
func (s *SQLiteStore) GetLatestMessage(ctx context.Context, conversationID int64) (*Message, error) {
	query := `
		SELECT id, conversation_id, sender_id, text, created_at
		FROM messages
		WHERE conversation_id = ?
		ORDER BY created_at DESC, id DESC
		LIMIT 1
	`

	var msg Message
	var createdAtStr string

	err := s.db.QueryRowContext(ctx, query, conversationID).Scan(
		&msg.ID,
		&msg.ConversationID,
		&msg.SenderID,
		&msg.Text,
		&createdAtStr,
	)

	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying latest message: %w", err)
	}

	msg.CreatedAt, err = time.Parse(time.RFC3339, createdAtStr)
	if err != nil {
		return nil, fmt.Errorf("parsing message created_at: %w", err)
	}

	return &msg, nil
}

// Ensure SQLiteStore implements Store interface
var _ Store = (*SQLiteStore)(nil)

// Ensure SQLiteStore implements UserStore interface
var _ UserStore = (*SQLiteStore)(nil)
