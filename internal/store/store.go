// ABOUTME: Store interface and data types for marketplace chat persistence
// ABOUTME: Defines Conversation, Message, User structs and the storage interfaces

package store

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned when a requested entity does not exist
var ErrNotFound = errors.New("not found")

// ErrDuplicateConversation is returned when trying to create a conversation
// that already exists for the same offer and participant pair
var ErrDuplicateConversation = errors.New("conversation already exists")

// ErrDuplicateUser is returned when trying to register an email that is taken
var ErrDuplicateUser = errors.New("user already exists")

// Conversation is a deduplicated channel between two users scoped to one offer.
// ParticipantLow and ParticipantHigh hold the canonical pair: the numerically
// smaller user id always goes in ParticipantLow.
type Conversation struct {
	ID              int64
	OfferID         int64
	ParticipantLow  int64
	ParticipantHigh int64
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Involves reports whether the given user is one of the two participants.
func (c *Conversation) Involves(userID int64) bool {
	return userID == c.ParticipantLow || userID == c.ParticipantHigh
}

// Message is a single immutable message within a conversation
type Message struct {
	ID             int64
	ConversationID int64
	SenderID       int64
	Text           string
	CreatedAt      time.Time
}

// User is a registered marketplace account
type User struct {
	ID           int64
	Email        string
	Username     string
	PasswordHash string
	CreatedAt    time.Time
}

// Store defines the interface for conversation and message persistence
type Store interface {
	// Conversations
	CreateConversation(ctx context.Context, conv *Conversation) error
	GetConversation(ctx context.Context, id int64) (*Conversation, error)
	GetConversationByOfferAndParticipants(ctx context.Context, offerID, a, b int64) (*Conversation, error)
	TouchConversation(ctx context.Context, id int64, updatedAt time.Time) error
	ListConversationsByUser(ctx context.Context, userID int64) ([]*Conversation, error)

	// Messages
	SaveMessage(ctx context.Context, msg *Message) error
	GetConversationMessages(ctx context.Context, conversationID int64) ([]*Message, error)
	GetLatestMessage(ctx context.Context, conversationID int64) (*Message, error)

	// Close releases any resources held by the store
	Close() error
}

// UserStore defines the interface for account persistence
type UserStore interface {
	CreateUser(ctx context.Context, user *User) error
	GetUser(ctx context.Context, id int64) (*User, error)
	GetUserByEmail(ctx context.Context, email string) (*User, error)
}
