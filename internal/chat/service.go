// ABOUTME: Chat service is the central layer for conversations and messages
// ABOUTME: Canonicalizes participant pairs and guards sends with domain invariants

package chat

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/XxELIngexX/Econexion-back/internal/store"
)

// MaxMessageLen is the longest accepted message text, in characters
const MaxMessageLen = 5000

// Service errors
var (
	// ErrConversationNotFound means the conversation id does not exist
	ErrConversationNotFound = errors.New("conversation not found")

	// ErrNotParticipant means the sender is not one of the conversation's two participants
	ErrNotParticipant = errors.New("sender not in conversation")

	// ErrEmptyMessage means the message text is blank after trimming
	ErrEmptyMessage = errors.New("message text is empty")

	// ErrMessageTooLong means the message text exceeds MaxMessageLen characters
	ErrMessageTooLong = errors.New("message text too long")
)

// Store defines what the service needs from storage
type Store interface {
	CreateConversation(ctx context.Context, conv *store.Conversation) error
	GetConversation(ctx context.Context, id int64) (*store.Conversation, error)
	GetConversationByOfferAndParticipants(ctx context.Context, offerID, a, b int64) (*store.Conversation, error)
	TouchConversation(ctx context.Context, id int64, updatedAt time.Time) error
	ListConversationsByUser(ctx context.Context, userID int64) ([]*store.Conversation, error)

	SaveMessage(ctx context.Context, msg *store.Message) error
	GetConversationMessages(ctx context.Context, conversationID int64) ([]*store.Message, error)
	GetLatestMessage(ctx context.Context, conversationID int64) (*store.Message, error)
}

// Service is the conversation engine. It owns conversation identity (one
// conversation per offer per unordered participant pair), the send path, and
// summary listings.
type Service struct {
	store  Store
	logger *slog.Logger
	now    func() time.Time
}

// New creates a new chat Service. A nil clock defaults to time.Now; tests
// inject a fixed clock to control created_at/updated_at ordering.
func New(st Store, logger *slog.Logger, clock func() time.Time) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	if clock == nil {
		clock = time.Now
	}
	return &Service{
		store:  st,
		logger: logger.With("component", "chat"),
		now:    clock,
	}
}

// GetOrCreateConversation resolves the canonical conversation for an offer and
// a participant pair, creating it if absent. The pair is symmetric:
// (a, b) and (b, a) always resolve to the same conversation.
//
// Two concurrent first-contact calls can both miss the lookup and race to
// insert; the UNIQUE index makes the loser fail with a duplicate error, which
// is resolved by retrying the lookup once rather than surfacing a failure.
func (s *Service) GetOrCreateConversation(ctx context.Context, offerID, senderID, receiverID int64) (*store.Conversation, error) {
	conv, err := s.store.GetConversationByOfferAndParticipants(ctx, offerID, senderID, receiverID)
	if err == nil {
		return conv, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return nil, fmt.Errorf("looking up conversation: %w", err)
	}

	// Normalize participant order before writing
	low, high := senderID, receiverID
	if low > high {
		low, high = high, low
	}

	now := s.now()
	conv = &store.Conversation{
		OfferID:         offerID,
		ParticipantLow:  low,
		ParticipantHigh: high,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := s.store.CreateConversation(ctx, conv); err != nil {
		// A concurrent request may have created the conversation between our
		// lookup and insert. The duplicate is benign: re-read and return it.
		if errors.Is(err, store.ErrDuplicateConversation) {
			s.logger.Debug("conversation creation hit duplicate, retrying lookup",
				"offer_id", offerID,
				"participant_low", low,
				"participant_high", high)
			existing, lookupErr := s.store.GetConversationByOfferAndParticipants(ctx, offerID, low, high)
			if lookupErr == nil {
				return existing, nil
			}
			return nil, fmt.Errorf("retry lookup after duplicate: %w", lookupErr)
		}
		return nil, fmt.Errorf("creating conversation: %w", err)
	}

	s.logger.Debug("conversation created",
		"conversation_id", conv.ID,
		"offer_id", offerID,
		"participant_low", low,
		"participant_high", high)
	return conv, nil
}

// SendMessage appends a message to a conversation and touches the
// conversation's updated_at so listings surface it as recently active.
//
// Returns ErrConversationNotFound if the conversation does not exist,
// ErrNotParticipant if the sender is not one of its two participants, and
// ErrEmptyMessage/ErrMessageTooLong for invalid text. The participation guard
// is a domain invariant, not authentication: the caller's identity is already
// proven by the auth layer, this only stops writes into someone else's
// conversation.
func (s *Service) SendMessage(ctx context.Context, conversationID, senderID int64, text string) (*store.Message, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyMessage
	}
	if utf8.RuneCountInString(text) > MaxMessageLen {
		return nil, ErrMessageTooLong
	}

	conv, err := s.store.GetConversation(ctx, conversationID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrConversationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("loading conversation: %w", err)
	}

	if !conv.Involves(senderID) {
		return nil, ErrNotParticipant
	}

	now := s.now()
	msg := &store.Message{
		ConversationID: conv.ID,
		SenderID:       senderID,
		Text:           text,
		CreatedAt:      now,
	}
	if err := s.store.SaveMessage(ctx, msg); err != nil {
		return nil, fmt.Errorf("saving message: %w", err)
	}

	// Touch with the message's own timestamp so updated_at can never lag
	// behind the created_at of a durably stored message.
	if err := s.store.TouchConversation(ctx, conv.ID, now); err != nil {
		return nil, fmt.Errorf("touching conversation: %w", err)
	}

	s.logger.Debug("message sent",
		"conversation_id", conv.ID,
		"message_id", msg.ID,
		"sender_id", senderID)
	return msg, nil
}

// ListMessages returns all messages for a conversation, oldest first.
// A conversation with no messages yields an empty slice.
func (s *Service) ListMessages(ctx context.Context, conversationID int64) ([]*store.Message, error) {
	msgs, err := s.store.GetConversationMessages(ctx, conversationID)
	if err != nil {
		return nil, fmt.Errorf("listing messages: %w", err)
	}
	return msgs, nil
}
