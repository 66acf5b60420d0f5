// ABOUTME: Mock Store implementation for testing
// ABOUTME: Allows tests to run without SQLite

package store

import (
	"context"
	"sort"
	"sync"
	"time"
)

// MockStore is an in-memory Store and UserStore implementation for testing.
// It enforces the same uniqueness invariants as the SQLite schema so race
// handling can be exercised without a database.
type MockStore struct {
	mu            sync.RWMutex
	conversations map[int64]*Conversation
	messages      map[int64][]*Message // keyed by conversation ID
	users         map[int64]*User
	usersByEmail  map[string]int64
	nextConvID    int64
	nextMsgID     int64
	nextUserID    int64

	// CreateConversationHook runs inside CreateConversation before the insert,
	// letting tests interleave a competing writer to simulate creation races.
	CreateConversationHook func()
}

// NewMockStore creates a new MockStore.
func NewMockStore() *MockStore {
	return &MockStore{
		conversations: make(map[int64]*Conversation),
		messages:      make(map[int64][]*Message),
		users:         make(map[int64]*User),
		usersByEmail:  make(map[string]int64),
	}
}

// CreateConversation stores a new conversation, assigning a sequential id.
// Returns ErrDuplicateConversation if a conversation for the same offer and
// participant pair already exists, matching the SQLite UNIQUE index.
func (m *MockStore) CreateConversation(ctx context.Context, conv *Conversation) error {
	if m.CreateConversationHook != nil {
		m.CreateConversationHook()
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for _, existing := range m.conversations {
		if existing.OfferID == conv.OfferID &&
			existing.ParticipantLow == conv.ParticipantLow &&
			existing.ParticipantHigh == conv.ParticipantHigh {
			return ErrDuplicateConversation
		}
	}

	m.nextConvID++
	conv.ID = m.nextConvID

	c := *conv
	m.conversations[c.ID] = &c
	return nil
}

// GetConversation retrieves a conversation by ID.
func (m *MockStore) GetConversation(ctx context.Context, id int64) (*Conversation, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	c, ok := m.conversations[id]
	if !ok {
		return nil, ErrNotFound
	}

	result := *c
	return &result, nil
}

// GetConversationByOfferAndParticipants matches the pair in either orientation.
func (m *MockStore) GetConversationByOfferAndParticipants(ctx context.Context, offerID, a, b int64) (*Conversation, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, c := range m.conversations {
		if c.OfferID != offerID {
			continue
		}
		if (c.ParticipantLow == a && c.ParticipantHigh == b) ||
			(c.ParticipantLow == b && c.ParticipantHigh == a) {
			result := *c
			return &result, nil
		}
	}
	return nil, ErrNotFound
}

// TouchConversation bumps updated_at without ever moving it backwards.
func (m *MockStore) TouchConversation(ctx context.Context, id int64, updatedAt time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	c, ok := m.conversations[id]
	if !ok {
		return ErrNotFound
	}
	if updatedAt.After(c.UpdatedAt) {
		c.UpdatedAt = updatedAt
	}
	return nil
}

// ListConversationsByUser returns the user's conversations ordered by
// updated_at descending, ties broken by id descending.
func (m *MockStore) ListConversationsByUser(ctx context.Context, userID int64) ([]*Conversation, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var convs []*Conversation
	for _, c := range m.conversations {
		if c.Involves(userID) {
			result := *c
			convs = append(convs, &result)
		}
	}

	sort.Slice(convs, func(i, j int) bool {
		if !convs[i].UpdatedAt.Equal(convs[j].UpdatedAt) {
			return convs[i].UpdatedAt.After(convs[j].UpdatedAt)
		}
		return convs[i].ID > convs[j].ID
	})

	return convs, nil
}

// SaveMessage stores a message, assigning a sequential id.
func (m *MockStore) SaveMessage(ctx context.Context, msg *Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.nextMsgID++
	msg.ID = m.nextMsgID

	stored := *msg
	m.messages[stored.ConversationID] = append(m.messages[stored.ConversationID], &stored)
	return nil
}

// GetConversationMessages returns messages oldest first, ties by id.
func (m *MockStore) GetConversationMessages(ctx context.Context, conversationID int64) ([]*Message, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	msgs := make([]*Message, 0, len(m.messages[conversationID]))
	for _, msg := range m.messages[conversationID] {
		result := *msg
		msgs = append(msgs, &result)
	}

	sort.Slice(msgs, func(i, j int) bool {
		if !msgs[i].CreatedAt.Equal(msgs[j].CreatedAt) {
			return msgs[i].CreatedAt.Before(msgs[j].CreatedAt)
		}
		return msgs[i].ID < msgs[j].ID
	})

	return msgs, nil
}

// GetLatestMessage returns the most recent message in a conversation.
func (m *MockStore) GetLatestMessage(ctx context.Context, conversationID int64) (*Message, error) {
	msgs, err := m.GetConversationMessages(ctx, conversationID)
	if err != nil {
		return nil, err
	}
	if len(msgs) == 0 {
		return nil, ErrNotFound
	}
	return msgs[len(msgs)-1], nil
}

// CreateUser stores a new user, assigning a sequential id.
func (m *MockStore) CreateUser(ctx context.Context, user *User) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.usersByEmail[user.Email]; exists {
		return ErrDuplicateUser
	}

	m.nextUserID++
	user.ID = m.nextUserID

	u := *user
	m.users[u.ID] = &u
	m.usersByEmail[u.Email] = u.ID
	return nil
}

// GetUser retrieves a user by ID.
func (m *MockStore) GetUser(ctx context.Context, id int64) (*User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	u, ok := m.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	result := *u
	return &result, nil
}

// GetUserByEmail retrieves a user by email.
func (m *MockStore) GetUserByEmail(ctx context.Context, email string) (*User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	id, ok := m.usersByEmail[email]
	if !ok {
		return nil, ErrNotFound
	}
	result := *m.users[id]
	return &result, nil
}

// Close is a no-op for the mock store.
func (m *MockStore) Close() error {
	return nil
}

// Ensure MockStore implements Store interface
var _ Store = (*MockStore)(nil)

// Ensure MockStore implements UserStore interface
var _ UserStore = (*MockStore)(nil)
