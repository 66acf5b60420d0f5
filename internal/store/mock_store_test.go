// ABOUTME: Tests for the in-memory mock store
// ABOUTME: Verifies it mirrors SQLite semantics for dedup, ordering, and touch

package store

import (
	"context"
	"testing"
	"time"
)

func TestMockStore_DuplicateConversation(t *testing.T) {
	m := NewMockStore()
	ctx := context.Background()
	now := time.Now()

	first := &Conversation{OfferID: 10, ParticipantLow: 100, ParticipantHigh: 200, CreatedAt: now, UpdatedAt: now}
	if err := m.CreateConversation(ctx, first); err != nil {
		t.Fatalf("CreateConversation failed: %v", err)
	}
	if first.ID == 0 {
		t.Fatal("CreateConversation did not assign an id")
	}

	dup := &Conversation{OfferID: 10, ParticipantLow: 100, ParticipantHigh: 200, CreatedAt: now, UpdatedAt: now}
	if err := m.CreateConversation(ctx, dup); err != ErrDuplicateConversation {
		t.Errorf("expected ErrDuplicateConversation, got %v", err)
	}
}

func TestMockStore_AnyOrderLookup(t *testing.T) {
	m := NewMockStore()
	ctx := context.Background()
	now := time.Now()

	conv := &Conversation{OfferID: 10, ParticipantLow: 100, ParticipantHigh: 200, CreatedAt: now, UpdatedAt: now}
	if err := m.CreateConversation(ctx, conv); err != nil {
		t.Fatalf("CreateConversation failed: %v", err)
	}

	got, err := m.GetConversationByOfferAndParticipants(ctx, 10, 200, 100)
	if err != nil {
		t.Fatalf("reversed lookup failed: %v", err)
	}
	if got.ID != conv.ID {
		t.Errorf("got id %d, want %d", got.ID, conv.ID)
	}
}

func TestMockStore_TouchNeverRegresses(t *testing.T) {
	m := NewMockStore()
	ctx := context.Background()
	base := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

	conv := &Conversation{OfferID: 10, ParticipantLow: 100, ParticipantHigh: 200, CreatedAt: base, UpdatedAt: base}
	if err := m.CreateConversation(ctx, conv); err != nil {
		t.Fatalf("CreateConversation failed: %v", err)
	}

	later := base.Add(time.Hour)
	if err := m.TouchConversation(ctx, conv.ID, later); err != nil {
		t.Fatalf("TouchConversation failed: %v", err)
	}
	if err := m.TouchConversation(ctx, conv.ID, base); err != nil {
		t.Fatalf("stale TouchConversation failed: %v", err)
	}

	got, err := m.GetConversation(ctx, conv.ID)
	if err != nil {
		t.Fatalf("GetConversation failed: %v", err)
	}
	if !got.UpdatedAt.Equal(later) {
		t.Errorf("UpdatedAt regressed: got %v, want %v", got.UpdatedAt, later)
	}
}

func TestMockStore_MessageOrdering(t *testing.T) {
	m := NewMockStore()
	ctx := context.Background()
	base := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

	conv := &Conversation{OfferID: 10, ParticipantLow: 100, ParticipantHigh: 200, CreatedAt: base, UpdatedAt: base}
	if err := m.CreateConversation(ctx, conv); err != nil {
		t.Fatalf("CreateConversation failed: %v", err)
	}

	for i, text := range []string{"b", "a", "c"} {
		offsets := []time.Duration{time.Second, 0, 2 * time.Second}
		msg := &Message{ConversationID: conv.ID, SenderID: 100, Text: text, CreatedAt: base.Add(offsets[i])}
		if err := m.SaveMessage(ctx, msg); err != nil {
			t.Fatalf("SaveMessage failed: %v", err)
		}
	}

	msgs, err := m.GetConversationMessages(ctx, conv.ID)
	if err != nil {
		t.Fatalf("GetConversationMessages failed: %v", err)
	}
	want := []string{"a", "b", "c"}
	for i := range want {
		if msgs[i].Text != want[i] {
			t.Errorf("position %d: got %q, want %q", i, msgs[i].Text, want[i])
		}
	}

	latest, err := m.GetLatestMessage(ctx, conv.ID)
	if err != nil {
		t.Fatalf("GetLatestMessage failed: %v", err)
	}
	if latest.Text != "c" {
		t.Errorf("latest: got %q, want %q", latest.Text, "c")
	}
}
