// ABOUTME: Conversation summaries for list views
// ABOUTME: Recency-ordered listings with a bounded preview of the latest message

package chat

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/XxELIngexX/Econexion-back/internal/store"
)

// previewMaxLen is the preview length cap in characters, before the ellipsis
const previewMaxLen = 80

// Summary is a read-only projection of one conversation for list views
type Summary struct {
	ConversationID int64
	OfferID        int64
	Participant1ID int64
	Participant2ID int64
	UpdatedAt      time.Time
	Preview        string
}

// ListConversations returns every conversation the user participates in,
// ordered by most recent activity, each with a preview of its latest message.
// Conversations with no messages yet get an empty preview.
func (s *Service) ListConversations(ctx context.Context, userID int64) ([]*Summary, error) {
	convs, err := s.store.ListConversationsByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("listing conversations: %w", err)
	}

	summaries := make([]*Summary, 0, len(convs))
	for _, conv := range convs {
		preview := ""
		latest, err := s.store.GetLatestMessage(ctx, conv.ID)
		if err != nil && !errors.Is(err, store.ErrNotFound) {
			return nil, fmt.Errorf("loading preview for conversation %d: %w", conv.ID, err)
		}
		if err == nil {
			preview = truncatePreview(latest.Text)
		}

		summaries = append(summaries, &Summary{
			ConversationID: conv.ID,
			OfferID:        conv.OfferID,
			Participant1ID: conv.ParticipantLow,
			Participant2ID: conv.ParticipantHigh,
			UpdatedAt:      conv.UpdatedAt,
			Preview:        preview,
		})
	}

	return summaries, nil
}

// truncatePreview caps text at previewMaxLen characters, appending a single
// ellipsis rune when truncated. Counts runes, not bytes, so multibyte text is
// never cut mid-character.
func truncatePreview(text string) string {
	runes := []rune(text)
	if len(runes) <= previewMaxLen {
		return text
	}
	return string(runes[:previewMaxLen]) + "…"
}
