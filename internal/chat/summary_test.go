// ABOUTME: Tests for conversation summaries
// ABOUTME: Covers preview truncation, recency ordering, and empty conversations

package chat

import (
	"context"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTruncatePreview(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"empty", "", ""},
		{"short", "Hello", "Hello"},
		{"exactly 80", strings.Repeat("a", 80), strings.Repeat("a", 80)},
		{"81 chars", strings.Repeat("a", 81), strings.Repeat("a", 80) + "…"},
		{"long", strings.Repeat("ab", 200), strings.Repeat("ab", 40) + "…"},
		{"multibyte under cap", strings.Repeat("ñ", 80), strings.Repeat("ñ", 80)},
		{"multibyte over cap", strings.Repeat("ñ", 81), strings.Repeat("ñ", 80) + "…"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := truncatePreview(tt.text)
			assert.Equal(t, tt.want, got)
			if utf8.RuneCountInString(tt.text) > 80 {
				// 80 characters plus exactly one ellipsis rune
				assert.Equal(t, 81, utf8.RuneCountInString(got))
				assert.True(t, strings.HasSuffix(got, "…"))
				assert.False(t, strings.HasSuffix(got, "..."))
			}
		})
	}
}

func TestListConversations_RecencyOrder(t *testing.T) {
	svc := New(createTestStore(t), nil, fixedClock(testEpoch))
	ctx := context.Background()

	// Three conversations for user 100, made active in this order
	c1, err := svc.GetOrCreateConversation(ctx, 1, 100, 200)
	require.NoError(t, err)
	c2, err := svc.GetOrCreateConversation(ctx, 2, 100, 300)
	require.NoError(t, err)
	c3, err := svc.GetOrCreateConversation(ctx, 3, 100, 400)
	require.NoError(t, err)

	_, err = svc.SendMessage(ctx, c2.ID, 300, "first burst")
	require.NoError(t, err)
	_, err = svc.SendMessage(ctx, c1.ID, 100, "second burst")
	require.NoError(t, err)
	_, err = svc.SendMessage(ctx, c3.ID, 400, "third burst")
	require.NoError(t, err)

	summaries, err := svc.ListConversations(ctx, 100)
	require.NoError(t, err)
	require.Len(t, summaries, 3)

	// Most recently active first
	assert.Equal(t, c3.ID, summaries[0].ConversationID)
	assert.Equal(t, c1.ID, summaries[1].ConversationID)
	assert.Equal(t, c2.ID, summaries[2].ConversationID)

	for i := 1; i < len(summaries); i++ {
		assert.False(t, summaries[i].UpdatedAt.After(summaries[i-1].UpdatedAt),
			"updated_at must be non-increasing")
	}
}

func TestListConversations_PreviewIsLatestMessage(t *testing.T) {
	svc := New(createTestStore(t), nil, fixedClock(testEpoch))
	ctx := context.Background()

	conv, err := svc.GetOrCreateConversation(ctx, 10, 100, 200)
	require.NoError(t, err)

	for _, text := range []string{"older", "newer", "newest"} {
		_, err := svc.SendMessage(ctx, conv.ID, 100, text)
		require.NoError(t, err)
	}

	summaries, err := svc.ListConversations(ctx, 200)
	require.NoError(t, err)
	require.Len(t, summaries, 1)
	assert.Equal(t, "newest", summaries[0].Preview)
}

func TestListConversations_LongPreviewTruncated(t *testing.T) {
	svc := New(createTestStore(t), nil, fixedClock(testEpoch))
	ctx := context.Background()

	conv, err := svc.GetOrCreateConversation(ctx, 10, 100, 200)
	require.NoError(t, err)

	long := strings.Repeat("m", 120)
	_, err = svc.SendMessage(ctx, conv.ID, 100, long)
	require.NoError(t, err)

	summaries, err := svc.ListConversations(ctx, 100)
	require.NoError(t, err)
	require.Len(t, summaries, 1)
	assert.Equal(t, strings.Repeat("m", 80)+"…", summaries[0].Preview)
}

func TestListConversations_EmptyConversationHasEmptyPreview(t *testing.T) {
	svc := New(createTestStore(t), nil, fixedClock(testEpoch))
	ctx := context.Background()

	conv, err := svc.GetOrCreateConversation(ctx, 10, 100, 200)
	require.NoError(t, err)

	summaries, err := svc.ListConversations(ctx, 100)
	require.NoError(t, err)
	require.Len(t, summaries, 1)
	assert.Equal(t, conv.ID, summaries[0].ConversationID)
	assert.Equal(t, "", summaries[0].Preview)
	assert.Equal(t, conv.ParticipantLow, summaries[0].Participant1ID)
	assert.Equal(t, conv.ParticipantHigh, summaries[0].Participant2ID)
	assert.Equal(t, conv.OfferID, summaries[0].OfferID)
}

func TestListConversations_NoConversations(t *testing.T) {
	svc := New(createTestStore(t), nil, fixedClock(testEpoch))

	summaries, err := svc.ListConversations(context.Background(), 777)
	require.NoError(t, err)
	assert.Empty(t, summaries)
}
