package domain_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/refradar/refradar/internal/domain"
)

func validMessage() domain.Message {
	return domain.Message{
		ID:             "m1",
		ConversationID: "conv-1",
		SenderID:       "alice",
		Text:           "Anyone know a good plumber?",
		Timestamp:      time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC),
	}
}

func TestMessageValidate(t *testing.T) {
	testCases := []struct {
		name      string
		mutate    func(*domain.Message)
		wantField string
	}{
		{name: "valid", mutate: func(*domain.Message) {}},
		{name: "empty text is valid", mutate: func(m *domain.Message) { m.Text = "" }},
		{
			name:      "missing conversation",
			mutate:    func(m *domain.Message) { m.ConversationID = "" },
			wantField: "conversation_id",
		},
		{
			name:      "missing sender",
			mutate:    func(m *domain.Message) { m.SenderID = "" },
			wantField: "sender_id",
		},
		{
			name:      "zero timestamp",
			mutate:    func(m *domain.Message) { m.Timestamp = time.Time{} },
			wantField: "timestamp",
		},
		{
			name:      "invalid utf-8",
			mutate:    func(m *domain.Message) { m.Text = string([]byte{0xff, 0xfe}) },
			wantField: "text",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			msg := validMessage()
			tc.mutate(&msg)

			err := msg.Validate()
			if tc.wantField == "" {
				assert.NoError(t, err)
				return
			}

			var verr *domain.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tc.wantField, verr.Field)
		})
	}
}

func TestMentionOverlaps(t *testing.T) {
	a := domain.Mention{Start: 0, End: 5}
	assert.True(t, a.Overlaps(domain.Mention{Start: 4, End: 8}))
	assert.True(t, a.Overlaps(domain.Mention{Start: 0, End: 5}))
	assert.False(t, a.Overlaps(domain.Mention{Start: 5, End: 8}))
	assert.False(t, a.Overlaps(domain.Mention{Start: 9, End: 12}))
}

func TestResultPredicates(t *testing.T) {
	assert.False(t, domain.NoMatch(domain.Mention{}).Matched())
	assert.True(t, domain.MatchResult{ProviderID: "p", Strategy: domain.MatchExactName}.Matched())

	assert.False(t, domain.AttributionResult{Mode: domain.AttributionNone}.Attributed())
	assert.True(t, domain.AttributionResult{
		RequestMessageID: "m1",
		Mode:             domain.AttributionQuotedReply,
	}.Attributed())

	assert.True(t, domain.ClassificationResult{Type: domain.TypeRecommendation}.IsRecommendation())
	assert.False(t, domain.ClassificationResult{Type: domain.TypeRequest}.IsRecommendation())
}

func TestLookupUnavailableSentinel(t *testing.T) {
	wrapped := fmt.Errorf("%w: connection refused", domain.ErrLookupUnavailable)
	assert.ErrorIs(t, wrapped, domain.ErrLookupUnavailable)
}
