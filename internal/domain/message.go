// Package domain holds the value types exchanged between pipeline stages.
// These are plain serializable records with no behavior beyond validation;
// persistence and transport belong to the surrounding application.
package domain

import (
	"time"
	"unicode/utf8"
)

// Message represents one chat message handed to the pipeline by the caller.
// The pipeline never mutates it.
type Message struct {
	ID             string    `json:"id"`
	ConversationID string    `json:"conversation_id"`
	SenderID       string    `json:"sender_id"`
	Text           string    `json:"text"`
	Timestamp      time.Time `json:"timestamp"`

	// ReplyToID is the identifier of the message this one quotes, if any.
	ReplyToID string `json:"reply_to_id,omitempty"`
}

// Validate checks the structural invariants the pipeline relies on.
// Text may be empty; empty text classifies as unknown rather than erroring.
func (m *Message) Validate() error {
	if m.ConversationID == "" {
		return &ValidationError{Field: "conversation_id", Message: "is required"}
	}
	if m.SenderID == "" {
		return &ValidationError{Field: "sender_id", Message: "is required"}
	}
	if m.Timestamp.IsZero() {
		return &ValidationError{Field: "timestamp", Message: "is required"}
	}
	if !utf8.ValidString(m.Text) {
		return &ValidationError{Field: "text", Message: "is not valid UTF-8"}
	}
	return nil
}
