package domain

import "time"

// AttributionMode describes how an endorsement was linked to a request.
type AttributionMode string

// Attribution modes.
const (
	AttributionQuotedReply       AttributionMode = "quoted_reply"
	AttributionTemporalImmediate AttributionMode = "temporal_immediate"
	AttributionTemporalNear      AttributionMode = "temporal_near"
	AttributionTemporalDistant   AttributionMode = "temporal_distant"
	AttributionNone              AttributionMode = "none"
)

// AttributionResult links an endorsement to the request it likely answers.
type AttributionResult struct {
	// RequestMessageID is empty when Mode is AttributionNone.
	RequestMessageID string          `json:"request_message_id,omitempty"`
	ResponseDelay    time.Duration   `json:"response_delay"`
	Confidence       float64         `json:"confidence"` // 0.0-1.0
	Mode             AttributionMode `json:"mode"`
}

// Attributed reports whether a prior request was identified.
func (r AttributionResult) Attributed() bool {
	return r.Mode != AttributionNone && r.RequestMessageID != ""
}
