package domain

// MessageType is the verdict of message classification.
type MessageType string

// Message type constants.
const (
	TypeRequest        MessageType = "request"
	TypeRecommendation MessageType = "recommendation"
	TypeUnknown        MessageType = "unknown"
)

// ClassificationResult represents the outcome of classifying one message.
type ClassificationResult struct {
	Type       MessageType `json:"type"`
	Confidence float64     `json:"confidence"` // 0.0-1.0
	// Evidence lists, in engine order, which rule contributed what.
	Evidence []string `json:"evidence,omitempty"`
}

// IsRecommendation reports whether the verdict warrants provider matching.
func (r ClassificationResult) IsRecommendation() bool {
	return r.Type == TypeRecommendation
}
