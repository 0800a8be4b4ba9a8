package data

// defaultBlacklist lists terms no extraction strategy may emit as a mention,
// regardless of strategy confidence. Matching is case-insensitive.
var defaultBlacklist = []string{
	// Pronouns and fillers
	"i", "me", "my", "you", "your", "he", "she", "him", "her", "his", "hers",
	"we", "us", "our", "they", "them", "their", "it", "its",
	"someone", "anyone", "everybody", "everyone", "nobody",

	// Temporal references
	"today", "tomorrow", "yesterday", "now", "later", "soon",
	"morning", "afternoon", "evening", "tonight", "weekend",
	"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday",

	// Generic terms that pattern-match like names or services
	"hi", "hello", "thanks", "thank you", "please", "sorry",
	"good", "great", "best", "nice", "ok", "okay", "yes", "no",
	"guy", "guys", "lady", "man", "woman", "people", "company",
	"number", "contact", "details", "info", "price", "quote", "cost",
	"group", "chat", "message", "admin",
	"help", "urgent", "asap", "recommend", "recommendation",
	"try", "use", "used", "call", "phone", "whatsapp",
}

// DefaultBlacklist returns the built-in blacklist terms.
// Callers must not mutate the returned slice.
func DefaultBlacklist() []string {
	return defaultBlacklist
}
