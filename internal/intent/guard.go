package intent

var (
	disallowedAssets = []string{
		"bitcoin", "btc", "eth", "ethereum", "stock", "forex",
		"eur", "gbp", "oil", "silver", "crypto",
	}
	allowedTopics = []string{"gold", "xau"}
)

// TopicGuard rejects utterances about other tradable assets before any
// intent matching happens.
type TopicGuard struct {
	disallowed []string
	allowed    []string
	refusal    string
}

func NewTopicGuard(refusal string) *TopicGuard {
	return &TopicGuard{
		disallowed: disallowedAssets,
		allowed:    allowedTopics,
		refusal:    refusal,
	}
}

// Refuse reports whether the normalized utterance mentions a disallowed asset
// without mentioning gold. When it does, the refusal text is returned.
func (g *TopicGuard) Refuse(normalized string) (string, bool) {
	if !containsAny(normalized, g.disallowed) {
		return "", false
	}
	if containsAny(normalized, g.allowed) {
		return "", false
	}
	return g.refusal, true
}
