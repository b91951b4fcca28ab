package intent

import "fmt"

// Result is the outcome of classifying one utterance.
type Result struct {
	Intent Intent
	Text   string
}

// Matcher is a first-match classifier over an ordered rule list.
// It holds no mutable state and is safe for concurrent use.
type Matcher struct {
	rules   []Rule
	catalog *Catalog
}

func NewMatcher(rules []Rule, catalog *Catalog) *Matcher {
	return &Matcher{rules: rules, catalog: catalog}
}

// Classify returns the first rule whose triggers occur in the normalized
// utterance, or false when none does.
func (m *Matcher) Classify(normalized string) (Intent, bool) {
	for _, r := range m.rules {
		if r.Matches(normalized) {
			return r.Intent, true
		}
	}
	return "", false
}

// Match selects the response for an utterance. The fallback echoes the
// utterance as received, not its normalized form.
func (m *Matcher) Match(utterance string) (Result, error) {
	if i, ok := m.Classify(Normalize(utterance)); ok {
		text, found := m.catalog.Response(i)
		if !found {
			return Result{}, fmt.Errorf("%w: %s", ErrMissingTemplate, i)
		}
		return Result{Intent: i, Text: text}, nil
	}

	text, err := m.catalog.RenderFallback(utterance)
	if err != nil {
		return Result{}, err
	}
	return Result{Intent: Fallback, Text: text}, nil
}
