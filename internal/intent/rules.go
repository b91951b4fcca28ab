package intent

import "strings"

type Intent string

const (
	Trend          Intent = "trend"
	MonetaryPolicy Intent = "monetary_policy"
	TradeDecision  Intent = "trade_decision"
	Levels         Intent = "levels"
	Indicators     Intent = "indicators"
	News           Intent = "news"
	Risk           Intent = "risk"
	Help           Intent = "help"

	// Fallback and OffTopic never appear in the rule list.
	Fallback Intent = "fallback"
	OffTopic Intent = "off_topic"
)

// Rule binds an intent to its trigger terms. A rule matches when the
// normalized utterance contains any trigger as a substring.
type Rule struct {
	Intent   Intent
	Triggers []string
}

func (r Rule) Matches(normalized string) bool {
	return containsAny(normalized, r.Triggers)
}

// DefaultRules returns the rule list in evaluation order. Order is priority:
// the first matching rule wins, so "should i buy after the fed" is a
// MonetaryPolicy question.
func DefaultRules() []Rule {
	return []Rule{
		{Intent: Trend, Triggers: []string{"trend", "current", "now"}},
		{Intent: MonetaryPolicy, Triggers: []string{"fed", "interest rate", "inflation"}},
		{Intent: TradeDecision, Triggers: []string{"buy", "sell", "should i"}},
		{Intent: Levels, Triggers: []string{"support", "resistance", "level"}},
		{Intent: Indicators, Triggers: []string{"rsi", "moving average", "indicator"}},
		{Intent: News, Triggers: []string{"news", "geopolitical", "war"}},
		{Intent: Risk, Triggers: []string{"risk", "stop loss", "money management"}},
		{Intent: Help, Triggers: []string{"help", "what can you"}},
	}
}

// Normalize lowercases an utterance for keyword matching.
func Normalize(utterance string) string {
	return strings.ToLower(utterance)
}

func containsAny(s string, terms []string) bool {
	for _, t := range terms {
		if strings.Contains(s, t) {
			return true
		}
	}
	return false
}
