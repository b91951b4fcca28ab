package intent

import (
	_ "embed"
	"errors"
	"fmt"
	"strings"
	"text/template"

	"github.com/BurntSushi/toml"
)

//go:embed templates.toml
var defaultTemplates string

var ErrMissingTemplate = errors.New("intent: missing template")

// Catalog holds the pre-authored response text. It is read-only once loaded.
type Catalog struct {
	Welcome  string
	Refusal  string
	intents  map[Intent]string
	fallback *template.Template
}

type catalogFile struct {
	Welcome  string            `toml:"welcome"`
	Refusal  string            `toml:"refusal"`
	Fallback string            `toml:"fallback"`
	Intents  map[string]string `toml:"intents"`
}

// LoadCatalog decodes the embedded templates and checks that every rule has
// a response.
func LoadCatalog(rules []Rule) (*Catalog, error) {
	return ParseCatalog(defaultTemplates, rules)
}

func ParseCatalog(data string, rules []Rule) (*Catalog, error) {
	var f catalogFile
	if _, err := toml.Decode(data, &f); err != nil {
		return nil, fmt.Errorf("decode templates: %w", err)
	}

	if f.Refusal == "" {
		return nil, fmt.Errorf("%w: refusal", ErrMissingTemplate)
	}
	if f.Fallback == "" {
		return nil, fmt.Errorf("%w: fallback", ErrMissingTemplate)
	}

	fallback, err := template.New("fallback").Parse(f.Fallback)
	if err != nil {
		return nil, fmt.Errorf("parse fallback template: %w", err)
	}

	c := &Catalog{
		Welcome:  f.Welcome,
		Refusal:  f.Refusal,
		intents:  make(map[Intent]string, len(f.Intents)),
		fallback: fallback,
	}
	for k, v := range f.Intents {
		c.intents[Intent(k)] = v
	}

	for _, r := range rules {
		if c.intents[r.Intent] == "" {
			return nil, fmt.Errorf("%w: %s", ErrMissingTemplate, r.Intent)
		}
	}

	return c, nil
}

func (c *Catalog) Response(i Intent) (string, bool) {
	text, ok := c.intents[i]
	return text, ok
}

// RenderFallback embeds the original utterance, unmodified, into the fallback text.
func (c *Catalog) RenderFallback(utterance string) (string, error) {
	var b strings.Builder
	if err := c.fallback.Execute(&b, struct{ Message string }{utterance}); err != nil {
		return "", fmt.Errorf("render fallback: %w", err)
	}
	return b.String(), nil
}
