// Package intent classifies gold market questions into a fixed set of
// intents and maps each intent to a pre-authored response.
//
// Classification is a first-match walk over DefaultRules. Response text lives
// in templates.toml and is embedded into the binary.
package intent
