package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/shibukawa/sqltokenizer/dialects"
	"github.com/shibukawa/sqltokenizer/tokenizer"
)

// SettingsOverride is a small YAML document a caller can merge onto a
// built-in dialect's settings without recompiling: extra keyword phrases,
// comment styles, or quote pairs. It never introduces a new TokenType; every
// keyword it adds must resolve to one of dialects' existing names.
type SettingsOverride struct {
	Keywords map[string]string `yaml:"keywords"`
	Comments map[string]string `yaml:"comments"`
	Quotes   map[string]string `yaml:"quotes"`
}

// loadSettingsOverride reads and parses path as a SettingsOverride document.
func loadSettingsOverride(path string) (*SettingsOverride, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read settings override %s: %w", path, err)
	}

	var override SettingsOverride

	if err := yaml.UnmarshalWithOptions(data, &override, yaml.Strict()); err != nil {
		return nil, fmt.Errorf("failed to parse settings override %s: %w", path, err)
	}

	return &override, nil
}

// apply merges override onto settings in place. Settings returned by
// dialects.Build is a fresh value per call, so mutating it here never
// leaks into a shared dialect builder.
func (o *SettingsOverride) apply(settings *tokenizer.Settings) error {
	if o == nil {
		return nil
	}

	for phrase, typeName := range o.Keywords {
		tt, ok := dialects.TokenTypeByName(typeName)
		if !ok {
			return fmt.Errorf("%w: %q (keyword %q)", ErrUnknownTokenTypeName, typeName, phrase)
		}

		settings.Keywords[strings.ToUpper(phrase)] = tt
	}

	for start, end := range o.Comments {
		settings.Comments[start] = end
	}

	for start, end := range o.Quotes {
		settings.Quotes[start] = end
	}

	return nil
}
