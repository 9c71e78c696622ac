package tokenizer

import (
	"fmt"
	"strings"
)

// Tokenizer is the reusable front object: it owns a keyword trie pre-built
// from Settings and is safe to share across goroutines. Each Tokenize call
// allocates its own state and never mutates the Tokenizer.
type Tokenizer struct {
	settings   *Settings
	tokenTypes TokenTypeSettings
	trie       *Trie
}

// New builds a Tokenizer's keyword trie from every key in settings'
// Keywords, Comments, Quotes, and FormatStrings maps that either contains a
// space or contains a rune that is itself a single-character token.
// Without that filter, single-char operators would never be reached: the
// trie would swallow them as prefixes of longer keyword phrases.
func New(settings *Settings, tokenTypes TokenTypeSettings) *Tokenizer {
	trie := NewTrie()

	belongsInTrie := func(key string) bool {
		if strings.ContainsRune(key, ' ') {
			return true
		}
		for r := range settings.SingleTokens {
			if strings.ContainsRune(key, r) {
				return true
			}
		}
		return false
	}

	var keys []string
	for k := range settings.Keywords {
		if belongsInTrie(k) {
			keys = append(keys, k)
		}
	}
	for k := range settings.Comments {
		if belongsInTrie(k) {
			keys = append(keys, k)
		}
	}
	for k := range settings.Quotes {
		if belongsInTrie(k) {
			keys = append(keys, k)
		}
	}
	for k := range settings.FormatStrings {
		if belongsInTrie(k) {
			keys = append(keys, k)
		}
	}

	trie.Add(keys)

	return &Tokenizer{settings: settings, tokenTypes: tokenTypes, trie: trie}
}

// Tokenize transforms sql into an ordered token sequence. On error it still
// returns every token collected before the failure, alongside a formatted
// "Error tokenizing '<context>': <message>" diagnostic; it never panics
// across this boundary.
func (t *Tokenizer) Tokenize(sql string, dialect DialectSettings) ([]Token, error) {
	st := newState(sql, t.settings, t.tokenTypes, dialect, t.trie)
	tokens, err := st.tokenize()
	if err != nil {
		ctx := errorContext(st.sql, st.current, st.size)
		return tokens, &wrappedError{
			message: fmt.Sprintf("Error tokenizing '%s': %s", ctx, err.Error()),
			cause:   err,
		}
	}
	return tokens, nil
}
