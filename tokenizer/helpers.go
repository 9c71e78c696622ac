package tokenizer

import (
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// upperCaser folds keyword phrases and literal suffixes to upper case. A
// package-level Caser is reused across calls rather than built fresh each
// time cases.Upper(language.Und) is cheap but this mirrors how the rest of
// the corpus holds its x/text casers as shared values.
var upperCaser = cases.Upper(language.Und)

// foldUpper is the single normalization point the trie and keyword/suffix
// lookups go through, so every uppercasing decision in the package uses the
// same locale-agnostic fold.
func foldUpper(s string) string {
	return upperCaser.String(s)
}

// isDigit reports whether r is an ASCII decimal digit. Per the Non-goals,
// numeric classification never reaches into Unicode digit categories.
func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

// isAlphaOrUnderscore reports whether r can start or continue an unquoted
// identifier-like run. Per the Non-goals, this is ASCII-only.
func isAlphaOrUnderscore(r rune) bool {
	return r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

// isIdentifierRune reports whether r may appear inside an identifier once
// started: a letter, underscore, or digit.
func isIdentifierRune(r rune) bool {
	return isAlphaOrUnderscore(r) || isDigit(r)
}

func isHexDigit(r rune) bool {
	return isDigit(r) || (r >= 'a' && r <= 'f') || (r >= 'A' && r <= 'F')
}

func isBitDigit(r rune) bool {
	return r == '0' || r == '1'
}

func isRadixDigit(r rune, base int) bool {
	switch base {
	case 2:
		return isBitDigit(r)
	case 16:
		return isHexDigit(r)
	default:
		return false
	}
}

// allDigitsValidForRadix reports whether every rune in s is a valid digit
// for base (2 or 16). An empty s is vacuously true, matching a check that
// every element of an empty sequence satisfies a predicate.
func allDigitsValidForRadix(s string, base int) bool {
	for _, r := range s {
		if !isRadixDigit(r, base) {
			return false
		}
	}
	return true
}

// parsesAsRadixInteger reports whether s is a non-empty valid base-radix
// integer literal, matching integer-parse semantics where an empty string
// is rejected.
func parsesAsRadixInteger(s string, base int) bool {
	return s != "" && allDigitsValidForRadix(s, base)
}

func upper(r rune) rune {
	if r >= 'a' && r <= 'z' {
		return r - ('a' - 'A')
	}
	return r
}
