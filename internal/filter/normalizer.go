package filter

import "strings"

// Normalizer canonicalizes raw text and dictionary terms into the form the
// automaton compares. It is pure and safe to call from any goroutine.
type Normalizer struct {
	caseSensitive bool
	fuzzy         bool
}

func NewNormalizer(caseSensitive, fuzzy bool) Normalizer {
	return Normalizer{caseSensitive: caseSensitive, fuzzy: fuzzy}
}

// Normalize case-folds the input (unless case-sensitive matching is
// configured) and, in fuzzy mode, drops every rune that is not ASCII
// alphanumeric or a CJK ideograph. Idempotent: normalizing an already
// normalized string is a no-op.
func (n Normalizer) Normalize(text string) string {
	if !n.caseSensitive {
		text = strings.ToLower(text)
	}
	if !n.fuzzy {
		return text
	}

	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		if isComparable(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// isComparable reports whether a rune survives fuzzy normalization.
// Everything else (punctuation, whitespace, symbols, other scripts) is a
// separator that obfuscated content hides behind.
func isComparable(r rune) bool {
	switch {
	case r >= '0' && r <= '9':
		return true
	case r >= 'a' && r <= 'z':
		return true
	case r >= 'A' && r <= 'Z':
		return true
	case r >= 0x4E00 && r <= 0x9FFF: // CJK Unified Ideographs
		return true
	}
	return false
}
