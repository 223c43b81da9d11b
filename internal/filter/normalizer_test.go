package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeCaseFolding(t *testing.T) {
	n := NewNormalizer(false, false)
	assert.Equal(t, "badword", n.Normalize("BadWord"))
	assert.Equal(t, "hello world!", n.Normalize("Hello World!"))
}

func TestNormalizeCaseSensitive(t *testing.T) {
	n := NewNormalizer(true, false)
	assert.Equal(t, "BadWord", n.Normalize("BadWord"))
}

func TestNormalizeFuzzyStripsSeparators(t *testing.T) {
	n := NewNormalizer(false, true)
	assert.Equal(t, "spam", n.Normalize("S.p-a m"))
	assert.Equal(t, "spam", n.Normalize("s*p*a*m!"))
	assert.Equal(t, "badword123", n.Normalize("bad_word 123"))
}

func TestNormalizeFuzzyKeepsCJK(t *testing.T) {
	n := NewNormalizer(false, true)
	assert.Equal(t, "敏感词abc", n.Normalize("敏感词 a-b-c"))
}

func TestNormalizeFuzzyDropsOtherScripts(t *testing.T) {
	n := NewNormalizer(false, true)
	// Non-CJK, non-alphanumeric runes are separators under fuzzy matching.
	assert.Equal(t, "ab", n.Normalize("aбb"))
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{"Hello, World!", "s p a m", "敏感词", "", "ALLCAPS"}
	for _, fuzzy := range []bool{true, false} {
		for _, cs := range []bool{true, false} {
			n := NewNormalizer(cs, fuzzy)
			for _, in := range inputs {
				once := n.Normalize(in)
				assert.Equal(t, once, n.Normalize(once), "input %q cs=%v fuzzy=%v", in, cs, fuzzy)
			}
		}
	}
}

func TestNormalizeEmpty(t *testing.T) {
	n := NewNormalizer(false, true)
	assert.Equal(t, "", n.Normalize(""))
	assert.Equal(t, "", n.Normalize("!!! ---"))
}
