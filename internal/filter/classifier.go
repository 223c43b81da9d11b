package filter

import (
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"
)

// Result holds the outcome of one filtering call.
type Result struct {
	ContainsSensitiveWords bool     `json:"contains_sensitive_words"`
	MatchedWords           []string `json:"matched_words,omitempty"`
	HighRiskWords          []string `json:"high_risk_words,omitempty"`
	MediumRiskWords        []string `json:"medium_risk_words,omitempty"`
	LowRiskWords           []string `json:"low_risk_words,omitempty"`
	TotalDetectedWords     int      `json:"total_detected_words"`
	RequiresManualReview   bool     `json:"requires_manual_review"`
	FilteredContent        string   `json:"filtered_content"`
}

// classify buckets matched terms by tier, applies the manual-review
// policy and optionally masks the original text. A term whose tier is
// missing from the snapshot still counts toward the total but lands in no
// bucket.
func (f *Filter) classify(original string, matched []string, tiers map[string]RiskTier, replaceWithMask bool) Result {
	res := Result{
		ContainsSensitiveWords: len(matched) > 0,
		MatchedWords:           matched,
		TotalDetectedWords:     len(matched),
		FilteredContent:        original,
	}

	for _, word := range matched {
		tier, ok := tiers[word]
		if !ok {
			continue
		}
		switch tier {
		case TierHigh:
			res.HighRiskWords = append(res.HighRiskWords, word)
		case TierMedium:
			res.MediumRiskWords = append(res.MediumRiskWords, word)
		case TierLow:
			res.LowRiskWords = append(res.LowRiskWords, word)
		}
	}

	if len(res.HighRiskWords) > 0 || len(res.MediumRiskWords) >= f.opts.MediumReviewThreshold {
		res.RequiresManualReview = true
	}

	if replaceWithMask && len(matched) > 0 {
		res.FilteredContent = f.mask(original, matched)
	}
	return res
}

// mask replaces every occurrence of each matched term in the original
// (non-normalized) text with a run of the mask character matching the
// occurrence's rune length. Longer terms are masked first so a shorter
// term that is a substring of an already-masked longer one cannot
// re-match the mask characters.
func (f *Filter) mask(text string, matched []string) string {
	terms := make([]string, len(matched))
	copy(terms, matched)
	sort.SliceStable(terms, func(i, j int) bool {
		return utf8.RuneCountInString(terms[i]) > utf8.RuneCountInString(terms[j])
	})

	maskChar := string(f.opts.MaskChar)
	for _, term := range terms {
		re, err := f.termPattern(term)
		if err != nil {
			continue
		}
		text = re.ReplaceAllStringFunc(text, func(m string) string {
			return strings.Repeat(maskChar, utf8.RuneCountInString(m))
		})
	}
	return text
}

// separatorClass matches any rune fuzzy normalization strips, i.e. the
// characters obfuscated spellings interleave between term characters.
const separatorClass = `[^0-9A-Za-z` + "一-鿿" + `]`

// termPattern builds the occurrence pattern for one normalized term. In
// fuzzy mode the term's runes may be separated by any number of separator
// runes so spaced-out or punctuated variants in the original are masked
// too.
func (f *Filter) termPattern(term string) (*regexp.Regexp, error) {
	var b strings.Builder
	if !f.opts.CaseSensitive {
		b.WriteString("(?i)")
	}
	first := true
	for _, r := range term {
		if !first && f.opts.FuzzyMatch {
			b.WriteString(separatorClass + "*")
		}
		b.WriteString(regexp.QuoteMeta(string(r)))
		first = false
	}
	return regexp.Compile(b.String())
}

// failClosed is the result returned when scanning itself breaks: flag the
// content and route it to review rather than letting it through silently.
func failClosed(original string) Result {
	return Result{
		ContainsSensitiveWords: true,
		RequiresManualReview:   true,
		FilteredContent:        original,
	}
}
