package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func terms(words ...string) map[string]RiskTier {
	m := make(map[string]RiskTier, len(words))
	for _, w := range words {
		m[w] = TierLow
	}
	return m
}

func TestAutomatonEmpty(t *testing.T) {
	a := buildAutomaton(nil)
	assert.Equal(t, 1, a.size())
	assert.Empty(t, a.findAll("anything at all"))
}

func TestAutomatonExactMatch(t *testing.T) {
	a := buildAutomaton(terms("badword"))
	assert.Equal(t, []string{"badword"}, a.findAll("badword"))
	assert.Empty(t, a.findAll("badwor"))
}

func TestAutomatonSubstringMatch(t *testing.T) {
	a := buildAutomaton(terms("spam"))
	assert.Equal(t, []string{"spam"}, a.findAll("thisisspamhere"))
}

func TestAutomatonOverlappingViaFailureLinks(t *testing.T) {
	a := buildAutomaton(terms("he", "she", "his", "hers"))
	got := a.findAll("ushers")
	assert.ElementsMatch(t, []string{"she", "he", "hers"}, got)
}

func TestAutomatonPrefixTermsBothTerminal(t *testing.T) {
	a := buildAutomaton(terms("ab", "abc"))
	assert.ElementsMatch(t, []string{"ab", "abc"}, a.findAll("abc"))
	assert.Equal(t, []string{"ab"}, a.findAll("abd"))
}

func TestAutomatonDeduplicates(t *testing.T) {
	a := buildAutomaton(terms("spam"))
	assert.Equal(t, []string{"spam"}, a.findAll("spam spam spam"))
}

func TestAutomatonMultipleDistinct(t *testing.T) {
	a := buildAutomaton(terms("spam", "badword"))
	got := a.findAll("thisisspamandbadwordhere")
	assert.Equal(t, []string{"spam", "badword"}, got)
}

func TestAutomatonCJKTerms(t *testing.T) {
	a := buildAutomaton(terms("敏感词"))
	assert.Equal(t, []string{"敏感词"}, a.findAll("这里有敏感词出现"))
}

func TestAutomatonSkipsEmptyTerm(t *testing.T) {
	a := buildAutomaton(map[string]RiskTier{"": TierHigh, "x": TierLow})
	assert.Equal(t, []string{"x"}, a.findAll("x"))
}

func TestAutomatonDeterministic(t *testing.T) {
	a := buildAutomaton(terms("he", "she", "his", "hers", "spam"))
	first := a.findAll("ushers spam his")
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, a.findAll("ushers spam his"))
	}
}
