package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStoreUpsertAndStats(t *testing.T) {
	s := newPatternStore()
	s.upsert("spam", TierLow)
	s.upsert("badword", TierHigh)
	s.upsert("scam", TierMedium)

	st := s.stats()
	assert.Equal(t, Stats{High: 1, Medium: 1, Low: 1, Total: 3}, st)
}

func TestStoreUpsertOverwritesTier(t *testing.T) {
	s := newPatternStore()
	s.upsert("spam", TierLow)
	s.upsert("spam", TierHigh)

	st := s.stats()
	assert.Equal(t, 1, st.Total)
	assert.Equal(t, 1, st.High)
	assert.Equal(t, 0, st.Low)
	assert.Equal(t, TierHigh, s.terms["spam"])
}

func TestStoreRemoveIgnoresMissing(t *testing.T) {
	s := newPatternStore()
	s.upsert("spam", TierLow)

	removed := s.remove([]string{"spam", "notloaded"})
	assert.Equal(t, 1, removed)
	assert.Equal(t, 0, s.stats().Total)
}

func TestStoreSnapshotIsIsolated(t *testing.T) {
	s := newPatternStore()
	s.upsert("spam", TierLow)

	snap := s.snapshot()
	s.upsert("badword", TierHigh)
	s.remove([]string{"spam"})

	assert.Equal(t, map[string]RiskTier{"spam": TierLow}, snap)
}

func TestStoreTierIndexStaysConsistent(t *testing.T) {
	s := newPatternStore()
	s.upsert("a", TierLow)
	s.upsert("a", TierMedium)
	s.upsert("a", TierHigh)
	s.remove([]string{"a"})

	for tier, set := range s.byTier {
		assert.Empty(t, set, "tier %s", tier)
	}
	assert.Empty(t, s.terms)
}
