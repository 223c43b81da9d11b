package filter

// Stats reports the number of distinct terms per tier.
type Stats struct {
	High   int `json:"high"`
	Medium int `json:"medium"`
	Low    int `json:"low"`
	Total  int `json:"total"`
}

// patternStore is the authoritative mapping of normalized term to risk
// tier, with a per-tier index kept in lockstep for statistics. It is not
// goroutine-safe on its own; the Filter serializes all access to it.
type patternStore struct {
	terms  map[string]RiskTier
	byTier map[RiskTier]map[string]struct{}
}

func newPatternStore() *patternStore {
	return &patternStore{
		terms: make(map[string]RiskTier),
		byTier: map[RiskTier]map[string]struct{}{
			TierLow:    {},
			TierMedium: {},
			TierHigh:   {},
		},
	}
}

// upsert inserts the term or, if it already exists, moves it to the new
// tier. Both the primary map and the tier index change under the same
// mutation so they never disagree.
func (s *patternStore) upsert(term string, tier RiskTier) {
	if prev, ok := s.terms[term]; ok {
		if prev == tier {
			return
		}
		delete(s.byTier[prev], term)
	}
	s.terms[term] = tier
	s.byTier[tier][term] = struct{}{}
}

// remove deletes the given terms, ignoring any that are absent, and
// returns how many were actually removed.
func (s *patternStore) remove(terms []string) int {
	removed := 0
	for _, term := range terms {
		tier, ok := s.terms[term]
		if !ok {
			continue
		}
		delete(s.terms, term)
		delete(s.byTier[tier], term)
		removed++
	}
	return removed
}

func (s *patternStore) clear() {
	s.terms = make(map[string]RiskTier)
	for tier := range s.byTier {
		s.byTier[tier] = map[string]struct{}{}
	}
}

// snapshot copies the current term set so the automaton builder works
// against a single consistent point in time.
func (s *patternStore) snapshot() map[string]RiskTier {
	snap := make(map[string]RiskTier, len(s.terms))
	for term, tier := range s.terms {
		snap[term] = tier
	}
	return snap
}

func (s *patternStore) stats() Stats {
	return Stats{
		High:   len(s.byTier[TierHigh]),
		Medium: len(s.byTier[TierMedium]),
		Low:    len(s.byTier[TierLow]),
		Total:  len(s.terms),
	}
}
