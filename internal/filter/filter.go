// Package filter detects and masks sensitive words in user-submitted
// text. Matching runs against an immutable Aho-Corasick automaton that is
// atomically replaced whenever the dictionary changes, so lookups never
// block on mutations and never observe a half-built tree.
package filter

import (
	"log/slog"
	"sync"
	"sync/atomic"
)

// Options configures matching and masking behavior.
type Options struct {
	// MaskChar replaces matched characters when masking is requested.
	MaskChar rune
	// FuzzyMatch strips separators before comparison so obfuscated
	// spellings (s p a m, s.p.a.m) still match.
	FuzzyMatch bool
	// CaseSensitive disables case folding.
	CaseSensitive bool
	// MediumReviewThreshold is the number of distinct medium-tier matches
	// that escalates a result to manual review. Any high-tier match
	// escalates regardless.
	MediumReviewThreshold int
	// SkipDefaults leaves the built-in word list out of the dictionary.
	SkipDefaults bool
}

func (o *Options) applyDefaults() {
	if o.MaskChar == 0 {
		o.MaskChar = '*'
	}
	if o.MediumReviewThreshold <= 0 {
		o.MediumReviewThreshold = 3
	}
}

// generation is one published dictionary build: the automaton plus the
// tier snapshot it was compiled from. Both are immutable, so a check call
// classifies against exactly the term set it matched against.
type generation struct {
	ac      *automaton
	tiers   map[string]RiskTier
	version uint64
}

// Filter is the mutation coordinator and the single entry point callers
// hold. Checks are lock-free reads of the current generation; mutations
// serialize on a mutex, rebuild, and publish with one atomic swap.
type Filter struct {
	opts Options
	norm Normalizer

	mu      sync.Mutex // guards store and publishing
	store   *patternStore
	version uint64

	current atomic.Pointer[generation]
}

// New builds a filter preloaded with the built-in word list (unless
// Options.SkipDefaults is set) and publishes its first automaton.
func New(opts Options) *Filter {
	opts.applyDefaults()
	f := &Filter{
		opts:  opts,
		norm:  NewNormalizer(opts.CaseSensitive, opts.FuzzyMatch),
		store: newPatternStore(),
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if !opts.SkipDefaults {
		for tier, words := range defaultWords {
			f.upsertLocked(words, tier)
		}
	}
	f.publishLocked()
	return f
}

// Check scans text for sensitive words and classifies the outcome. It
// never returns an error: an internal fault degrades to a fail-closed
// result that flags the content for manual review.
func (f *Filter) Check(text string, replaceWithMask bool) (res Result) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("sensitive word scan failed, failing closed", "panic", r)
			res = failClosed(text)
		}
	}()

	gen := f.current.Load()
	matched := gen.ac.findAll(f.norm.Normalize(text))
	return f.classify(text, matched, gen.tiers, replaceWithMask)
}

// CheckBatch applies Check to each input independently and in parallel.
// Results are positional: result i corresponds to texts[i].
func (f *Filter) CheckBatch(texts []string, replaceWithMask bool) []Result {
	results := make([]Result, len(texts))
	var wg sync.WaitGroup
	for i, text := range texts {
		wg.Add(1)
		go func(i int, text string) {
			defer wg.Done()
			results[i] = f.Check(text, replaceWithMask)
		}(i, text)
	}
	wg.Wait()
	return results
}

// AddWords inserts (or re-tiers) the given words and publishes a fresh
// automaton. Words that normalize to nothing are skipped and logged.
// Returns the number of words accepted.
func (f *Filter) AddWords(words []string, tier RiskTier) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	added := f.upsertLocked(words, tier)
	f.publishLocked()
	return added
}

// RemoveWords deletes the given words, ignoring any that are not loaded,
// and publishes a fresh automaton. Returns the number actually removed.
func (f *Filter) RemoveWords(words []string) int {
	normalized := make([]string, 0, len(words))
	for _, w := range words {
		normalized = append(normalized, f.norm.Normalize(w))
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	removed := f.store.remove(normalized)
	f.publishLocked()
	return removed
}

// Reload replaces the entire dictionary with the given per-tier lists
// (plus the built-in list unless disabled) in one rebuild.
func (f *Filter) Reload(words map[RiskTier][]string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.store.clear()
	if !f.opts.SkipDefaults {
		for tier, list := range defaultWords {
			f.upsertLocked(list, tier)
		}
	}
	for tier, list := range words {
		f.upsertLocked(list, tier)
	}
	f.publishLocked()
}

// Stats reports distinct term counts per tier.
func (f *Filter) Stats() Stats {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.store.stats()
}

// Version identifies the currently published dictionary generation. It
// increases on every publish, so it can key caches of check results.
func (f *Filter) Version() uint64 {
	return f.current.Load().version
}

// Normalize exposes the filter's normalizer, mainly so callers can
// canonicalize terms the same way the dictionary does.
func (f *Filter) Normalize(text string) string {
	return f.norm.Normalize(text)
}

func (f *Filter) upsertLocked(words []string, tier RiskTier) int {
	added := 0
	for _, w := range words {
		term := f.norm.Normalize(w)
		if term == "" {
			slog.Warn("skipping sensitive word that normalizes to nothing", "word", w)
			continue
		}
		f.store.upsert(term, tier)
		added++
	}
	return added
}

// publishLocked snapshots the store, compiles it and swaps the new
// generation in with a single atomic store. In-flight checks keep the
// generation they loaded; anything starting after this sees the new one.
func (f *Filter) publishLocked() {
	snap := f.store.snapshot()
	f.version++
	gen := &generation{
		ac:      buildAutomaton(snap),
		tiers:   snap,
		version: f.version,
	}
	f.current.Store(gen)
	slog.Debug("published sensitive word automaton",
		"version", gen.version, "terms", len(snap), "nodes", gen.ac.size())
}
