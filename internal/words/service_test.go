package words

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Await-d/maple-blog-sub003/internal/audit"
	"github.com/Await-d/maple-blog-sub003/internal/auth"
	"github.com/Await-d/maple-blog-sub003/internal/config"
	"github.com/Await-d/maple-blog-sub003/internal/filter"
)

type fakeStore struct {
	words   map[string]filter.RiskTier
	loadErr error
}

func newFakeStore() *fakeStore {
	return &fakeStore{words: map[string]filter.RiskTier{}}
}

func (s *fakeStore) LoadAll(context.Context) (map[filter.RiskTier][]string, error) {
	if s.loadErr != nil {
		return nil, s.loadErr
	}
	out := make(map[filter.RiskTier][]string)
	for w, t := range s.words {
		out[t] = append(out[t], w)
	}
	return out, nil
}

func (s *fakeStore) Upsert(_ context.Context, words []string, tier filter.RiskTier) error {
	for _, w := range words {
		s.words[w] = tier
	}
	return nil
}

func (s *fakeStore) Delete(_ context.Context, words []string) error {
	for _, w := range words {
		delete(s.words, w)
	}
	return nil
}

type fakeNotifier struct {
	published int
}

func (n *fakeNotifier) Publish(context.Context) error {
	n.published++
	return nil
}

type fakeAuditor struct {
	actions []string
	entries []audit.LogEntry
}

func (a *fakeAuditor) Log(_ context.Context, entry audit.LogEntry) error {
	a.actions = append(a.actions, entry.Action)
	a.entries = append(a.entries, entry)
	return nil
}

func newTestService(store Store, notifier Notifier, auditor Auditor, cfg config.FilterConfig) *Service {
	f := filter.New(filter.Options{FuzzyMatch: true, SkipDefaults: true})
	return NewService(f, cfg, store, notifier, auditor)
}

func TestBootstrapLoadsConfigAndStore(t *testing.T) {
	store := newFakeStore()
	store.words["persisted"] = filter.TierHigh

	svc := newTestService(store, nil, nil, config.FilterConfig{
		MediumWords: []string{"configured"},
	})
	svc.Bootstrap(context.Background())

	st := svc.Stats()
	assert.Equal(t, 1, st.High)
	assert.Equal(t, 1, st.Medium)
	assert.Equal(t, 2, st.Total)
}

func TestBootstrapSurvivesStoreFailure(t *testing.T) {
	store := newFakeStore()
	store.loadErr = errors.New("db down")

	svc := newTestService(store, nil, nil, config.FilterConfig{
		LowWords: []string{"configured"},
	})
	svc.Bootstrap(context.Background())

	assert.Equal(t, 1, svc.Stats().Total)
}

func TestAddWordsPersistsAuditsAndBroadcasts(t *testing.T) {
	store := newFakeStore()
	notifier := &fakeNotifier{}
	auditor := &fakeAuditor{}

	svc := newTestService(store, notifier, auditor, config.FilterConfig{})

	added, err := svc.AddWords(context.Background(), []string{"Bad Word"}, filter.TierHigh)
	require.NoError(t, err)
	assert.Equal(t, 1, added)

	// Persisted in normalized form.
	assert.Equal(t, filter.TierHigh, store.words["badword"])
	assert.Equal(t, 1, notifier.published)
	assert.Equal(t, []string{"words.add"}, auditor.actions)
}

func TestMutationsAuditCallerIP(t *testing.T) {
	auditor := &fakeAuditor{}
	svc := newTestService(newFakeStore(), nil, auditor, config.FilterConfig{})

	ctx := auth.WithClientIP(context.Background(), "203.0.113.7")

	_, err := svc.AddWords(ctx, []string{"badword"}, filter.TierHigh)
	require.NoError(t, err)
	_, err = svc.RemoveWords(ctx, []string{"badword"})
	require.NoError(t, err)
	svc.Reload(ctx)

	require.Len(t, auditor.entries, 3)
	for _, entry := range auditor.entries {
		assert.Equal(t, "203.0.113.7", entry.IPAddress, "action %s", entry.Action)
	}
}

func TestRemoveWords(t *testing.T) {
	store := newFakeStore()
	notifier := &fakeNotifier{}

	svc := newTestService(store, notifier, &fakeAuditor{}, config.FilterConfig{})
	_, err := svc.AddWords(context.Background(), []string{"badword"}, filter.TierHigh)
	require.NoError(t, err)

	removed, err := svc.RemoveWords(context.Background(), []string{"badword", "neverloaded"})
	require.NoError(t, err)
	assert.Equal(t, 1, removed)
	assert.NotContains(t, store.words, "badword")
	assert.Equal(t, 0, svc.Stats().Total)
}

func TestReloadSignalDoesNotRebroadcast(t *testing.T) {
	store := newFakeStore()
	store.words["fresh"] = filter.TierLow
	notifier := &fakeNotifier{}

	svc := newTestService(store, notifier, nil, config.FilterConfig{})
	require.NoError(t, svc.HandleReloadSignal(context.Background()))

	assert.Equal(t, 1, svc.Stats().Total)
	assert.Equal(t, 0, notifier.published)
}

func TestReloadBroadcastsOnce(t *testing.T) {
	notifier := &fakeNotifier{}
	auditor := &fakeAuditor{}

	svc := newTestService(newFakeStore(), notifier, auditor, config.FilterConfig{})
	svc.Reload(context.Background())

	assert.Equal(t, 1, notifier.published)
	assert.Equal(t, []string{"words.reload"}, auditor.actions)
}
