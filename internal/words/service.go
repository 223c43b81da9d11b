// Package words is the administrative layer around the sensitive word
// filter: it loads the dictionary from configuration and Postgres, writes
// mutations through, audits them, and fans reloads out to every running
// instance over Redis.
package words

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Await-d/maple-blog-sub003/internal/audit"
	"github.com/Await-d/maple-blog-sub003/internal/auth"
	"github.com/Await-d/maple-blog-sub003/internal/config"
	"github.com/Await-d/maple-blog-sub003/internal/filter"
)

// Store persists dictionary entries. Implementations must tolerate
// duplicate upserts (the dictionary is keyed by normalized word).
type Store interface {
	LoadAll(ctx context.Context) (map[filter.RiskTier][]string, error)
	Upsert(ctx context.Context, words []string, tier filter.RiskTier) error
	Delete(ctx context.Context, words []string) error
}

// Notifier broadcasts "dictionary changed" to the other instances.
type Notifier interface {
	Publish(ctx context.Context) error
}

// Auditor records administrative mutations.
type Auditor interface {
	Log(ctx context.Context, entry audit.LogEntry) error
}

type Service struct {
	filter   *filter.Filter
	cfg      config.FilterConfig
	store    Store    // nil when no database is configured
	notifier Notifier // nil when no Redis is configured
	auditor  Auditor  // nil disables auditing
}

func NewService(f *filter.Filter, cfg config.FilterConfig, store Store, notifier Notifier, auditor Auditor) *Service {
	return &Service{filter: f, cfg: cfg, store: store, notifier: notifier, auditor: auditor}
}

// Bootstrap performs the initial dictionary load: built-ins (already in
// the filter), then the configured env/file lists, then the persistent
// store. Unreachable sources degrade to a warning; the filter stays
// serviceable with whatever did load.
func (s *Service) Bootstrap(ctx context.Context) {
	s.rebuild(ctx)
	st := s.filter.Stats()
	slog.Info("sensitive word dictionary loaded",
		"high", st.High, "medium", st.Medium, "low", st.Low, "total", st.Total)
}

// AddWords persists the words and publishes them to the live filter.
func (s *Service) AddWords(ctx context.Context, list []string, tier filter.RiskTier) (int, error) {
	if s.store != nil {
		if err := s.store.Upsert(ctx, s.normalizeAll(list), tier); err != nil {
			return 0, fmt.Errorf("persist words: %w", err)
		}
	}

	added := s.filter.AddWords(list, tier)

	s.auditLog(ctx, "words.add", map[string]interface{}{"count": added, "tier": tier.String()})
	s.broadcast(ctx)
	return added, nil
}

// RemoveWords deletes the words from persistence and the live filter.
// Words that were never loaded are ignored.
func (s *Service) RemoveWords(ctx context.Context, list []string) (int, error) {
	if s.store != nil {
		if err := s.store.Delete(ctx, s.normalizeAll(list)); err != nil {
			return 0, fmt.Errorf("delete words: %w", err)
		}
	}

	removed := s.filter.RemoveWords(list)

	s.auditLog(ctx, "words.remove", map[string]interface{}{"count": removed})
	s.broadcast(ctx)
	return removed, nil
}

// Reload rebuilds the whole dictionary from every source and tells the
// rest of the fleet to do the same.
func (s *Service) Reload(ctx context.Context) {
	s.rebuild(ctx)
	s.auditLog(ctx, "words.reload", map[string]interface{}{"total": s.filter.Stats().Total})
	s.broadcast(ctx)
}

// HandleReloadSignal is the pub/sub callback: rebuild locally without
// re-broadcasting, or every reload would echo around the fleet forever.
func (s *Service) HandleReloadSignal(ctx context.Context) error {
	s.rebuild(ctx)
	return nil
}

func (s *Service) Stats() filter.Stats {
	return s.filter.Stats()
}

func (s *Service) rebuild(ctx context.Context) {
	lists := map[filter.RiskTier][]string{
		filter.TierHigh:   append([]string(nil), s.cfg.HighWords...),
		filter.TierMedium: append([]string(nil), s.cfg.MediumWords...),
		filter.TierLow:    append([]string(nil), s.cfg.LowWords...),
	}

	if s.cfg.WordsFile != "" {
		fromFile, err := LoadWordsFile(s.cfg.WordsFile)
		if err != nil {
			slog.Warn("word file unavailable, continuing without it", "path", s.cfg.WordsFile, "error", err)
		} else {
			mergeLists(lists, fromFile)
		}
	}

	if s.store != nil {
		fromDB, err := s.store.LoadAll(ctx)
		if err != nil {
			slog.Warn("persistent word store unavailable, continuing without it", "error", err)
		} else {
			mergeLists(lists, fromDB)
		}
	}

	s.filter.Reload(lists)
}

func (s *Service) normalizeAll(list []string) []string {
	out := make([]string, 0, len(list))
	for _, w := range list {
		if n := s.filter.Normalize(w); n != "" {
			out = append(out, n)
		}
	}
	return out
}

func (s *Service) auditLog(ctx context.Context, action string, details map[string]interface{}) {
	if s.auditor == nil {
		return
	}
	if err := s.auditor.Log(ctx, audit.LogEntry{
		Action:       action,
		ResourceType: "sensitive_word",
		Details:      details,
		IPAddress:    auth.ClientIPFromContext(ctx),
	}); err != nil {
		slog.Warn("audit log failed", "action", action, "error", err)
	}
}

func (s *Service) broadcast(ctx context.Context) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.Publish(ctx); err != nil {
		slog.Warn("reload broadcast failed", "error", err)
	}
}

func mergeLists(dst, src map[filter.RiskTier][]string) {
	for tier, list := range src {
		dst[tier] = append(dst[tier], list...)
	}
}
