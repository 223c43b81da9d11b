package words

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Await-d/maple-blog-sub003/internal/filter"
)

// PostgresStore keeps the dictionary in the sensitive_words table.
type PostgresStore struct {
	db *pgxpool.Pool
}

func NewPostgresStore(db *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) LoadAll(ctx context.Context) (map[filter.RiskTier][]string, error) {
	rows, err := s.db.Query(ctx, "SELECT word, tier FROM sensitive_words")
	if err != nil {
		return nil, fmt.Errorf("query sensitive words: %w", err)
	}
	defer rows.Close()

	out := make(map[filter.RiskTier][]string)
	for rows.Next() {
		var word, tierName string
		if err := rows.Scan(&word, &tierName); err != nil {
			return nil, fmt.Errorf("scan sensitive word: %w", err)
		}
		tier, err := filter.ParseTier(tierName)
		if err != nil {
			slog.Warn("skipping sensitive word with unknown tier", "word", word, "tier", tierName)
			continue
		}
		out[tier] = append(out[tier], word)
	}
	return out, rows.Err()
}

func (s *PostgresStore) Upsert(ctx context.Context, words []string, tier filter.RiskTier) error {
	batch := &pgx.Batch{}
	for _, word := range words {
		batch.Queue(
			`INSERT INTO sensitive_words (word, tier) VALUES ($1, $2)
			 ON CONFLICT (word) DO UPDATE SET tier = EXCLUDED.tier, updated_at = now()`,
			word, tier.String(),
		)
	}
	if err := s.db.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("upsert %d words: %w", len(words), err)
	}
	return nil
}

func (s *PostgresStore) Delete(ctx context.Context, words []string) error {
	if _, err := s.db.Exec(ctx, "DELETE FROM sensitive_words WHERE word = ANY($1)", words); err != nil {
		return fmt.Errorf("delete words: %w", err)
	}
	return nil
}
