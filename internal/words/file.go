package words

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/Await-d/maple-blog-sub003/internal/filter"
)

// LoadWordsFile reads a JSON word file of the form
//
//	{"high": ["..."], "medium": ["..."], "low": ["..."]}
//
// Tier names parse case-insensitively. Entries under an unknown tier are
// skipped and logged rather than failing the whole load.
func LoadWordsFile(path string) (map[filter.RiskTier][]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read word file: %w", err)
	}

	var raw map[string][]string
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse word file %s: %w", path, err)
	}

	out := make(map[filter.RiskTier][]string, len(raw))
	for tierName, list := range raw {
		tier, err := filter.ParseTier(tierName)
		if err != nil {
			slog.Warn("skipping word list with unknown tier", "file", path, "tier", tierName, "words", len(list))
			continue
		}
		out[tier] = append(out[tier], list...)
	}
	return out, nil
}
