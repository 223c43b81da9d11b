package words

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Await-d/maple-blog-sub003/internal/filter"
)

func writeWordFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "words.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadWordsFile(t *testing.T) {
	path := writeWordFile(t, `{"High": ["alpha"], "medium": ["beta", "gamma"], "LOW": ["delta"]}`)

	lists, err := LoadWordsFile(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"alpha"}, lists[filter.TierHigh])
	assert.Equal(t, []string{"beta", "gamma"}, lists[filter.TierMedium])
	assert.Equal(t, []string{"delta"}, lists[filter.TierLow])
}

func TestLoadWordsFileSkipsUnknownTier(t *testing.T) {
	path := writeWordFile(t, `{"high": ["alpha"], "critical": ["ignored"]}`)

	lists, err := LoadWordsFile(path)
	require.NoError(t, err)

	assert.Len(t, lists, 1)
	assert.Equal(t, []string{"alpha"}, lists[filter.TierHigh])
}

func TestLoadWordsFileMissing(t *testing.T) {
	_, err := LoadWordsFile(filepath.Join(t.TempDir(), "absent.json"))
	assert.Error(t, err)
}

func TestLoadWordsFileMalformed(t *testing.T) {
	path := writeWordFile(t, `{not json`)
	_, err := LoadWordsFile(path)
	assert.Error(t, err)
}
