package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Await-d/maple-blog-sub003/internal/config"
	"github.com/Await-d/maple-blog-sub003/internal/filter"
	"github.com/Await-d/maple-blog-sub003/internal/words"
)

func newFilterFixture(t *testing.T) (*filter.Filter, *words.Service) {
	t.Helper()
	f := filter.New(filter.Options{FuzzyMatch: true, SkipDefaults: true})
	f.AddWords([]string{"spam"}, filter.TierLow)
	f.AddWords([]string{"badword"}, filter.TierHigh)
	svc := words.NewService(f, config.FilterConfig{}, nil, nil, nil)
	return f, svc
}

func postJSON(t *testing.T, handler http.HandlerFunc, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	data, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/", bytes.NewReader(data))
	rec := httptest.NewRecorder()
	handler(rec, req)
	return rec
}

func TestFilterHandlerCheck(t *testing.T) {
	f, _ := newFilterFixture(t)
	h := NewFilterHandler(f, nil)

	rec := postJSON(t, h.Check, map[string]interface{}{
		"text":              "this is spam and badword here",
		"replace_with_mask": true,
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var res filter.Result
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.True(t, res.ContainsSensitiveWords)
	assert.True(t, res.RequiresManualReview)
	assert.Equal(t, "this is **** and ******* here", res.FilteredContent)
}

func TestFilterHandlerCheckRequiresText(t *testing.T) {
	f, _ := newFilterFixture(t)
	h := NewFilterHandler(f, nil)

	rec := postJSON(t, h.Check, map[string]string{"text": ""})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestFilterHandlerCheckInvalidBody(t *testing.T) {
	f, _ := newFilterFixture(t)
	h := NewFilterHandler(f, nil)

	req := httptest.NewRequest(http.MethodPost, "/", bytes.NewReader([]byte("{broken")))
	rec := httptest.NewRecorder()
	h.Check(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestFilterHandlerCheckBatch(t *testing.T) {
	f, _ := newFilterFixture(t)
	h := NewFilterHandler(f, nil)

	rec := postJSON(t, h.CheckBatch, map[string]interface{}{
		"texts": []string{"clean", "spam here"},
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Results []filter.Result `json:"results"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Results, 2)
	assert.False(t, body.Results[0].ContainsSensitiveWords)
	assert.True(t, body.Results[1].ContainsSensitiveWords)
}

func TestFilterHandlerCheckBatchTooLarge(t *testing.T) {
	f, _ := newFilterFixture(t)
	h := NewFilterHandler(f, nil)

	texts := make([]string, maxBatchSize+1)
	for i := range texts {
		texts[i] = "x"
	}
	rec := postJSON(t, h.CheckBatch, map[string]interface{}{"texts": texts})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestWordHandlerAdd(t *testing.T) {
	_, svc := newFilterFixture(t)
	h := NewWordHandler(svc, nil)

	rec := postJSON(t, h.Add, wordListRequest{Words: []string{"newword"}, Tier: "High"})
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]int
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 1, body["added"])
	assert.Equal(t, 2, svc.Stats().High)
}

func TestWordHandlerAddRejectsUnknownTier(t *testing.T) {
	_, svc := newFilterFixture(t)
	h := NewWordHandler(svc, nil)

	rec := postJSON(t, h.Add, wordListRequest{Words: []string{"x"}, Tier: "critical"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestWordHandlerRemove(t *testing.T) {
	_, svc := newFilterFixture(t)
	h := NewWordHandler(svc, nil)

	rec := postJSON(t, h.Remove, map[string]interface{}{"words": []string{"spam"}})
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]int
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 1, body["removed"])
	assert.Equal(t, 0, svc.Stats().Low)
}

func TestWordHandlerStats(t *testing.T) {
	_, svc := newFilterFixture(t)
	h := NewWordHandler(svc, nil)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	h.Stats(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var st filter.Stats
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &st))
	assert.Equal(t, filter.Stats{High: 1, Low: 1, Total: 2}, st)
}

func TestWordHandlerReload(t *testing.T) {
	_, svc := newFilterFixture(t)
	h := NewWordHandler(svc, nil)

	req := httptest.NewRequest(http.MethodPost, "/", nil)
	rec := httptest.NewRecorder()
	h.Reload(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	// Reload rebuilds from configured sources only; the ad-hoc words are
	// gone because this fixture has no persistent store.
	assert.Equal(t, 0, svc.Stats().Total)
}
