package handlers

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/Await-d/maple-blog-sub003/internal/cache"
	"github.com/Await-d/maple-blog-sub003/internal/filter"
)

const (
	maxBatchSize   = 100
	checkCacheTTL  = 5 * time.Minute
	cacheKeyPrefix = "filter:check"
)

type FilterHandler struct {
	filter *filter.Filter
	cache  *cache.Cache
}

func NewFilterHandler(f *filter.Filter, c *cache.Cache) *FilterHandler {
	return &FilterHandler{filter: f, cache: c}
}

// Check scans one text for sensitive words, optionally masking matches.
func (h *FilterHandler) Check(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Text            string `json:"text"`
		ReplaceWithMask bool   `json:"replace_with_mask"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if req.Text == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "text required"})
		return
	}

	key := h.cacheKey(req.Text, req.ReplaceWithMask)
	var res filter.Result
	if hit, err := h.cache.Get(r.Context(), key, &res); err != nil {
		slog.Warn("check cache read failed", "error", err)
	} else if hit {
		writeJSON(w, http.StatusOK, res)
		return
	}

	res = h.filter.Check(req.Text, req.ReplaceWithMask)
	if err := h.cache.Set(r.Context(), key, res, checkCacheTTL); err != nil {
		slog.Warn("check cache write failed", "error", err)
	}

	writeJSON(w, http.StatusOK, res)
}

// CheckBatch scans up to maxBatchSize texts independently; result order
// mirrors the request order.
func (h *FilterHandler) CheckBatch(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Texts           []string `json:"texts"`
		ReplaceWithMask bool     `json:"replace_with_mask"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if len(req.Texts) == 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "texts required"})
		return
	}
	if len(req.Texts) > maxBatchSize {
		writeJSON(w, http.StatusBadRequest, map[string]string{
			"error": fmt.Sprintf("batch too large, max %d texts", maxBatchSize),
		})
		return
	}

	results := h.filter.CheckBatch(req.Texts, req.ReplaceWithMask)
	writeJSON(w, http.StatusOK, map[string]interface{}{"results": results})
}

// cacheKey includes the dictionary generation so a mutation implicitly
// invalidates everything cached before it.
func (h *FilterHandler) cacheKey(text string, mask bool) string {
	sum := sha256.Sum256([]byte(text))
	return fmt.Sprintf("%s:%d:%t:%x", cacheKeyPrefix, h.filter.Version(), mask, sum)
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
