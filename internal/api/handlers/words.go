package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/Await-d/maple-blog-sub003/internal/auth"
	"github.com/Await-d/maple-blog-sub003/internal/filter"
	"github.com/Await-d/maple-blog-sub003/internal/queue"
	"github.com/Await-d/maple-blog-sub003/internal/words"
)

// asyncImportThreshold is the list size above which an add request is
// pushed to the worker queue instead of being applied inline.
const asyncImportThreshold = 500

type WordHandler struct {
	svc   *words.Service
	queue *queue.Client // nil when Redis is unavailable
}

func NewWordHandler(svc *words.Service, qc *queue.Client) *WordHandler {
	return &WordHandler{svc: svc, queue: qc}
}

type wordListRequest struct {
	Words []string `json:"words"`
	Tier  string   `json:"tier"`
}

// Add inserts words at a tier. Large lists are handed to the worker
// queue and acknowledged with 202.
func (h *WordHandler) Add(w http.ResponseWriter, r *http.Request) {
	var req wordListRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if len(req.Words) == 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "words required"})
		return
	}

	tier, err := filter.ParseTier(req.Tier)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	if len(req.Words) > asyncImportThreshold && h.queue != nil {
		payload := queue.WordImportPayload{Words: req.Words, Tier: tier.String()}
		if p := auth.PrincipalFromContext(r.Context()); p != nil {
			payload.RequestedBy = p.Name
		}
		if err := h.queue.EnqueueWordImport(payload); err != nil {
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
			return
		}
		writeJSON(w, http.StatusAccepted, map[string]interface{}{"queued": len(req.Words)})
		return
	}

	added, err := h.svc.AddWords(r.Context(), req.Words, tier)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"added": added})
}

// Remove deletes words from the dictionary; unknown words are ignored.
func (h *WordHandler) Remove(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Words []string `json:"words"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if len(req.Words) == 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "words required"})
		return
	}

	removed, err := h.svc.RemoveWords(r.Context(), req.Words)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"removed": removed})
}

// Reload rebuilds the dictionary from every configured source.
func (h *WordHandler) Reload(w http.ResponseWriter, r *http.Request) {
	h.svc.Reload(r.Context())
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status": "reloaded",
		"stats":  h.svc.Stats(),
	})
}

func (h *WordHandler) Stats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.svc.Stats())
}
