package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/Menova10/menova-empower-journey/internal/domain"
	"github.com/Menova10/menova-empower-journey/internal/service"
)

const defaultRelatedLimit = 3

func (h *Handler) respond(w http.ResponseWriter, items []domain.ContentItem) {
	if items == nil {
		items = []domain.ContentItem{}
	}
	meta := domain.ContentMeta{
		Count:        len(items),
		GeneratedAt:  time.Now().UTC().Format(time.RFC3339),
		SourceStatus: h.service.Status().Last(),
	}
	if checked := h.service.Status().CheckedAt(); !checked.IsZero() {
		meta.StatusCheckedAt = checked.Format(time.RFC3339)
	}
	WriteJSON(w, http.StatusOK, ContentResponse{Items: items, Metadata: meta})
}

// GET /content
func (h *Handler) GetAllContent(w http.ResponseWriter, r *http.Request) {
	h.respond(w, h.service.GetAllContent(r.Context()))
}

// POST /content/refresh
func (h *Handler) RefreshContent(w http.ResponseWriter, r *http.Request) {
	topics := SplitList(r.URL.Query().Get("topics"))

	var req RefreshRequest
	err := json.NewDecoder(io.LimitReader(r.Body, 1<<20)).Decode(&req)
	if err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, "invalid_body", "Request body must be JSON with a topics list")
		return
	}
	if len(req.Topics) > 0 {
		topics = CleanList(req.Topics)
	}

	h.respond(w, h.service.RefreshAllContent(r.Context(), topics))
}

// GET /content/personalized?symptoms=a,b
func (h *Handler) GetPersonalizedContent(w http.ResponseWriter, r *http.Request) {
	symptoms := SplitList(r.URL.Query().Get("symptoms"))
	h.respond(w, h.service.GetPersonalizedContent(r.Context(), symptoms))
}

// GET /content/{id}/related
func (h *Handler) GetRelatedContent(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimSpace(chi.URLParam(r, "id"))
	if id == "" {
		writeError(w, http.StatusBadRequest, "invalid_parameter", "Invalid id parameter")
		return
	}

	limit := defaultRelatedLimit
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		parsed, err := strconv.Atoi(limitStr)
		if err != nil || parsed < 1 || parsed > service.MaxRelated {
			writeError(w, http.StatusBadRequest, "invalid_parameter", "Invalid limit parameter")
			return
		}
		limit = parsed
	}

	h.respond(w, h.service.GetRelatedContent(r.Context(), id, limit))
}

// GET /content/status
func (h *Handler) GetStatus(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, h.service.TestAPIConnection(r.Context()))
}
