package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/Menova10/menova-empower-journey/internal/service"
)

// Pinger is a dependency the health check can probe.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Handler struct {
	service *service.Aggregator
	checks  map[string]Pinger
}

func NewHandler(svc *service.Aggregator, checks map[string]Pinger) *Handler {
	return &Handler{service: svc, checks: checks}
}

// WriteJSON writes v as a JSON response with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writes JSON error response.
func writeError(w http.ResponseWriter, status int, errCode, message string) {
	WriteJSON(w, status, ErrorResponse{
		Error:   errCode,
		Message: message,
	})
}

// SplitList splits a comma separated query value into trimmed, non-empty parts.
func SplitList(v string) []string {
	if v == "" {
		return nil
	}
	return CleanList(strings.Split(v, ","))
}

func CleanList(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
