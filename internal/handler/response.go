package handler

import "github.com/Menova10/menova-empower-journey/internal/domain"

type ContentResponse struct {
	Items    []domain.ContentItem `json:"items"`
	Metadata domain.ContentMeta   `json:"metadata"`
}

type RefreshRequest struct {
	Topics []string `json:"topics"`
}

type HealthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}
