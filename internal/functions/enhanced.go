package functions

import (
	"net/http"

	"github.com/Menova10/menova-empower-journey/internal/domain"
	"github.com/Menova10/menova-empower-journey/internal/handler"
	"github.com/Menova10/menova-empower-journey/internal/source"
)

type enhancedResponse struct {
	Success bool                 `json:"success"`
	Topic   string               `json:"topic"`
	Items   []domain.ContentItem `json:"items"`
	Error   string               `json:"error,omitempty"`
}

// FetchEnhancedContent handles GET and POST /fetch-enhanced-content. It
// searches one topic through the scraper and returns the items without
// storing them.
func (f *Functions) FetchEnhancedContent(w http.ResponseWriter, r *http.Request) {
	req, err := parseRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	topic := req.Topic
	if topic == "" && len(req.Topics) > 0 {
		topic = req.Topics[0]
	}
	if topic == "" {
		topic = f.cfg.DefaultTopics[0]
	}

	resp := enhancedResponse{Topic: topic, Items: []domain.ContentItem{}}
	if f.scraper == nil {
		resp.Error = "scraper is not configured"
		handler.WriteJSON(w, http.StatusOK, resp)
		return
	}

	res := f.scraper.Fetch(r.Context(), source.Query{Topics: []string{topic}, Max: req.Max})
	resp.Success = res.OK()
	resp.Items = domain.FilterValid(res.Items)
	if res.Err != nil {
		resp.Error = res.Err.Error()
	}
	handler.WriteJSON(w, http.StatusOK, resp)
}
