package functions

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/Menova10/menova-empower-journey/internal/handler"
)

const maxBody = 1 << 20

type fetchRequest struct {
	Topics []string `json:"topics"`
	Topic  string   `json:"topic"`
	Max    int      `json:"max"`
}

// parseRequest reads topics and max from the query string, then lets a
// JSON body on POST override them. An empty body is allowed.
func parseRequest(r *http.Request) (fetchRequest, error) {
	q := r.URL.Query()
	req := fetchRequest{
		Topics: handler.SplitList(q.Get("topics")),
		Topic:  strings.TrimSpace(q.Get("topic")),
	}
	if v := q.Get("max"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return req, fmt.Errorf("invalid max %q", v)
		}
		req.Max = n
	}

	if r.Method != http.MethodPost || r.Body == nil {
		return req, nil
	}
	var body fetchRequest
	err := json.NewDecoder(io.LimitReader(r.Body, maxBody)).Decode(&body)
	switch {
	case errors.Is(err, io.EOF):
		return req, nil
	case err != nil:
		return req, fmt.Errorf("invalid request body: %w", err)
	}
	if len(body.Topics) > 0 {
		req.Topics = handler.CleanList(body.Topics)
	}
	if t := strings.TrimSpace(body.Topic); t != "" {
		req.Topic = t
	}
	if body.Max < 0 {
		return req, fmt.Errorf("invalid max %d", body.Max)
	}
	if body.Max > 0 {
		req.Max = body.Max
	}
	return req, nil
}
