package source

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/Menova10/menova-empower-journey/internal/domain"
	"github.com/Menova10/menova-empower-journey/internal/logger"
	"github.com/Menova10/menova-empower-journey/internal/normalize"
)

const defaultScrapeLimit = 5

type FirecrawlConfig struct {
	APIKey  string
	BaseURL string
}

// Firecrawl searches the web through the scraping provider.
type Firecrawl struct {
	cfg    FirecrawlConfig
	client *http.Client
	log    logger.Logger
}

func NewFirecrawl(cfg FirecrawlConfig, client *http.Client, log logger.Logger) *Firecrawl {
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	return &Firecrawl{cfg: cfg, client: client, log: log}
}

func (f *Firecrawl) Name() domain.Source { return domain.SourceFirecrawl }

type searchRequest struct {
	Query string `json:"query"`
	Limit int    `json:"limit"`
}

type searchResponse struct {
	Success bool                      `json:"success"`
	Data    *[]normalize.ScrapeResult `json:"data"`
	Error   string                    `json:"error"`
}

// Fetch searches for the first topic only; the enhanced fetch is single-topic.
func (f *Firecrawl) Fetch(ctx context.Context, q Query) Result {
	start := time.Now()
	if f.cfg.APIKey == "" {
		return finish(f.log, f.Name(), start, failed(f.Name(), FailureCredential, domain.ErrMissingCredential))
	}
	topic := ""
	if len(q.Topics) > 0 {
		topic = strings.TrimSpace(q.Topics[0])
	}

	out, res := f.search(ctx, searchRequest{
		Query: strings.TrimSpace("menopause " + topic),
		Limit: clampMax(q.Max, defaultScrapeLimit, 20),
	})
	if res.Err != nil {
		return finish(f.log, f.Name(), start, res)
	}

	items := make([]domain.ContentItem, 0, len(*out.Data))
	for _, r := range *out.Data {
		item, err := normalize.FromScrape(r, topic)
		if err != nil {
			continue
		}
		items = append(items, item)
	}
	return finish(f.log, f.Name(), start, Result{Items: items})
}

func (f *Firecrawl) search(ctx context.Context, body searchRequest) (searchResponse, Result) {
	var out searchResponse
	buf, err := json.Marshal(body)
	if err != nil {
		return out, failed(f.Name(), FailureParse, err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, f.cfg.BaseURL+"/search", bytes.NewReader(buf))
	if err != nil {
		return out, failed(f.Name(), FailureTransport, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+f.cfg.APIKey)

	resp, err := f.client.Do(req)
	if err != nil {
		return out, failed(f.Name(), FailureTransport, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return out, upstream(f.Name(), resp.StatusCode, readBody(resp))
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return out, failed(f.Name(), FailureParse, fmt.Errorf("decode search: %w", err))
	}
	if !out.Success || out.Data == nil {
		msg := out.Error
		if msg == "" {
			msg = "unsuccessful search response"
		}
		return out, failed(f.Name(), FailureParse, errors.New(msg))
	}
	return out, Result{}
}

// Probe runs a one-result search to confirm the provider answers.
func (f *Firecrawl) Probe(ctx context.Context) error {
	if f.cfg.APIKey == "" {
		return domain.ErrMissingCredential
	}
	if _, res := f.search(ctx, searchRequest{Query: "menopause", Limit: 1}); res.Err != nil {
		return res.Err
	}
	return nil
}
