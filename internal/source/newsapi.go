package source

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/Menova10/menova-empower-journey/internal/domain"
	"github.com/Menova10/menova-empower-journey/internal/logger"
	"github.com/Menova10/menova-empower-journey/internal/normalize"
)

const (
	defaultNewsPageSize = 10
	maxNewsPageSize     = 100
)

type NewsAPIConfig struct {
	APIKey   string
	BaseURL  string
	Language string
}

// NewsAPI searches a news-article endpoint.
type NewsAPI struct {
	cfg    NewsAPIConfig
	client *http.Client
	log    logger.Logger
}

func NewNewsAPI(cfg NewsAPIConfig, client *http.Client, log logger.Logger) *NewsAPI {
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	if cfg.Language == "" {
		cfg.Language = "en"
	}
	return &NewsAPI{cfg: cfg, client: client, log: log}
}

func (n *NewsAPI) Name() domain.Source { return domain.SourceNewsAPI }

type newsResponse struct {
	Status   string                   `json:"status"`
	Articles *[]normalize.NewsArticle `json:"articles"`
}

// newsQuery OR-joins topics, quoting multi-word ones.
func newsQuery(topics []string) string {
	parts := make([]string, 0, len(topics))
	for _, t := range topics {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		if strings.Contains(t, " ") {
			t = strconv.Quote(t)
		}
		parts = append(parts, t)
	}
	if len(parts) == 0 {
		return "menopause"
	}
	return "menopause AND (" + strings.Join(parts, " OR ") + ")"
}

func (n *NewsAPI) Fetch(ctx context.Context, q Query) Result {
	start := time.Now()
	if n.cfg.APIKey == "" {
		return finish(n.log, n.Name(), start, failed(n.Name(), FailureCredential, domain.ErrMissingCredential))
	}

	params := url.Values{}
	params.Set("q", newsQuery(q.Topics))
	params.Set("language", n.cfg.Language)
	params.Set("sortBy", "publishedAt")
	params.Set("pageSize", strconv.Itoa(clampMax(q.Max, defaultNewsPageSize, maxNewsPageSize)))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, n.cfg.BaseURL+"/everything?"+params.Encode(), nil)
	if err != nil {
		return finish(n.log, n.Name(), start, failed(n.Name(), FailureTransport, err))
	}
	req.Header.Set("X-Api-Key", n.cfg.APIKey)

	resp, err := n.client.Do(req)
	if err != nil {
		return finish(n.log, n.Name(), start, failed(n.Name(), FailureTransport, err))
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return finish(n.log, n.Name(), start, upstream(n.Name(), resp.StatusCode, readBody(resp)))
	}

	var out newsResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return finish(n.log, n.Name(), start, failed(n.Name(), FailureParse, fmt.Errorf("decode articles: %w", err)))
	}
	if out.Articles == nil {
		return finish(n.log, n.Name(), start, failed(n.Name(), FailureParse, errors.New("decode articles: missing articles field")))
	}

	items := make([]domain.ContentItem, 0, len(*out.Articles))
	for _, a := range *out.Articles {
		item, err := normalize.FromNewsArticle(a)
		if err != nil {
			continue
		}
		items = append(items, item)
	}
	return finish(n.log, n.Name(), start, Result{Items: items})
}
