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
	defaultVideoResults = 6
	maxVideoResults     = 50
)

type YouTubeConfig struct {
	APIKey  string
	BaseURL string
}

// YouTube searches the video-search endpoint.
type YouTube struct {
	cfg    YouTubeConfig
	client *http.Client
	log    logger.Logger
}

func NewYouTube(cfg YouTubeConfig, client *http.Client, log logger.Logger) *YouTube {
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	return &YouTube{cfg: cfg, client: client, log: log}
}

func (y *YouTube) Name() domain.Source { return domain.SourceYouTube }

type videoSearchResponse struct {
	Items *[]normalize.VideoResult `json:"items"`
}

func videoQuery(topics []string) string {
	parts := []string{"menopause"}
	for _, t := range topics {
		if t = strings.TrimSpace(t); t != "" {
			parts = append(parts, t)
		}
	}
	return strings.Join(parts, " ")
}

func (y *YouTube) Fetch(ctx context.Context, q Query) Result {
	start := time.Now()
	if y.cfg.APIKey == "" {
		return finish(y.log, y.Name(), start, failed(y.Name(), FailureCredential, domain.ErrMissingCredential))
	}

	params := url.Values{}
	params.Set("part", "snippet")
	params.Set("q", videoQuery(q.Topics))
	params.Set("type", "video")
	params.Set("maxResults", strconv.Itoa(clampMax(q.Max, defaultVideoResults, maxVideoResults)))
	params.Set("key", y.cfg.APIKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, y.cfg.BaseURL+"/search?"+params.Encode(), nil)
	if err != nil {
		return finish(y.log, y.Name(), start, failed(y.Name(), FailureTransport, err))
	}

	resp, err := y.client.Do(req)
	if err != nil {
		return finish(y.log, y.Name(), start, failed(y.Name(), FailureTransport, err))
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return finish(y.log, y.Name(), start, upstream(y.Name(), resp.StatusCode, readBody(resp)))
	}

	var out videoSearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return finish(y.log, y.Name(), start, failed(y.Name(), FailureParse, fmt.Errorf("decode videos: %w", err)))
	}
	if out.Items == nil {
		return finish(y.log, y.Name(), start, failed(y.Name(), FailureParse, errors.New("decode videos: missing items field")))
	}

	items := make([]domain.ContentItem, 0, len(*out.Items))
	for _, v := range *out.Items {
		item, err := normalize.FromVideo(v)
		if err != nil {
			continue
		}
		items = append(items, item)
	}
	return finish(y.log, y.Name(), start, Result{Items: items})
}
