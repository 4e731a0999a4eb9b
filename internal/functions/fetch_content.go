package functions

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/Menova10/menova-empower-journey/internal/domain"
	"github.com/Menova10/menova-empower-journey/internal/handler"
	"github.com/Menova10/menova-empower-journey/internal/events"
	"github.com/Menova10/menova-empower-journey/internal/logger"
	"github.com/Menova10/menova-empower-journey/internal/source"
)

// FetchContent handles GET and POST /fetch-content.
func (f *Functions) FetchContent(w http.ResponseWriter, r *http.Request) {
	req, err := parseRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	summary, err := f.RunFetch(r.Context(), req.Topics, req.Max)
	if err != nil {
		f.log.Error("fetch-content failed", logger.Error(err))
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	handler.WriteJSON(w, http.StatusOK, summary)
}

// RunFetch fetches from every configured adapter, stores the normalized
// items and announces the run. Adapter failures are reported in
// Errors; only a storage failure is returned as an error.
func (f *Functions) RunFetch(ctx context.Context, topics []string, limit int) (domain.FetchSummary, error) {
	if topics = handler.CleanList(topics); len(topics) == 0 {
		topics = f.cfg.DefaultTopics
	}
	if limit <= 0 {
		limit = f.cfg.MaxItems
	}

	var adapters []source.Adapter
	for _, a := range []source.Adapter{f.generated, f.news, f.video} {
		if a != nil {
			adapters = append(adapters, a)
		}
	}

	results := make([]source.Result, len(adapters))
	var g errgroup.Group
	g.SetLimit(f.cfg.Parallelism)
	for i, a := range adapters {
		g.Go(func() error {
			results[i] = a.Fetch(ctx, source.Query{Topics: topics, Max: limit})
			return nil
		})
	}
	_ = g.Wait()

	summary := domain.FetchSummary{Items: []domain.ContentItem{}, Errors: []string{}}
	var collected []domain.ContentItem
	for _, res := range results {
		if res.Err != nil {
			summary.Errors = append(summary.Errors, res.Err.Error())
			continue
		}
		summary.Success = true
		collected = append(collected, res.Items...)
	}
	summary.Items = dedupeByURL(domain.FilterValid(collected))

	if len(summary.Items) == 0 || f.store == nil {
		return summary, nil
	}
	if err := f.reuseStoredIDs(ctx, summary.Items); err != nil {
		return summary, err
	}
	stored, err := f.store.UpsertContent(ctx, summary.Items)
	if err != nil {
		return summary, fmt.Errorf("store content: %w", err)
	}
	summary.Stored = stored

	msg := events.RefreshedMessage{Source: "fetch-content", Stored: stored, ItemIDs: domain.IDs(summary.Items)}
	if err := f.publisher.PublishRefreshed(ctx, msg); err != nil {
		f.log.Warn("publish content event failed", logger.Error(err))
	}
	f.log.Info("fetch-content stored items",
		logger.Strings("topics", topics),
		logger.Int("stored", stored),
		logger.Int("errors", len(summary.Errors)),
	)
	return summary, nil
}

// reuseStoredIDs gives items whose url is already stored the stored id, so
// repeated runs update rows instead of adding new ones.
func (f *Functions) reuseStoredIDs(ctx context.Context, items []domain.ContentItem) error {
	for i := range items {
		existing, err := f.store.GetContentByURL(ctx, items[i].URL)
		switch {
		case errors.Is(err, domain.ErrContentNotFound):
			continue
		case err != nil:
			return fmt.Errorf("look up content by url: %w", err)
		}
		items[i].ID = existing.ID
	}
	return nil
}

// dedupeByURL keeps the first item seen for each url.
func dedupeByURL(items []domain.ContentItem) []domain.ContentItem {
	seen := make(map[string]bool, len(items))
	out := make([]domain.ContentItem, 0, len(items))
	for _, item := range items {
		key := strings.ToLower(strings.TrimSpace(item.URL))
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, item)
	}
	return out
}
