package service

import (
	"context"
	"errors"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/Menova10/menova-empower-journey/internal/domain"
	"github.com/Menova10/menova-empower-journey/internal/fallback"
	"github.com/Menova10/menova-empower-journey/internal/logger"
	"github.com/Menova10/menova-empower-journey/internal/metrics"
	"github.com/Menova10/menova-empower-journey/internal/personalize"
	"github.com/Menova10/menova-empower-journey/internal/source"
)

// GetAllContent returns the stored content when the store has any,
// otherwise symptom-agnostic generated content. The result may be empty.
func (a *Aggregator) GetAllContent(ctx context.Context) []domain.ContentItem {
	if a.store != nil {
		stored, err := a.store.ListContent(ctx)
		if err != nil {
			a.log.Error("list stored content failed", logger.Error(err))
		} else if valid := domain.FilterValid(stored); len(valid) > 0 {
			return valid
		}
	}
	return a.FetchOpenAIContent(ctx, nil)
}

// FetchOpenAIContent asks the generation adapter for resources about
// symptoms. When the adapter yields nothing the bundled content filtered
// by symptoms is returned instead.
func (a *Aggregator) FetchOpenAIContent(ctx context.Context, symptoms []string) []domain.ContentItem {
	res, cached := a.fetch(ctx, a.generated, source.Query{Topics: symptoms, Max: defaultGenerated})
	if cached {
		metrics.FallbackServedTotal.WithLabelValues("fetch_openai", "cache").Inc()
	}
	if res.OK() {
		if items := domain.FilterValid(res.Items); len(items) > 0 {
			return items
		}
	}

	metrics.FallbackServedTotal.WithLabelValues("fetch_openai", "static").Inc()
	return fallback.Filter(symptoms)
}

// RefreshAllContent fetches news and videos live for topics, articles
// first. A failed news branch returns the bundled content for topics.
func (a *Aggregator) RefreshAllContent(ctx context.Context, topics []string) []domain.ContentItem {
	var (
		g                     errgroup.Group
		news, videos          source.Result
		newsCached, vidCached bool
	)
	g.Go(func() error {
		news, newsCached = a.fetch(ctx, a.news, source.Query{Topics: topics, Max: a.opts.NewsItems})
		return nil
	})
	g.Go(func() error {
		videos, vidCached = a.fetch(ctx, a.video, source.Query{Topics: topics, Max: a.opts.VideoItems})
		return nil
	})
	_ = g.Wait()

	if newsCached {
		metrics.FallbackServedTotal.WithLabelValues("refresh", "cache").Inc()
	}
	if vidCached {
		metrics.FallbackServedTotal.WithLabelValues("refresh", "cache").Inc()
	}

	if !news.OK() {
		static := fallback.Filter(topics)
		metrics.FallbackServedTotal.WithLabelValues("refresh", "static").Inc()
		if a.opts.KeepVideosOnNewsFallback && videos.OK() {
			return domain.FilterValid(append(static, videos.Items...))
		}
		if len(videos.Items) > 0 {
			a.log.Info("discarding video results after news fallback", logger.Int("videos", len(videos.Items)))
		}
		return static
	}

	merged := make([]domain.ContentItem, 0, len(news.Items)+len(videos.Items))
	merged = append(merged, news.Items...)
	if videos.OK() {
		merged = append(merged, videos.Items...)
	}
	if merged = domain.FilterValid(merged); len(merged) > 0 {
		return merged
	}

	metrics.FallbackServedTotal.WithLabelValues("refresh", "static").Inc()
	return fallback.Filter(topics)
}

// GetPersonalizedContent narrows all content to the given symptoms. No
// symptoms means no content and no upstream calls.
func (a *Aggregator) GetPersonalizedContent(ctx context.Context, symptoms []string) []domain.ContentItem {
	if len(personalize.Expand(symptoms)) == 0 {
		return []domain.ContentItem{}
	}
	return personalize.Match(a.GetAllContent(ctx), symptoms)
}

// GetRelatedContent returns at most limit items related to id, never the
// item itself. Explicit related ids win over same-category matches. A
// limit of zero or less yields no items.
func (a *Aggregator) GetRelatedContent(ctx context.Context, id string, limit int) []domain.ContentItem {
	if limit <= 0 {
		return []domain.ContentItem{}
	}
	limit = min(limit, MaxRelated)

	all := a.GetAllContent(ctx)
	byID := make(map[string]domain.ContentItem, len(all))
	for _, item := range all {
		if _, ok := byID[item.ID]; !ok {
			byID[item.ID] = item
		}
	}

	base, ok := byID[id]
	if !ok {
		found := a.lookup(ctx, id)
		if found == nil {
			return []domain.ContentItem{}
		}
		base = *found
	}

	if related := a.resolveRelated(ctx, base, byID, limit); len(related) > 0 {
		return related
	}

	candidates := []domain.ContentItem{}
	for _, item := range all {
		if item.ID != base.ID && sharesCategory(base, item) {
			candidates = append(candidates, item)
		}
	}
	a.shuffle(candidates)
	if len(candidates) > limit {
		candidates = candidates[:limit]
	}
	return candidates
}

func (a *Aggregator) resolveRelated(ctx context.Context, base domain.ContentItem, byID map[string]domain.ContentItem, limit int) []domain.ContentItem {
	out := []domain.ContentItem{}
	seen := map[string]bool{base.ID: true}
	for _, rid := range base.Related {
		if len(out) == limit {
			break
		}
		if seen[rid] {
			continue
		}
		seen[rid] = true
		if item, ok := byID[rid]; ok {
			out = append(out, item)
			continue
		}
		if item := a.lookup(ctx, rid); item != nil && item.Validate() == nil {
			out = append(out, *item)
		}
	}
	return out
}

func (a *Aggregator) lookup(ctx context.Context, id string) *domain.ContentItem {
	if a.store == nil || id == "" {
		return nil
	}
	item, err := a.store.GetContentByID(ctx, id)
	if err != nil {
		if !errors.Is(err, domain.ErrContentNotFound) {
			a.log.Warn("content lookup failed", logger.String("id", id), logger.Error(err))
		}
		return nil
	}
	return item
}

func sharesCategory(a, b domain.ContentItem) bool {
	for _, ca := range a.Category {
		for _, cb := range b.Category {
			if strings.EqualFold(strings.TrimSpace(ca), strings.TrimSpace(cb)) {
				return true
			}
		}
	}
	return false
}
