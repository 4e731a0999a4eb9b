package domain

import (
	"fmt"
	"strings"
	"time"
)

type ContentType string

const (
	TypeArticle ContentType = "article"
	TypeVideo   ContentType = "video"
)

// Source names the provider a content item came from.
type Source string

const (
	SourceOpenAI    Source = "openai"
	SourceNewsAPI   Source = "newsapi"
	SourceYouTube   Source = "youtube"
	SourceFirecrawl Source = "firecrawl"
	SourceStatic    Source = "static"
	SourceDatabase  Source = "database"
)

type Author struct {
	Name   string `json:"name"`
	Avatar string `json:"avatar"`
}

// ContentItem is the canonical unit of content returned to callers.
// Items are built once by a source adapter and never mutated afterwards.
type ContentItem struct {
	ID                string      `json:"id"`
	Title             string      `json:"title"`
	Description       string      `json:"description"`
	Category          []string    `json:"category"`
	Type              ContentType `json:"type"`
	Thumbnail         string      `json:"thumbnail"`
	URL               string      `json:"url"`
	Duration          string      `json:"duration,omitempty"`
	Author            *Author     `json:"author,omitempty"`
	PublishedAt       *time.Time  `json:"publishedAt,omitempty"`
	Related           []string    `json:"related,omitempty"`
	IsOpenAIGenerated bool        `json:"isOpenAIGenerated,omitempty"`
	IsStaticFallback  bool        `json:"isStaticFallback,omitempty"`
}

// Validate checks the fields every caller relies on to render a card and
// run symptom matching.
func (c ContentItem) Validate() error {
	if strings.TrimSpace(c.Title) == "" {
		return fmt.Errorf("%w: empty title", ErrInvalidContent)
	}
	if strings.TrimSpace(c.URL) == "" {
		return fmt.Errorf("%w: empty url for %q", ErrInvalidContent, c.Title)
	}
	if !hasCategory(c.Category) {
		return fmt.Errorf("%w: no category for %q", ErrInvalidContent, c.Title)
	}
	switch c.Type {
	case TypeArticle:
		if c.Duration != "" {
			return fmt.Errorf("%w: duration on article %q", ErrInvalidContent, c.Title)
		}
	case TypeVideo:
	default:
		return fmt.Errorf("%w: unknown type %q", ErrInvalidContent, c.Type)
	}
	return nil
}

func hasCategory(categories []string) bool {
	for _, c := range categories {
		if strings.TrimSpace(c) != "" {
			return true
		}
	}
	return false
}

// FilterValid returns a new slice holding only the items that pass Validate.
func FilterValid(items []ContentItem) []ContentItem {
	out := make([]ContentItem, 0, len(items))
	for _, item := range items {
		if item.Validate() == nil {
			out = append(out, item)
		}
	}
	return out
}

// IDs lists item ids in order.
func IDs(items []ContentItem) []string {
	ids := make([]string, len(items))
	for i, item := range items {
		ids[i] = item.ID
	}
	return ids
}

// CachedSource is the last successful fetch of one source.
type CachedSource struct {
	Source    Source        `json:"source"`
	Items     []ContentItem `json:"items"`
	FetchedAt time.Time     `json:"fetched_at"`
}
