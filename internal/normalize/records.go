package normalize

import (
	"fmt"
	"strings"

	"github.com/Menova10/menova-empower-journey/internal/domain"
)

// GeneratedResource is one entry of the generation endpoint's JSON payload.
type GeneratedResource struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	URL         string   `json:"url"`
	ContentType string   `json:"content_type"`
	Categories  []string `json:"categories"`
	AuthorName  string   `json:"author_name"`
}

type NewsArticle struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	URL         string `json:"url"`
	URLToImage  string `json:"urlToImage"`
	Author      string `json:"author"`
	PublishedAt string `json:"publishedAt"`
	Content     string `json:"content"`
}

type ThumbnailRef struct {
	URL string `json:"url"`
}

type Thumbnails struct {
	Default ThumbnailRef `json:"default"`
	Medium  ThumbnailRef `json:"medium"`
	High    ThumbnailRef `json:"high"`
}

// Best picks the highest resolution thumbnail present.
func (t Thumbnails) Best() string {
	for _, u := range []string{t.High.URL, t.Medium.URL, t.Default.URL} {
		if u != "" {
			return u
		}
	}
	return ""
}

type VideoResult struct {
	ID struct {
		VideoID string `json:"videoId"`
	} `json:"id"`
	Snippet struct {
		Title        string     `json:"title"`
		Description  string     `json:"description"`
		ChannelTitle string     `json:"channelTitle"`
		PublishedAt  string     `json:"publishedAt"`
		Thumbnails   Thumbnails `json:"thumbnails"`
	} `json:"snippet"`
}

type ScrapeResult struct {
	URL         string `json:"url"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

func FromGenerated(r GeneratedResource) (domain.ContentItem, error) {
	t := ClassifyType(domain.SourceOpenAI, r.ContentType)
	item := domain.ContentItem{
		ID:                NewID(domain.SourceOpenAI),
		Title:             strings.TrimSpace(r.Title),
		Description:       strings.TrimSpace(r.Description),
		Category:          cleanCategories(r.Categories),
		Type:              t,
		Thumbnail:         Thumbnail("", t),
		URL:               strings.TrimSpace(r.URL),
		Author:            Author(r.AuthorName),
		IsOpenAIGenerated: true,
	}
	if t == domain.TypeVideo {
		item.Duration = VideoDuration
	}
	return validated(item)
}

func FromNewsArticle(a NewsArticle) (domain.ContentItem, error) {
	if strings.TrimSpace(a.Title) == "[Removed]" {
		return domain.ContentItem{}, fmt.Errorf("%w: removed article", domain.ErrInvalidContent)
	}
	return validated(domain.ContentItem{
		ID:          NewID(domain.SourceNewsAPI),
		Title:       strings.TrimSpace(a.Title),
		Description: strings.TrimSpace(a.Description),
		Category:    ExtractCategories(a.Title + " " + a.Description + " " + a.Content),
		Type:        ClassifyType(domain.SourceNewsAPI, ""),
		Thumbnail:   Thumbnail(a.URLToImage, domain.TypeArticle),
		URL:         strings.TrimSpace(a.URL),
		Author:      Author(a.Author),
		PublishedAt: parseTime(a.PublishedAt),
	})
}

// FromVideo maps a video search hit. The search endpoint has no duration, so
// a fixed placeholder is used.
func FromVideo(v VideoResult) (domain.ContentItem, error) {
	if v.ID.VideoID == "" {
		return domain.ContentItem{}, fmt.Errorf("%w: video without id", domain.ErrInvalidContent)
	}
	return validated(domain.ContentItem{
		ID:          NewID(domain.SourceYouTube),
		Title:       strings.TrimSpace(v.Snippet.Title),
		Description: strings.TrimSpace(v.Snippet.Description),
		Category:    ExtractCategories(v.Snippet.Title + " " + v.Snippet.Description),
		Type:        ClassifyType(domain.SourceYouTube, ""),
		Thumbnail:   Thumbnail(v.Snippet.Thumbnails.Best(), domain.TypeVideo),
		URL:         "https://www.youtube.com/watch?v=" + v.ID.VideoID,
		Duration:    VideoDuration,
		Author:      Author(v.Snippet.ChannelTitle),
		PublishedAt: parseTime(v.Snippet.PublishedAt),
	})
}

func FromScrape(r ScrapeResult, topic string) (domain.ContentItem, error) {
	categories := ExtractCategories(r.Title + " " + r.Description)
	if len(categories) == 1 && categories[0] == DefaultCategory && strings.TrimSpace(topic) != "" {
		categories = []string{strings.TrimSpace(topic)}
	}
	return validated(domain.ContentItem{
		ID:          NewID(domain.SourceFirecrawl),
		Title:       strings.TrimSpace(r.Title),
		Description: strings.TrimSpace(r.Description),
		Category:    categories,
		Type:        ClassifyType(domain.SourceFirecrawl, ""),
		Thumbnail:   Thumbnail("", domain.TypeArticle),
		URL:         strings.TrimSpace(r.URL),
		Author:      Author(hostOf(r.URL)),
	})
}

func hostOf(raw string) string {
	raw = strings.TrimPrefix(strings.TrimPrefix(raw, "https://"), "http://")
	if i := strings.IndexByte(raw, '/'); i >= 0 {
		raw = raw[:i]
	}
	return strings.TrimPrefix(raw, "www.")
}
