// Package normalize maps each provider's raw records into domain.ContentItem.
package normalize

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Menova10/menova-empower-journey/internal/domain"
)

const (
	UnknownAuthor    = "Unknown Author"
	DefaultCategory  = "Menopause"
	VideoDuration    = "5:00"
	ArticleThumbnail = "https://images.unsplash.com/photo-1505751172876-fa1923c5c528?w=640"
	VideoThumbnail   = "https://via.placeholder.com/320x180/E5E7EB/6B7280?text=Video+Thumbnail"
)

// NewID returns a fresh identifier namespaced by source, so ids minted by
// different adapters in one aggregation never collide.
func NewID(source domain.Source) string {
	return fmt.Sprintf("%s-%s", source, uuid.NewString())
}

// Avatar returns a generated avatar URL keyed by name.
func Avatar(name string) string {
	return "https://ui-avatars.com/api/?name=" + url.QueryEscape(name) + "&background=random"
}

func Author(name string) *domain.Author {
	name = strings.TrimSpace(name)
	if name == "" {
		name = UnknownAuthor
	}
	return &domain.Author{Name: name, Avatar: Avatar(name)}
}

func Thumbnail(u string, t domain.ContentType) string {
	if strings.TrimSpace(u) != "" {
		return u
	}
	if t == domain.TypeVideo {
		return VideoThumbnail
	}
	return ArticleThumbnail
}

// ClassifyType decides article vs video. Only generated content carries a
// label; it is an article unless the model said "video".
func ClassifyType(source domain.Source, label string) domain.ContentType {
	switch source {
	case domain.SourceYouTube:
		return domain.TypeVideo
	case domain.SourceOpenAI:
		if strings.EqualFold(strings.TrimSpace(label), string(domain.TypeVideo)) {
			return domain.TypeVideo
		}
	}
	return domain.TypeArticle
}

func cleanCategories(categories []string) []string {
	out := make([]string, 0, len(categories))
	for _, c := range categories {
		if c = strings.TrimSpace(c); c != "" {
			out = append(out, c)
		}
	}
	if len(out) == 0 {
		out = append(out, DefaultCategory)
	}
	return out
}

func parseTime(s string) *time.Time {
	if s == "" {
		return nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return nil
	}
	return &t
}

func validated(item domain.ContentItem) (domain.ContentItem, error) {
	if err := item.Validate(); err != nil {
		return domain.ContentItem{}, err
	}
	return item, nil
}
