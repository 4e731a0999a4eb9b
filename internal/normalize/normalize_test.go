package normalize

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Menova10/menova-empower-journey/internal/domain"
)

func TestNewIDNamespaced(t *testing.T) {
	a := NewID(domain.SourceNewsAPI)
	b := NewID(domain.SourceNewsAPI)

	assert.True(t, strings.HasPrefix(a, "newsapi-"))
	assert.NotEqual(t, a, b)
	assert.True(t, strings.HasPrefix(NewID(domain.SourceYouTube), "youtube-"))
}

func TestAuthorDefaults(t *testing.T) {
	a := Author("  ")
	assert.Equal(t, UnknownAuthor, a.Name)
	assert.Equal(t, "https://ui-avatars.com/api/?name=Unknown+Author&background=random", a.Avatar)
	assert.Equal(t, Avatar("Dr. Lee"), Author("Dr. Lee").Avatar)
}

func TestClassifyType(t *testing.T) {
	assert.Equal(t, domain.TypeVideo, ClassifyType(domain.SourceYouTube, ""))
	assert.Equal(t, domain.TypeArticle, ClassifyType(domain.SourceNewsAPI, "video"))
	assert.Equal(t, domain.TypeVideo, ClassifyType(domain.SourceOpenAI, "Video"))
	assert.Equal(t, domain.TypeArticle, ClassifyType(domain.SourceOpenAI, "guide"))
}

func TestExtractCategories(t *testing.T) {
	got := ExtractCategories("New HRT guidance helps women sleep through night sweats")

	assert.Equal(t, []string{"Hot Flashes", "Sleep", "Hormone Therapy"}, got)
	assert.Equal(t, []string{DefaultCategory}, ExtractCategories("quarterly earnings"))
}

func TestFromGenerated(t *testing.T) {
	item, err := FromGenerated(GeneratedResource{
		Title:       "Cooling strategies",
		Description: "Practical tips",
		URL:         "https://example.com/cool",
		ContentType: "video",
		Categories:  []string{" Hot Flashes ", ""},
	})
	require.NoError(t, err)

	assert.Equal(t, domain.TypeVideo, item.Type)
	assert.Equal(t, VideoDuration, item.Duration)
	assert.Equal(t, []string{"Hot Flashes"}, item.Category)
	assert.True(t, item.IsOpenAIGenerated)
	assert.Equal(t, UnknownAuthor, item.Author.Name)
	assert.Equal(t, VideoThumbnail, item.Thumbnail)
}

func TestFromGeneratedRejectsMissingURL(t *testing.T) {
	_, err := FromGenerated(GeneratedResource{Title: "No link"})
	assert.ErrorIs(t, err, domain.ErrInvalidContent)
}

func TestFromNewsArticle(t *testing.T) {
	item, err := FromNewsArticle(NewsArticle{
		Title:       "Study links menopause and sleep",
		URL:         "https://news.example.com/a",
		PublishedAt: "2024-03-01T10:00:00Z",
	})
	require.NoError(t, err)

	assert.Equal(t, domain.TypeArticle, item.Type)
	assert.Equal(t, []string{"Sleep"}, item.Category)
	assert.Equal(t, ArticleThumbnail, item.Thumbnail)
	require.NotNil(t, item.PublishedAt)
	assert.Equal(t, 2024, item.PublishedAt.Year())

	_, err = FromNewsArticle(NewsArticle{Title: "[Removed]", URL: "https://removed.com"})
	assert.ErrorIs(t, err, domain.ErrInvalidContent)
}

func TestFromVideo(t *testing.T) {
	var v VideoResult
	v.ID.VideoID = "abc123"
	v.Snippet.Title = "Yoga for joint stiffness"
	v.Snippet.ChannelTitle = "Menopause Channel"
	v.Snippet.Thumbnails.Medium.URL = "https://i.ytimg.com/m.jpg"

	item, err := FromVideo(v)
	require.NoError(t, err)

	assert.Equal(t, "https://www.youtube.com/watch?v=abc123", item.URL)
	assert.Equal(t, domain.TypeVideo, item.Type)
	assert.Equal(t, "https://i.ytimg.com/m.jpg", item.Thumbnail)
	assert.Equal(t, "Menopause Channel", item.Author.Name)
	assert.Equal(t, []string{"Joint Pain", "Exercise"}, item.Category)

	_, err = FromVideo(VideoResult{})
	assert.Error(t, err)
}

func TestFromScrapeUsesTopicWhenNoKeyword(t *testing.T) {
	item, err := FromScrape(ScrapeResult{Title: "A guide", URL: "https://www.clinic.org/guide"}, "perimenopause")
	require.NoError(t, err)

	assert.Equal(t, []string{"perimenopause"}, item.Category)
	assert.Equal(t, "clinic.org", item.Author.Name)
}

func TestThumbnailsBest(t *testing.T) {
	assert.Empty(t, Thumbnails{}.Best())
	assert.Equal(t, "d.jpg", Thumbnails{Default: ThumbnailRef{URL: "d.jpg"}}.Best())
	assert.Equal(t, "h.jpg", Thumbnails{
		Default: ThumbnailRef{URL: "d.jpg"},
		Medium:  ThumbnailRef{URL: "m.jpg"},
		High:    ThumbnailRef{URL: "h.jpg"},
	}.Best())
	assert.Equal(t, VideoThumbnail, Thumbnail(Thumbnails{}.Best(), domain.TypeVideo))
}
