package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func validItem() ContentItem {
	return ContentItem{
		ID:       "a-1",
		Title:    "Managing hot flashes",
		URL:      "https://example.com/hot-flashes",
		Category: []string{"Hot Flashes"},
		Type:     TypeArticle,
	}
}

func TestValidate(t *testing.T) {
	assert.NoError(t, validItem().Validate())

	cases := map[string]func(*ContentItem){
		"empty title":      func(c *ContentItem) { c.Title = "  " },
		"empty url":        func(c *ContentItem) { c.URL = "" },
		"no category":      func(c *ContentItem) { c.Category = nil },
		"blank categories": func(c *ContentItem) { c.Category = []string{"", " "} },
		"unknown type":     func(c *ContentItem) { c.Type = "podcast" },
		"article duration": func(c *ContentItem) { c.Duration = "5:00" },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			item := validItem()
			mutate(&item)
			err := item.Validate()
			assert.True(t, errors.Is(err, ErrInvalidContent), "got %v", err)
		})
	}
}

func TestVideoMayCarryDuration(t *testing.T) {
	item := validItem()
	item.Type = TypeVideo
	item.Duration = "5:30"
	assert.NoError(t, item.Validate())
}

func TestFilterValid(t *testing.T) {
	bad := validItem()
	bad.ID = "a-2"
	bad.URL = ""
	items := []ContentItem{validItem(), bad}

	got := FilterValid(items)

	assert.Equal(t, []string{"a-1"}, IDs(got))
	assert.Len(t, items, 2, "input must not be modified")
}
