package personalize

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Menova10/menova-empower-journey/internal/domain"
)

func item(id, title string, categories ...string) domain.ContentItem {
	return domain.ContentItem{
		ID:       id,
		Title:    title,
		URL:      "https://example.com/" + id,
		Category: categories,
		Type:     domain.TypeArticle,
	}
}

func TestExpand(t *testing.T) {
	terms := Expand([]string{" Hot Flash ", "", "unlisted"})

	assert.Equal(t, []string{"hot flash", "hot flashes", "night sweats", "temperature", "sweating", "unlisted"}, terms)
}

func TestMatchHotFlashScenario(t *testing.T) {
	all := []domain.ContentItem{
		item("1", "Cooling down", "Hot Flashes"),
		item("2", "Bedtime routines", "Sleep"),
	}

	got := Match(all, []string{"hot flash"})

	require.Len(t, got, 1)
	assert.Equal(t, "1", got[0].ID)
}

func TestMatchFallsBackToText(t *testing.T) {
	all := []domain.ContentItem{
		item("1", "Why night sweats happen", "Wellness"),
		item("2", "Recipes", "Nutrition"),
		{ID: "3", Title: "Fog", Description: "Tips for better concentration at work", Category: []string{"Wellness"}},
	}

	assert.Equal(t, []string{"1"}, domain.IDs(Match(all, []string{"hot flash"})))
	assert.Equal(t, []string{"3"}, domain.IDs(Match(all, []string{"brain fog"})))
}

func TestMatchCategoryEitherDirection(t *testing.T) {
	all := []domain.ContentItem{item("1", "x", "Sleep")}

	assert.Len(t, Match(all, []string{"sleep issues"}), 1, "category contained in term")
	assert.Len(t, Match(all, []string{"sle"}), 1, "term contained in category")
}

func TestMatchCapsAndDeduplicates(t *testing.T) {
	var all []domain.ContentItem
	for i := 0; i < 10; i++ {
		all = append(all, item(fmt.Sprintf("id-%d", i), "t", "Sleep"))
	}
	all = append([]domain.ContentItem{all[0]}, all...)

	got := Match(all, []string{"sleep", "insomnia"})

	require.Len(t, got, MaxResults)
	assert.Equal(t, []string{"id-0", "id-1", "id-2", "id-3", "id-4", "id-5"}, domain.IDs(got))
}

func TestMatchEveryResultMatches(t *testing.T) {
	all := []domain.ContentItem{
		item("1", "Joint care", "Joint Pain"),
		item("2", "Morning stiffness explained", "Wellness"),
		item("3", "Hair care", "Skin & Hair"),
	}
	symptoms := []string{"joint pain"}

	got := Match(all, symptoms)

	assert.Equal(t, []string{"1", "2"}, domain.IDs(got))
	terms := Expand(symptoms)
	for _, g := range got {
		assert.True(t, Matches(g, terms))
	}
}

func TestMatchNoSymptoms(t *testing.T) {
	got := Match([]domain.ContentItem{item("1", "x", "Sleep")}, nil)

	assert.NotNil(t, got)
	assert.Empty(t, got)
}
