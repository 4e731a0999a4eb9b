// Package personalize narrows a content list to the items relevant to a
// caller's symptoms.
package personalize

import (
	"strings"

	"github.com/Menova10/menova-empower-journey/internal/domain"
)

// MaxResults caps the personalized list.
const MaxResults = 6

// aliases maps a lower-cased symptom tag to the terms it also matches.
// The tag itself is always included first, so it is not repeated here.
var aliases = map[string][]string{
	"hot flash":          {"hot flashes", "night sweats", "temperature", "sweating"},
	"hot flashes":        {"hot flash", "night sweats", "temperature", "sweating"},
	"night sweats":       {"hot flashes", "sweating", "sleep"},
	"sleep":              {"insomnia", "sleep issues", "rest", "fatigue"},
	"sleep issues":       {"sleep", "insomnia", "rest"},
	"insomnia":           {"sleep", "sleep issues", "rest"},
	"mood":               {"mood swings", "irritability", "depression", "emotional"},
	"mood swings":        {"mood", "irritability", "emotional"},
	"anxiety":            {"stress", "worry", "panic", "mental health"},
	"depression":         {"mood", "mental health", "sadness"},
	"brain fog":          {"memory", "concentration", "cognitive", "focus"},
	"memory":             {"brain fog", "cognitive", "concentration"},
	"fatigue":            {"tiredness", "energy", "exhaustion"},
	"joint pain":         {"aches", "stiffness", "arthritis", "muscle pain"},
	"headache":           {"headaches", "migraine", "migraines"},
	"headaches":          {"headache", "migraine", "migraines"},
	"weight gain":        {"weight", "metabolism", "diet", "nutrition"},
	"weight":             {"weight gain", "metabolism", "diet"},
	"vaginal dryness":    {"sexual health", "intimacy", "libido"},
	"low libido":         {"libido", "sexual health", "intimacy"},
	"heart palpitations": {"palpitations", "heart health", "heart rate"},
	"bone health":        {"osteoporosis", "bone density", "calcium"},
	"hair loss":          {"hair", "thinning hair", "skin & hair"},
	"dry skin":           {"skin", "skin & hair", "collagen"},
}

// Expand turns symptom tags into their alias terms. Order is preserved and
// duplicates across tags are kept.
func Expand(tags []string) []string {
	terms := make([]string, 0, len(tags)*4)
	for _, tag := range tags {
		t := strings.ToLower(strings.TrimSpace(tag))
		if t == "" {
			continue
		}
		terms = append(terms, t)
		terms = append(terms, aliases[t]...)
	}
	return terms
}

// Matches reports whether item is relevant to any of the expanded terms.
// A category hit short-circuits; otherwise title and description are scanned.
func Matches(item domain.ContentItem, terms []string) bool {
	for _, cat := range item.Category {
		c := strings.ToLower(strings.TrimSpace(cat))
		if c == "" {
			continue
		}
		for _, term := range terms {
			if strings.Contains(c, term) || strings.Contains(term, c) {
				return true
			}
		}
	}

	text := strings.ToLower(item.Title + " " + item.Description)
	padded := " " + text + " "
	for _, term := range terms {
		if strings.Contains(padded, " "+term+" ") {
			return true
		}
	}
	for _, term := range terms {
		if strings.Contains(text, term) {
			return true
		}
	}
	return false
}

// Filter returns every item in all matching an alias of tags, deduplicated by
// id, keeping input order.
func Filter(all []domain.ContentItem, tags []string) []domain.ContentItem {
	terms := Expand(tags)
	out := []domain.ContentItem{}
	if len(terms) == 0 {
		return out
	}

	seen := make(map[string]struct{}, len(all))
	for _, item := range all {
		if _, dup := seen[item.ID]; dup {
			continue
		}
		if Matches(item, terms) {
			seen[item.ID] = struct{}{}
			out = append(out, item)
		}
	}
	return out
}

// Match returns at most MaxResults items relevant to symptoms. Ordering is
// first-match-wins over the input order.
func Match(all []domain.ContentItem, symptoms []string) []domain.ContentItem {
	matched := Filter(all, symptoms)
	if len(matched) > MaxResults {
		matched = matched[:MaxResults]
	}
	return matched
}
