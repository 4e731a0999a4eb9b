package normalize

import "strings"

type keywordRule struct {
	category string
	keywords []string
}

// Table order is the order categories are reported in.
var keywordRules = []keywordRule{
	{"Hot Flashes", []string{"hot flash", "hot flush", "night sweat", "vasomotor"}},
	{"Sleep", []string{"sleep", "insomnia"}},
	{"Mood", []string{"mood", "irritab", "depress"}},
	{"Anxiety", []string{"anxiety", "anxious", "stress", "panic"}},
	{"Brain Fog", []string{"brain fog", "memory", "cognitive", "concentration"}},
	{"Joint Pain", []string{"joint", "arthritis", "stiffness"}},
	{"Weight", []string{"weight", "metabolism"}},
	{"Bone Health", []string{"bone", "osteoporosis"}},
	{"Hormone Therapy", []string{"hormone", "hrt", "estrogen", "oestrogen", "progesterone"}},
	{"Nutrition", []string{"nutrition", "diet", "food", "recipe"}},
	{"Exercise", []string{"exercise", "workout", "yoga", "fitness"}},
	{"Heart Health", []string{"heart", "cardio", "palpitation"}},
	{"Skin & Hair", []string{"skin", "hair"}},
	{"Sexual Health", []string{"libido", "vaginal", "intimacy", "sexual"}},
	{"Fatigue", []string{"fatigue", "tired", "exhaust"}},
	{"Headaches", []string{"headache", "migraine"}},
}

// ExtractCategories derives category tags from free text. It never returns
// an empty list.
func ExtractCategories(text string) []string {
	lower := strings.ToLower(text)
	var out []string
	for _, rule := range keywordRules {
		for _, kw := range rule.keywords {
			if strings.Contains(lower, kw) {
				out = append(out, rule.category)
				break
			}
		}
	}
	if len(out) == 0 {
		out = []string{DefaultCategory}
	}
	return out
}
