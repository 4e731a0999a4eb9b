// Package fallback holds the bundled content served when no live source
// answers.
package fallback

import (
	"github.com/Menova10/menova-empower-journey/internal/domain"
	"github.com/Menova10/menova-empower-journey/internal/normalize"
	"github.com/Menova10/menova-empower-journey/internal/personalize"
)

type entry struct {
	id, title, description, url, thumbnail, duration, author string
	kind                                                     domain.ContentType
	categories                                               []string
}

var dataset = []entry{
	{"static-01", "Understanding Hot Flashes: Causes and Relief", "Why hot flashes happen during perimenopause and evidence-based ways to cool down.", "https://www.menopause.org/for-women/menopauseflashes/menopause-symptoms-and-treatments/hot-flashes", "https://images.unsplash.com/photo-1544367567-0f2fcb009e0b?w=640", "", "The Menopause Society", domain.TypeArticle, []string{"Hot Flashes", "Night Sweats"}},
	{"static-02", "Cooling Breathing Technique for Hot Flashes", "A guided paced-breathing exercise shown to reduce hot flash intensity.", "https://www.youtube.com/watch?v=8vkYJf8DOsc", "https://i.ytimg.com/vi/8vkYJf8DOsc/hqdefault.jpg", "6:12", "Mindful Midlife", domain.TypeVideo, []string{"Hot Flashes", "Anxiety"}},
	{"static-03", "Sleep Problems and Menopause", "How hormonal changes disrupt sleep and practical steps for better rest.", "https://www.sleepfoundation.org/women-sleep/menopause-and-sleep", "https://images.unsplash.com/photo-1541781774459-bb2af2f05b55?w=640", "", "Sleep Foundation", domain.TypeArticle, []string{"Sleep", "Insomnia"}},
	{"static-04", "Bedtime Yoga for Better Sleep in Midlife", "A gentle 15 minute routine to wind down before bed.", "https://www.youtube.com/watch?v=v7SN-d4qXx0", "https://i.ytimg.com/vi/v7SN-d4qXx0/hqdefault.jpg", "15:04", "Yoga With Adriene", domain.TypeVideo, []string{"Sleep", "Exercise"}},
	{"static-05", "Mood Changes During Menopause", "Irritability, low mood and anxiety explained, with when to seek help.", "https://www.nhs.uk/conditions/menopause/symptoms/", "https://images.unsplash.com/photo-1499209974431-9dddcece7f88?w=640", "", "NHS", domain.TypeArticle, []string{"Mood", "Mood Swings", "Depression"}},
	{"static-06", "Managing Menopause Anxiety", "Cognitive and lifestyle strategies for anxiety that appears in midlife.", "https://www.womens-health-concern.org/help-and-advice/factsheets/anxiety-menopause/", "https://images.unsplash.com/photo-1474418397713-7ede21d49118?w=640", "", "Women's Health Concern", domain.TypeArticle, []string{"Anxiety", "Mental Health"}},
	{"static-07", "What Is Menopause Brain Fog?", "Memory lapses and trouble concentrating are common; here is what helps.", "https://www.health.harvard.edu/womens-health/brain-fog-memory-and-menopause", "https://images.unsplash.com/photo-1507413245164-6160d8298b31?w=640", "", "Harvard Health", domain.TypeArticle, []string{"Brain Fog", "Memory"}},
	{"static-08", "Brain Fog and Hormones Explained", "A clinician walks through the science of cognitive changes in menopause.", "https://www.youtube.com/watch?v=Yb9u2zY5rsE", "https://i.ytimg.com/vi/Yb9u2zY5rsE/hqdefault.jpg", "9:45", "Dr. Louise Newson", domain.TypeVideo, []string{"Brain Fog", "Hormone Therapy"}},
	{"static-09", "Joint Pain and Menopause", "Why estrogen decline can cause aches and stiffness, and how to ease them.", "https://www.arthritis.org/health-wellness/healthy-living/managing-pain/joint-protection/menopause-and-joint-pain", "https://images.unsplash.com/photo-1571019613454-1cb2f99b2d8b?w=640", "", "Arthritis Foundation", domain.TypeArticle, []string{"Joint Pain", "Stiffness"}},
	{"static-10", "Gentle Stretches for Achy Joints", "Low-impact mobility work for hips, knees and shoulders.", "https://www.youtube.com/watch?v=g_tea8ZNk5A", "https://i.ytimg.com/vi/g_tea8ZNk5A/hqdefault.jpg", "12:30", "HASfit", domain.TypeVideo, []string{"Joint Pain", "Exercise"}},
	{"static-11", "Weight Gain in Midlife: What Changes", "Metabolism shifts during menopause and realistic ways to manage weight.", "https://www.mayoclinic.org/healthy-lifestyle/womens-health/in-depth/menopause-weight-gain/art-20046058", "https://images.unsplash.com/photo-1490645935967-10de6ba17061?w=640", "", "Mayo Clinic", domain.TypeArticle, []string{"Weight Gain", "Nutrition"}},
	{"static-12", "Eating Well Through Menopause", "Nutrition priorities for bone, heart and metabolic health.", "https://www.bda.uk.com/resource/menopause-diet.html", "https://images.unsplash.com/photo-1512621776951-a57141f2eefd?w=640", "", "British Dietetic Association", domain.TypeArticle, []string{"Nutrition", "Bone Health"}},
	{"static-13", "Protecting Your Bones After Menopause", "Osteoporosis risk, bone density scans and calcium and vitamin D.", "https://www.bones.nih.gov/health-info/bone/osteoporosis/conditions-behaviors/bone-health-midlife", "https://images.unsplash.com/photo-1559757148-5c350d0d3c56?w=640", "", "NIH", domain.TypeArticle, []string{"Bone Health", "Osteoporosis"}},
	{"static-14", "Hormone Therapy: Benefits and Risks", "An overview of HRT options and who may benefit.", "https://www.acog.org/womens-health/faqs/hormone-therapy-for-menopause", "https://images.unsplash.com/photo-1584308666744-24d5c474f2ae?w=640", "", "ACOG", domain.TypeArticle, []string{"Hormone Therapy", "Hot Flashes"}},
	{"static-15", "Heart Palpitations in Menopause", "When a racing heart is normal and when to see a doctor.", "https://www.heart.org/en/news/2022/03/11/heart-palpitations-and-menopause", "https://images.unsplash.com/photo-1505751172876-fa1923c5c528?w=640", "", "American Heart Association", domain.TypeArticle, []string{"Heart Palpitations", "Heart Health"}},
	{"static-16", "Vaginal Dryness and Intimacy", "Treatments and conversations that help with sexual health changes.", "https://www.menopause.org/for-women/sexual-health-menopause-online/changes-at-midlife/vaginal-dryness", "https://images.unsplash.com/photo-1516302752625-fcc3c50ae61f?w=640", "", "The Menopause Society", domain.TypeArticle, []string{"Vaginal Dryness", "Sexual Health", "Low Libido"}},
	{"static-17", "Fighting Menopause Fatigue", "Energy dips, their causes and daily habits that restore energy.", "https://www.healthline.com/health/menopause/menopause-fatigue", "https://images.unsplash.com/photo-1520206183501-b80df61043c2?w=640", "", "Healthline", domain.TypeArticle, []string{"Fatigue", "Sleep"}},
	{"static-18", "Migraines and Hormonal Headaches", "How shifting hormones trigger headaches and what treatment options exist.", "https://americanmigrainefoundation.org/resource-library/menopause-and-migraine/", "https://images.unsplash.com/photo-1616394584738-fc6e612e71b9?w=640", "", "American Migraine Foundation", domain.TypeArticle, []string{"Headaches", "Migraine"}},
	{"static-19", "Strength Training for Women Over 45", "A beginner workout supporting muscle, bone and mood.", "https://www.youtube.com/watch?v=U0bhE67HuDY", "https://i.ytimg.com/vi/U0bhE67HuDY/hqdefault.jpg", "20:18", "Fabulous50s", domain.TypeVideo, []string{"Exercise", "Bone Health", "Weight Gain"}},
	{"static-20", "Caring for Skin and Hair in Menopause", "Dryness, thinning hair and collagen loss, with dermatologist tips.", "https://www.aad.org/public/everyday-care/skin-care-secrets/anti-aging/skin-care-during-menopause", "https://images.unsplash.com/photo-1556228578-8c89e6adf883?w=640", "", "American Academy of Dermatology", domain.TypeArticle, []string{"Skin & Hair", "Hair Loss", "Dry Skin"}},
}

// Items returns a fresh copy of the bundled dataset.
func Items() []domain.ContentItem {
	items := make([]domain.ContentItem, len(dataset))
	for i, e := range dataset {
		items[i] = domain.ContentItem{
			ID:               e.id,
			Title:            e.title,
			Description:      e.description,
			Category:         append([]string(nil), e.categories...),
			Type:             e.kind,
			Thumbnail:        e.thumbnail,
			URL:              e.url,
			Duration:         e.duration,
			Author:           normalize.Author(e.author),
			IsStaticFallback: true,
		}
	}
	return items
}

// Filter returns the bundled items relevant to topics. No topics means no
// items.
func Filter(topics []string) []domain.ContentItem {
	return personalize.Filter(Items(), topics)
}
