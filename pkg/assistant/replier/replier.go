package replier

import (
	"strings"

	"sahby-assistant-be/internal/constant"
)

// Topic is one keyword set the scan can match. Keywords mix English and
// Arabic variants; matching any of them selects the topic.
type Topic struct {
	Key      string
	Keywords []string
}

// topics are scanned in this fixed priority order. The first set containing
// any keyword of the input wins; later sets are not consulted.
var topics = []Topic{
	{constant.TopicGreeting, []string{"hello", "hi", "hey", "salam", "مرحبا", "اهلا", "أهلا", "السلام"}},
	{constant.TopicPricing, []string{"price", "cost", "fee", "how much", "pay", "سعر", "تكلفة", "رسوم", "كم"}},
	{constant.TopicVerification, []string{"verif", "identity", "badge", "توثيق", "تحقق", "هوية", "شارة"}},
	{constant.TopicSafety, []string{"safe", "secure", "scam", "trust", "امان", "أمان", "آمن", "احتيال", "ثقة"}},
	{constant.TopicMap, []string{"map", "nearby", "search", "find", "خريطة", "قريب", "بحث"}},
	{constant.TopicTrip, []string{"trip", "travel", "deliver", "package", "shipment", "send", "رحلة", "سفر", "توصيل", "طرد", "شحن", "ارسال", "إرسال"}},
	{constant.TopicRating, []string{"rate", "rating", "review", "star", "تقييم", "مراجعة", "نجوم"}},
	{constant.TopicSupport, []string{"help", "support", "problem", "issue", "complain", "مساعدة", "دعم", "مشكلة", "شكوى"}},
	{constant.TopicProfile, []string{"profile", "account", "setting", "password", "ملف", "حساب", "اعدادات", "إعدادات", "كلمة المرور"}},
}

// Result is one generated assistant turn.
type Result struct {
	Reply  string
	Topic  string
	Arabic bool
}

// Replier maps a user utterance to a canned reply. It is pure: no I/O, no
// state, deterministic for a given input and catalog.
type Replier struct {
	catalog Catalog
}

func New(catalog Catalog) *Replier {
	return &Replier{catalog: catalog}
}

// Generate picks the reply for input. Matching is substring based, so a
// keyword inside a longer unrelated word still matches; that collision is
// accepted behavior, not a defect.
func (r *Replier) Generate(input string) Result {
	arabic := ContainsArabic(input)
	lowered := strings.ToLower(input)

	for _, topic := range topics {
		for _, kw := range topic.Keywords {
			if strings.Contains(lowered, kw) {
				return Result{
					Reply:  r.catalog.Resolve(topic.Key, arabic),
					Topic:  topic.Key,
					Arabic: arabic,
				}
			}
		}
	}

	return Result{
		Reply:  r.catalog.Resolve(constant.TopicFallback, arabic),
		Topic:  constant.TopicFallback,
		Arabic: arabic,
	}
}

// ContainsArabic reports whether s contains any character of the Arabic
// Unicode blocks (base, supplement, extended-A). It is a per-call heuristic
// used to pick the reply language, not a persisted setting.
func ContainsArabic(s string) bool {
	for _, r := range s {
		if (r >= 0x0600 && r <= 0x06FF) ||
			(r >= 0x0750 && r <= 0x077F) ||
			(r >= 0x08A0 && r <= 0x08FF) {
			return true
		}
	}
	return false
}
