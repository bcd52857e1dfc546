package replier

import "sahby-assistant-be/internal/constant"

// Reply holds the two language variants of one canned response.
type Reply struct {
	En string
	Ar string
}

// Catalog resolves (topicKey, arabic) to reply text. Supplying it at
// construction keeps the replier free of any resource-lookup system.
type Catalog map[string]Reply

func (c Catalog) Resolve(topic string, arabic bool) string {
	r, ok := c[topic]
	if !ok {
		r = c[constant.TopicFallback]
	}
	if arabic {
		return r.Ar
	}
	return r.En
}

// DefaultCatalog is the canned-response set shipped with the Sahby assistant.
func DefaultCatalog() Catalog {
	return Catalog{
		constant.TopicGreeting: {
			En: "Hi there! I'm Sahby, your travel and delivery companion. How can I help you today?",
			Ar: "مرحباً! أنا صاحبي، رفيقك في السفر والتوصيل. كيف أقدر أساعدك اليوم؟",
		},
		constant.TopicPricing: {
			En: "Delivery prices are agreed directly between you and the traveler. Sahby only adds a small service fee shown before you confirm, with no hidden charges.",
			Ar: "أسعار التوصيل يتم الاتفاق عليها مباشرة بينك وبين المسافر. صاحبي يضيف فقط رسوم خدمة بسيطة تظهر لك قبل التأكيد، بدون أي رسوم مخفية.",
		},
		constant.TopicVerification: {
			En: "Travelers verify their identity with an official ID before accepting deliveries. Look for the blue badge on a traveler's profile to know they are verified.",
			Ar: "المسافرون يوثّقون هويتهم ببطاقة رسمية قبل قبول أي توصيلة. ابحث عن الشارة الزرقاء في ملف المسافر لتعرف أنه موثّق.",
		},
		constant.TopicSafety: {
			En: "Your safety comes first. Keep all payments and conversations inside the app, and never hand over a package without confirming the delivery code.",
			Ar: "سلامتك أولاً. أبقِ كل المدفوعات والمحادثات داخل التطبيق، ولا تسلّم أي طرد قبل التأكد من رمز التسليم.",
		},
		constant.TopicMap: {
			En: "Open the map tab to see travelers near you. You can filter by destination and departure date to find the best match for your delivery.",
			Ar: "افتح تبويب الخريطة لترى المسافرين القريبين منك. يمكنك التصفية حسب الوجهة وتاريخ المغادرة لإيجاد الأنسب لتوصيلتك.",
		},
		constant.TopicTrip: {
			En: "To send a package, pick a traveler heading to your destination and send a delivery request with the package details. The traveler can accept or suggest changes.",
			Ar: "لإرسال طرد، اختر مسافراً متجهاً إلى وجهتك وأرسل طلب توصيل مع تفاصيل الطرد. يمكن للمسافر القبول أو اقتراح تعديلات.",
		},
		constant.TopicRating: {
			En: "After each completed delivery both sides leave a rating. Honest reviews keep the community trustworthy, so please rate every experience.",
			Ar: "بعد كل توصيلة مكتملة يقيّم الطرفان بعضهما. التقييمات الصادقة تحافظ على ثقة المجتمع، لذا نرجو تقييم كل تجربة.",
		},
		constant.TopicSupport: {
			En: "Sorry you're having trouble! You can reach our support team from Settings > Help, or describe your problem here and I'll pass it along.",
			Ar: "نأسف لمواجهتك مشكلة! يمكنك التواصل مع فريق الدعم من الإعدادات > المساعدة، أو اشرح مشكلتك هنا وسأقوم بإيصالها.",
		},
		constant.TopicProfile: {
			En: "You can edit your photo, name, and contact details from the Profile tab. Changing your password signs you out of other devices.",
			Ar: "يمكنك تعديل صورتك واسمك وبيانات التواصل من تبويب الملف الشخصي. تغيير كلمة المرور يسجّل خروجك من الأجهزة الأخرى.",
		},
		constant.TopicFallback: {
			En: "I'm not sure I got that. You can ask me about prices, finding travelers, sending packages, safety, or your account.",
			Ar: "لم أفهم سؤالك تماماً. يمكنك سؤالي عن الأسعار، إيجاد المسافرين، إرسال الطرود، الأمان، أو حسابك.",
		},
	}
}
