package constant

const (
	MessageRoleUser      = "user"
	MessageRoleAssistant = "assistant"
)

// DefaultThreadTitle is the title of the thread seeded for a user's first run.
const DefaultThreadTitle = "Sahby Chat"

// Topic keys matched by the replier, in scan priority order.
const (
	TopicGreeting     = "greeting"
	TopicPricing      = "pricing"
	TopicVerification = "verification"
	TopicSafety       = "safety"
	TopicMap          = "map"
	TopicTrip         = "trip"
	TopicRating       = "rating"
	TopicSupport      = "support"
	TopicProfile      = "profile"
	TopicFallback     = "fallback"
)
