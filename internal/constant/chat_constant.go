package constant

const (
	MessageRoleUser      = "user"
	MessageRoleAssistant = "assistant"

	FeedbackPositive = "positive"
	FeedbackNegative = "negative"

	// DefaultConversationPrefix is the generic name given to a freshly created
	// conversation before auto-naming kicks in ("Conversation 1", ...).
	DefaultConversationPrefix = "Conversation "

	// FallbackConversationName is used when the first message is too short to
	// derive a name from.
	FallbackConversationName = "New conversation"

	// HistoryWindow limits how many prior messages are injected into the
	// generation prompt.
	HistoryWindow = 10
)
