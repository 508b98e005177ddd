package constant

const (
	MessageRoleUser      = "user"
	MessageRoleAssistant = "assistant"

	DefaultSessionName = "Untitled conversation"
)
