package enums

import "fmt"

// ChatSender identifies who authored a chat transcript entry.
type ChatSender string

const (
	ChatSenderUser      ChatSender = "user"
	ChatSenderAssistant ChatSender = "assistant"
)

var validChatSenders = []ChatSender{
	ChatSenderUser,
	ChatSenderAssistant,
}

// String implements fmt.Stringer.
func (s ChatSender) String() string {
	return string(s)
}

// IsValid reports whether the value is a known ChatSender.
func (s ChatSender) IsValid() bool {
	for _, candidate := range validChatSenders {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseChatSender converts raw input into a ChatSender.
func ParseChatSender(value string) (ChatSender, error) {
	for _, candidate := range validChatSenders {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid chat sender %q", value)
}
