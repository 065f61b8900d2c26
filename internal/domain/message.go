package domain

import "time"

const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAI        = "ai"
	RoleAssistant = "assistant"
)

type Message struct {
	Role         string    `json:"role"`
	Text         string    `json:"text"`
	ResumeButton bool      `json:"resumeButton,omitempty"`
	Timestamp    time.Time `json:"timestamp"`
}

// CompletionRole maps a transcript role onto the role expected by
// chat-completion endpoints.
func CompletionRole(role string) string {
	if role == RoleAI {
		return RoleAssistant
	}
	return role
}
