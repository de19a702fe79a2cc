// Package assistant provides a small conversational helper for dashboard
// users, backed by a pluggable LLM provider. The server is a passthrough:
// it adds a system prompt, forwards the conversation, and returns the
// reply. No conversation state is stored.
package assistant

import (
	"context"
	"fmt"
)

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is one turn of the conversation, oldest first.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Client is implemented by each LLM provider.
type Client interface {
	Complete(ctx context.Context, system string, messages []Message) (string, error)
}

const systemPrompt = `You are a helpful assistant inside a hospital management
dashboard. Answer questions about navigating the dashboard, managing
departments, doctors, patients, appointments and prescriptions. You do not
have access to patient records and must never invent clinical information.
For medical questions, tell the user to consult their doctor.`

// SystemPrompt returns the instruction block sent ahead of every
// conversation.
func SystemPrompt() string {
	return systemPrompt
}

func validateMessages(messages []Message) error {
	if len(messages) == 0 {
		return fmt.Errorf("at least one message is required")
	}
	for i, m := range messages {
		if m.Role != RoleUser && m.Role != RoleAssistant {
			return fmt.Errorf("message %d has unknown role %q", i, m.Role)
		}
		if m.Content == "" {
			return fmt.Errorf("message %d is empty", i)
		}
	}
	if messages[len(messages)-1].Role != RoleUser {
		return fmt.Errorf("last message must be from the user")
	}
	return nil
}
