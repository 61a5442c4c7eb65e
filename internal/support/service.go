package support

import (
	"context"
	"fmt"
	"strings"

	"github.com/solbazaar/solbazaar-backend/pkg/assistant"
	pkgerrors "github.com/solbazaar/solbazaar-backend/pkg/errors"
	"github.com/solbazaar/solbazaar-backend/pkg/logger"
)

const maxHistory = 20

// Replier answers a support conversation with the assistant's next turn.
type Replier interface {
	Reply(ctx context.Context, history []assistant.Message) (string, error)
}

// ChatInput carries the conversation so far. The last message is the one
// being answered.
type ChatInput struct {
	Messages []ChatMessage `json:"messages" validate:"required,min=1,dive"`
}

type ChatMessage struct {
	Role    string `json:"role" validate:"required,oneof=user assistant"`
	Content string `json:"content" validate:"required"`
}

// ChatReply is the assistant's answer.
type ChatReply struct {
	Reply string `json:"reply"`
}

// Service exposes the support chat.
type Service interface {
	Chat(ctx context.Context, input ChatInput) (*ChatReply, error)
}

type service struct {
	replier Replier
	logg    *logger.Logger
}

// NewService builds the support service with the required dependencies.
func NewService(replier Replier, logg *logger.Logger) (Service, error) {
	if replier == nil {
		return nil, fmt.Errorf("assistant client required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{replier: replier, logg: logg}, nil
}

func (s *service) Chat(ctx context.Context, input ChatInput) (*ChatReply, error) {
	if len(input.Messages) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "at least one message is required")
	}

	messages := input.Messages
	if len(messages) > maxHistory {
		messages = messages[len(messages)-maxHistory:]
	}

	history := make([]assistant.Message, 0, len(messages))
	for _, msg := range messages {
		role := strings.ToLower(strings.TrimSpace(msg.Role))
		if role != "user" && role != "assistant" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("unknown message role %q", msg.Role))
		}
		if strings.TrimSpace(msg.Content) == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "message content must not be empty")
		}
		history = append(history, assistant.Message{Role: role, Content: msg.Content})
	}

	reply, err := s.replier.Reply(ctx, history)
	if err != nil {
		if appErr := pkgerrors.As(err); appErr != nil {
			return nil, appErr
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "assistant reply")
	}
	return &ChatReply{Reply: reply}, nil
}
