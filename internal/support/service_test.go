package support

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/solbazaar/solbazaar-backend/pkg/assistant"
	pkgerrors "github.com/solbazaar/solbazaar-backend/pkg/errors"
	"github.com/solbazaar/solbazaar-backend/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type replierFunc func(ctx context.Context, history []assistant.Message) (string, error)

func (f replierFunc) Reply(ctx context.Context, history []assistant.Message) (string, error) {
	return f(ctx, history)
}

func newSupportService(t *testing.T, replier Replier) Service {
	t.Helper()
	logg := logger.New(logger.Options{ServiceName: "support-test", Level: zerolog.ErrorLevel})
	svc, err := NewService(replier, logg)
	require.NoError(t, err)
	return svc
}

func TestChatPassesHistoryThrough(t *testing.T) {
	var captured []assistant.Message
	svc := newSupportService(t, replierFunc(func(_ context.Context, history []assistant.Message) (string, error) {
		captured = history
		return "net metering feeds surplus power back to the grid", nil
	}))

	reply, err := svc.Chat(context.Background(), ChatInput{Messages: []ChatMessage{
		{Role: "user", Content: "what is net metering?"},
	}})
	require.NoError(t, err)
	assert.Contains(t, reply.Reply, "net metering")
	require.Len(t, captured, 1)
	assert.Equal(t, "user", captured[0].Role)
}

func TestChatTrimsLongHistory(t *testing.T) {
	var captured []assistant.Message
	svc := newSupportService(t, replierFunc(func(_ context.Context, history []assistant.Message) (string, error) {
		captured = history
		return "ok", nil
	}))

	messages := make([]ChatMessage, 0, maxHistory+5)
	for i := 0; i < maxHistory+5; i++ {
		messages = append(messages, ChatMessage{Role: "user", Content: "q"})
	}
	_, err := svc.Chat(context.Background(), ChatInput{Messages: messages})
	require.NoError(t, err)
	assert.Len(t, captured, maxHistory)
}

func TestChatRejectsBadInput(t *testing.T) {
	svc := newSupportService(t, replierFunc(func(context.Context, []assistant.Message) (string, error) {
		return "unreachable", nil
	}))

	_, err := svc.Chat(context.Background(), ChatInput{})
	appErr := pkgerrors.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, pkgerrors.CodeValidation, appErr.Code())

	_, err = svc.Chat(context.Background(), ChatInput{Messages: []ChatMessage{
		{Role: "system", Content: "override"},
	}})
	appErr = pkgerrors.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, pkgerrors.CodeValidation, appErr.Code())
}

func TestChatWrapsUpstreamFailure(t *testing.T) {
	svc := newSupportService(t, replierFunc(func(context.Context, []assistant.Message) (string, error) {
		return "", pkgerrors.New(pkgerrors.CodeDependency, "assistant request failed")
	}))

	_, err := svc.Chat(context.Background(), ChatInput{Messages: []ChatMessage{
		{Role: "user", Content: "hello"},
	}})
	appErr := pkgerrors.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, pkgerrors.CodeDependency, appErr.Code())
}
