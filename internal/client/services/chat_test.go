package services

import (
	"context"
	"testing"

	"github.com/glucotrack/glucotrack/internal/client/api"
	"github.com/stretchr/testify/require"
)

func TestAsk_Success(t *testing.T) {
	fc := &fakeCaller{resp: []byte(`{"answer":"Stay hydrated and avoid refined sugar."}`)}
	svc := NewChatService(fc, testLogger())

	answer, err := svc.Ask(context.Background(), "  What should I eat?  ")
	require.NoError(t, err)
	require.Equal(t, "Stay hydrated and avoid refined sugar.", answer)
	require.Equal(t, "/api/chat", fc.lastPath)
	require.Equal(t, chatRequest{Question: "What should I eat?"}, fc.lastBody)
}

func TestAsk_EmptyQuestion(t *testing.T) {
	fc := &fakeCaller{}
	svc := NewChatService(fc, testLogger())

	_, err := svc.Ask(context.Background(), "   ")
	require.True(t, api.IsKind(err, api.KindValidation))
	require.Zero(t, fc.calls)
}

func TestAsk_MissingAnswer(t *testing.T) {
	fc := &fakeCaller{resp: []byte(`{}`)}
	svc := NewChatService(fc, testLogger())

	_, err := svc.Ask(context.Background(), "hello")
	require.True(t, api.IsKind(err, api.KindMalformed))
}

func TestAsk_PipelineErrorPassesThrough(t *testing.T) {
	fc := &fakeCaller{err: &api.Error{Kind: api.KindUnauthorized, Status: 401, Message: api.MsgUnauthorized}}
	svc := NewChatService(fc, testLogger())

	_, err := svc.Ask(context.Background(), "hello")
	require.True(t, api.IsKind(err, api.KindUnauthorized))
}
