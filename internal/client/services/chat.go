package services

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/glucotrack/glucotrack/internal/client/api"
	"github.com/glucotrack/glucotrack/internal/logging"
)

// ChatService asks the assistant questions on the user's behalf.
type ChatService struct {
	client caller
	log    logging.Logger
}

// NewChatService wires the chat service to the pipeline.
func NewChatService(client caller, log logging.Logger) *ChatService {
	return &ChatService{client: client, log: log}
}

type chatRequest struct {
	Question string `json:"question"`
}

type chatResponse struct {
	Answer string `json:"answer"`
}

// Ask sends a question and returns the assistant's answer. Empty questions
// are rejected locally; a reply without an answer is malformed.
func (s *ChatService) Ask(ctx context.Context, question string) (string, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return "", api.NewValidation("Question cannot be empty.")
	}

	body, err := s.client.Post(ctx, "/api/chat", chatRequest{Question: question})
	if err != nil {
		return "", err
	}

	var resp chatResponse
	if err := json.Unmarshal(body, &resp); err != nil || resp.Answer == "" {
		s.log.Error(ctx, "chat reply carried no answer")
		return "", api.NewMalformed("Invalid response from chatbot.")
	}
	return resp.Answer, nil
}
