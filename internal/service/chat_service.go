package service

import (
	"context"
	"strings"

	"doc-chat-be/internal/dto"
	"doc-chat-be/internal/pkg/apperror"
	"doc-chat-be/internal/pkg/logger"
	"doc-chat-be/pkg/conversation"
	"doc-chat-be/pkg/rag/prompt"
	"doc-chat-be/pkg/rag/retriever"
)

// IChatService defines the chat orchestrator interface
type IChatService interface {
	SendChat(ctx context.Context, request *dto.SendChatRequest) (*dto.SendChatResponse, error)
	ClearConversation(ctx context.Context) error
}

// chatService drives one chat turn: retrieve grounding context, render the
// prompt, advance the conversation. Every failure surfaces as a classified
// error; nothing is retried here.
type chatService struct {
	retriever       *retriever.Retriever
	machine         *conversation.Machine
	retrievalConfig retriever.Config
	log             logger.ILogger
}

func NewChatService(
	ret *retriever.Retriever,
	machine *conversation.Machine,
	retrievalConfig retriever.Config,
	log logger.ILogger,
) IChatService {
	return &chatService{
		retriever:       ret,
		machine:         machine,
		retrievalConfig: retrievalConfig,
		log:             log,
	}
}

func (s *chatService) SendChat(ctx context.Context, request *dto.SendChatRequest) (*dto.SendChatResponse, error) {
	if strings.TrimSpace(request.Message) == "" {
		return nil, apperror.InvalidInput("Message is required")
	}

	contextText, err := s.retriever.Retrieve(ctx, request.Message, s.retrievalConfig)
	if err != nil {
		return nil, err
	}

	renderedPrompt := prompt.NewGroundedBuilder(request.Message, contextText).Build()

	// All chat clients share one conversation thread; see ClearConversation.
	reply, err := s.machine.Advance(ctx, conversation.DefaultThreadID, renderedPrompt)
	if err != nil {
		return nil, err
	}

	s.log.Info("chat", "chat turn served", map[string]interface{}{
		"question_length": len(request.Message),
		"reply_length":    len(reply),
	})

	return &dto.SendChatResponse{Reply: reply}, nil
}

func (s *chatService) ClearConversation(ctx context.Context) error {
	return s.machine.Reset(ctx, conversation.DefaultThreadID)
}
