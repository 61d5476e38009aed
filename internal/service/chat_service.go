package service

import (
	"context"
	"strings"

	"ai-tripmate-be/internal/dto"
	"ai-tripmate-be/internal/pkg/logger"
	"ai-tripmate-be/pkg/inference"
	"ai-tripmate-be/pkg/retrieval"
)

type IChatService interface {
	Chat(ctx context.Context, req *dto.ChatRequest) *dto.ChatResponse
}

type chatService struct {
	augmenter *retrieval.Augmenter
	router    *inference.Router
	sysLogger logger.ILogger
}

func NewChatService(
	augmenter *retrieval.Augmenter,
	router *inference.Router,
	sysLogger logger.ILogger,
) IChatService {
	return &chatService{
		augmenter: augmenter,
		router:    router,
		sysLogger: sysLogger,
	}
}

// Chat flattens the message parts into a prompt, augments it with retrieved
// context, and routes it through the inference pipeline. It never fails:
// backend errors come back as text inside the result.
func (s *chatService) Chat(ctx context.Context, req *dto.ChatRequest) *dto.ChatResponse {
	prompt := flattenPrompt(req.Messages)
	augmented := s.augmenter.Augment(prompt)

	result := s.router.Infer(ctx, prompt, augmented)
	if result.Err != nil {
		s.sysLogger.Error("inference", "All inference paths failed", map[string]interface{}{
			"source": string(result.Source),
			"error":  result.Err.Error(),
		})
	} else {
		s.sysLogger.Info("inference", "Chat answered", map[string]interface{}{
			"source":    string(result.Source),
			"augmented": augmented != prompt,
		})
	}

	return &dto.ChatResponse{Result: result.Text}
}

// flattenPrompt joins every "text" content part across all messages with
// newlines, which is the shape the web client sends.
func flattenPrompt(messages []dto.ChatMessage) string {
	var parts []string
	for _, m := range messages {
		for _, c := range m.Content {
			if c.Type == "text" {
				parts = append(parts, c.Text)
			}
		}
	}
	return strings.Join(parts, "\n")
}
