package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/sashabaranov/go-openai"

	"github.com/lukenewport-prog/nptgpt/models"
)

// Generation parameters are fixed policy, not caller-tunable.
const (
	completionTemperature = 0.7
	completionMaxTokens   = 800
)

// Completer generates the next assistant turn from a full message history.
type Completer interface {
	Complete(ctx context.Context, history []models.Message) (models.Message, error)
}

// OpenAIService calls the chat-completions API. Provider failures are
// classified: a content-policy rejection becomes ContentFilteredError with
// the provider's detail, everything else wraps ErrProvider.
type OpenAIService struct {
	client *openai.Client
	model  string
}

// NewOpenAIService builds a service against api.openai.com, or against
// baseURL when it is non-empty (Azure deployments, local test servers).
func NewOpenAIService(apiKey, baseURL, model string) *OpenAIService {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	return &OpenAIService{
		client: openai.NewClientWithConfig(cfg),
		model:  model,
	}
}

func (s *OpenAIService) Complete(ctx context.Context, history []models.Message) (models.Message, error) {
	resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       s.model,
		Messages:    toChatMessages(history),
		Temperature: completionTemperature,
		MaxTokens:   completionMaxTokens,
	})
	if err != nil {
		var apiErr *openai.APIError
		if errors.As(err, &apiErr) && isContentFilter(apiErr) {
			return models.Message{}, &models.ContentFilteredError{Detail: apiErr.Message}
		}
		return models.Message{}, fmt.Errorf("%w: %v", models.ErrProvider, err)
	}
	if len(resp.Choices) == 0 {
		return models.Message{}, fmt.Errorf("%w: empty response", models.ErrProvider)
	}
	return models.AssistantMessage(resp.Choices[0].Message.Content), nil
}

func isContentFilter(apiErr *openai.APIError) bool {
	code, ok := apiErr.Code.(string)
	return ok && code == "content_filter"
}

func toChatMessages(history []models.Message) []openai.ChatCompletionMessage {
	out := make([]openai.ChatCompletionMessage, 0, len(history))
	for _, m := range history {
		if len(m.Parts) == 0 {
			out = append(out, openai.ChatCompletionMessage{Role: m.Role, Content: m.Content})
			continue
		}
		out = append(out, openai.ChatCompletionMessage{
			Role:         m.Role,
			MultiContent: toChatParts(m.Parts),
		})
	}
	return out
}

func toChatParts(parts []models.ContentPart) []openai.ChatMessagePart {
	out := make([]openai.ChatMessagePart, 0, len(parts))
	for _, p := range parts {
		switch p.Type {
		case models.PartTypeImage:
			out = append(out, openai.ChatMessagePart{
				Type: openai.ChatMessagePartTypeImageURL,
				ImageURL: &openai.ChatMessageImageURL{
					URL:    fmt.Sprintf("data:%s;base64,%s", p.Image.MimeType, p.Image.Data),
					Detail: openai.ImageURLDetail(p.Detail),
				},
			})
		default:
			out = append(out, openai.ChatMessagePart{
				Type: openai.ChatMessagePartTypeText,
				Text: p.Text,
			})
		}
	}
	return out
}
