package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"

	"github.com/jlucaswrk/vet-ai-chat/internal/core"
	"github.com/jlucaswrk/vet-ai-chat/internal/models"
)

// Chat-path failures, mapped from upstream status codes. ErrMissingAPIKey
// is raised before any network call is attempted.
var (
	ErrMissingAPIKey = errors.New("api key not supplied")
	ErrInvalidAPIKey = errors.New("api key rejected upstream")
	ErrRateLimited   = errors.New("upstream rate limit exceeded")
	ErrUpstream      = errors.New("upstream completion failed")
)

const (
	chatTemperature     = 0.7
	chatMaxOutputTokens = 2000
)

// GeminiChat completes conversations against the Gemini API. The client
// is built per call from the caller-supplied key: the server stores no
// credentials and keeps no session affinity.
type GeminiChat struct {
	modelName string
}

var _ core.ChatProvider = (*GeminiChat)(nil)

func NewGeminiChat(modelName string) *GeminiChat {
	if modelName == "" {
		modelName = "gemini-1.5-flash"
	}
	return &GeminiChat{modelName: modelName}
}

// Complete sends the system prompt plus the full prior history and
// returns the reply text. The newest user turn is expected to already be
// the last element of history.
func (g *GeminiChat) Complete(ctx context.Context, apiKey, systemPrompt string, history []models.Message) (string, error) {
	if apiKey == "" {
		return "", ErrMissingAPIKey
	}
	if len(history) == 0 {
		return "", fmt.Errorf("%w: empty message history", ErrUpstream)
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	defer client.Close()

	m := client.GenerativeModel(g.modelName)
	m.SetTemperature(chatTemperature)
	m.SetMaxOutputTokens(chatMaxOutputTokens)
	if systemPrompt != "" {
		m.SystemInstruction = &genai.Content{
			Parts: []genai.Part{genai.Text(systemPrompt)},
		}
	}

	cs := m.StartChat()
	for _, msg := range history[:len(history)-1] {
		cs.History = append(cs.History, &genai.Content{
			Role:  providerRole(msg.Role),
			Parts: []genai.Part{genai.Text(msg.Content)},
		})
	}

	resp, err := cs.SendMessage(ctx, genai.Text(history[len(history)-1].Content))
	if err != nil {
		return "", mapUpstreamError(err)
	}

	reply := joinTextParts(resp)
	if reply == "" {
		return "", fmt.Errorf("%w: empty reply", ErrUpstream)
	}
	return reply, nil
}

// providerRole maps conversation roles onto the two roles Gemini accepts
// in chat history.
func providerRole(role string) string {
	if role == "assistant" {
		return "model"
	}
	return "user"
}

func joinTextParts(resp *genai.GenerateContentResponse) string {
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}
	var b strings.Builder
	for _, p := range resp.Candidates[0].Content.Parts {
		if t, ok := p.(genai.Text); ok {
			b.WriteString(string(t))
		}
	}
	return b.String()
}

// mapUpstreamError folds provider status codes into the chat error
// taxonomy: 401/403 mean a bad key, 429 means rate limiting, everything
// else is a generic upstream failure.
func mapUpstreamError(err error) error {
	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		switch gerr.Code {
		case 401, 403:
			return fmt.Errorf("%w: %v", ErrInvalidAPIKey, gerr.Code)
		case 429:
			return ErrRateLimited
		}
	}
	return fmt.Errorf("%w: %v", ErrUpstream, err)
}
