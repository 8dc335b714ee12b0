package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/jlucaswrk/vet-ai-chat/internal/core"
	"github.com/jlucaswrk/vet-ai-chat/internal/core/llm"
	"github.com/jlucaswrk/vet-ai-chat/internal/models"
	"github.com/jlucaswrk/vet-ai-chat/internal/session"
)

type ChatHandler struct {
	provider core.ChatProvider
}

func NewChatHandler(provider core.ChatProvider) *ChatHandler {
	return &ChatHandler{provider: provider}
}

// ChatRequest carries the whole client-held session on every call: the
// server is stateless and remembers nothing between turns. Context may
// arrive pre-assembled (the original browser client does this) or as the
// raw document set for server-side assembly.
type ChatRequest struct {
	Messages  []models.Message  `json:"messages"`
	APIKey    string            `json:"apiKey"`
	Context   string            `json:"context"`
	Documents []models.Document `json:"documents,omitempty"`
}

// Chat relays one conversation turn to the LLM. POST /api/chat.
func (h *ChatHandler) Chat(w http.ResponseWriter, r *http.Request) {
	var req ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "corpo da requisição inválido")
		return
	}

	if req.APIKey == "" {
		writeError(w, http.StatusBadRequest, "API key não fornecida")
		return
	}
	if len(req.Messages) == 0 {
		writeError(w, http.StatusBadRequest, "nenhuma mensagem enviada")
		return
	}

	state := session.State{
		APIKey:    req.APIKey,
		Documents: req.Documents,
		Messages:  req.Messages,
	}

	context := req.Context
	if len(state.Documents) > 0 {
		context = state.Context()
	}

	reply, err := h.provider.Complete(r.Context(), state.APIKey, session.SystemPrompt(context), state.Messages)
	if err != nil {
		writeChatError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": reply})
}

func writeChatError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, llm.ErrMissingAPIKey):
		writeError(w, http.StatusBadRequest, "API key não fornecida")
	case errors.Is(err, llm.ErrInvalidAPIKey):
		writeError(w, http.StatusUnauthorized, "API key inválida. Verifique sua chave.")
	case errors.Is(err, llm.ErrRateLimited):
		writeError(w, http.StatusTooManyRequests, "Limite de requisições excedido. Tente novamente em alguns minutos.")
	default:
		log.Printf("chat: upstream failure: %v", err)
		writeError(w, http.StatusInternalServerError, "Não foi possível gerar uma resposta")
	}
}
