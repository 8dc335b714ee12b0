package llm

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"google.golang.org/api/googleapi"

	"github.com/jlucaswrk/vet-ai-chat/internal/models"
)

func TestCompleteMissingKeyShortCircuits(t *testing.T) {
	g := NewGeminiChat("")

	_, err := g.Complete(context.Background(), "", "system", []models.Message{
		{Role: "user", Content: "oi"},
	})
	assert.ErrorIs(t, err, ErrMissingAPIKey)
}

func TestProviderRoleMapping(t *testing.T) {
	assert.Equal(t, "model", providerRole("assistant"))
	assert.Equal(t, "user", providerRole("user"))
	assert.Equal(t, "user", providerRole("system"))
}

func TestMapUpstreamError(t *testing.T) {
	assert.ErrorIs(t, mapUpstreamError(&googleapi.Error{Code: 401}), ErrInvalidAPIKey)
	assert.ErrorIs(t, mapUpstreamError(&googleapi.Error{Code: 403}), ErrInvalidAPIKey)
	assert.ErrorIs(t, mapUpstreamError(&googleapi.Error{Code: 429}), ErrRateLimited)
	assert.ErrorIs(t, mapUpstreamError(&googleapi.Error{Code: 500}), ErrUpstream)
	assert.ErrorIs(t, mapUpstreamError(errors.New("connection reset")), ErrUpstream)
}

func TestDefaultModelName(t *testing.T) {
	assert.Equal(t, "gemini-1.5-flash", NewGeminiChat("").modelName)
	assert.Equal(t, "gemini-2.0-pro", NewGeminiChat("gemini-2.0-pro").modelName)
}
