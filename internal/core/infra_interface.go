package core

import (
	"context"
	"io"

	"github.com/jlucaswrk/vet-ai-chat/internal/models"
)

// ObjectStore defines interactions with S3-compatible object storage
// (DigitalOcean Spaces in production). It's abstract so the backend can
// be swapped for AWS S3, MinIO, etc. without touching the orchestrator.
type ObjectStore interface {
	// PresignUpload returns a presigned PUT URL for key, bound to the
	// given content type and valid for one hour.
	PresignUpload(ctx context.Context, key, contentType string) (url string, err error)

	// GetFile fetches the whole object into memory. Fails if absent.
	GetFile(ctx context.Context, key string) ([]byte, error)

	// DeleteFile removes the object. Deleting an absent object is not an
	// error the caller checks for.
	DeleteFile(ctx context.Context, key string) error

	// UploadFile performs a server-side put and returns the object URL.
	UploadFile(ctx context.Context, key string, data io.Reader, contentType string) (url string, err error)
}

// DocumentExtractor converts a document's raw bytes into plain text.
// The filename hint selects the parsing strategy. Parser failures are
// returned as wrapped errors, never raw panics.
type DocumentExtractor interface {
	Extract(ctx context.Context, data []byte, filename string) (string, error)
}

// ChatProvider issues one chat-completion call against the upstream LLM.
// The API key comes from the caller on every request; the provider holds
// no credentials of its own.
type ChatProvider interface {
	Complete(ctx context.Context, apiKey, systemPrompt string, history []models.Message) (string, error)
}
