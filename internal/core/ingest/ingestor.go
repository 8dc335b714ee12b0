package ingest

import (
	"context"
	"fmt"
	"log"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jlucaswrk/vet-ai-chat/internal/config"
	"github.com/jlucaswrk/vet-ai-chat/internal/core"
	"github.com/jlucaswrk/vet-ai-chat/internal/models"
)

// allowedExtensions is the ingestion allow-list, checked case-insensitively
// at every ingress point before any I/O happens.
var allowedExtensions = map[string]bool{
	".pdf":  true,
	".ppt":  true,
	".pptx": true,
	".doc":  true,
	".docx": true,
}

// Ingestor sequences one document through validation, storage, extraction,
// normalization and the minimum-content gate. Two entry points share the
// pipeline: IngestBytes for the direct multipart path and IngestStored for
// files staged through object storage.
type Ingestor struct {
	store     core.ObjectStore
	extractor core.DocumentExtractor
	cfg       *config.Config
}

func NewIngestor(store core.ObjectStore, extractor core.DocumentExtractor, cfg *config.Config) *Ingestor {
	return &Ingestor{store: store, extractor: extractor, cfg: cfg}
}

// ValidateFilename enforces the extension allow-list.
func ValidateFilename(name string) error {
	ext := strings.ToLower(filepath.Ext(name))
	if !allowedExtensions[ext] {
		return fmt.Errorf("%w: %s", ErrUnsupportedType, ext)
	}
	return nil
}

// StorageKey derives the object key for an upload. The millisecond
// timestamp alone is not collision-free for concurrent same-named
// uploads, so a short random infix is added. The key is opaque to
// clients; they echo it back verbatim.
func StorageKey(filename string) string {
	return fmt.Sprintf("uploads/%d-%s-%s",
		time.Now().UnixMilli(),
		uuid.NewString()[:8],
		filepath.Base(filename),
	)
}

// IssueSlot validates the file type and returns a single-use presigned
// upload slot. The actual byte transfer bypasses this process entirely.
func (i *Ingestor) IssueSlot(ctx context.Context, filename, contentType string) (*models.UploadSlot, error) {
	if err := ValidateFilename(filename); err != nil {
		return nil, err
	}

	key := StorageKey(filename)
	url, err := i.store.PresignUpload(ctx, key, contentType)
	if err != nil {
		return nil, fmt.Errorf("issue upload slot: %w", err)
	}

	return &models.UploadSlot{FileKey: key, UploadURL: url}, nil
}

// IngestBytes runs the direct strategy: the payload is already in memory,
// no storage round-trip. Capped at cfg.MaxUploadBytes.
func (i *Ingestor) IngestBytes(ctx context.Context, filename string, data []byte) (*models.Document, error) {
	if err := ValidateFilename(filename); err != nil {
		return nil, err
	}
	if int64(len(data)) > i.cfg.MaxUploadBytes {
		return nil, fmt.Errorf("%w: %d bytes", ErrFileTooLarge, len(data))
	}

	return i.extractAndFinalize(ctx, filename, data, "")
}

// IngestStored runs the staged strategy: the client already pushed the
// bytes to storage via a presigned slot, so the orchestrator fetches the
// full buffer back for extraction. Capped at cfg.MaxStagedBytes. On any
// extraction failure the now-useless stored object is deleted best-effort.
func (i *Ingestor) IngestStored(ctx context.Context, fileKey, filename string) (*models.Document, error) {
	if err := ValidateFilename(filename); err != nil {
		return nil, err
	}

	data, err := i.store.GetFile(ctx, fileKey)
	if err != nil {
		return nil, fmt.Errorf("fetch staged upload %s: %w", fileKey, err)
	}
	log.Printf("ingest: fetched %d bytes for %s (%s)", len(data), filename, fileKey)

	if int64(len(data)) > i.cfg.MaxStagedBytes {
		i.cleanup(ctx, fileKey)
		return nil, fmt.Errorf("%w: %d bytes", ErrFileTooLarge, len(data))
	}

	doc, err := i.extractAndFinalize(ctx, filename, data, fileKey)
	if err != nil {
		return nil, err
	}

	if !i.cfg.RetainUploads {
		i.cleanup(ctx, fileKey)
	}
	return doc, nil
}

// extractAndFinalize is the shared tail of both strategies: extract,
// normalize, gate on the minimum-content threshold, build the record.
// fileKey is empty on the direct path.
func (i *Ingestor) extractAndFinalize(ctx context.Context, filename string, data []byte, fileKey string) (*models.Document, error) {
	raw, err := i.extractor.Extract(ctx, data, filename)
	if err != nil {
		if fileKey != "" {
			i.cleanup(ctx, fileKey)
		}
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}

	content := Normalize(raw)
	if len(content) < models.MinContentLength {
		if fileKey != "" {
			i.cleanup(ctx, fileKey)
		}
		return nil, fmt.Errorf("%w: %d chars after normalization", ErrEmptyExtraction, len(content))
	}

	log.Printf("ingest: extracted %d characters from %s", len(content), filename)

	return &models.Document{
		ID:         uuid.NewString(),
		Name:       filename,
		Content:    content,
		UploadedAt: time.Now(),
	}, nil
}

// cleanup deletes a stored object after a failure (or per retention
// policy). Its own failure is logged and swallowed: the primary error
// always wins.
func (i *Ingestor) cleanup(ctx context.Context, fileKey string) {
	if err := i.store.DeleteFile(ctx, fileKey); err != nil {
		log.Printf("ingest: cleanup of %s failed: %v", fileKey, err)
	}
}
