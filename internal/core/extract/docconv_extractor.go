package extract

import (
	"bytes"
	"context"
	"fmt"
	"log"

	"code.sajari.com/docconv"
	"github.com/pdfcpu/pdfcpu/pkg/api"

	"github.com/jlucaswrk/vet-ai-chat/internal/core"
)

// DocconvExtractor implements core.DocumentExtractor using sajari/docconv.
// The parsing strategy (PDF text layer, Office XML/binary) is chosen from
// the filename extension.
type DocconvExtractor struct {
	useReadability bool
}

var _ core.DocumentExtractor = (*DocconvExtractor)(nil)

func NewDocconvExtractor(useReadability bool) *DocconvExtractor {
	return &DocconvExtractor{useReadability: useReadability}
}

// Extract converts the document bytes into raw text. Any parser failure,
// including a panic inside the parsing library, comes back as a wrapped
// error; the raw cause never crosses this layer unexamined.
func (e *DocconvExtractor) Extract(ctx context.Context, data []byte, filename string) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("parser panic: %v", r)
		}
	}()

	mimeType := docconv.MimeTypeByExtension(filename)

	res, err := docconv.Convert(bytes.NewReader(data), mimeType, e.useReadability)
	if err != nil {
		return "", fmt.Errorf("docconv %s: %w", mimeType, err)
	}

	if err := ctx.Err(); err != nil {
		return "", err
	}

	out, ok := Flatten(res)
	if !ok {
		log.Printf("extract: unrecognized parser payload for %q, serialized fallback in use", filename)
	}
	return out, nil
}

// PageCount reports the number of pages in a PDF, 0 when it cannot be
// determined. Best effort only; never fails the ingestion.
func PageCount(data []byte) int {
	n, err := api.PageCount(bytes.NewReader(data), nil)
	if err != nil {
		log.Printf("extract: page count failed: %v", err)
		return 0
	}
	return n
}
