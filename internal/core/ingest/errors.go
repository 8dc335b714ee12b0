package ingest

import "errors"

// Ingestion failures the HTTP layer maps to stable client responses.
// Wrapped causes stay server-side; only the sentinel identity crosses
// the API boundary.
var (
	// ErrUnsupportedType: filename extension outside the allow-list.
	ErrUnsupportedType = errors.New("unsupported file type")

	// ErrFileTooLarge: payload above the configured ceiling.
	ErrFileTooLarge = errors.New("file too large")

	// ErrEmptyExtraction: parsing succeeded but yielded less than the
	// minimum content threshold (image-only, empty or protected file).
	ErrEmptyExtraction = errors.New("no extractable text")

	// ErrParse: the underlying parser failed; the file is likely
	// corrupted. The raw cause is wrapped, never surfaced to clients.
	ErrParse = errors.New("document parsing failed")
)
