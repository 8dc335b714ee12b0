package models

import (
	"time"
)

// Document represents one ingested study material. Content is the
// normalized plain text extracted from the uploaded file; documents whose
// text falls below MinContentLength are never constructed.
type Document struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Content    string    `json:"content"`
	UploadedAt time.Time `json:"uploadedAt"`
}

// MinContentLength is the smallest normalized text length that counts as
// "text was extracted" from an uploaded file.
const MinContentLength = 10

// Message is one turn in a conversation. Role ordering is up to the
// caller; history is an ordered append log, not a state machine.
type Message struct {
	ID        string    `json:"id"`
	Role      string    `json:"role"` // "user", "assistant" or "system"
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// UploadSlot pairs a storage key with a time-boxed presigned PUT URL.
// Created per upload attempt, consumed once, never reused; expiry is the
// only revocation mechanism.
type UploadSlot struct {
	FileKey   string `json:"fileKey"`
	UploadURL string `json:"uploadUrl"`
}
