package session

import (
	"encoding/json"
	"io"

	"github.com/jlucaswrk/vet-ai-chat/internal/models"
)

// State is the conversation state the browser holds between requests:
// the caller's API key, the ordered document set and the message log.
// The server reconstructs it from each request payload and discards it
// afterwards; nothing survives server-side between calls.
type State struct {
	APIKey    string            `json:"apiKey,omitempty"`
	Documents []models.Document `json:"documents"`
	Messages  []models.Message  `json:"messages"`
}

// AddDocument appends a document, preserving insertion order. Ordering
// is what the context assembler relies on.
func (s *State) AddDocument(doc models.Document) {
	s.Documents = append(s.Documents, doc)
}

// RemoveDocument drops the document with the given id, keeping the
// relative order of the rest. Reports whether anything was removed.
func (s *State) RemoveDocument(id string) bool {
	for i, d := range s.Documents {
		if d.ID == id {
			s.Documents = append(s.Documents[:i], s.Documents[i+1:]...)
			return true
		}
	}
	return false
}

// Context assembles the grounding context from the held documents.
func (s *State) Context() string {
	return AssembleContext(s.Documents)
}

// Load restores state from a JSON stream (session-boundary hook).
func (s *State) Load(r io.Reader) error {
	return json.NewDecoder(r).Decode(s)
}

// Save writes state as JSON (session-boundary hook).
func (s *State) Save(w io.Writer) error {
	return json.NewEncoder(w).Encode(s)
}
