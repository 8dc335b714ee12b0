package extract

import (
	"encoding/json"
	"fmt"

	"code.sajari.com/docconv"
)

// Parser backends hand back structurally different payloads: a bare
// string, a node carrying the text under a "text" field, or a node
// carrying it under a "body" field (docconv's response is the body-field
// case). Flatten matches each known shape exhaustively and reduces it to
// plain text.
//
// Anything unrecognized is serialized whole as a last resort. That path
// leaks structural noise into the chat context, so Flatten reports it via
// the second return value and callers should log it.
func Flatten(payload any) (string, bool) {
	switch p := payload.(type) {
	case string:
		return p, true
	case *docconv.Response:
		if p == nil {
			return "", true
		}
		return p.Body, true
	case map[string]any:
		if t, ok := p["text"].(string); ok {
			return t, true
		}
		if b, ok := p["body"].(string); ok {
			return b, true
		}
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		return fmt.Sprint(payload), false
	}
	return string(raw), false
}
