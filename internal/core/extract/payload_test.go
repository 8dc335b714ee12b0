package extract

import (
	"testing"

	"code.sajari.com/docconv"
	"github.com/stretchr/testify/assert"
)

func TestFlattenKnownShapes(t *testing.T) {
	tests := []struct {
		name    string
		payload any
		want    string
	}{
		{"bare string", "plain", "plain"},
		{"text field node", map[string]any{"text": "hello"}, "hello"},
		{"body field node", map[string]any{"body": "world"}, "world"},
		{"docconv response", &docconv.Response{Body: "converted"}, "converted"},
		{"text wins over body", map[string]any{"text": "t", "body": "b"}, "t"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Flatten(tt.payload)
			assert.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFlattenUnrecognizedShapeSerializes(t *testing.T) {
	got, ok := Flatten(map[string]any{"pages": 3, "title": "aula"})
	assert.False(t, ok, "opaque payload must be flagged as degraded")
	assert.Contains(t, got, "aula")
}

func TestFlattenNilResponse(t *testing.T) {
	got, ok := Flatten((*docconv.Response)(nil))
	assert.True(t, ok)
	assert.Equal(t, "", got)
}
