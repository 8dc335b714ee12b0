package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/jlucaswrk/vet-ai-chat/internal/core/ingest"
)

var validate = validator.New()

// User-facing messages, kept in pt-BR for the study-assistant audience.
// Internal error detail never reaches these strings.
const (
	msgNoFile          = "Nenhum arquivo enviado"
	msgUnsupportedType = "Tipo de arquivo não suportado. Use PDF, PowerPoint ou Word."
	msgFileTooLarge    = "Arquivo muito grande. Máximo: 50MB"
	msgEmptyExtraction = "Não foi possível extrair texto do arquivo. Verifique se o arquivo contém texto."
	msgEmptyPDF        = "Não foi possível extrair texto do PDF. O arquivo pode estar vazio ou protegido."
	msgCorruptFile     = "Erro ao processar arquivo. O arquivo pode estar corrompido."
	msgInternal        = "Erro interno do servidor"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("write response: %v", err)
	}
}

// writeError emits the stable {"error": string} shape every failure uses.
func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// writeIngestError maps the ingestion error taxonomy onto HTTP. Anything
// outside the taxonomy is a 500 with a generic message; the cause is
// logged server-side only.
func writeIngestError(w http.ResponseWriter, filename string, err error) {
	switch {
	case errors.Is(err, ingest.ErrUnsupportedType):
		writeError(w, http.StatusBadRequest, msgUnsupportedType)
	case errors.Is(err, ingest.ErrFileTooLarge):
		writeError(w, http.StatusBadRequest, msgFileTooLarge)
	case errors.Is(err, ingest.ErrEmptyExtraction):
		writeError(w, http.StatusBadRequest, emptyExtractionMsg(filename))
	case errors.Is(err, ingest.ErrParse):
		log.Printf("ingest: parse failure for %q: %v", filename, err)
		writeError(w, http.StatusBadRequest, msgCorruptFile)
	default:
		log.Printf("ingest: unexpected failure for %q: %v", filename, err)
		writeError(w, http.StatusInternalServerError, msgInternal)
	}
}

// emptyExtractionMsg picks the format-aware hint: PDFs get the
// "empty or protected" wording.
func emptyExtractionMsg(filename string) string {
	if strings.EqualFold(filepath.Ext(filename), ".pdf") {
		return msgEmptyPDF
	}
	return msgEmptyExtraction
}
