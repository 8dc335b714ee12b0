package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/jlucaswrk/vet-ai-chat/internal/config"
	"github.com/jlucaswrk/vet-ai-chat/internal/core/extract"
	"github.com/jlucaswrk/vet-ai-chat/internal/core/ingest"
)

// allowedMimeTypes mirrors the extension allow-list for the multipart
// variant, where the browser declares a content type.
var allowedMimeTypes = map[string]bool{
	"application/pdf":                true,
	"application/vnd.ms-powerpoint":  true,
	"application/vnd.openxmlformats-officedocument.presentationml.presentation": true,
	"application/msword": true,
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": true,
}

type DocumentHandler struct {
	ingestor *ingest.Ingestor
	cfg      *config.Config
}

func NewDocumentHandler(ingestor *ingest.Ingestor, cfg *config.Config) *DocumentHandler {
	return &DocumentHandler{ingestor: ingestor, cfg: cfg}
}

// Upload handles the direct multipart path: the payload is parsed in
// process, no storage round-trip. POST /api/upload.
func (h *DocumentHandler) Upload(w http.ResponseWriter, r *http.Request) {
	filename, data, ok := h.readMultipartFile(w, r)
	if !ok {
		return
	}

	doc, err := h.ingestor.IngestBytes(r.Context(), filename, data)
	if err != nil {
		writeIngestError(w, filename, err)
		return
	}

	resp := map[string]any{
		"success": true,
		"content": doc.Content,
		"name":    doc.Name,
		"type":    strings.TrimPrefix(strings.ToLower(filepath.Ext(filename)), "."),
		"size":    len(data),
	}
	if strings.EqualFold(filepath.Ext(filename), ".pdf") {
		resp["pages"] = extract.PageCount(data)
	}
	writeJSON(w, http.StatusOK, resp)
}

// ProcessDirect is the standalone file-processor variant of the direct
// path. POST /process.
func (h *DocumentHandler) ProcessDirect(w http.ResponseWriter, r *http.Request) {
	filename, data, ok := h.readMultipartFile(w, r)
	if !ok {
		return
	}

	doc, err := h.ingestor.IngestBytes(r.Context(), filename, data)
	if err != nil {
		writeIngestError(w, filename, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success":         true,
		"name":            doc.Name,
		"content":         doc.Content,
		"size":            len(data),
		"extractedLength": len(doc.Content),
	})
}

type uploadURLRequest struct {
	Filename    string `json:"filename" validate:"required"`
	ContentType string `json:"contentType" validate:"required"`
}

// UploadURL issues a presigned upload slot for the staged path.
// POST /api/spaces/upload-url.
func (h *DocumentHandler) UploadURL(w http.ResponseWriter, r *http.Request) {
	var req uploadURLRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "filename e contentType são obrigatórios")
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, "filename e contentType são obrigatórios")
		return
	}

	slot, err := h.ingestor.IssueSlot(r.Context(), req.Filename, req.ContentType)
	if err != nil {
		if errors.Is(err, ingest.ErrUnsupportedType) {
			writeError(w, http.StatusBadRequest, msgUnsupportedType)
			return
		}
		log.Printf("upload-url: %v", err)
		writeError(w, http.StatusInternalServerError, "Erro ao gerar URL de upload")
		return
	}

	writeJSON(w, http.StatusOK, slot)
}

type processRequest struct {
	FileKey  string `json:"fileKey" validate:"required"`
	Filename string `json:"filename" validate:"required"`
}

// ProcessStored extracts a file previously pushed to storage through a
// presigned slot. POST /api/spaces/process.
func (h *DocumentHandler) ProcessStored(w http.ResponseWriter, r *http.Request) {
	var req processRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "fileKey e filename são obrigatórios")
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, "fileKey e filename são obrigatórios")
		return
	}

	log.Printf("processing staged file %s (%s)", req.Filename, req.FileKey)

	doc, err := h.ingestor.IngestStored(r.Context(), req.FileKey, req.Filename)
	if err != nil {
		writeIngestError(w, req.Filename, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"name":    doc.Name,
		"content": doc.Content,
		"fileKey": req.FileKey,
	})
}

// readMultipartFile pulls the "file" part out of a multipart request,
// enforcing the size ceiling and the declared-MIME check before the
// body is read.
func (h *DocumentHandler) readMultipartFile(w http.ResponseWriter, r *http.Request) (string, []byte, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, h.cfg.MaxUploadBytes+(1<<20))

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		writeError(w, http.StatusBadRequest, msgFileTooLarge)
		return "", nil, false
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, msgNoFile)
		return "", nil, false
	}
	defer file.Close()

	if ct := header.Header.Get("Content-Type"); ct != "" && ct != "application/octet-stream" && !allowedMimeTypes[ct] {
		writeError(w, http.StatusBadRequest, msgUnsupportedType)
		return "", nil, false
	}
	if header.Size > h.cfg.MaxUploadBytes {
		writeError(w, http.StatusBadRequest, msgFileTooLarge)
		return "", nil, false
	}

	data, err := io.ReadAll(file)
	if err != nil {
		log.Printf("read multipart file: %v", err)
		writeError(w, http.StatusInternalServerError, msgInternal)
		return "", nil, false
	}

	return filepath.Base(header.Filename), data, true
}
