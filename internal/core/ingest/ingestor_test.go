package ingest

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jlucaswrk/vet-ai-chat/internal/config"
)

// --- fakes ---

type fakeStore struct {
	objects map[string][]byte

	presignCalls int
	getCalls     int
	deleteCalls  int
	deletedKeys  []string

	presignErr error
	getErr     error
	deleteErr  error
}

func newFakeStore() *fakeStore {
	return &fakeStore{objects: map[string][]byte{}}
}

func (f *fakeStore) PresignUpload(ctx context.Context, key, contentType string) (string, error) {
	f.presignCalls++
	if f.presignErr != nil {
		return "", f.presignErr
	}
	return "https://example.test/upload/" + key, nil
}

func (f *fakeStore) GetFile(ctx context.Context, key string) ([]byte, error) {
	f.getCalls++
	if f.getErr != nil {
		return nil, f.getErr
	}
	data, ok := f.objects[key]
	if !ok {
		return nil, errors.New("object absent")
	}
	return data, nil
}

func (f *fakeStore) DeleteFile(ctx context.Context, key string) error {
	f.deleteCalls++
	f.deletedKeys = append(f.deletedKeys, key)
	return f.deleteErr
}

func (f *fakeStore) UploadFile(ctx context.Context, key string, data io.Reader, contentType string) (string, error) {
	b, _ := io.ReadAll(data)
	f.objects[key] = b
	return "https://example.test/" + key, nil
}

type fakeExtractor struct {
	text string
	err  error
}

func (f *fakeExtractor) Extract(ctx context.Context, data []byte, filename string) (string, error) {
	return f.text, f.err
}

func testConfig() *config.Config {
	return &config.Config{
		MaxUploadBytes: 50 << 20,
		MaxStagedBytes: 500 << 20,
		RetainUploads:  true,
	}
}

// --- filename validation ---

func TestValidateFilenameAllowList(t *testing.T) {
	for _, name := range []string{"a.pdf", "b.PPT", "c.pptx", "d.Doc", "E.DOCX"} {
		assert.NoError(t, ValidateFilename(name), name)
	}
	for _, name := range []string{"a.txt", "b.exe", "noext", "c.pdf.zip", "d.xls"} {
		assert.ErrorIs(t, ValidateFilename(name), ErrUnsupportedType, name)
	}
}

func TestRejectionHappensBeforeAnyIO(t *testing.T) {
	store := newFakeStore()
	ing := NewIngestor(store, &fakeExtractor{text: "long enough content"}, testConfig())

	_, err := ing.IssueSlot(context.Background(), "notes.txt", "text/plain")
	assert.ErrorIs(t, err, ErrUnsupportedType)

	_, err = ing.IngestStored(context.Background(), "uploads/k", "notes.txt")
	assert.ErrorIs(t, err, ErrUnsupportedType)

	assert.Zero(t, store.presignCalls)
	assert.Zero(t, store.getCalls)
	assert.Zero(t, store.deleteCalls)
}

// --- upload slots ---

func TestIssueSlotKeyDerivation(t *testing.T) {
	store := newFakeStore()
	ing := NewIngestor(store, &fakeExtractor{}, testConfig())

	slot, err := ing.IssueSlot(context.Background(), "aula 01.pdf", "application/pdf")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(slot.FileKey, "uploads/"))
	assert.True(t, strings.HasSuffix(slot.FileKey, "-aula 01.pdf"))
	assert.Contains(t, slot.UploadURL, slot.FileKey)

	// concurrent same-name uploads must not collide
	slot2, err := ing.IssueSlot(context.Background(), "aula 01.pdf", "application/pdf")
	require.NoError(t, err)
	assert.NotEqual(t, slot.FileKey, slot2.FileKey)
}

func TestIssueSlotStripsPathComponents(t *testing.T) {
	ing := NewIngestor(newFakeStore(), &fakeExtractor{}, testConfig())

	slot, err := ing.IssueSlot(context.Background(), "../../etc/aula.pdf", "application/pdf")
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(slot.FileKey, "-aula.pdf"))
	assert.NotContains(t, slot.FileKey, "..")
}

// --- direct strategy ---

func TestIngestBytesSuccess(t *testing.T) {
	ing := NewIngestor(newFakeStore(), &fakeExtractor{text: "Rabies is a viral disease."}, testConfig())

	doc, err := ing.IngestBytes(context.Background(), "rabies.pdf", []byte("%PDF-"))
	require.NoError(t, err)

	assert.NotEmpty(t, doc.ID)
	assert.Equal(t, "rabies.pdf", doc.Name)
	assert.Equal(t, "Rabies is a viral disease.", doc.Content)
	assert.False(t, doc.UploadedAt.IsZero())
}

func TestIngestBytesNormalizesContent(t *testing.T) {
	ing := NewIngestor(newFakeStore(), &fakeExtractor{text: "Rabies  is \r\na   viral\t disease."}, testConfig())

	doc, err := ing.IngestBytes(context.Background(), "rabies.pdf", []byte("x"))
	require.NoError(t, err)
	assert.Equal(t, "Rabies is \na viral disease.", doc.Content)
}

func TestIngestBytesSizeCeiling(t *testing.T) {
	cfg := testConfig()
	cfg.MaxUploadBytes = 4
	ing := NewIngestor(newFakeStore(), &fakeExtractor{text: "long enough content"}, cfg)

	_, err := ing.IngestBytes(context.Background(), "big.pdf", []byte("12345"))
	assert.ErrorIs(t, err, ErrFileTooLarge)
}

func TestIngestBytesThresholdGate(t *testing.T) {
	// anything below 10 chars after normalization is "could not extract"
	for _, text := range []string{"", "   \n\n\t ", "curto", "123456789"} {
		ing := NewIngestor(newFakeStore(), &fakeExtractor{text: text}, testConfig())
		doc, err := ing.IngestBytes(context.Background(), "f.pdf", []byte("x"))
		assert.ErrorIs(t, err, ErrEmptyExtraction, "text %q", text)
		assert.Nil(t, doc)
	}

	// exactly at the threshold passes
	ing := NewIngestor(newFakeStore(), &fakeExtractor{text: "1234567890"}, testConfig())
	doc, err := ing.IngestBytes(context.Background(), "f.pdf", []byte("x"))
	require.NoError(t, err)
	assert.Equal(t, "1234567890", doc.Content)
}

func TestIngestBytesParserFailureIsWrapped(t *testing.T) {
	cause := errors.New("xref table torn to shreds at offset 0x31337")
	ing := NewIngestor(newFakeStore(), &fakeExtractor{err: cause}, testConfig())

	_, err := ing.IngestBytes(context.Background(), "broken.pdf", []byte("x"))
	assert.ErrorIs(t, err, ErrParse)
}

// --- staged strategy ---

func TestIngestStoredSuccessRetainsObjectByDefault(t *testing.T) {
	store := newFakeStore()
	store.objects["uploads/1-ab-slides.pdf"] = []byte("%PDF-")
	ing := NewIngestor(store, &fakeExtractor{text: "Rabies is a viral disease."}, testConfig())

	doc, err := ing.IngestStored(context.Background(), "uploads/1-ab-slides.pdf", "slides.pdf")
	require.NoError(t, err)
	assert.Equal(t, "Rabies is a viral disease.", doc.Content)
	assert.Zero(t, store.deleteCalls, "default policy retains the blob")
}

func TestIngestStoredDeletesObjectWhenNotRetaining(t *testing.T) {
	cfg := testConfig()
	cfg.RetainUploads = false
	store := newFakeStore()
	store.objects["uploads/k"] = []byte("%PDF-")
	ing := NewIngestor(store, &fakeExtractor{text: "long enough content"}, cfg)

	_, err := ing.IngestStored(context.Background(), "uploads/k", "slides.pdf")
	require.NoError(t, err)
	assert.Equal(t, []string{"uploads/k"}, store.deletedKeys)
}

func TestIngestStoredEmptyExtractionCleansUp(t *testing.T) {
	store := newFakeStore()
	store.objects["uploads/k"] = []byte("%PDF-")
	ing := NewIngestor(store, &fakeExtractor{text: "  "}, testConfig())

	_, err := ing.IngestStored(context.Background(), "uploads/k", "scan.pdf")
	assert.ErrorIs(t, err, ErrEmptyExtraction)
	assert.Equal(t, []string{"uploads/k"}, store.deletedKeys)
}

func TestIngestStoredParseFailureCleansUp(t *testing.T) {
	store := newFakeStore()
	store.objects["uploads/k"] = []byte("not a pdf")
	ing := NewIngestor(store, &fakeExtractor{err: errors.New("boom")}, testConfig())

	_, err := ing.IngestStored(context.Background(), "uploads/k", "bad.pdf")
	assert.ErrorIs(t, err, ErrParse)
	assert.Equal(t, []string{"uploads/k"}, store.deletedKeys)
}

func TestIngestStoredCleanupFailureNeverMasksPrimaryError(t *testing.T) {
	store := newFakeStore()
	store.objects["uploads/k"] = []byte("x")
	store.deleteErr = errors.New("storage is on fire")
	ing := NewIngestor(store, &fakeExtractor{text: ""}, testConfig())

	_, err := ing.IngestStored(context.Background(), "uploads/k", "scan.pdf")
	assert.ErrorIs(t, err, ErrEmptyExtraction)
	assert.NotContains(t, err.Error(), "storage is on fire")
}

func TestIngestStoredFetchFailure(t *testing.T) {
	store := newFakeStore()
	ing := NewIngestor(store, &fakeExtractor{text: "long enough content"}, testConfig())

	_, err := ing.IngestStored(context.Background(), "uploads/missing", "slides.pdf")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrEmptyExtraction)
	assert.NotErrorIs(t, err, ErrParse)
}

func TestIngestStoredSizeCeilingCleansUp(t *testing.T) {
	cfg := testConfig()
	cfg.MaxStagedBytes = 2
	store := newFakeStore()
	store.objects["uploads/k"] = []byte("12345")
	ing := NewIngestor(store, &fakeExtractor{text: "long enough content"}, cfg)

	_, err := ing.IngestStored(context.Background(), "uploads/k", "big.pdf")
	assert.ErrorIs(t, err, ErrFileTooLarge)
	assert.Equal(t, []string{"uploads/k"}, store.deletedKeys)
}
