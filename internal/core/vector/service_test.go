package vector

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
)

type stubEmbedding struct{}

func (stubEmbedding) GenerateEmbedding(ctx context.Context, text string) ([]float32, error) {
	return []float32{1, 0, 0}, nil
}

func (stubEmbedding) GenerateBatchEmbeddings(ctx context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	for i := range texts {
		out[i] = []float32{1, 0, 0}
	}
	return out, nil
}

func (stubEmbedding) GetDimensions() int        { return 3 }
func (stubEmbedding) GetProviderName() string   { return "stub" }

type stubProvider struct {
	points  []Point
	results []SearchResult
}

func (s *stubProvider) Initialize(ctx context.Context) error { return nil }
func (s *stubProvider) EnsureCollection(ctx context.Context, name string, size int) error {
	return nil
}
func (s *stubProvider) Upsert(ctx context.Context, collection string, points []Point) error {
	s.points = append(s.points, points...)
	return nil
}
func (s *stubProvider) Search(ctx context.Context, collection string, query []float32, limit int, filter *Filter) ([]SearchResult, error) {
	return s.results, nil
}
func (s *stubProvider) Delete(ctx context.Context, collection string, ids []string) error {
	return nil
}
func (s *stubProvider) DeleteByFilter(ctx context.Context, collection string, filter *Filter) error {
	return nil
}
func (s *stubProvider) Close() error              { return nil }
func (s *stubProvider) GetProviderType() string   { return "stub" }

func TestChunkTextShortContent(t *testing.T) {
	chunks := chunkText("hello", 100, 10)
	if len(chunks) != 1 || chunks[0] != "hello" {
		t.Fatalf("chunkText = %v, want single chunk", chunks)
	}
}

func TestChunkTextOverlap(t *testing.T) {
	text := strings.Repeat("a", 250)
	chunks := chunkText(text, 100, 20)

	if len(chunks) < 3 {
		t.Fatalf("got %d chunks, want at least 3", len(chunks))
	}

	total := 0
	for _, c := range chunks {
		if len(c) > 100 {
			t.Fatalf("chunk length %d exceeds max 100", len(c))
		}
		total += len(c)
	}
	if total < len(text) {
		t.Fatalf("chunks cover %d bytes, want at least %d", total, len(text))
	}
}

func TestIndexDocumentChunksCarryTenantPayload(t *testing.T) {
	provider := &stubProvider{}
	svc := NewService(provider, stubEmbedding{})

	clientID := uuid.New()
	docID := uuid.New()
	content := strings.Repeat("menu ", 600)

	if err := svc.IndexDocument(context.Background(), clientID, docID, "Menu", content); err != nil {
		t.Fatalf("IndexDocument: %v", err)
	}

	if len(provider.points) < 2 {
		t.Fatalf("got %d points, want multiple chunks", len(provider.points))
	}
	for _, p := range provider.points {
		if p.Payload["client_id"] != clientID.String() {
			t.Fatalf("client_id = %v, want %s", p.Payload["client_id"], clientID)
		}
		if p.Payload["document_id"] != docID.String() {
			t.Fatalf("document_id = %v, want %s", p.Payload["document_id"], docID)
		}
	}
}

func TestSearchDocumentsDeduplicatesChunks(t *testing.T) {
	docA := uuid.New()
	docB := uuid.New()

	provider := &stubProvider{
		results: []SearchResult{
			{ID: "1", Score: 0.9, Payload: map[string]interface{}{"document_id": docA.String(), "name": "A", "text": "best"}},
			{ID: "2", Score: 0.8, Payload: map[string]interface{}{"document_id": docA.String(), "name": "A", "text": "worse"}},
			{ID: "3", Score: 0.7, Payload: map[string]interface{}{"document_id": docB.String(), "name": "B", "text": "other"}},
		},
	}
	svc := NewService(provider, stubEmbedding{})

	matches, err := svc.SearchDocuments(context.Background(), uuid.New(), "query", 5)
	if err != nil {
		t.Fatalf("SearchDocuments: %v", err)
	}

	if len(matches) != 2 {
		t.Fatalf("got %d matches, want 2", len(matches))
	}
	if matches[0].DocumentID != docA || matches[0].Excerpt != "best" {
		t.Fatalf("first match = %+v, want docA best chunk", matches[0])
	}
	if matches[1].DocumentID != docB {
		t.Fatalf("second match = %+v, want docB", matches[1])
	}
}

func TestChunkPointIDDeterministic(t *testing.T) {
	docID := uuid.New()
	if chunkPointID(docID, 0) != chunkPointID(docID, 0) {
		t.Fatal("chunkPointID not deterministic")
	}
	if chunkPointID(docID, 0) == chunkPointID(docID, 1) {
		t.Fatal("chunkPointID collision across chunk indexes")
	}
}
