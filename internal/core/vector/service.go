package vector

import (
	"context"
	"fmt"
	"log"

	"github.com/google/uuid"
)

// DocumentCollection holds every tenant's document chunks, scoped by
// the client_id payload field.
const DocumentCollection = "dash_documents"

const (
	chunkSize    = 1200
	chunkOverlap = 150
)

// DocMatch is one document hit from semantic search
type DocMatch struct {
	DocumentID uuid.UUID
	Name       string
	Score      float32
	Excerpt    string
}

// Service provides document indexing and semantic search
type Service struct {
	provider  Provider
	embedding EmbeddingProvider
}

// NewService creates a vector service
func NewService(provider Provider, embedding EmbeddingProvider) *Service {
	return &Service{
		provider:  provider,
		embedding: embedding,
	}
}

// Initialize connects to the vector store and ensures the document
// collection exists
func (s *Service) Initialize(ctx context.Context) error {
	log.Printf("📊 Initializing Vector DB (%s)...", s.provider.GetProviderType())

	if err := s.provider.Initialize(ctx); err != nil {
		return fmt.Errorf("failed to initialize vector provider: %w", err)
	}

	if err := s.provider.EnsureCollection(ctx, DocumentCollection, s.embedding.GetDimensions()); err != nil {
		return fmt.Errorf("failed to ensure document collection: %w", err)
	}

	log.Printf("✅ Vector DB initialized successfully")
	log.Printf("📐 Embedding model: %s (%d dimensions)", s.embedding.GetProviderName(), s.embedding.GetDimensions())

	return nil
}

// IndexDocument chunks a document's content, embeds the chunks, and
// upserts them. Re-indexing first drops the document's old chunks so a
// shorter edit cannot leave stale ones behind.
func (s *Service) IndexDocument(ctx context.Context, clientID, documentID uuid.UUID, name, content string) error {
	if content == "" {
		return nil
	}

	if err := s.RemoveDocument(ctx, documentID); err != nil {
		return err
	}

	chunks := chunkText(content, chunkSize, chunkOverlap)

	embeddings, err := s.embedding.GenerateBatchEmbeddings(ctx, chunks)
	if err != nil {
		return fmt.Errorf("failed to embed document %s: %w", documentID, err)
	}

	points := make([]Point, len(chunks))
	for i, chunk := range chunks {
		points[i] = Point{
			// Qdrant point IDs must be UUIDs or integers, so chunk
			// IDs are derived deterministically from the document ID
			ID:     chunkPointID(documentID, i),
			Vector: embeddings[i],
			Payload: map[string]interface{}{
				"client_id":   clientID.String(),
				"document_id": documentID.String(),
				"name":        name,
				"chunk_index": i,
				"text":        chunk,
			},
		}
	}

	return s.provider.Upsert(ctx, DocumentCollection, points)
}

// SearchDocuments performs semantic search over one tenant's documents.
// Each document appears at most once, at its best-scoring chunk.
func (s *Service) SearchDocuments(ctx context.Context, clientID uuid.UUID, query string, limit int) ([]DocMatch, error) {
	if limit <= 0 {
		limit = 5
	}

	queryEmbedding, err := s.embedding.GenerateEmbedding(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to embed query: %w", err)
	}

	// Over-fetch chunks so deduplication still fills the limit
	results, err := s.provider.Search(ctx, DocumentCollection, queryEmbedding, limit*4, ClientFilter(clientID.String()))
	if err != nil {
		return nil, err
	}

	seen := make(map[uuid.UUID]bool)
	matches := make([]DocMatch, 0, limit)
	for _, r := range results {
		docID, ok := payloadUUID(r.Payload, "document_id")
		if !ok || seen[docID] {
			continue
		}
		seen[docID] = true

		name, _ := r.Payload["name"].(string)
		text, _ := r.Payload["text"].(string)

		matches = append(matches, DocMatch{
			DocumentID: docID,
			Name:       name,
			Score:      r.Score,
			Excerpt:    text,
		})

		if len(matches) >= limit {
			break
		}
	}

	return matches, nil
}

// RemoveDocument drops every chunk of a document
func (s *Service) RemoveDocument(ctx context.Context, documentID uuid.UUID) error {
	return s.provider.DeleteByFilter(ctx, DocumentCollection, &Filter{
		Must: []Condition{
			{Key: "document_id", Match: documentID.String()},
		},
	})
}

// Close closes the vector store connection
func (s *Service) Close() error {
	return s.provider.Close()
}

func chunkPointID(documentID uuid.UUID, index int) string {
	return uuid.NewSHA1(documentID, []byte(fmt.Sprintf("chunk_%d", index))).String()
}

func payloadUUID(payload map[string]interface{}, key string) (uuid.UUID, bool) {
	raw, ok := payload[key].(string)
	if !ok {
		return uuid.Nil, false
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

// chunkText splits long content into overlapping chunks so each stays
// within embedding token limits
func chunkText(text string, maxChunkSize, overlap int) []string {
	if len(text) <= maxChunkSize {
		return []string{text}
	}

	chunks := []string{}
	start := 0

	for start < len(text) {
		end := start + maxChunkSize
		if end >= len(text) {
			chunks = append(chunks, text[start:])
			break
		}

		chunks = append(chunks, text[start:end])
		start = end - overlap
	}

	return chunks
}
