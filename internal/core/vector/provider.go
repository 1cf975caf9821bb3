package vector

import (
	"context"
)

// Provider is the vector store behind semantic document search
type Provider interface {
	// Initialize verifies the connection
	Initialize(ctx context.Context) error

	// EnsureCollection creates the collection if it does not exist
	EnsureCollection(ctx context.Context, name string, vectorSize int) error

	// Upsert inserts or updates points
	Upsert(ctx context.Context, collection string, points []Point) error

	// Search performs similarity search
	Search(ctx context.Context, collection string, query []float32, limit int, filter *Filter) ([]SearchResult, error)

	// Delete removes points by ID
	Delete(ctx context.Context, collection string, ids []string) error

	// DeleteByFilter removes every point matching the filter
	DeleteByFilter(ctx context.Context, collection string, filter *Filter) error

	// Close closes the connection
	Close() error

	// GetProviderType returns the provider type
	GetProviderType() string
}

// Point is a vector point with metadata
type Point struct {
	ID      string                 `json:"id"`
	Vector  []float32              `json:"vector"`
	Payload map[string]interface{} `json:"payload,omitempty"`
}

// SearchResult is one similarity match
type SearchResult struct {
	ID      string                 `json:"id"`
	Score   float32                `json:"score"`
	Payload map[string]interface{} `json:"payload,omitempty"`
}

// Filter restricts a search to matching payloads
type Filter struct {
	Must []Condition `json:"must,omitempty"`
}

// Condition is a single payload match
type Condition struct {
	Key   string      `json:"key"`
	Match interface{} `json:"match,omitempty"`
}

// ClientFilter scopes a search to one tenant's points
func ClientFilter(clientID string) *Filter {
	return &Filter{
		Must: []Condition{
			{Key: "client_id", Match: clientID},
		},
	}
}
