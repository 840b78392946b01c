package query

import (
	"context"

	"github.com/google/uuid"
	"github.com/tobenna/maestro/internal/database/dbtypes"
)

// DocumentMatch is one chunk returned by a vector search, closest
// first.
type DocumentMatch struct {
	DocumentID  uuid.UUID
	DocumentURL string
	Chunk       string
	Distance    float64
}

// DocumentRepository stores embedded document chunks per query engine.
type DocumentRepository interface {
	InsertChunks(ctx context.Context, engineName, documentURL string, chunks []string, vectors []dbtypes.XVector) (int, error)
	Search(ctx context.Context, engineName string, vec dbtypes.XVector, limit int) ([]DocumentMatch, error)
}
