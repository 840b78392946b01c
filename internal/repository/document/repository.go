package document

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/tobenna/maestro/internal/database/dbtypes"
	"github.com/tobenna/maestro/internal/domains/query"
	"gorm.io/gorm"
)

type GormDocumentRepo struct {
	db *gorm.DB
}

func New(db *gorm.DB) query.DocumentRepository {
	return &GormDocumentRepo{db: db}
}

// InsertChunks implements query.DocumentRepository
func (g *GormDocumentRepo) InsertChunks(ctx context.Context, engineName, documentURL string, chunks []string, vectors []dbtypes.XVector) (int, error) {
	if len(chunks) != len(vectors) {
		return 0, fmt.Errorf("chunk/vector count mismatch: %d vs %d", len(chunks), len(vectors))
	}

	entities := make([]DocumentEntity, 0, len(chunks))
	for i, chunk := range chunks {
		entities = append(entities, DocumentEntity{
			ID:          uuid.New().String(),
			EngineName:  engineName,
			DocumentURL: documentURL,
			Chunk:       chunk,
			Embedding:   vectors[i],
		})
	}
	if len(entities) == 0 {
		return 0, nil
	}

	if err := g.db.WithContext(ctx).Create(&entities).Error; err != nil {
		return 0, fmt.Errorf("failed to insert document chunks: %w", err)
	}
	return len(entities), nil
}

type matchRow struct {
	ID          string
	DocumentURL string
	Chunk       string
	Distance    float64
}

// Search implements query.DocumentRepository
func (g *GormDocumentRepo) Search(ctx context.Context, engineName string, vec dbtypes.XVector, limit int) ([]query.DocumentMatch, error) {
	sql := `
        SELECT id, document_url, chunk, VEC_COSINE_DISTANCE(embedding, ?) AS distance
        FROM document_chunks
        WHERE engine_name = ?
        ORDER BY distance
        LIMIT ?
    `
	var rows []matchRow
	if err := g.db.WithContext(ctx).Raw(sql, vec, engineName, limit).Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to search document chunks: %w", err)
	}

	matches := make([]query.DocumentMatch, 0, len(rows))
	for _, row := range rows {
		id, err := uuid.Parse(row.ID)
		if err != nil {
			return nil, fmt.Errorf("document id %q: %w", row.ID, err)
		}
		matches = append(matches, query.DocumentMatch{
			DocumentID:  id,
			DocumentURL: row.DocumentURL,
			Chunk:       row.Chunk,
			Distance:    row.Distance,
		})
	}
	return matches, nil
}
