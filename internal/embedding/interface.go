package embedding

import (
	"context"

	"github.com/tobenna/maestro/internal/database/dbtypes"
)

type Embedder interface {
	// Chunk splits text into pieces small enough to embed.
	Chunk(text string) []string
	// Embed creates embeddings for multiple text chunks.
	Embed(ctx context.Context, chunks []string) ([]dbtypes.XVector, error)
	// EmbedSingle creates an embedding for a single text.
	EmbedSingle(ctx context.Context, text string) (dbtypes.XVector, error)
}
