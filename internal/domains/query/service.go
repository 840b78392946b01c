package query

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/tobenna/maestro/internal/embedding"
	"github.com/tobenna/maestro/internal/types"
	"github.com/tobenna/maestro/pkg/Logger"
	"github.com/tobenna/maestro/pkg/assistant/adapters"
	"github.com/tobenna/maestro/pkg/assistant/router"
)

var ErrNoDocuments = errors.New("query engine has no matching documents")

const searchLimit = 5

const querySystemPrompt = "You answer questions using only the context passages " +
	"below. If the context does not contain the answer, say so.\n\nContext:\n%s"

// engineNamespace derives a stable id for a config-declared engine.
var engineNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("maestro/query-engine"))

func EngineID(engineName string) uuid.UUID {
	return uuid.NewSHA1(engineNamespace, []byte(engineName))
}

// QueryService runs retrieval-augmented generation against a named
// query engine.
type QueryService interface {
	Generate(ctx context.Context, userID uuid.UUID, prompt, engineName, llmID string, sentenceReferences bool) (*types.QueryResult, []types.QueryReference, error)
	// IngestDocument chunks, embeds and stores one document under an
	// engine, returning the number of stored chunks.
	IngestDocument(ctx context.Context, engineName, documentURL, text string) (int, error)
}

type queryService struct {
	repository DocumentRepository
	embedder   embedding.Embedder
	mux        *router.Mux
	logger     *Logger.Logger
}

func New(repository DocumentRepository, embedder embedding.Embedder, mux *router.Mux, logger *Logger.Logger) QueryService {
	return &queryService{
		repository: repository,
		embedder:   embedder,
		mux:        mux,
		logger:     logger,
	}
}

// Generate implements QueryService.
func (q *queryService) Generate(ctx context.Context, userID uuid.UUID, prompt, engineName, llmID string, sentenceReferences bool) (*types.QueryResult, []types.QueryReference, error) {
	vec, err := q.embedder.EmbedSingle(ctx, prompt)
	if err != nil {
		return nil, nil, fmt.Errorf("embed prompt: %w", err)
	}

	matches, err := q.repository.Search(ctx, engineName, vec, searchLimit)
	if err != nil {
		return nil, nil, err
	}
	if len(matches) == 0 {
		return nil, nil, fmt.Errorf("%w: %s", ErrNoDocuments, engineName)
	}

	var contextBlock strings.Builder
	for i, m := range matches {
		fmt.Fprintf(&contextBlock, "[%d] %s\n", i+1, m.Chunk)
	}

	msgs := []adapters.ContractMessage{
		{Role: adapters.SYSTEM, Content: fmt.Sprintf(querySystemPrompt, contextBlock.String())},
		{Role: adapters.USER, Content: prompt},
	}
	out, err := q.mux.Run(ctx, llmID, msgs, nil)
	if err != nil {
		return nil, nil, fmt.Errorf("query engine %s: %w", engineName, err)
	}

	result := &types.QueryResult{
		Response:      out.Text,
		QueryEngineID: EngineID(engineName),
	}

	var references []types.QueryReference
	if sentenceReferences {
		references = MatchSentences(out.Text, matches)
	} else {
		for _, m := range matches {
			references = append(references, types.QueryReference{
				DocumentID:  m.DocumentID,
				DocumentURL: m.DocumentURL,
				Chunk:       m.Chunk,
				Distance:    m.Distance,
			})
		}
	}

	q.logger.Debugf("query engine %s answered user %s with %d references",
		engineName, userID, len(references))
	return result, references, nil
}

// IngestDocument implements QueryService.
func (q *queryService) IngestDocument(ctx context.Context, engineName, documentURL, text string) (int, error) {
	chunks := q.embedder.Chunk(text)
	if len(chunks) == 0 {
		return 0, nil
	}
	vectors, err := q.embedder.Embed(ctx, chunks)
	if err != nil {
		return 0, fmt.Errorf("embed document: %w", err)
	}
	return q.repository.InsertChunks(ctx, engineName, documentURL, chunks, vectors)
}

// MatchSentences pairs each sentence of the answer with the source
// chunk sharing the most words with it. Sentences with no overlap get
// no reference.
func MatchSentences(answer string, matches []DocumentMatch) []types.QueryReference {
	var references []types.QueryReference
	for _, sentence := range embedding.SplitSentences(answer) {
		best, score := -1, 0
		sentenceWords := wordSet(sentence)
		for i, m := range matches {
			overlap := overlapCount(sentenceWords, wordSet(m.Chunk))
			if overlap > score {
				best, score = i, overlap
			}
		}
		if best < 0 {
			continue
		}
		m := matches[best]
		references = append(references, types.QueryReference{
			DocumentID:  m.DocumentID,
			DocumentURL: m.DocumentURL,
			Chunk:       m.Chunk,
			Sentence:    sentence,
			Distance:    m.Distance,
		})
	}
	return references
}

func wordSet(s string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, w := range strings.Fields(strings.ToLower(s)) {
		w = strings.Trim(w, ".,!?;:\"'()[]")
		if len(w) > 3 {
			set[w] = struct{}{}
		}
	}
	return set
}

func overlapCount(a, b map[string]struct{}) int {
	n := 0
	for w := range a {
		if _, ok := b[w]; ok {
			n++
		}
	}
	return n
}
