package embedding

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
	"unicode"

	"github.com/tobenna/maestro/internal/database/dbtypes"
	"github.com/tobenna/maestro/pkg/Logger"
)

const defaultChunkChars = 1500

// TEIEmbedder embeds text through a text-embeddings-inference server.
type TEIEmbedder struct {
	baseURL    string
	httpClient *http.Client
	logger     *Logger.Logger
	chunkChars int
}

type teiRequest struct {
	Inputs []string `json:"inputs"`
}

type teiResponse [][]float32

func NewTEIEmbedder(baseURL string, chunkChars int, logger *Logger.Logger) *TEIEmbedder {
	if chunkChars <= 0 {
		chunkChars = defaultChunkChars
	}
	return &TEIEmbedder{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
		logger:     logger,
		chunkChars: chunkChars,
	}
}

// Chunk implements Embedder. Sentences are packed greedily into chunks
// of at most chunkChars characters; an oversized sentence becomes its
// own chunk rather than being split mid-word.
func (e *TEIEmbedder) Chunk(text string) []string {
	text = strings.TrimSpace(text)
	if text == "" {
		return []string{}
	}
	if len(text) <= e.chunkChars {
		return []string{text}
	}

	var chunks []string
	var current strings.Builder
	for _, sentence := range SplitSentences(text) {
		if current.Len() > 0 && current.Len()+len(sentence)+1 > e.chunkChars {
			chunks = append(chunks, current.String())
			current.Reset()
		}
		if current.Len() > 0 {
			current.WriteByte(' ')
		}
		current.WriteString(sentence)
	}
	if current.Len() > 0 {
		chunks = append(chunks, current.String())
	}
	return chunks
}

// Embed implements Embedder.
func (e *TEIEmbedder) Embed(ctx context.Context, chunks []string) ([]dbtypes.XVector, error) {
	valid := make([]string, 0, len(chunks))
	for _, chunk := range chunks {
		if s := strings.TrimSpace(chunk); s != "" {
			valid = append(valid, s)
		}
	}
	if len(valid) == 0 {
		return []dbtypes.XVector{}, nil
	}

	jsonData, err := json.Marshal(teiRequest{Inputs: valid})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %v", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.baseURL+"/embed", bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := e.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to make request: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("TEI API returned status %d", resp.StatusCode)
	}

	var teiResp teiResponse
	if err := json.NewDecoder(resp.Body).Decode(&teiResp); err != nil {
		return nil, fmt.Errorf("failed to decode response: %v", err)
	}
	if len(teiResp) != len(valid) {
		return nil, fmt.Errorf("expected %d embeddings, got %d", len(valid), len(teiResp))
	}

	result := make([]dbtypes.XVector, len(teiResp))
	for i, vec := range teiResp {
		result[i] = dbtypes.XVector(vec)
	}
	return result, nil
}

// EmbedSingle implements Embedder.
func (e *TEIEmbedder) EmbedSingle(ctx context.Context, text string) (dbtypes.XVector, error) {
	if strings.TrimSpace(text) == "" {
		return dbtypes.XVector{}, nil
	}
	vecs, err := e.Embed(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	if len(vecs) == 0 {
		return nil, fmt.Errorf("no embedding returned")
	}
	return vecs[0], nil
}

// SplitSentences breaks text on terminal punctuation followed by
// whitespace.
func SplitSentences(text string) []string {
	text = strings.Join(strings.Fields(text), " ")

	var sentences []string
	var current strings.Builder
	runes := []rune(text)
	for i, r := range runes {
		current.WriteRune(r)
		if r == '.' || r == '!' || r == '?' {
			if i+1 >= len(runes) || unicode.IsSpace(runes[i+1]) {
				if s := strings.TrimSpace(current.String()); s != "" {
					sentences = append(sentences, s)
				}
				current.Reset()
			}
		}
	}
	if s := strings.TrimSpace(current.String()); s != "" {
		sentences = append(sentences, s)
	}
	return sentences
}
