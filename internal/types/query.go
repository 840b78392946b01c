package types

import "github.com/google/uuid"

// QueryResult is the generated answer of a retrieval query.
type QueryResult struct {
	Response      string    `json:"response"`
	QueryEngineID uuid.UUID `json:"query_engine_id"`
}

// QueryReference points back at a source chunk supporting a sentence
// of the generated answer.
type QueryReference struct {
	DocumentID  uuid.UUID `json:"document_id"`
	DocumentURL string    `json:"document_url"`
	Chunk       string    `json:"chunk"`
	Sentence    string    `json:"sentence,omitempty"`
	Distance    float64   `json:"distance"`
}

// DBResult carries the rows a database route produced, wrapped as an
// attachable resource.
type DBResult struct {
	Columns   []string         `json:"columns"`
	Data      []map[string]any `json:"data"`
	Resources map[string]any   `json:"resources"`
}
