package embedding

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tobenna/maestro/pkg/Logger"
)

func TestSplitSentences(t *testing.T) {
	got := SplitSentences("First one. Second one! Third?\nTrailing fragment")
	assert.Equal(t, []string{
		"First one.", "Second one!", "Third?", "Trailing fragment",
	}, got)
}

func TestChunkPacksSentences(t *testing.T) {
	e := NewTEIEmbedder("http://localhost", 40, Logger.Noop())

	text := "Alpha sentence here. Beta sentence here. Gamma sentence here."
	chunks := e.Chunk(text)
	require.NotEmpty(t, chunks)
	for _, c := range chunks {
		assert.LessOrEqual(t, len(c), 45)
	}
	assert.Equal(t, strings.Join(chunks, " "), text)
}

func TestChunkShortText(t *testing.T) {
	e := NewTEIEmbedder("http://localhost", 0, Logger.Noop())
	assert.Equal(t, []string{"short"}, e.Chunk("  short  "))
	assert.Empty(t, e.Chunk("   "))
}

func TestEmbed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/embed", r.URL.Path)
		var req teiRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))

		resp := make([][]float32, len(req.Inputs))
		for i := range resp {
			resp[i] = []float32{float32(i), 0.5}
		}
		json.NewEncoder(w).Encode(resp)
	}))
	defer srv.Close()

	e := NewTEIEmbedder(srv.URL, 0, Logger.Noop())
	vecs, err := e.Embed(context.Background(), []string{"one", " ", "two"})
	require.NoError(t, err)
	require.Len(t, vecs, 2)
	assert.InDelta(t, 0.5, vecs[0][1], 1e-6)
}

func TestEmbedServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	e := NewTEIEmbedder(srv.URL, 0, Logger.Noop())
	_, err := e.Embed(context.Background(), []string{"one"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "502")
}
