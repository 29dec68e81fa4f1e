package anthropic

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docscout-cli/internal/core/ports/driven"
)

var testBatch = []driven.BatchDocument{
	{ID: "id-1", RelPath: "a.txt", Text: "alpha"},
	{ID: "id-2", RelPath: "b.txt", Text: "beta"},
}

func anthropicReply(text string) string {
	reply := map[string]any{
		"content":     []map[string]string{{"type": "text", "text": text}},
		"stop_reason": "end_turn",
	}
	b, _ := json.Marshal(reply)
	return string(b)
}

func TestNewRequiresAPIKey(t *testing.T) {
	_, err := New(Config{})
	assert.Error(t, err)
}

func TestNewDefaults(t *testing.T) {
	o, err := New(Config{APIKey: "key"})
	require.NoError(t, err)
	assert.Equal(t, DefaultModel, o.ModelName())
}

func TestEvaluateBatch(t *testing.T) {
	var gotPath, gotVersion string
	var gotReq map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotVersion = r.Header.Get("anthropic-version")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))
		w.Write([]byte(anthropicReply(
			`{"verdicts": [{"id": "id-1", "score": 75, "summary": "Relevant."}]}`)))
	}))
	defer srv.Close()

	o, err := New(Config{APIKey: "key", BaseURL: srv.URL, Model: "test-model"})
	require.NoError(t, err)

	verdicts, err := o.EvaluateBatch(context.Background(), "budget", testBatch)
	require.NoError(t, err)

	assert.Equal(t, "/v1/messages", gotPath)
	assert.Equal(t, anthropicVersion, gotVersion)
	assert.Equal(t, "test-model", gotReq["model"])
	assert.Contains(t, gotReq["system"], "relevance evaluator")

	require.Len(t, verdicts, 1)
	assert.Equal(t, "id-1", verdicts[0].DocumentID)
	assert.Equal(t, 75, verdicts[0].Score)
}

func TestEvaluateBatchAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error": {"type": "authentication_error", "message": "invalid x-api-key"}}`))
	}))
	defer srv.Close()

	o, err := New(Config{APIKey: "bad", BaseURL: srv.URL})
	require.NoError(t, err)

	_, err = o.EvaluateBatch(context.Background(), "q", testBatch)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid x-api-key")
}

func TestEvaluateBatchMalformedReply(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(anthropicReply("the first document looks relevant")))
	}))
	defer srv.Close()

	o, err := New(Config{APIKey: "key", BaseURL: srv.URL})
	require.NoError(t, err)

	_, err = o.EvaluateBatch(context.Background(), "q", testBatch)
	assert.Error(t, err)
}

func TestEvaluateBatchEmptyBatch(t *testing.T) {
	o, err := New(Config{APIKey: "key"})
	require.NoError(t, err)

	verdicts, err := o.EvaluateBatch(context.Background(), "q", nil)
	require.NoError(t, err)
	assert.Empty(t, verdicts)
}
