package openai

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
}

func completionReply(content string) string {
	reply := map[string]any{
		"choices": []map[string]any{
			{"message": map[string]string{"role": "assistant", "content": content}},
		},
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
	var gotPath string
	var gotReq map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(completionReply(
			`{"verdicts": [{"id": "id-1", "score": 60, "summary": "Mentions the topic."}]}`)))
	}))
	defer srv.Close()

	o, err := New(Config{APIKey: "key", BaseURL: srv.URL + "/v1", Model: "test-model"})
	require.NoError(t, err)

	verdicts, err := o.EvaluateBatch(context.Background(), "budget", testBatch)
	require.NoError(t, err)

	assert.Equal(t, "/v1/chat/completions", gotPath)
	assert.Equal(t, "test-model", gotReq["model"])

	require.Len(t, verdicts, 1)
	assert.Equal(t, "id-1", verdicts[0].DocumentID)
	assert.Equal(t, 60, verdicts[0].Score)
}

func TestEvaluateBatchAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error": {"message": "invalid api key", "type": "invalid_request_error"}}`))
	}))
	defer srv.Close()

	o, err := New(Config{APIKey: "bad", BaseURL: srv.URL + "/v1"})
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
