package astra

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/poiesic/docvec/core"
	"github.com/poiesic/docvec/vectorstore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type capturedCommand struct {
	path string
	body map[string]any
}

func newTestServer(t *testing.T, respond func(cmd capturedCommand) string) (*httptest.Server, *[]capturedCommand) {
	t.Helper()
	var commands []capturedCommand

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "test-token", r.Header.Get("Token"))

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		cmd := capturedCommand{path: r.URL.Path, body: body}
		commands = append(commands, cmd)

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(respond(cmd)))
	}))
	t.Cleanup(server.Close)
	return server, &commands
}

func newTestClient(t *testing.T, url string) vectorstore.Store {
	t.Helper()
	client, err := New(Config{Endpoint: url, Token: "test-token", Namespace: "ks"})
	require.NoError(t, err)
	return client
}

func TestClient_EnsureCollection(t *testing.T) {
	server, commands := newTestServer(t, func(capturedCommand) string {
		return `{"status": {"ok": 1}}`
	})
	client := newTestClient(t, server.URL)

	err := client.EnsureCollection(context.Background(), "rag_test", 384)
	require.NoError(t, err)

	require.Len(t, *commands, 1)
	cmd := (*commands)[0]
	assert.Equal(t, "/api/json/v1/ks", cmd.path)

	create := cmd.body["createCollection"].(map[string]any)
	assert.Equal(t, "rag_test", create["name"])
	vector := create["options"].(map[string]any)["vector"].(map[string]any)
	assert.Equal(t, float64(384), vector["dimension"])
	assert.Equal(t, "cosine", vector["metric"])
}

func TestClient_EnsureCollection_AlreadyExists(t *testing.T) {
	server, _ := newTestServer(t, func(capturedCommand) string {
		return `{"errors": [{"message": "collection already exists", "errorCode": "EXISTING_COLLECTION"}]}`
	})
	client := newTestClient(t, server.URL)

	require.NoError(t, client.EnsureCollection(context.Background(), "rag_test", 384))
}

func TestClient_Upsert(t *testing.T) {
	server, commands := newTestServer(t, func(capturedCommand) string {
		return `{"status": {"upsertedId": "x"}}`
	})
	client := newTestClient(t, server.URL)

	records := []*core.Record{
		{ID: "fp:0", Text: "chunk zero", Vector: []float32{0.1, 0.2}, Metadata: map[string]string{core.MetaFilename: "a.txt"}},
		{ID: "fp:1", Text: "chunk one", Vector: []float32{0.3, 0.4}, Metadata: map[string]string{core.MetaFilename: "a.txt"}},
	}

	n, err := client.Upsert(context.Background(), "rag_test", records)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	require.Len(t, *commands, 2)
	cmd := (*commands)[0]
	assert.Equal(t, "/api/json/v1/ks/rag_test", cmd.path)

	replace := cmd.body["findOneAndReplace"].(map[string]any)
	assert.Equal(t, map[string]any{"_id": "fp:0"}, replace["filter"])
	assert.Equal(t, map[string]any{"upsert": true}, replace["options"])

	doc := replace["replacement"].(map[string]any)
	assert.Equal(t, "chunk zero", doc["content"])
	assert.Equal(t, "a.txt", doc["filename"])
	assert.NotNil(t, doc["$vector"])
}

func TestClient_Upsert_PartialFailure(t *testing.T) {
	calls := 0
	server, _ := newTestServer(t, func(capturedCommand) string {
		calls++
		if calls > 1 {
			return `{"errors": [{"message": "rate limited", "errorCode": "TOO_MANY_REQUESTS"}]}`
		}
		return `{"status": {"upsertedId": "x"}}`
	})
	client := newTestClient(t, server.URL)

	records := []*core.Record{
		{ID: "fp:0", Vector: []float32{0.1}},
		{ID: "fp:1", Vector: []float32{0.2}},
		{ID: "fp:2", Vector: []float32{0.3}},
	}

	n, err := client.Upsert(context.Background(), "rag_test", records)
	require.ErrorIs(t, err, vectorstore.ErrWriteFailed)
	// Records written before the failure are not rolled back.
	assert.Equal(t, 1, n)
}

func TestNew_Validation(t *testing.T) {
	_, err := New(Config{Token: "t"})
	require.Error(t, err)

	_, err = New(Config{Endpoint: "https://example.com"})
	require.Error(t, err)
}
