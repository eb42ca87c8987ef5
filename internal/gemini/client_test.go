// ABOUTME: Tests for the Generative Language API client
// ABOUTME: Uses httptest servers to exercise success, error, and cancellation paths

package gemini

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_Generate(t *testing.T) {
	var gotPath, gotKey string
	var gotBody generateRequest

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.Header.Get("x-goog-api-key")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		json.NewEncoder(w).Encode(map[string]any{
			"candidates": []map[string]any{
				{"content": map[string]any{"parts": []map[string]any{
					{"text": "First line\n"},
					{"text": "Second line"},
				}}},
			},
		})
	}))
	defer server.Close()

	client := NewClient("test-key", "gemini-flash-lite-latest", server.URL)

	text, err := client.Generate(context.Background(), "break down: write report")
	require.NoError(t, err)

	assert.Equal(t, "First line\nSecond line", text)
	assert.Equal(t, "/v1beta/models/gemini-flash-lite-latest:generateContent", gotPath)
	assert.Equal(t, "test-key", gotKey)
	require.Len(t, gotBody.Contents, 1)
	require.Len(t, gotBody.Contents[0].Parts, 1)
	assert.Equal(t, "break down: write report", gotBody.Contents[0].Parts[0].Text)
}

func TestClient_Generate_HTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"message":"quota exceeded"}}`, http.StatusTooManyRequests)
	}))
	defer server.Close()

	client := NewClient("test-key", "gemini-flash-lite-latest", server.URL)

	_, err := client.Generate(context.Background(), "prompt")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "429")
	// The upstream error body is never echoed.
	assert.NotContains(t, err.Error(), "quota")
}

func TestClient_Generate_TransportErrorOmitsKey(t *testing.T) {
	const key = "super-secret-key"

	// Port 1 refuses connections; the resulting url.Error quotes the full
	// request URL, which must not carry the key.
	client := NewClient(key, "gemini-flash-lite-latest", "http://127.0.0.1:1")

	_, err := client.Generate(context.Background(), "prompt")
	require.Error(t, err)
	assert.NotContains(t, err.Error(), key)
}

func TestClient_Generate_NoCandidates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"candidates":[]}`))
	}))
	defer server.Close()

	client := NewClient("test-key", "gemini-flash-lite-latest", server.URL)

	_, err := client.Generate(context.Background(), "prompt")
	assert.Error(t, err)
}

func TestClient_Generate_MalformedJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`not json`))
	}))
	defer server.Close()

	client := NewClient("test-key", "gemini-flash-lite-latest", server.URL)

	_, err := client.Generate(context.Background(), "prompt")
	assert.Error(t, err)
}

func TestClient_Generate_ContextCancelled(t *testing.T) {
	started := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		close(started)
		time.Sleep(5 * time.Second)
	}))
	defer server.Close()

	client := NewClient("test-key", "gemini-flash-lite-latest", server.URL)

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() {
		_, err := client.Generate(ctx, "prompt")
		errCh <- err
	}()

	<-started
	cancel()

	select {
	case err := <-errCh:
		require.Error(t, err)
		assert.True(t, strings.Contains(err.Error(), "context canceled"))
	case <-time.After(2 * time.Second):
		t.Fatal("Generate did not return after cancellation")
	}
}
