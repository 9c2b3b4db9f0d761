package ollama

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/jukebox-cli/internal/core/ports/driven"
)

func TestNewLLMService_Defaults(t *testing.T) {
	svc := NewLLMService(LLMConfig{})
	assert.Equal(t, DefaultBaseURL, svc.baseURL)
	assert.Equal(t, DefaultLLMModel, svc.ModelName())
	assert.NoError(t, svc.Close())
}

func newServer(t *testing.T) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var raw map[string]any
		if r.Method == http.MethodPost {
			require.NoError(t, json.NewDecoder(r.Body).Decode(&raw))
			opts, ok := raw["options"].(map[string]any)
			require.True(t, ok, "options always sent")
			assert.Equal(t, 0.0, opts["temperature"])
			assert.Equal(t, false, raw["stream"])
		}
		switch r.URL.Path {
		case "/api/generate":
			_, _ = w.Write([]byte(`{"response":"track","done":true}`))
		case "/api/chat":
			_, _ = w.Write([]byte(`{"message":{"role":"assistant","content":"Title: Hello | Artist: Adele"},"done":true}`))
		case "/api/tags":
			_, _ = w.Write([]byte(`{"models":[]}`))
		default:
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`model not found`))
		}
	}))
	t.Cleanup(server.Close)
	return server
}

func TestLLMService_Generate(t *testing.T) {
	svc := NewLLMService(LLMConfig{BaseURL: newServer(t).URL})

	reply, err := svc.Generate(context.Background(), "classify", driven.GenerateOptions{})
	require.NoError(t, err)
	assert.Equal(t, "track", reply)
}

func TestLLMService_Chat(t *testing.T) {
	svc := NewLLMService(LLMConfig{BaseURL: newServer(t).URL})

	reply, err := svc.Chat(context.Background(), []driven.ChatMessage{{Role: "user", Content: "play hello"}}, driven.ChatOptions{})
	require.NoError(t, err)
	assert.Equal(t, "Title: Hello | Artist: Adele", reply)
}

func TestLLMService_Ping(t *testing.T) {
	svc := NewLLMService(LLMConfig{BaseURL: newServer(t).URL})
	assert.NoError(t, svc.Ping(context.Background()))

	down := NewLLMService(LLMConfig{BaseURL: "http://127.0.0.1:1"})
	assert.ErrorContains(t, down.Ping(context.Background()), "ping failed")
}

func TestLLMService_ErrorStatus(t *testing.T) {
	svc := NewLLMService(LLMConfig{BaseURL: newServer(t).URL + "/missing"})

	_, err := svc.Chat(context.Background(), []driven.ChatMessage{{Role: "user", Content: "x"}}, driven.ChatOptions{})
	assert.ErrorContains(t, err, "status 404")
}
