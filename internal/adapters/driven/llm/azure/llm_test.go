package azure

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/jukebox-cli/internal/core/domain"
	"github.com/custodia-labs/jukebox-cli/internal/core/ports/driven"
)

func TestNewLLMService_Validation(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		want string
	}{
		{"no endpoint", Config{Deployment: "d", APIKey: "k"}, "endpoint is required"},
		{"no deployment", Config{Endpoint: "https://x", APIKey: "k"}, "deployment is required"},
		{"no key", Config{Endpoint: "https://x", Deployment: "d"}, "API key is required"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewLLMService(tt.cfg)
			assert.ErrorContains(t, err, tt.want)
		})
	}

	svc, err := NewLLMService(Config{Endpoint: "https://x/", Deployment: "gpt-4o", APIKey: "k"})
	require.NoError(t, err)
	assert.Equal(t, "https://x", svc.endpoint)
	assert.Equal(t, domain.DefaultAzureAPIVersion, svc.apiVersion)
	assert.Equal(t, "gpt-4o", svc.ModelName())
}

func TestLLMService_Chat(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/openai/deployments/music-gpt/chat/completions", r.URL.Path)
		assert.Equal(t, "2024-06-01", r.URL.Query().Get("api-version"))
		assert.Equal(t, "az-key", r.Header.Get("api-key"))

		var raw map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&raw))
		assert.NotContains(t, raw, "model")
		assert.Equal(t, 0.0, raw["temperature"])

		_, _ = w.Write([]byte(`{"choices":[{"message":{"content":"trivia"}}]}`))
	}))
	defer server.Close()

	svc, err := NewLLMService(Config{
		Endpoint:   server.URL,
		Deployment: "music-gpt",
		APIKey:     "az-key",
		APIVersion: "2024-06-01",
	})
	require.NoError(t, err)

	reply, err := svc.Chat(context.Background(), []driven.ChatMessage{{Role: "user", Content: "who is bono"}}, driven.ChatOptions{})
	require.NoError(t, err)
	assert.Equal(t, "trivia", reply)
}

func TestLLMService_Errors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/openai/models" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	svc, err := NewLLMService(Config{Endpoint: server.URL, Deployment: "d", APIKey: "k"})
	require.NoError(t, err)

	_, err = svc.Generate(context.Background(), "hi", driven.GenerateOptions{})
	assert.ErrorIs(t, err, domain.ErrRateLimited)

	assert.ErrorContains(t, svc.Ping(context.Background()), "status 401")
}
