package brave

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/jukebox-cli/internal/core/domain"
)

func TestSearch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "secret", r.Header.Get("X-Subscription-Token"))
		assert.Equal(t, "hey jude song by", r.URL.Query().Get("q"))
		assert.Equal(t, "5", r.URL.Query().Get("count"))
		_, _ = w.Write([]byte(`{"web":{"results":[
			{"title":"Hey Jude - Wikipedia","url":"https://en.wikipedia.org/wiki/Hey_Jude","description":"<strong>Hey Jude</strong> is a song by the Beatles"}
		]}}`))
	}))
	defer server.Close()

	s, err := New(Config{APIKey: "secret", Endpoint: server.URL})
	require.NoError(t, err)

	results, err := s.Search(context.Background(), "hey jude song by")
	require.NoError(t, err)
	assert.Equal(t, []domain.WebResult{{
		Title:   "Hey Jude - Wikipedia",
		URL:     "https://en.wikipedia.org/wiki/Hey_Jude",
		Snippet: "Hey Jude is a song by the Beatles",
	}}, results)
	assert.Equal(t, "brave", s.Name())
}

func TestSearch_RateLimited(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("X-RateLimit-Reset", "3, 1419704")
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	s, err := New(Config{APIKey: "secret", Endpoint: server.URL})
	require.NoError(t, err)

	_, err = s.Search(context.Background(), "q")
	assert.ErrorIs(t, err, domain.ErrRateLimited)
	assert.ErrorContains(t, err, "3s")
}

func TestNew_RequiresKey(t *testing.T) {
	_, err := New(Config{APIKey: " "})
	assert.Error(t, err)
}

func TestRetryDelay(t *testing.T) {
	h := http.Header{}
	assert.Equal(t, time.Second, retryDelay(h))
	h.Set("X-RateLimit-Reset", "7, 2")
	assert.Equal(t, 2*time.Second, retryDelay(h))
}
