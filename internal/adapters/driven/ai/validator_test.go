package ai

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/jukebox-cli/internal/core/domain"
	"github.com/custodia-labs/jukebox-cli/internal/core/ports/driven"
)

func TestNewConfigValidator(t *testing.T) {
	validator := NewConfigValidator()

	require.NotNil(t, validator)
}

func TestConfigValidator_ImplementsInterface(t *testing.T) {
	var _ driven.AIConfigValidator = (*ConfigValidator)(nil)
}

func TestConfigValidator_ValidateLLM_NilConfig(t *testing.T) {
	assert.NoError(t, NewConfigValidator().ValidateLLM(nil))
}

func TestConfigValidator_ValidateLLM_UnconfiguredProvider(t *testing.T) {
	err := NewConfigValidator().ValidateLLM(&domain.LLMSettings{Model: "test-model"})

	// Nothing to validate.
	assert.NoError(t, err)
}

func TestConfigValidator_ValidateLLM_Unreachable(t *testing.T) {
	err := NewConfigValidator().ValidateLLM(&domain.LLMSettings{
		Provider: domain.AIProviderOllama,
		BaseURL:  "http://127.0.0.1:1",
	})
	assert.Error(t, err)
}

func TestConfigValidator_ValidateLLM_Reachable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"models":[]}`))
	}))
	defer server.Close()

	err := NewConfigValidator().ValidateLLM(&domain.LLMSettings{
		Provider: domain.AIProviderOllama,
		BaseURL:  server.URL,
	})
	assert.NoError(t, err)
}

func TestConfigValidator_ValidateWebSearch_Unconfigured(t *testing.T) {
	v := NewConfigValidator()
	assert.NoError(t, v.ValidateWebSearch(nil))
	assert.NoError(t, v.ValidateWebSearch(&domain.WebSearchSettings{Provider: domain.SearchProviderBrave}))
}
