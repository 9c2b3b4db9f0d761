package services

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/custodia-labs/jukebox-cli/internal/core/domain"
	"github.com/custodia-labs/jukebox-cli/internal/core/ports/driven"
)

// scriptedLLM answers chat calls by matching the prompt against rules in order.
type scriptedLLM struct {
	mu      sync.Mutex
	rules   []llmRule
	prompts []string
	temps   []float64
	err     error
}

type llmRule struct {
	contains string
	reply    string
}

func newScriptedLLM(rules ...llmRule) *scriptedLLM {
	return &scriptedLLM{rules: rules}
}

func (m *scriptedLLM) Generate(ctx context.Context, prompt string, opts driven.GenerateOptions) (string, error) {
	return m.Chat(ctx, []driven.ChatMessage{{Role: "user", Content: prompt}}, driven.ChatOptions{Temperature: opts.Temperature})
}

func (m *scriptedLLM) Chat(_ context.Context, messages []driven.ChatMessage, opts driven.ChatOptions) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	prompt := messages[len(messages)-1].Content
	m.prompts = append(m.prompts, prompt)
	m.temps = append(m.temps, opts.Temperature)
	if m.err != nil {
		return "", m.err
	}
	for _, r := range m.rules {
		if strings.Contains(prompt, r.contains) {
			return r.reply, nil
		}
	}
	return "", nil
}

func (m *scriptedLLM) ModelName() string          { return "scripted" }
func (m *scriptedLLM) Ping(_ context.Context) error { return nil }
func (m *scriptedLLM) Close() error               { return nil }

func (m *scriptedLLM) calls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.prompts...)
}

// mockWebSearch returns canned results per query.
type mockWebSearch struct {
	mu      sync.Mutex
	results map[string][]domain.WebResult
	queries []string
	err     error
}

func newMockWebSearch() *mockWebSearch {
	return &mockWebSearch{results: make(map[string][]domain.WebResult)}
}

func (m *mockWebSearch) Search(_ context.Context, query string) ([]domain.WebResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.queries = append(m.queries, query)
	if m.err != nil {
		return nil, m.err
	}
	return m.results[query], nil
}

func (m *mockWebSearch) Name() string { return "mock" }

// mockPromptStore serves prompts from a map.
type mockPromptStore struct {
	prompts  map[string]string
	reloaded int
}

func (m *mockPromptStore) Load(name string) (string, error) {
	p, ok := m.prompts[name]
	if !ok {
		return "", errors.New("no such prompt")
	}
	return p, nil
}

func (m *mockPromptStore) Reload() { m.reloaded++ }

// mockValidator records validation calls.
type mockValidator struct {
	llmErr error
	webErr error
	llm    *domain.LLMSettings
	web    *domain.WebSearchSettings
}

func (m *mockValidator) ValidateLLM(cfg *domain.LLMSettings) error {
	m.llm = cfg
	return m.llmErr
}

func (m *mockValidator) ValidateWebSearch(cfg *domain.WebSearchSettings) error {
	m.web = cfg
	return m.webErr
}

// failingTrackStore fails every lookup.
type failingTrackStore struct {
	driven.TrackStore
	err error
}

func (f failingTrackStore) Find(context.Context, string, string) ([]domain.Track, error) {
	return nil, f.err
}
