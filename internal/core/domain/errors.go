package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnsupportedType indicates an unknown provider type.
	ErrUnsupportedType = errors.New("unsupported type")

	// ErrLLMUnavailable indicates the LLM service is not configured.
	// The agent cannot run without it.
	ErrLLMUnavailable = errors.New("LLM service unavailable")

	// ErrWebSearchUnavailable indicates the web search provider is not configured.
	// Trivia answers and the web fallback for track lookup are disabled.
	ErrWebSearchUnavailable = errors.New("web search unavailable")

	// ErrRateLimited indicates the provider rate limit was exceeded.
	ErrRateLimited = errors.New("rate limited")

	// ErrGraphRecursion indicates the agent graph exceeded its step budget.
	ErrGraphRecursion = errors.New("graph recursion limit reached")

	// ErrAudioNotFound indicates a track's audio file is missing on disk.
	ErrAudioNotFound = errors.New("audio file not found")
)
