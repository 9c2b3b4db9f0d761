package driven

// PromptStore provides access to LLM prompt templates.
// Implementations may load prompts from files or embed them in the binary.
type PromptStore interface {
	// Load returns the prompt template for the given name.
	Load(name string) (string, error)

	// Reload clears any cached prompts, forcing fresh loads on next access.
	// This is useful when prompts may have been edited on disk.
	Reload()
}

// Well-known prompt names used by the agent nodes.
// Each template takes a single %s placeholder.
const (
	// PromptDetectType classifies the user input as trivia or track.
	// The placeholder is the raw user input.
	PromptDetectType = "detect_type"

	// PromptExtractTrack pulls a title and artist out of a chat reply.
	// The placeholder is the LLM's reply to the user input.
	PromptExtractTrack = "extract_track"

	// PromptExtractFromSearch pulls a title and artist out of web results.
	// The placeholder is the formatted search results.
	PromptExtractFromSearch = "extract_from_search"

	// PromptTrivia answers a music question from web results.
	// The placeholder is the formatted search results.
	PromptTrivia = "trivia"
)

// AllPromptNames lists every prompt the agent loads.
func AllPromptNames() []string {
	return []string{
		PromptDetectType,
		PromptExtractTrack,
		PromptExtractFromSearch,
		PromptTrivia,
	}
}

// defaultPrompts are the built-in templates. User files override them.
var defaultPrompts = map[string]string{
	PromptDetectType: `Is the following user input asking for music-related trivia (e.g. about a person, history, or music fact)?
Return only "trivia" or "track".
Input: "%s"`,

	PromptExtractTrack: `Extract the song title and artist from the following response.
Return in format: "Title: [song name] | Artist: [artist name]".
Response: '%s'`,

	PromptExtractFromSearch: `Extract a relevant song title and artist from the search results below:
Format: "Title: [song name] | Artist: [artist name]"
Results: %s`,

	PromptTrivia: `Based on the following search results, answer the user's music-related question or provide a fun fact.
Be concise, accurate, and conversational.
Results: %s`,
}

// DefaultPrompt returns the built-in template for name.
func DefaultPrompt(name string) (string, bool) {
	p, ok := defaultPrompts[name]
	return p, ok
}
