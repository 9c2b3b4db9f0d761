package domain

// QueryType classifies a user request.
type QueryType string

// Supported query types.
const (
	// QueryTypeTrivia is a question about a musician, history or a music fact.
	QueryTypeTrivia QueryType = "trivia"

	// QueryTypeTrack is a request to find or play a song.
	QueryTypeTrack QueryType = "track"
)

// IsValid returns true if the query type is recognised.
func (q QueryType) IsValid() bool {
	return q == QueryTypeTrivia || q == QueryTypeTrack
}

// String returns the string representation.
func (q QueryType) String() string {
	return string(q)
}

// AgentState is threaded through every node of the music agent graph.
// Nodes receive a copy and return the updated copy.
type AgentState struct {
	// RunID identifies a single agent invocation.
	RunID string `json:"run_id"`

	// UserInput is the raw request text.
	UserInput string `json:"user_input"`

	// QueryType is set by the detection node.
	QueryType QueryType `json:"query_type,omitempty"`

	// ExtractedTitle is the song title the agent settled on, if any.
	ExtractedTitle string `json:"extracted_title,omitempty"`

	// ExtractedArtist is the artist the agent settled on, if any.
	ExtractedArtist string `json:"extracted_artist,omitempty"`

	// Tracks are the library matches.
	Tracks []Track `json:"tracks"`

	// Trivia is the answer to a trivia question.
	Trivia string `json:"trivia,omitempty"`

	// Trace lists the nodes visited, in order.
	Trace []string `json:"trace"`
}

// NewAgentState creates the initial state for a request.
func NewAgentState(runID, input string) AgentState {
	return AgentState{
		RunID:     runID,
		UserInput: input,
		Tracks:    []Track{},
		Trace:     []string{},
	}
}

// HasTracks reports whether any library tracks were found.
func (s AgentState) HasTracks() bool {
	return len(s.Tracks) > 0
}

// IsTrivia reports whether the request was classified as trivia.
func (s AgentState) IsTrivia() bool {
	return s.QueryType == QueryTypeTrivia
}
