package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/custodia-labs/jukebox-cli/internal/core/domain"
	"github.com/custodia-labs/jukebox-cli/internal/core/graph"
	"github.com/custodia-labs/jukebox-cli/internal/core/ports/driven"
	"github.com/custodia-labs/jukebox-cli/internal/core/ports/driving"
	"github.com/custodia-labs/jukebox-cli/internal/logger"
)

// Ensure MusicAgentService implements the interface.
var _ driving.MusicAgent = (*MusicAgentService)(nil)

// Node names of the music agent graph. They are recorded in AgentState.Trace.
const (
	NodeDetectType   = "DetectType"
	NodeTriviaSearch = "TriviaSearch"
	NodeDBSearch     = "DBSearch"
	NodeWebSearch    = "WebSearch"
	NodeLyricsSearch = "LyricsSearch"
)

// MusicAgentService answers music requests by running a five-node graph
// over the LLM, web search and the local library.
type MusicAgentService struct {
	llm     driven.LLMService
	web     driven.WebSearch
	tracks  driven.TrackStore
	prompts driven.PromptStore
	graph   *graph.Compiled[domain.AgentState]
	newID   func() string
}

// NewMusicAgentService builds and compiles the agent graph.
// web and prompts are optional. Without web search, trivia questions and
// the web fallback fail with domain.ErrWebSearchUnavailable.
func NewMusicAgentService(
	llm driven.LLMService,
	web driven.WebSearch,
	tracks driven.TrackStore,
	prompts driven.PromptStore,
	opts ...graph.Option,
) (*MusicAgentService, error) {
	s := &MusicAgentService{
		llm:     llm,
		web:     web,
		tracks:  tracks,
		prompts: prompts,
		newID:   uuid.NewString,
	}

	g := graph.New[domain.AgentState]().
		AddNode(NodeDetectType, s.detectType).
		AddNode(NodeTriviaSearch, s.triviaSearch).
		AddNode(NodeDBSearch, s.dbSearch).
		AddNode(NodeWebSearch, s.webSearch).
		AddNode(NodeLyricsSearch, s.lyricsSearch).
		SetEntryPoint(NodeDetectType).
		AddConditionalEdges(NodeDetectType, routeAfterDetect).
		AddEdge(NodeTriviaSearch, NodeDBSearch).
		AddConditionalEdges(NodeDBSearch, routeAfterDBSearch).
		AddEdge(NodeWebSearch, NodeLyricsSearch).
		AddEdge(NodeLyricsSearch, graph.End)

	compiled, err := g.Compile(opts...)
	if err != nil {
		return nil, fmt.Errorf("compile agent graph: %w", err)
	}
	s.graph = compiled
	return s, nil
}

// Ask runs the agent for a single request.
func (s *MusicAgentService) Ask(ctx context.Context, query string) (*domain.AgentState, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("%w: query is empty", domain.ErrInvalidInput)
	}
	if s.llm == nil {
		return nil, domain.ErrLLMUnavailable
	}
	if s.tracks == nil {
		return nil, fmt.Errorf("agent: track store is not configured")
	}

	state := domain.NewAgentState(s.newID(), query)

	logger.Section("Agent Run")
	logger.Debug("Run ID: %s", state.RunID)
	logger.Debug("Input: %q", query)

	final, err := s.graph.Invoke(ctx, state)
	if err != nil {
		logger.Warn("Agent run %s failed: %v", state.RunID, err)
		return nil, fmt.Errorf("agent run: %w", err)
	}

	logger.Debug("Trace: %s", strings.Join(final.Trace, " -> "))
	logger.Info("Agent finished: type=%s tracks=%d", final.QueryType, len(final.Tracks))
	return &final, nil
}

// Graph exposes the compiled graph for inspection.
func (s *MusicAgentService) Graph() *graph.Compiled[domain.AgentState] {
	return s.graph
}

func routeAfterDetect(state domain.AgentState) string {
	if state.IsTrivia() {
		return NodeTriviaSearch
	}
	return NodeDBSearch
}

func routeAfterDBSearch(state domain.AgentState) string {
	if state.HasTracks() {
		return NodeLyricsSearch
	}
	return NodeWebSearch
}

func (s *MusicAgentService) detectType(ctx context.Context, state domain.AgentState) (domain.AgentState, error) {
	reply, err := s.complete(ctx, s.prompt(driven.PromptDetectType, state.UserInput))
	if err != nil {
		return state, fmt.Errorf("detect query type: %w", err)
	}

	state.QueryType = domain.QueryTypeTrack
	if strings.Contains(strings.ToLower(reply), "trivia") {
		state.QueryType = domain.QueryTypeTrivia
	}
	logger.Debug("Query type: %s", state.QueryType)
	return visit(state, NodeDetectType), nil
}

func (s *MusicAgentService) triviaSearch(ctx context.Context, state domain.AgentState) (domain.AgentState, error) {
	results, err := s.search(ctx, state.UserInput)
	if err != nil {
		return state, err
	}

	reply, err := s.complete(ctx, s.prompt(driven.PromptTrivia, domain.FormatWebResults(results)))
	if err != nil {
		return state, fmt.Errorf("answer trivia: %w", err)
	}
	state.Trivia = strings.TrimSpace(reply)
	return visit(state, NodeTriviaSearch), nil
}

func (s *MusicAgentService) dbSearch(ctx context.Context, state domain.AgentState) (domain.AgentState, error) {
	chat, err := s.complete(ctx, state.UserInput)
	if err != nil {
		return state, fmt.Errorf("chat: %w", err)
	}

	reply, err := s.complete(ctx, s.prompt(driven.PromptExtractTrack, chat))
	if err != nil {
		return state, fmt.Errorf("extract track: %w", err)
	}

	match, _ := domain.ParseTrackMatch(reply)
	logger.Debug("Extracted: title=%q artist=%q", match.Title, match.Artist)

	tracks, err := s.lookup(ctx, match)
	if err != nil {
		return state, err
	}

	state.ExtractedTitle = match.Title
	state.ExtractedArtist = match.Artist
	state.Tracks = tracks
	return visit(state, NodeDBSearch), nil
}

func (s *MusicAgentService) webSearch(ctx context.Context, state domain.AgentState) (domain.AgentState, error) {
	var found domain.TrackMatch
	tracks := []domain.Track{}

	for _, q := range webQueries(state) {
		logger.Debug("Web query: %q", q)
		results, err := s.search(ctx, q)
		if err != nil {
			return state, err
		}

		reply, err := s.complete(ctx, s.prompt(driven.PromptExtractFromSearch, domain.FormatWebResults(results)))
		if err != nil {
			return state, fmt.Errorf("extract track from results: %w", err)
		}

		match, ok := domain.ParseStrictTrackMatch(reply)
		if !ok {
			continue
		}
		found = match
		tracks, err = s.lookup(ctx, match)
		if err != nil {
			return state, err
		}
		if len(tracks) > 0 {
			break
		}
	}

	state.ExtractedTitle = found.Title
	state.ExtractedArtist = found.Artist
	state.Tracks = tracks
	return visit(state, NodeWebSearch), nil
}

func (s *MusicAgentService) lyricsSearch(_ context.Context, state domain.AgentState) (domain.AgentState, error) {
	tracks := make([]domain.Track, len(state.Tracks))
	for i, t := range state.Tracks {
		if t.Lyrics == "" {
			t.Lyrics = domain.MissingLyricsPlaceholder
		}
		tracks[i] = t
	}
	state.Tracks = tracks
	return visit(state, NodeLyricsSearch), nil
}

// webQueries lists the fallback searches, most specific first.
func webQueries(state domain.AgentState) []string {
	title, artist := state.ExtractedTitle, state.ExtractedArtist
	var queries []string
	if title != "" {
		queries = append(queries, fmt.Sprintf("%s song by %s", title, artist))
	}
	if artist != "" {
		queries = append(queries, "songs by "+artist)
	}
	if title == "" && artist == "" {
		queries = append(queries, state.UserInput)
	}
	return queries
}

func (s *MusicAgentService) lookup(ctx context.Context, match domain.TrackMatch) ([]domain.Track, error) {
	if match.IsEmpty() {
		return []domain.Track{}, nil
	}
	tracks, err := s.tracks.Find(ctx, match.Title, match.Artist)
	if err != nil {
		return nil, fmt.Errorf("query library: %w", err)
	}
	logger.Debug("Library matches: %d", len(tracks))
	if tracks == nil {
		tracks = []domain.Track{}
	}
	return tracks, nil
}

func (s *MusicAgentService) search(ctx context.Context, query string) ([]domain.WebResult, error) {
	if s.web == nil {
		return nil, domain.ErrWebSearchUnavailable
	}
	results, err := s.web.Search(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("web search (%s): %w", s.web.Name(), err)
	}
	logger.Debug("Web results from %s: %d", s.web.Name(), len(results))
	return results, nil
}

func (s *MusicAgentService) complete(ctx context.Context, content string) (string, error) {
	return s.llm.Chat(ctx, []driven.ChatMessage{
		{Role: "user", Content: content},
	}, driven.ChatOptions{Temperature: 0})
}

// prompt renders the named template around arg. Only the first %s is
// substituted; any other % in a user-edited template is kept literally.
// Templates without a %s placeholder get arg appended.
func (s *MusicAgentService) prompt(name, arg string) string {
	tmpl := s.loadPrompt(name)
	if !strings.Contains(tmpl, "%s") {
		return tmpl + "\n" + arg
	}
	return strings.Replace(tmpl, "%s", arg, 1)
}

// loadPrompt loads a prompt from the store, falling back to the default if unavailable.
func (s *MusicAgentService) loadPrompt(name string) string {
	if s.prompts != nil {
		if p, err := s.prompts.Load(name); err == nil && p != "" {
			return p
		}
		logger.Debug("Prompt %s unavailable, using default", name)
	}
	p, _ := driven.DefaultPrompt(name)
	return p
}

func visit(state domain.AgentState, node string) domain.AgentState {
	trace := make([]string, len(state.Trace), len(state.Trace)+1)
	copy(trace, state.Trace)
	state.Trace = append(trace, node)
	return state
}
