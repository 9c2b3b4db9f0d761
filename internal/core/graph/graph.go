package graph

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/custodia-labs/jukebox-cli/internal/core/domain"
)

// End is the reserved name of the terminal node.
const End = "__end__"

// DefaultRecursionLimit bounds the number of node executions per Invoke.
const DefaultRecursionLimit = 25

// Errors returned while building or compiling a graph.
var (
	ErrNoEntryPoint    = errors.New("graph: entry point not set")
	ErrUnknownNode     = errors.New("graph: unknown node")
	ErrDuplicateNode   = errors.New("graph: duplicate node")
	ErrReservedName    = errors.New("graph: reserved node name")
	ErrConflictingEdge = errors.New("graph: node has more than one outgoing edge")
	ErrMissingEdge     = errors.New("graph: node has no outgoing edge")
)

// NodeFunc transforms a state.
type NodeFunc[S any] func(ctx context.Context, state S) (S, error)

// RouterFunc picks the next node from a state.
type RouterFunc[S any] func(state S) string

// Observer is notified after every node execution.
type Observer func(node string, elapsed time.Duration, err error)

// Graph is a mutable graph definition.
type Graph[S any] struct {
	nodes       map[string]NodeFunc[S]
	order       []string
	edges       map[string]string
	conditional map[string]RouterFunc[S]
	entry       string
	buildErr    error
}

// New creates an empty graph.
func New[S any]() *Graph[S] {
	return &Graph[S]{
		nodes:       make(map[string]NodeFunc[S]),
		edges:       make(map[string]string),
		conditional: make(map[string]RouterFunc[S]),
	}
}

// AddNode registers a node. Errors are reported by Compile.
func (g *Graph[S]) AddNode(name string, fn NodeFunc[S]) *Graph[S] {
	switch {
	case name == End || name == "":
		g.fail(fmt.Errorf("%w: %q", ErrReservedName, name))
	case g.nodes[name] != nil:
		g.fail(fmt.Errorf("%w: %s", ErrDuplicateNode, name))
	case fn == nil:
		g.fail(fmt.Errorf("graph: node %s has nil function", name))
	default:
		g.nodes[name] = fn
		g.order = append(g.order, name)
	}
	return g
}

// AddEdge adds a static transition from one node to another (or End).
func (g *Graph[S]) AddEdge(from, to string) *Graph[S] {
	if g.hasEdge(from) {
		g.fail(fmt.Errorf("%w: %s", ErrConflictingEdge, from))
		return g
	}
	g.edges[from] = to
	return g
}

// AddConditionalEdges routes from a node using router.
func (g *Graph[S]) AddConditionalEdges(from string, router RouterFunc[S]) *Graph[S] {
	if g.hasEdge(from) {
		g.fail(fmt.Errorf("%w: %s", ErrConflictingEdge, from))
		return g
	}
	if router == nil {
		g.fail(fmt.Errorf("graph: node %s has nil router", from))
		return g
	}
	g.conditional[from] = router
	return g
}

// SetEntryPoint sets the first node to execute.
func (g *Graph[S]) SetEntryPoint(name string) *Graph[S] {
	g.entry = name
	return g
}

func (g *Graph[S]) hasEdge(from string) bool {
	_, static := g.edges[from]
	_, cond := g.conditional[from]
	return static || cond
}

func (g *Graph[S]) fail(err error) {
	if g.buildErr == nil {
		g.buildErr = err
	}
}

// Compile validates the graph and returns an executable copy.
func (g *Graph[S]) Compile(opts ...Option) (*Compiled[S], error) {
	if g.buildErr != nil {
		return nil, g.buildErr
	}
	if g.entry == "" {
		return nil, ErrNoEntryPoint
	}
	if g.nodes[g.entry] == nil {
		return nil, fmt.Errorf("%w: entry point %s", ErrUnknownNode, g.entry)
	}
	for from, to := range g.edges {
		if g.nodes[from] == nil {
			return nil, fmt.Errorf("%w: edge from %s", ErrUnknownNode, from)
		}
		if to != End && g.nodes[to] == nil {
			return nil, fmt.Errorf("%w: edge to %s", ErrUnknownNode, to)
		}
	}
	for from := range g.conditional {
		if g.nodes[from] == nil {
			return nil, fmt.Errorf("%w: conditional edge from %s", ErrUnknownNode, from)
		}
	}
	for _, name := range g.order {
		if !g.hasEdge(name) {
			return nil, fmt.Errorf("%w: %s", ErrMissingEdge, name)
		}
	}

	cfg := config{recursionLimit: DefaultRecursionLimit}
	for _, opt := range opts {
		opt(&cfg)
	}

	c := &Compiled[S]{
		nodes:       make(map[string]NodeFunc[S], len(g.nodes)),
		edges:       make(map[string]string, len(g.edges)),
		conditional: make(map[string]RouterFunc[S], len(g.conditional)),
		order:       append([]string(nil), g.order...),
		entry:       g.entry,
		cfg:         cfg,
	}
	for k, v := range g.nodes {
		c.nodes[k] = v
	}
	for k, v := range g.edges {
		c.edges[k] = v
	}
	for k, v := range g.conditional {
		c.conditional[k] = v
	}
	return c, nil
}

// Option configures a compiled graph.
type Option func(*config)

type config struct {
	recursionLimit int
	observer       Observer
}

// WithRecursionLimit caps node executions per Invoke. Values below 1 are ignored.
func WithRecursionLimit(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.recursionLimit = n
		}
	}
}

// WithObserver registers a callback invoked after each node.
func WithObserver(o Observer) Option {
	return func(c *config) {
		c.observer = o
	}
}

// Compiled is an immutable, executable graph.
type Compiled[S any] struct {
	nodes       map[string]NodeFunc[S]
	edges       map[string]string
	conditional map[string]RouterFunc[S]
	order       []string
	entry       string
	cfg         config
}

// Invoke runs the graph from the entry point until End.
// On error the state returned is the last state successfully produced.
func (c *Compiled[S]) Invoke(ctx context.Context, state S) (S, error) {
	current := c.entry
	for step := 0; ; step++ {
		if current == End {
			return state, nil
		}
		if step >= c.cfg.recursionLimit {
			return state, fmt.Errorf("%w: %d steps without reaching end", domain.ErrGraphRecursion, step)
		}
		if err := ctx.Err(); err != nil {
			return state, err
		}

		fn, ok := c.nodes[current]
		if !ok {
			return state, fmt.Errorf("%w: %s", ErrUnknownNode, current)
		}

		start := time.Now()
		next, err := fn(ctx, state)
		if c.cfg.observer != nil {
			c.cfg.observer(current, time.Since(start), err)
		}
		if err != nil {
			return state, fmt.Errorf("node %s: %w", current, err)
		}
		state = next

		if to, ok := c.edges[current]; ok {
			current = to
			continue
		}
		route := c.conditional[current](state)
		if route != End && c.nodes[route] == nil {
			return state, fmt.Errorf("%w: router of %s returned %q", ErrUnknownNode, current, route)
		}
		current = route
	}
}

// Nodes returns node names in registration order.
func (c *Compiled[S]) Nodes() []string {
	return append([]string(nil), c.order...)
}

// EntryPoint returns the first node executed.
func (c *Compiled[S]) EntryPoint() string {
	return c.entry
}
