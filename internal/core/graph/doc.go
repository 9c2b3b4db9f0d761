// Package graph provides a small typed state-graph runtime for agent workflows.
//
// A graph is a set of named nodes. Each node receives the current state and
// returns the next one. After a node runs, exactly one outgoing edge decides
// where execution goes next: a static edge names the successor directly, a
// conditional edge calls a router with the new state. Execution finishes when
// the successor is End.
//
//	g := graph.New[State]()
//	g.AddNode("detect", detect)
//	g.AddNode("answer", answer)
//	g.SetEntryPoint("detect")
//	g.AddConditionalEdges("detect", func(s State) string { ... })
//	g.AddEdge("answer", graph.End)
//	compiled, err := g.Compile()
//	final, err := compiled.Invoke(ctx, State{...})
//
// Graphs are validated once by Compile; a Compiled graph is immutable and
// safe for concurrent Invoke calls as long as node functions are.
//
// # Import Rules
//
//   - Can Import: domain package only
package graph
