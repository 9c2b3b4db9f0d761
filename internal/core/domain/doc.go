// Package domain defines the core business entities for Jukebox.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Track: A song in the local music library
//   - AgentState: The state threaded through the agent graph
//   - WebResult: A single hit from a web search provider
//   - TrackMatch: A title/artist pair extracted from LLM output
//   - AppSettings: Provider and storage configuration
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
