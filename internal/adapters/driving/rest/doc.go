// Package rest exposes the music agent and library over HTTP.
//
// Routes:
//
//	POST /api/v1/ask                 run the agent for {"query": "..."}
//	GET  /api/v1/tracks              list or search (?title=&artist=&limit=&offset=)
//	GET  /api/v1/tracks/{id}         one track
//	GET  /api/v1/tracks/{id}/audio   the track's audio file
//	GET  /healthz                    liveness
//	GET  /metrics                    Prometheus metrics
//
// Errors are JSON objects {"error": "..."} with a status derived from the
// domain error.
//
// # Import Rules
//
//   - Can Import: domain, ports/driving, logger
//   - Cannot Import: services or driven adapters
package rest
