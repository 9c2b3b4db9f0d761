package rest

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/custodia-labs/jukebox-cli/internal/logger"
)

// statusRecorder captures the status code written by a handler.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// unmatchedRoute labels requests that end in the 404 or 405 handlers.
const unmatchedRoute = "unmatched"

// instrument logs each request and records it in metrics under its route
// template, so /api/v1/tracks/7 and /api/v1/tracks/8 share a label.
func (s *Server) instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		route := s.routeTemplate(r)

		next.ServeHTTP(rec, r)

		elapsed := time.Since(start)
		s.metrics.observeRequest(route, r.Method, strconv.Itoa(rec.status), elapsed)
		logger.Info("%s %s %d %s", r.Method, r.URL.Path, rec.status, elapsed.Round(time.Millisecond))
	})
}

// routeTemplate resolves the template of the route r will be served by.
func (s *Server) routeTemplate(r *http.Request) string {
	var match mux.RouteMatch
	if !s.router.Match(r, &match) || match.MatchErr != nil || match.Route == nil {
		return unmatchedRoute
	}
	tpl, err := match.Route.GetPathTemplate()
	if err != nil {
		return unmatchedRoute
	}
	return tpl
}

// recoverer turns handler panics into 500 responses.
func recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if v := recover(); v != nil {
				logger.Error("rest: panic serving %s: %v", r.URL.Path, v)
				writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal server error"})
			}
		}()
		next.ServeHTTP(w, r)
	})
}
