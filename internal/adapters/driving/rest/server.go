package rest

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/custodia-labs/jukebox-cli/internal/core/ports/driving"
	"github.com/custodia-labs/jukebox-cli/internal/logger"
)

// Server timeouts. Agent runs make several LLM calls, so writes get longer.
const (
	readTimeout     = 10 * time.Second
	writeTimeout    = 3 * time.Minute
	idleTimeout     = 2 * time.Minute
	shutdownTimeout = 10 * time.Second
)

// Ports holds the driving ports the REST API calls.
type Ports struct {
	Agent   driving.MusicAgent
	Library driving.LibraryService
}

// Server is the REST API.
type Server struct {
	ports   *Ports
	metrics *Metrics
	router  *mux.Router
	handler http.Handler
}

// NewServer builds the router. A nil metrics gets a private registry.
func NewServer(ports *Ports, metrics *Metrics) (*Server, error) {
	if ports == nil || ports.Agent == nil || ports.Library == nil {
		return nil, errors.New("rest: agent and library ports are required")
	}
	if metrics == nil {
		metrics = NewMetrics(nil)
	}

	s := &Server{ports: ports, metrics: metrics}
	s.router = s.routes()
	// Wrapping outside the router sees 404 and 405 responses too.
	s.handler = s.instrument(recoverer(s.router))
	return s, nil
}

func (s *Server) routes() *mux.Router {
	router := mux.NewRouter()

	router.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)
	router.Handle("/metrics", s.metrics.Handler()).Methods(http.MethodGet)

	api := router.PathPrefix("/api/v1").Subrouter()
	api.HandleFunc("/ask", s.handleAsk).Methods(http.MethodPost)
	api.HandleFunc("/tracks", s.handleListTracks).Methods(http.MethodGet)
	api.HandleFunc("/tracks/{id:[0-9]+}", s.handleGetTrack).Methods(http.MethodGet)
	api.HandleFunc("/tracks/{id:[0-9]+}/audio", s.handleTrackAudio).Methods(http.MethodGet)

	// A subrouter without its own handlers reports a method mismatch as 404.
	for _, r := range []*mux.Router{router, api} {
		r.NotFoundHandler = http.HandlerFunc(notFound)
		r.MethodNotAllowedHandler = http.HandlerFunc(methodNotAllowed)
	}
	return router
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:         addr,
		Handler:      s.handler,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		IdleTimeout:  idleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("REST API listening on %s", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("rest: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("rest: shutdown: %w", err)
	}
	return nil
}
