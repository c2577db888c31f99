// Package rest exposes a small read-only HTTP surface over the live graph
// store, for operators who want JSON instead of the stdout reporter.
package rest

import (
	"encoding/json"
	"net/http"

	"arbitr/internal/graph"
)

type Server struct {
	mux   *http.ServeMux
	store *graph.Store
}

// New builds the status server over store.
func New(store *graph.Store) *Server {
	s := &Server{mux: http.NewServeMux(), store: store}
	s.mux.HandleFunc("/status", s.handleStatus)
	return s
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	summary := s.store.Summarize()
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(summary)
}

func (s *Server) Handler() http.Handler { return s.mux }
