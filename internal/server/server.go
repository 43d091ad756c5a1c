package server

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/nkoval/hiveportal/internal/auth"
	"github.com/nkoval/hiveportal/internal/config"
	"github.com/nkoval/hiveportal/internal/database"
	"github.com/nkoval/hiveportal/internal/report"
)

type Server struct {
	cfg  *config.Config
	db   *database.DB
	auth *auth.Service
	hub  *Hub
	gen  *report.Generator
	mux  *http.ServeMux
}

func New(cfg *config.Config, db *database.DB) *Server {
	s := &Server{
		cfg:  cfg,
		db:   db,
		auth: auth.NewService(db),
		hub:  NewHub(),
		gen:  report.NewGenerator(db),
		mux:  http.NewServeMux(),
	}
	s.registerRoutes()
	return s
}

func (s *Server) ListenAndServe() error {
	addr := fmt.Sprintf("%s:%d", s.cfg.Server.Host, s.cfg.Server.Port)
	slog.Info("starting server", "addr", addr)

	return http.ListenAndServe(addr, s.Handler())
}

// Handler returns the full middleware-wrapped handler.
func (s *Server) Handler() http.Handler {
	return recoveryMiddleware(securityHeaders(loggingMiddleware(s.mux)))
}

func (s *Server) registerRoutes() {
	// Auth
	s.mux.HandleFunc("/api/auth/register", s.handleRegister)
	s.mux.HandleFunc("/api/auth/login", s.handleLogin)

	// Record kinds, each gated by role
	kinds := []struct {
		kind  string
		table database.Table
	}{
		{auth.KindIncidents, database.Incidents},
		{auth.KindDatasets, database.Datasets},
		{auth.KindTickets, database.Tickets},
	}
	for _, k := range kinds {
		s.mux.Handle("/api/"+k.kind, s.requireKind(k.kind, s.handleRecords(k.kind, k.table)))
		s.mux.Handle("/api/"+k.kind+"/", s.requireKind(k.kind, s.handleRecord(k.kind, k.table)))
	}

	// Aggregates
	s.mux.Handle("/api/stats", s.requireAuth(s.handleStats))
	s.mux.Handle("/api/reports/summary", s.requireAuth(s.handleSummaryReport))

	// Change feed
	s.mux.Handle("/ws", s.requireAuth(s.handleWebSocket))
}
