// Package server exposes the evaluation engine over HTTP.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/afsts/OMeuBairro/internal/catalog"
	"github.com/afsts/OMeuBairro/internal/config"
	"github.com/afsts/OMeuBairro/internal/evaluate"
)

// notFoundMessage is the user-facing body for unresolvable queries.
const notFoundMessage = "Endereço ou código postal não encontrado."

// Server serves neighborhood evaluations and key suggestions. All state
// behind it is immutable, so handlers run fully in parallel.
type Server struct {
	cat     *catalog.Catalog
	eval    *evaluate.Evaluator
	search  config.SearchConfig
	suggest config.SuggestConfig
	router  chi.Router
	http    *http.Server
}

// New wires the router. The catalog must be fully loaded before New is
// called; the server never reads reference data from disk.
func New(cat *catalog.Catalog, cfg *config.Config) *Server {
	s := &Server{
		cat:     cat,
		eval:    evaluate.New(cat),
		search:  cfg.Search,
		suggest: cfg.Suggest,
	}
	s.router = s.buildRouter(cfg.Server)
	s.http = &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: s.router,
	}
	return s
}

func (s *Server) buildRouter(cfg config.ServerConfig) chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RealIP)
	r.Use(requestID)
	r.Use(accessLog)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(rateLimit(cfg.RateLimitRPS, cfg.RateLimitBurst))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		AllowedMethods: []string{"GET", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Get("/search", s.handleSearch)
	r.Get("/suggestions", s.handleSuggestions)

	return r
}

// Router returns the configured router, mainly for tests.
func (s *Server) Router() http.Handler { return s.router }

// Run serves until the context is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	go func() {
		<-ctx.Done()
		zap.L().Info("server: shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = s.http.Shutdown(shutdownCtx)
	}()

	zap.L().Info("server: listening", zap.String("addr", s.http.Addr))
	if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return eris.Wrap(err, "server: listen")
	}
	return nil
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("query"))
	if query == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "query is required"})
		return
	}

	radius := s.search.DefaultRadiusMeters
	if raw := r.URL.Query().Get("radius"); raw != "" {
		parsed, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "radius must be a number"})
			return
		}
		radius = parsed
	}
	if s.search.MaxRadiusMeters > 0 && radius > s.search.MaxRadiusMeters {
		radius = s.search.MaxRadiusMeters
	}

	result, err := s.eval.Evaluate(query, radius)
	if err != nil {
		if eris.Is(err, evaluate.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": notFoundMessage})
			return
		}
		zap.L().Error("server: search failed", zap.String("query", query), zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleSuggestions(w http.ResponseWriter, r *http.Request) {
	q := strings.TrimSpace(r.URL.Query().Get("q"))
	if q == "" {
		writeJSON(w, http.StatusOK, []string{})
		return
	}

	matches := s.cat.Suggester.Suggest(q, s.suggest.MinScore, s.suggest.MaxResults)
	if matches == nil {
		matches = []string{}
	}
	writeJSON(w, http.StatusOK, matches)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
