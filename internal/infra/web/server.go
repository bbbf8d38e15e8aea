package web

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"santa-admin-bot/internal/usecase"
)

// Pinger reports storage health for /healthz.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Server exposes the read-only admin API: health, metrics, stats and a
// database snapshot. Mutations stay on the Telegram command surface.
type Server struct {
	stats   usecase.StatsUseCase
	backups usecase.BackupUseCase
	db      Pinger
	auth    *AuthManager
	apiKey  string
	log     *zerolog.Logger
}

func NewServer(stats usecase.StatsUseCase, backups usecase.BackupUseCase, db Pinger, auth *AuthManager, apiKey string, logger *zerolog.Logger) *Server {
	l := logger.With().Str("component", "web").Logger()
	return &Server{
		stats:   stats,
		backups: backups,
		db:      db,
		auth:    auth,
		apiKey:  apiKey,
		log:     &l,
	}
}

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	r.Get("/healthz", s.handleHealth)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())
	r.Post("/api/v1/login", s.handleLogin)
	r.Post("/api/v1/logout", s.handleLogout)

	r.Group(func(r chi.Router) {
		r.Use(s.sessionMiddleware)
		r.Get("/api/v1/stats", s.handleStats)
		r.Get("/api/v1/backup", s.handleBackup)
	})

	return r
}

// sessionMiddleware accepts either a minted session token or the raw API
// key as a Bearer credential, so curl against the API stays possible.
func (s *Server) sessionMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.apiKey != "" {
			if hdr := r.Header.Get("Authorization"); hdr != "" {
				if strings.HasPrefix(strings.ToLower(hdr), "bearer ") &&
					keyMatches(strings.TrimSpace(hdr[7:]), s.apiKey) {
					next.ServeHTTP(w, r)
					return
				}
			}
		}
		if _, err := s.auth.ParseFromRequest(r); err != nil {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if err := s.db.Ping(r.Context()); err != nil {
		s.log.Error().Err(err).Msg("health check failed")
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "down"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	if s.apiKey == "" {
		s.log.Error().Msg("admin API key is not configured")
		http.Error(w, "Forbidden", http.StatusForbidden)
		return
	}

	var body struct {
		APIKey string `json:"api_key"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || !keyMatches(body.APIKey, s.apiKey) {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	token, err := s.auth.Mint(w)
	if err != nil {
		s.log.Error().Err(err).Msg("session mint failed")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"token": token})
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	s.auth.Clear(w)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	summary, err := s.stats.Summary(r.Context())
	if err != nil {
		s.log.Error().Err(err).Msg("stats failed")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

func (s *Server) handleBackup(w http.ResponseWriter, r *http.Request) {
	data, filename, err := s.backups.Export(r.Context(), 0)
	if err != nil {
		s.log.Error().Err(err).Msg("backup export failed")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func keyMatches(got, want string) bool {
	return subtle.ConstantTimeCompare([]byte(got), []byte(want)) == 1
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
