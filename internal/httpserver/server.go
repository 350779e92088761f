// internal/httpserver/server.go
//
// HTTP server wiring for the Yams backend.
// Responsibilities:
//   - Router + middleware (JSON, CORS, timeouts, panic recovery, request IDs).
//   - Public endpoints: "/", "/health", "/metrics".
//   - Game endpoints: the game id travels in the Game-Uuid header.
//   - Leaderboard of finished games when a results store is configured.
//
// Notes:
//   - Every game operation goes through session.Service (load, compute, store).
//   - Rule violations and malformed input answer 400, unknown games 404.

package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/yams/internal/dice"
	"github.com/robalobadob/yams/internal/game"
	"github.com/robalobadob/yams/internal/results"
	"github.com/robalobadob/yams/internal/score"
	"github.com/robalobadob/yams/internal/session"
	"github.com/robalobadob/yams/internal/store"
)

// GameIDHeader carries the game id on every game request.
const GameIDHeader = "Game-Uuid"

// Leaderboard lists finished games, best first.
type Leaderboard interface {
	Leaderboard(ctx context.Context, limit int) ([]results.Result, error)
}

// Options tunes the server. Zero values pick the defaults.
type Options struct {
	ClientOrigin    string
	RequestTimeout  time.Duration
	Leaderboard     Leaderboard         // nil disables GET /leaderboard
	Gatherer        prometheus.Gatherer // nil disables GET /metrics
	LeaderboardSize int
}

// Server bundles the router and the game service.
type Server struct {
	r    *chi.Mux
	svc  *session.Service
	opts Options
}

// New constructs a Server, installs middleware, and registers routes.
func New(svc *session.Service, opts Options) *Server {
	if opts.ClientOrigin == "" {
		opts.ClientOrigin = "http://localhost:5173"
	}
	if opts.RequestTimeout <= 0 {
		opts.RequestTimeout = 10 * time.Second
	}
	if opts.LeaderboardSize <= 0 {
		opts.LeaderboardSize = results.DefaultLimit
	}
	s := &Server{r: chi.NewRouter(), svc: svc, opts: opts}

	// --- middleware ---
	s.r.Use(chimw.RequestID)
	s.r.Use(chimw.RealIP)
	s.r.Use(chimw.Recoverer)
	s.r.Use(chimw.Timeout(opts.RequestTimeout))
	s.r.Use(jsonContentType)
	s.r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{opts.ClientOrigin},
		AllowedMethods:   []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", GameIDHeader},
		ExposedHeaders:   []string{"Hx-Trigger"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// --- diagnostics ---
	s.r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"service":"yams","endpoints":["/health","POST /games","GET /game","PUT /throw-dice","PUT /select/{diceIndex}","GET /score-options","PUT /score/{scoreType}","POST /reset"]}`))
	})
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"ok":true}`))
	})
	if opts.Gatherer != nil {
		s.r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(opts.Gatherer, promhttp.HandlerOpts{}))
	}

	// --- game ---
	s.r.Post("/games", s.handleCreate)
	s.r.Get("/game", s.handleGet)
	s.r.Put("/throw-dice", s.handleThrow)
	s.r.Put("/select/{diceIndex}", s.handleSelect)
	s.r.Get("/score-options", s.handleScoreOptions)
	s.r.Put("/score/{scoreType}", s.handleScore)
	s.r.Post("/reset", s.handleReset)

	if opts.Leaderboard != nil {
		s.r.Get("/leaderboard", s.handleLeaderboard)
	}

	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not_found", "path": r.URL.Path})
	})

	return s
}

// Start begins serving HTTP on addr.
func (s *Server) Start(addr string) error { return http.ListenAndServe(addr, s.r) }

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

// ----------------------------- middleware ----------------------------------

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// ------------------------------ GAME ---------------------------------------

type createRes struct {
	GameID string   `json:"gameId"`
	View   gameView `json:"view"`
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	g, err := s.svc.Create(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, createRes{GameID: g.ID.String(), View: newGameView(g)})
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	id, ok := gameID(w, r)
	if !ok {
		return
	}
	g, err := s.svc.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, newGameView(g))
}

func (s *Server) handleThrow(w http.ResponseWriter, r *http.Request) {
	id, ok := gameID(w, r)
	if !ok {
		return
	}
	g, err := s.svc.Throw(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Hx-Trigger", "dice-thrown")
	writeJSON(w, http.StatusOK, newGameView(g))
}

func (s *Server) handleSelect(w http.ResponseWriter, r *http.Request) {
	id, ok := gameID(w, r)
	if !ok {
		return
	}
	i, err := dice.ParseIndex(chi.URLParam(r, "diceIndex"))
	if err != nil {
		writeError(w, err)
		return
	}
	g, err := s.svc.Toggle(r.Context(), id, i)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, newDieView(int(i), g.Dice[i]))
}

func (s *Server) handleScoreOptions(w http.ResponseWriter, r *http.Request) {
	id, ok := gameID(w, r)
	if !ok {
		return
	}
	opts, err := s.svc.Options(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, newOptionViews(opts))
}

func (s *Server) handleScore(w http.ResponseWriter, r *http.Request) {
	id, ok := gameID(w, r)
	if !ok {
		return
	}
	c, err := score.ParseCategory(chi.URLParam(r, "scoreType"))
	if err != nil {
		writeError(w, err)
		return
	}
	g, err := s.svc.Score(r.Context(), id, c)
	if err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Hx-Trigger", "score-updated")
	writeJSON(w, http.StatusOK, newGameView(g))
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	id, ok := gameID(w, r)
	if !ok {
		return
	}
	g, err := s.svc.Reset(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Hx-Trigger", "game-reset")
	writeJSON(w, http.StatusOK, newGameView(g))
}

func (s *Server) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	rows, err := s.opts.Leaderboard.Leaderboard(r.Context(), s.opts.LeaderboardSize)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, newLeaderboard(rows))
}

// ------------------------------- small util --------------------------------

// gameID reads the Game-Uuid header, answering 400 when it is malformed.
func gameID(w http.ResponseWriter, r *http.Request) (game.ID, bool) {
	id, err := game.ParseID(r.Header.Get(GameIDHeader))
	if err != nil {
		writeError(w, err)
		return game.ID{}, false
	}
	return id, true
}

// statusFor maps domain and storage errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, game.ErrInvalidGameID),
		errors.Is(err, dice.ErrInvalidDiceIndex),
		errors.Is(err, score.ErrInvalidCategory),
		errors.Is(err, score.ErrCategoryAlreadySet),
		errors.Is(err, game.ErrDiceNotThrown),
		errors.Is(err, game.ErrGameOver),
		errors.Is(err, game.ErrRoundLimitExceeded):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func writeError(w http.ResponseWriter, err error) {
	status := statusFor(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		log.Error().Err(err).Msg("request failed")
		msg = "internal"
	} else {
		log.Debug().Err(err).Int("status", status).Msg("request rejected")
	}
	writeJSON(w, status, map[string]string{"error": msg})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Warn().Err(err).Msg("encode response")
	}
}
