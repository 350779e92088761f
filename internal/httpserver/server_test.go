package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/yams/internal/dice/dicetest"
	"github.com/robalobadob/yams/internal/game"
	"github.com/robalobadob/yams/internal/results"
	"github.com/robalobadob/yams/internal/score"
	"github.com/robalobadob/yams/internal/session"
	"github.com/robalobadob/yams/internal/store"
)

type fakeLeaderboard struct {
	rows  []results.Result
	err   error
	limit int
}

func (f *fakeLeaderboard) Leaderboard(_ context.Context, limit int) ([]results.Result, error) {
	f.limit = limit
	return f.rows, f.err
}

func newTestServer(t *testing.T, opts Options) *Server {
	t.Helper()
	svc := session.New(store.NewMemoryStore(), dicetest.Faces(1, 2, 3, 4, 5))
	return New(svc, opts)
}

func do(t *testing.T, s *Server, method, path, id string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	if id != "" {
		req.Header.Set(GameIDHeader, id)
	}
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func createGame(t *testing.T, s *Server) string {
	t.Helper()
	rec := do(t, s, http.MethodPost, "/games", "")
	require.Equal(t, http.StatusCreated, rec.Code)
	return decode[createRes](t, rec).GameID
}

func TestCreateGame(t *testing.T) {
	s := newTestServer(t, Options{})
	rec := do(t, s, http.MethodPost, "/games", "")
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "application/json; charset=utf-8", rec.Header().Get("Content-Type"))

	res := decode[createRes](t, rec)
	_, err := game.ParseID(res.GameID)
	require.NoError(t, err)

	v := res.View
	assert.Equal(t, res.GameID, v.GameID)
	assert.Zero(t, v.Round)
	assert.Empty(t, v.Dice)
	assert.True(t, v.CanThrow)
	assert.Equal(t, "Throw dice", v.ThrowLabel)
	assert.False(t, v.Over)
	require.Len(t, v.ScoreTable, 7)
	assert.Equal(t, score.Ones, v.ScoreTable[0].First.ScoreType)
	assert.Equal(t, score.ThreeOfAKind, v.ScoreTable[0].Second.ScoreType)
	assert.Equal(t, "Three of a kind", v.ScoreTable[0].Second.Label)
	assert.Equal(t, score.Bonus, v.ScoreTable[6].First.ScoreType)
	assert.Equal(t, "Bonus (if more than 62)", v.ScoreTable[6].First.Label)
	assert.Nil(t, v.ScoreTable[6].First.Score)
}

func TestGameIDHeader(t *testing.T) {
	s := newTestServer(t, Options{})

	tests := []struct {
		name   string
		id     string
		status int
		errMsg string
	}{
		{"missing", "", http.StatusBadRequest, "given uuid is not a valid uuid"},
		{"malformed", "not-a-uuid", http.StatusBadRequest, "given uuid is not a valid uuid"},
		{"unknown", game.NewID().String(), http.StatusNotFound, "game not found"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec := do(t, s, http.MethodGet, "/game", tc.id)
			assert.Equal(t, tc.status, rec.Code)
			assert.Contains(t, decode[map[string]string](t, rec)["error"], tc.errMsg)
		})
	}
}

func TestPlayTurn(t *testing.T) {
	s := newTestServer(t, Options{})
	id := createGame(t, s)

	rec := do(t, s, http.MethodGet, "/score-options", id)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, decode[[]optionView](t, rec))

	rec = do(t, s, http.MethodPut, "/throw-dice", id)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "dice-thrown", rec.Header().Get("Hx-Trigger"))
	v := decode[gameView](t, rec)
	assert.Equal(t, 1, v.Round)
	assert.Equal(t, "Throw not selected dice", v.ThrowLabel)
	require.Len(t, v.Dice, 5)
	for i, want := range []string{"one", "two", "three", "four", "five"} {
		assert.Equal(t, want, v.Dice[i].Class)
		assert.Equal(t, i, v.Dice[i].Index)
	}

	rec = do(t, s, http.MethodPut, "/select/2", id)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, dieView{Index: 2, Number: 3, Class: "three", Selected: true}, decode[dieView](t, rec))

	rec = do(t, s, http.MethodGet, "/score-options", id)
	require.Equal(t, http.StatusOK, rec.Code)
	opts := decode[[]optionView](t, rec)
	assert.Len(t, opts, 13)
	assert.Contains(t, opts, optionView{ScoreType: score.LargeStraight, Label: "Large straight", Score: 40})

	rec = do(t, s, http.MethodPut, "/score/largeStraight", id)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "score-updated", rec.Header().Get("Hx-Trigger"))
	v = decode[gameView](t, rec)
	assert.Zero(t, v.Round)
	assert.Empty(t, v.Dice)
	assert.Equal(t, 40, v.Total)
	require.NotNil(t, v.ScoreTable[4].Second.Score)
	assert.Equal(t, 40, *v.ScoreTable[4].Second.Score)

	rec = do(t, s, http.MethodPost, "/reset", id)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "game-reset", rec.Header().Get("Hx-Trigger"))
	v = decode[gameView](t, rec)
	assert.Equal(t, id, v.GameID)
	assert.Zero(t, v.Total)
}

func TestRuleViolationsAreBadRequests(t *testing.T) {
	s := newTestServer(t, Options{})
	id := createGame(t, s)

	tests := []struct {
		name   string
		method string
		path   string
		errMsg string
	}{
		{"select before throw", http.MethodPut, "/select/0", "dice not thrown"},
		{"score before throw", http.MethodPut, "/score/chance", "dice not thrown"},
		{"dice index out of range", http.MethodPut, "/select/5", "given diceIndex is not a valid one"},
		{"dice index not a number", http.MethodPut, "/select/abc", "given diceIndex is not a valid one"},
		{"bonus is not scorable", http.MethodPut, "/score/bonus", "given scoreType is not a valid one"},
		{"unknown score type", http.MethodPut, "/score/yahtzee", "given scoreType is not a valid one"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec := do(t, s, tc.method, tc.path, id)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Contains(t, decode[map[string]string](t, rec)["error"], tc.errMsg)
		})
	}

	for i := 0; i < int(game.MaxRound); i++ {
		require.Equal(t, http.StatusOK, do(t, s, http.MethodPut, "/throw-dice", id).Code)
	}
	rec := do(t, s, http.MethodGet, "/game", id)
	v := decode[gameView](t, rec)
	assert.False(t, v.CanThrow)
	assert.Empty(t, v.ThrowLabel)

	rec = do(t, s, http.MethodPut, "/throw-dice", id)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decode[map[string]string](t, rec)["error"], "dice cannot be thrown")

	require.Equal(t, http.StatusOK, do(t, s, http.MethodPut, "/score/chance", id).Code)
	require.Equal(t, http.StatusOK, do(t, s, http.MethodPut, "/throw-dice", id).Code)
	rec = do(t, s, http.MethodPut, "/score/chance", id)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decode[map[string]string](t, rec)["error"], "score already set")
}

func TestLeaderboard(t *testing.T) {
	t.Run("disabled without results store", func(t *testing.T) {
		s := newTestServer(t, Options{})
		assert.Equal(t, http.StatusNotFound, do(t, s, http.MethodGet, "/leaderboard", "").Code)
	})

	t.Run("ranks rows", func(t *testing.T) {
		finished := time.Date(2026, 10, 2, 8, 0, 0, 0, time.UTC)
		lb := &fakeLeaderboard{rows: []results.Result{
			{GameID: "a", Total: 300, Bonus: true, FinishedAt: finished},
			{GameID: "b", Total: 120, FinishedAt: finished},
		}}
		s := newTestServer(t, Options{Leaderboard: lb, LeaderboardSize: 5})

		rec := do(t, s, http.MethodGet, "/leaderboard", "")
		require.Equal(t, http.StatusOK, rec.Code)
		rows := decode[[]leaderboardRow](t, rec)
		require.Len(t, rows, 2)
		assert.Equal(t, 1, rows[0].Rank)
		assert.Equal(t, "a", rows[0].GameID)
		assert.True(t, rows[0].Bonus)
		assert.Equal(t, 2, rows[1].Rank)
		assert.Equal(t, 5, lb.limit)
	})

	t.Run("storage failure is internal", func(t *testing.T) {
		s := newTestServer(t, Options{Leaderboard: &fakeLeaderboard{err: errors.New("disk I/O error")}})
		rec := do(t, s, http.MethodGet, "/leaderboard", "")
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Equal(t, "internal", decode[map[string]string](t, rec)["error"])
	})
}

func TestDiagnostics(t *testing.T) {
	reg := prometheus.NewRegistry()
	svc := session.New(store.NewMemoryStore(), dicetest.Faces(6), session.WithMetrics(session.NewMetrics(reg)))
	s := New(svc, Options{Gatherer: reg})

	rec := do(t, s, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"ok":true}`, rec.Body.String())

	createGame(t, s)
	rec = do(t, s, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "yams_games_created_total 1")

	rec = do(t, s, http.MethodGet, "/nope", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "/nope", decode[map[string]string](t, rec)["path"])
}

func TestCORSPreflight(t *testing.T) {
	s := newTestServer(t, Options{ClientOrigin: "http://app.test"})

	req := httptest.NewRequest(http.MethodOptions, "/throw-dice", nil)
	req.Header.Set("Origin", "http://app.test")
	req.Header.Set("Access-Control-Request-Method", http.MethodPut)
	req.Header.Set("Access-Control-Request-Headers", GameIDHeader)
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)

	assert.Equal(t, "http://app.test", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", rec.Header().Get("Access-Control-Allow-Credentials"))
}

func TestStatusFor(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, statusFor(store.ErrNotFound))
	assert.Equal(t, http.StatusBadRequest, statusFor(game.ErrGameOver))
	assert.Equal(t, http.StatusInternalServerError, statusFor(game.ErrInvalidState))
}
