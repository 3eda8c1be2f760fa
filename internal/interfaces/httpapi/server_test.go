package httpapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	sonic "github.com/bytedance/sonic"
	"github.com/magentamen/picks/internal/domain/resolution"
	"github.com/magentamen/picks/internal/domain/season"
	"github.com/magentamen/picks/internal/domain/team"
	"github.com/magentamen/picks/internal/infrastructure/repository/memory"
	"github.com/magentamen/picks/internal/infrastructure/snapshot"
	"github.com/magentamen/picks/internal/platform/logging"
	"github.com/magentamen/picks/internal/usecase"
)

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	calendar := season.Default()
	logger := logging.NewNop()

	games := memory.NewGameRepository()
	gameResults := memory.NewGameResultRepository()
	picks := memory.NewPickRepository()
	participants := memory.NewParticipantRepository()
	results := memory.NewResultRepository()
	locks := memory.NewWeekLockRepository()

	gameService := usecase.NewGameService(games, nil, calendar, logger)
	pickService := usecase.NewPickService(picks, participants, locks, nil, calendar, logger)
	resultService := usecase.NewResultService(
		games, gameResults, picks, participants, results, snapshot.NewMemoryStore(), nil,
		usecase.ResultServiceConfig{Calendar: calendar},
		logger,
	)
	starterService := usecase.NewStarterService(memory.NewPlayerRepository(memory.SeedPlayers()))
	extractor := resolution.NewExtractor(resolution.DefaultBookmaker, team.NewDirectory(memory.SeedTeams()))
	boardService := usecase.NewBoardService(gameService, pickService, resultService, starterService, extractor, logger)

	handler := NewHandler(
		gameService,
		pickService,
		resultService,
		boardService,
		usecase.NewLeaderboardService(results, calendar),
		starterService,
		usecase.NewLockService(locks, calendar, logger),
		logger,
	)
	return NewRouter(handler, logger, []string{"*"})
}

func doRequest(t *testing.T, router http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req.WithContext(context.Background()))
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, out any) {
	t.Helper()
	if err := sonic.Unmarshal(rec.Body.Bytes(), out); err != nil {
		t.Fatalf("unmarshal response body %q: %v", rec.Body.String(), err)
	}
}

func expectError(t *testing.T, rec *httptest.ResponseRecorder, status int, message string) {
	t.Helper()
	if rec.Code != status {
		t.Fatalf("expected status %d, got %d (%s)", status, rec.Code, rec.Body.String())
	}
	var body map[string]string
	decodeBody(t, rec, &body)
	if body["error"] != message {
		t.Fatalf("expected error %q, got %q", message, body["error"])
	}
}

func TestRouter_Healthz(t *testing.T) {
	t.Parallel()

	rec := doRequest(t, newTestRouter(t), http.MethodGet, "/healthz", "")
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `"ok"`) {
		t.Fatalf("unexpected health response: %d %s", rec.Code, rec.Body.String())
	}
}

func TestRouter_SaveAndListPicks(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t)

	rec := doRequest(t, router, http.MethodPost, "/api/picks", `{"week":"2025-1","player":"JB","category":"Moneyline","value":"Buffalo Bills"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("save pick: %d %s", rec.Code, rec.Body.String())
	}
	var saved map[string]any
	decodeBody(t, rec, &saved)
	if saved["success"] != true {
		t.Fatalf("expected success, got %v", saved)
	}

	rec = doRequest(t, router, http.MethodGet, "/api/picks?week=1", "")
	var sheet map[string]map[string]string
	decodeBody(t, rec, &sheet)
	if sheet["JB"]["Moneyline"] != "Buffalo Bills" {
		t.Fatalf("unexpected picks: %v", sheet)
	}

	rec = doRequest(t, router, http.MethodPost, "/api/picks", `{"week":1,"player":"Zach","category":"Moneyline","value":"Buffalo Bills"}`)
	expectError(t, rec, http.StatusBadRequest, "This pick is already taken by another player")

	rec = doRequest(t, router, http.MethodPost, "/api/picks", `{"week":1,"player":"Zach","category":"Parlay","value":"x"}`)
	expectError(t, rec, http.StatusBadRequest, "Invalid category")

	rec = doRequest(t, router, http.MethodGet, "/api/picks", "")
	expectError(t, rec, http.StatusBadRequest, "Missing week parameter")
}

func TestRouter_RejectsUnknownFields(t *testing.T) {
	t.Parallel()

	rec := doRequest(t, newTestRouter(t), http.MethodPost, "/api/picks", `{"week":1,"player":"JB","category":"Over","value":"x","stake":5}`)
	expectError(t, rec, http.StatusBadRequest, "Invalid JSON payload")
}

func TestRouter_RejectsWeekFromAnotherSeason(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t)

	rec := doRequest(t, router, http.MethodPost, "/api/picks", `{"week":"2024-3","player":"JB","category":"Moneyline","value":"Buffalo Bills"}`)
	expectError(t, rec, http.StatusBadRequest, "Week belongs to another season")

	rec = doRequest(t, router, http.MethodPost, "/api/week/lock", `{"week":"2024-3"}`)
	expectError(t, rec, http.StatusBadRequest, "Week belongs to another season")

	rec = doRequest(t, router, http.MethodGet, "/api/week/lock/3", "")
	if strings.TrimSpace(rec.Body.String()) != `{"locked":false}` {
		t.Fatalf("expected week 3 of the current season to stay unlocked: %s", rec.Body.String())
	}

	rec = doRequest(t, router, http.MethodGet, "/api/picks?week=2024-3", "")
	expectError(t, rec, http.StatusBadRequest, "Missing week parameter")
}

func TestRouter_RejectsWeekOutsideSeason(t *testing.T) {
	t.Parallel()

	rec := doRequest(t, newTestRouter(t), http.MethodPost, "/api/week/lock", `{"week":99}`)
	expectError(t, rec, http.StatusBadRequest, "Week is outside the season")
}

func TestRouter_WeekLockFlow(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t)

	rec := doRequest(t, router, http.MethodGet, "/api/week/lock/3", "")
	if strings.TrimSpace(rec.Body.String()) != `{"locked":false}` {
		t.Fatalf("unexpected unlocked status: %s", rec.Body.String())
	}

	rec = doRequest(t, router, http.MethodPost, "/api/week/lock", `{"week":3}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("lock week: %d %s", rec.Code, rec.Body.String())
	}

	rec = doRequest(t, router, http.MethodGet, "/api/week/lock/3", "")
	var status lockStatusDTO
	decodeBody(t, rec, &status)
	if !status.Locked || status.LockedBy != "Admin" || status.LockedAt == "" {
		t.Fatalf("unexpected locked status: %+v", status)
	}

	rec = doRequest(t, router, http.MethodPost, "/api/week/lock", `{"week":3,"locked_by":"JB"}`)
	expectError(t, rec, http.StatusBadRequest, "Week is already locked")

	rec = doRequest(t, router, http.MethodPost, "/api/picks", `{"week":3,"player":"JB","category":"Moneyline","value":"Detroit Lions"}`)
	expectError(t, rec, http.StatusBadRequest, "Week is locked")

	rec = doRequest(t, router, http.MethodPost, "/api/week/unlock", `{"week":3}`)
	var unlocked statusBody
	decodeBody(t, rec, &unlocked)
	if !unlocked.Success || unlocked.Message != "Week 3 unlocked successfully" {
		t.Fatalf("unexpected unlock response: %+v", unlocked)
	}

	rec = doRequest(t, router, http.MethodPost, "/api/week/unlock", `{"week":3}`)
	expectError(t, rec, http.StatusBadRequest, "Week is not currently locked")

	rec = doRequest(t, router, http.MethodPost, "/api/week/unlock", `{}`)
	expectError(t, rec, http.StatusBadRequest, "Week is required")
}

func TestRouter_GamesDegradeToEmpty(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t)

	for _, path := range []string{"/api/games", "/api/games?week=4", "/api/games?week=abc"} {
		rec := doRequest(t, router, http.MethodGet, path, "")
		if rec.Code != http.StatusOK || strings.TrimSpace(rec.Body.String()) != "[]" {
			t.Fatalf("%s: expected empty list, got %d %s", path, rec.Code, rec.Body.String())
		}
	}

	rec := doRequest(t, router, http.MethodPost, "/api/games/refresh", `{"week":4}`)
	expectError(t, rec, http.StatusBadRequest, "No API key configured")
}

func TestRouter_GameResultsRefreshWithoutProvider(t *testing.T) {
	t.Parallel()

	rec := doRequest(t, newTestRouter(t), http.MethodPost, "/api/game-results/refresh/2", "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	var body statusBody
	decodeBody(t, rec, &body)
	if body.Success || body.Message != "No game results found or API error" {
		t.Fatalf("unexpected body: %+v", body)
	}
}

func TestRouter_ResultsDefaultToPending(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t)
	doRequest(t, router, http.MethodPost, "/api/picks", `{"week":2,"player":"Rory","category":"Touchdown Scorer","value":"Travis Kelce (KC)"}`)

	rec := doRequest(t, router, http.MethodGet, "/api/results?week=2", "")
	var results map[string]map[string]pickOutcomeDTO
	decodeBody(t, rec, &results)
	if got := results["Rory"]["Touchdown Scorer"]; got.Outcome != "pending" || got.Pick != "Travis Kelce (KC)" {
		t.Fatalf("unexpected results: %v", results)
	}

	rec = doRequest(t, router, http.MethodPost, "/api/results", `{"week":2,"player":"Rory","category":"Touchdown Scorer","outcome":"win"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("save result: %d %s", rec.Code, rec.Body.String())
	}

	rec = doRequest(t, router, http.MethodGet, "/api/leaderboard", "")
	var standings []standingDTO
	decodeBody(t, rec, &standings)
	if len(standings) != 1 || standings[0].TotalPoints != 3 || standings[0].Record != "1-0-0" || standings[0].WinPct != 1 {
		t.Fatalf("unexpected leaderboard: %+v", standings)
	}

	rec = doRequest(t, router, http.MethodPost, "/api/results", `{"week":2,"player":"Ghost","category":"Moneyline","outcome":"win"}`)
	expectError(t, rec, http.StatusBadRequest, "Player not found")

	rec = doRequest(t, router, http.MethodPost, "/api/results/calculate", `{"week":2}`)
	var calculated calculateDTO
	decodeBody(t, rec, &calculated)
	if !calculated.Success || calculated.Message != "Updated 0 results for Week 2" {
		t.Fatalf("unexpected calculate response: %+v", calculated)
	}
}

func TestRouter_StartersAndOptions(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t)

	rec := doRequest(t, router, http.MethodGet, "/api/starters?teams=kc,%20KC", "")
	var starters []starterDTO
	decodeBody(t, rec, &starters)
	if len(starters) != 2 || starters[0].Team != "KC" {
		t.Fatalf("unexpected starters: %+v", starters)
	}

	rec = doRequest(t, router, http.MethodGet, "/api/starters", "")
	if strings.TrimSpace(rec.Body.String()) != "[]" {
		t.Fatalf("expected empty starters, got %s", rec.Body.String())
	}

	rec = doRequest(t, router, http.MethodGet, "/api/options?week=5&player=JB", "")
	var options weekOptionsDTO
	decodeBody(t, rec, &options)
	if len(options.Categories) != 6 {
		t.Fatalf("expected 6 categories, got %+v", options)
	}
	last := options.Categories[5]
	if last.Category != "Touchdown Scorer" || !last.Fallback || len(last.Choices) != 3 {
		t.Fatalf("expected fallback touchdown scorers on an empty slate, got %+v", last)
	}
}

func TestRouter_RecoversPanics(t *testing.T) {
	t.Parallel()

	handler := recoverPanic(logging.NewNop(), http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/board?week=1", nil))

	expectError(t, rec, http.StatusInternalServerError, "internal server error")
}
