package oddsapi

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/magentamen/picks/internal/domain/game"
	"github.com/magentamen/picks/internal/platform/resilience"
	"github.com/magentamen/picks/internal/usecase"
)

const testAPIKey = "secret-key-123"

func newTestClient(t *testing.T, server *httptest.Server, retries int, breaker resilience.CircuitBreakerConfig) *Client {
	t.Helper()
	return NewClient(ClientConfig{
		HTTPClient:     server.Client(),
		BaseURL:        server.URL + "/v4",
		APIKey:         testAPIKey,
		MaxRetries:     retries,
		CircuitBreaker: breaker,
		Clock:          clockwork.NewFakeClock(),
	})
}

func TestFetchOdds_DecodesEventsAndSendsQuery(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v4/sports/americanfootball_nfl/odds" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		query := r.URL.Query()
		if query.Get("apiKey") != testAPIKey || query.Get("markets") != "h2h,spreads,totals" ||
			query.Get("regions") != "us" || query.Get("oddsFormat") != "american" {
			t.Errorf("unexpected query: %s", r.URL.RawQuery)
		}
		w.Header().Set("x-requests-remaining", "497")
		_, _ = w.Write([]byte(`[
			{"id":"e1","sport_key":"americanfootball_nfl","commence_time":"2025-09-05T00:20:00Z",
			 "home_team":"Philadelphia Eagles","away_team":"Dallas Cowboys",
			 "bookmakers":[{"key":"draftkings","title":"DraftKings","markets":[
				{"key":"h2h","outcomes":[{"name":"Philadelphia Eagles","price":-380},{"name":"Dallas Cowboys","price":300}]},
				{"key":"spreads","outcomes":[{"name":"Philadelphia Eagles","price":-110,"point":-7.5},{"name":"Dallas Cowboys","price":-110,"point":7.5}]}
			 ]}]},
			{"id":"e2","commence_time":"2025-09-06T00:00:00Z","home_team":"","away_team":"Kansas City Chiefs","bookmakers":[]}
		]`))
	}))
	defer server.Close()

	games, err := newTestClient(t, server, 0, resilience.CircuitBreakerConfig{}).FetchOdds(context.Background())
	if err != nil {
		t.Fatalf("FetchOdds: %v", err)
	}
	if len(games) != 1 {
		t.Fatalf("expected one game with both teams, got %d", len(games))
	}

	got := games[0]
	if got.Matchup() != "Dallas Cowboys @ Philadelphia Eagles" {
		t.Fatalf("unexpected matchup: %s", got.Matchup())
	}
	if !got.CommenceTime.Equal(time.Date(2025, 9, 5, 0, 20, 0, 0, time.UTC)) {
		t.Fatalf("unexpected commence time: %s", got.CommenceTime)
	}
	quote, ok := got.Quote("draftkings")
	if !ok {
		t.Fatalf("expected draftkings quote")
	}
	market, ok := quote.Market(game.MarketMoneyline)
	if !ok || len(market.Outcomes) != 2 || market.Outcomes[0].Price != -380 {
		t.Fatalf("unexpected h2h market: %+v", market)
	}
}

func TestFetchScores_ParsesStringScores(t *testing.T) {
	t.Parallel()

	from := time.Date(2025, 9, 4, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 9, 10, 23, 59, 59, 0, time.UTC)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v4/sports/americanfootball_nfl/scores" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("commenceTimeFrom"); got != "2025-09-04T00:00:00Z" {
			t.Errorf("unexpected commenceTimeFrom: %s", got)
		}
		if got := r.URL.Query().Get("commenceTimeTo"); got != "2025-09-10T23:59:59Z" {
			t.Errorf("unexpected commenceTimeTo: %s", got)
		}
		_, _ = w.Write([]byte(`[
			{"id":"e1","commence_time":"2025-09-05T00:20:00Z","completed":true,
			 "home_team":"Philadelphia Eagles","away_team":"Dallas Cowboys",
			 "scores":[{"name":"Philadelphia Eagles","score":"24"},{"name":"Dallas Cowboys","score":"20"}]},
			{"id":"e2","commence_time":"2025-09-08T00:20:00Z","completed":false,
			 "home_team":"Los Angeles Chargers","away_team":"Kansas City Chiefs","scores":null},
			{"id":"e3","commence_time":"2025-09-08T00:20:00Z","completed":true,
			 "home_team":"Buffalo Bills","away_team":"Baltimore Ravens",
			 "scores":[{"name":"Buffalo Bills","score":"forty"}]}
		]`))
	}))
	defer server.Close()

	scores, err := newTestClient(t, server, 0, resilience.CircuitBreakerConfig{}).FetchScores(context.Background(), from, to)
	if err != nil {
		t.Fatalf("FetchScores: %v", err)
	}
	if len(scores) != 2 {
		t.Fatalf("expected malformed row to be skipped, got %d rows", len(scores))
	}

	final := scores[0]
	if !final.Completed || final.HomeScore == nil || *final.HomeScore != 24 || final.AwayScore == nil || *final.AwayScore != 20 {
		t.Fatalf("unexpected final score: %+v", final)
	}
	if scores[1].Completed || scores[1].HomeScore != nil || scores[1].AwayScore != nil {
		t.Fatalf("expected pending game without scores, got %+v", scores[1])
	}
}

func TestFetchOdds_RetriesTransientStatus(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte(`{"message":"busy"}`))
			return
		}
		_, _ = w.Write([]byte(`[]`))
	}))
	defer server.Close()

	games, err := newTestClient(t, server, 2, resilience.CircuitBreakerConfig{}).FetchOdds(context.Background())
	if err != nil {
		t.Fatalf("FetchOdds: %v", err)
	}
	if len(games) != 0 {
		t.Fatalf("expected no games, got %d", len(games))
	}
	if got := calls.Load(); got != 2 {
		t.Fatalf("expected 2 calls, got %d", got)
	}
}

func TestFetchOdds_ClientErrorIsNotRetriedAndRedactsKey(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"message":"API key is not valid"}`))
	}))
	defer server.Close()

	client := newTestClient(t, server, 3, resilience.CircuitBreakerConfig{Enabled: true, FailureThreshold: 1})
	_, err := client.FetchOdds(context.Background())
	if err == nil {
		t.Fatalf("expected error")
	}
	if strings.Contains(err.Error(), testAPIKey) {
		t.Fatalf("error leaks api key: %v", err)
	}
	if !strings.Contains(err.Error(), "status=401") {
		t.Fatalf("expected status in error, got %v", err)
	}
	if got := calls.Load(); got != 1 {
		t.Fatalf("expected a single call, got %d", got)
	}
	if state := client.breaker.State(); state != resilience.CircuitStateClosed {
		t.Fatalf("expected breaker to stay closed on client error, got %s", state)
	}
}

func TestFetchOdds_OpenBreakerRejects(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client := newTestClient(t, server, 0, resilience.CircuitBreakerConfig{Enabled: true, FailureThreshold: 1, OpenTimeout: time.Minute})
	if _, err := client.FetchOdds(context.Background()); err == nil {
		t.Fatalf("expected first call to fail")
	}

	_, err := client.FetchOdds(context.Background())
	if !errors.Is(err, usecase.ErrDependencyUnavailable) {
		t.Fatalf("expected dependency unavailable, got %v", err)
	}
	if got := calls.Load(); got != 1 {
		t.Fatalf("expected open breaker to skip the request, got %d calls", got)
	}
}

func TestFetchOdds_RequiresAPIKey(t *testing.T) {
	t.Parallel()

	client := NewClient(ClientConfig{})
	_, err := client.FetchOdds(context.Background())
	if !errors.Is(err, usecase.ErrInvalidInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}
}

func TestRedactAPIURL(t *testing.T) {
	t.Parallel()

	got := redactAPIURL("https://api.the-odds-api.com/v4/sports/x/odds?apiKey=abc&regions=us")
	if strings.Contains(got, "abc") || !strings.Contains(got, "apiKey=REDACTED") {
		t.Fatalf("unexpected redacted url: %s", got)
	}
	if got := sanitizeSensitiveText(`Get "https://h/odds?apiKey=abc": EOF`, ""); strings.Contains(got, "abc") {
		t.Fatalf("unexpected sanitized text: %s", got)
	}
}

func TestFetchOdds_MalformedQuotesOnlyEmptyThatGame(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`[
			{"id":"e1","commence_time":"2025-09-05T00:20:00Z",
			 "home_team":"Philadelphia Eagles","away_team":"Dallas Cowboys",
			 "bookmakers":[{"key":"draftkings","title":"DraftKings","markets":[
				{"key":"h2h","outcomes":[{"name":"Philadelphia Eagles","price":-380},{"name":"Dallas Cowboys","price":300}]}
			 ]}]},
			{"id":"e2","commence_time":"2025-09-08T00:20:00Z",
			 "home_team":"Buffalo Bills","away_team":"Baltimore Ravens",
			 "bookmakers":[{"key":"draftkings","markets":[{"key":"h2h","outcomes":[{"name":"Buffalo Bills","price":"N/A"}]}]}]},
			{"id":"e3","commence_time":"2025-09-08T17:00:00Z",
			 "home_team":"New York Jets","away_team":"Pittsburgh Steelers","bookmakers":{"other":[]}}
		]`))
	}))
	defer server.Close()

	games, err := newTestClient(t, server, 0, resilience.CircuitBreakerConfig{}).FetchOdds(context.Background())
	if err != nil {
		t.Fatalf("FetchOdds: %v", err)
	}
	if len(games) != 3 {
		t.Fatalf("expected every game to survive, got %d", len(games))
	}
	if _, ok := games[0].Quote("draftkings"); !ok {
		t.Fatalf("expected the valid game to keep its quote")
	}
	for _, g := range games[1:] {
		if g.Bookmakers == nil || len(g.Bookmakers) != 0 {
			t.Fatalf("expected %s to keep no quotes, got %+v", g.Matchup(), g.Bookmakers)
		}
	}
}
