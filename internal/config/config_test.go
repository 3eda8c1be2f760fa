package config

import (
	"testing"
	"time"

	"github.com/magentamen/picks/internal/platform/logging"
)

func TestLoad_AppEnvValidation(t *testing.T) {
	t.Setenv("APP_ENV", "invalid")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for invalid APP_ENV")
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("ODDS_API_KEY", "")
	t.Setenv("ODDS_API_ENABLED", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.StorageBackend != StoragePostgres {
		t.Fatalf("unexpected storage backend: %s", cfg.StorageBackend)
	}
	if cfg.OddsAPIEnabled {
		t.Fatalf("expected odds provider disabled without a key")
	}
	if cfg.OddsAPIBookmaker != "draftkings" {
		t.Fatalf("unexpected bookmaker: %s", cfg.OddsAPIBookmaker)
	}
	if cfg.ResultsPollEnabled {
		t.Fatalf("expected results poller disabled by default")
	}
	if cfg.LogLevel != logging.LevelInfo {
		t.Fatalf("unexpected log level: %s", cfg.LogLevel)
	}

	calendar := cfg.Calendar()
	if calendar.Season != 2025 || calendar.Weeks != 18 {
		t.Fatalf("unexpected calendar: %+v", calendar)
	}
	if !calendar.Week1Start.Equal(time.Date(2025, 9, 4, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected week 1 start: %s", calendar.Week1Start)
	}
}

func TestLoad_OddsAPIKeyEnablesProvider(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("ODDS_API_KEY", "key-123")
	t.Setenv("ODDS_API_BOOKMAKER", " FanDuel ")
	t.Setenv("ODDS_API_CIRCUIT_FAILURE_COUNT", "3")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if !cfg.OddsAPIEnabled || cfg.OddsAPIKey != "key-123" {
		t.Fatalf("expected odds provider enabled with key")
	}
	if cfg.OddsAPIBookmaker != "fanduel" {
		t.Fatalf("unexpected bookmaker: %q", cfg.OddsAPIBookmaker)
	}
	breaker := cfg.OddsAPICircuitBreaker()
	if !breaker.Enabled || breaker.FailureThreshold != 3 {
		t.Fatalf("unexpected breaker config: %+v", breaker)
	}
}

func TestLoad_OddsAPIRequiresKeyWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("ODDS_API_ENABLED", "true")
	t.Setenv("ODDS_API_KEY", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when ODDS_API_ENABLED=true without ODDS_API_KEY")
	}
}

func TestLoad_ResultsPollRequiresProvider(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("ODDS_API_KEY", "")
	t.Setenv("RESULTS_POLL_ENABLED", "true")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when polling without an odds provider")
	}
}

func TestLoad_StorageBackendValidation(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("STORAGE_BACKEND", "sqlite")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for unknown STORAGE_BACKEND")
	}

	t.Setenv("STORAGE_BACKEND", "Memory")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.StorageBackend != StorageMemory {
		t.Fatalf("unexpected storage backend: %s", cfg.StorageBackend)
	}
}

func TestLoad_SeasonCalendar(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("SEASON", "2026")
	t.Setenv("SEASON_WEEK1_START", "2026-09-10")
	t.Setenv("SEASON_WEEKS", "17")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	calendar := cfg.Calendar()
	if calendar.Season != 2026 || calendar.Weeks != 17 {
		t.Fatalf("unexpected calendar: %+v", calendar)
	}
	if !calendar.Week1Start.Equal(time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected week 1 start: %s", calendar.Week1Start)
	}

	t.Setenv("SEASON_WEEK1_START", "next thursday")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for malformed SEASON_WEEK1_START")
	}

	t.Setenv("SEASON_WEEK1_START", "2026-09-10")
	t.Setenv("SEASON_WEEKS", "0")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for SEASON_WEEKS=0")
	}
}

func TestLoad_PoolPlayersAndCORS(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("POOL_PLAYERS", "JB, Zach,,Rory ")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://picks.example.com, http://localhost:5173")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if len(cfg.PoolPlayers) != 3 || cfg.PoolPlayers[1] != "Zach" || cfg.PoolPlayers[2] != "Rory" {
		t.Fatalf("unexpected pool players: %#v", cfg.PoolPlayers)
	}
	if len(cfg.CORSAllowedOrigins) != 2 || cfg.CORSAllowedOrigins[1] != "http://localhost:5173" {
		t.Fatalf("unexpected cors origins: %#v", cfg.CORSAllowedOrigins)
	}
}

func TestLoad_UptraceRequiresDSNWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "true")
	t.Setenv("UPTRACE_DSN", "")
	t.Setenv("OTEL_EXPORTER_OTLP_HEADERS", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when UPTRACE_ENABLED=true without UPTRACE_DSN")
	}
}

func TestLoad_UptraceDSNFromOTLPHeaders(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "true")
	t.Setenv("UPTRACE_DSN", "")
	t.Setenv("OTEL_EXPORTER_OTLP_HEADERS", "foo=bar,uptrace-dsn='https://token@api.uptrace.dev?grpc=4317'")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.UptraceDSN != "https://token@api.uptrace.dev?grpc=4317" {
		t.Fatalf("unexpected dsn: %q", cfg.UptraceDSN)
	}
}

func TestLoad_BetterStackConfigParsing(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("BETTERSTACK_ENABLED", "true")
	t.Setenv("BETTERSTACK_ENDPOINT", "s1765114.eu-fsn-3.betterstackdata.com")
	t.Setenv("BETTERSTACK_TOKEN", "token-123")
	t.Setenv("BETTERSTACK_TIMEOUT", "4s")
	t.Setenv("BETTERSTACK_MIN_LEVEL", "warn")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if !cfg.BetterStackEnabled || cfg.BetterStackToken != "token-123" {
		t.Fatalf("unexpected betterstack config: %+v", cfg)
	}
	if cfg.BetterStackTimeout != 4*time.Second {
		t.Fatalf("unexpected BetterStackTimeout: %s", cfg.BetterStackTimeout)
	}
	if cfg.BetterStackMinLevel != logging.LevelWarn {
		t.Fatalf("unexpected BetterStackMinLevel: %s", cfg.BetterStackMinLevel)
	}

	t.Setenv("BETTERSTACK_ENDPOINT", "")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error when BETTERSTACK_ENABLED=true without BETTERSTACK_ENDPOINT")
	}
}

func TestLoad_PyroscopeAppNameDefaultsToServiceName(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("PYROSCOPE_ENABLED", "true")
	t.Setenv("PYROSCOPE_SERVER_ADDRESS", "http://pyroscope:4040")
	t.Setenv("APP_SERVICE_NAME", "picks-api-stage")
	t.Setenv("PYROSCOPE_APP_NAME", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.PyroscopeAppName != "picks-api-stage" {
		t.Fatalf("unexpected pyroscope app name: %q", cfg.PyroscopeAppName)
	}
}

func TestLoad_InvalidDurations(t *testing.T) {
	for _, key := range []string{"APP_READ_TIMEOUT", "CACHE_TTL", "ODDS_API_TIMEOUT", "RESULTS_POLL_INTERVAL"} {
		t.Run(key, func(t *testing.T) {
			t.Setenv("APP_ENV", EnvDev)
			t.Setenv(key, "soon")
			if _, err := Load(); err == nil {
				t.Fatalf("expected error for %s=soon", key)
			}
		})
	}
}

func TestLoad_InvalidCircuitBreakerSettings(t *testing.T) {
	cases := map[string]string{
		"ODDS_API_CIRCUIT_FAILURE_COUNT":     "0",
		"ODDS_API_CIRCUIT_OPEN_TIMEOUT":      "0s",
		"ODDS_API_CIRCUIT_HALF_OPEN_MAX_REQ": "-1",
	}
	for key, value := range cases {
		t.Run(key, func(t *testing.T) {
			t.Setenv("APP_ENV", EnvDev)
			t.Setenv(key, value)
			if _, err := Load(); err == nil {
				t.Fatalf("expected error for %s=%s", key, value)
			}
		})
	}
}
