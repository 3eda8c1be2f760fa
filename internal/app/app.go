package app

import (
	"context"
	"fmt"
	"net/http"

	"github.com/magentamen/picks/external/oddsapi"
	"github.com/magentamen/picks/internal/config"
	"github.com/magentamen/picks/internal/domain/resolution"
	"github.com/magentamen/picks/internal/domain/team"
	"github.com/magentamen/picks/internal/infrastructure/repository/memory"
	"github.com/magentamen/picks/internal/interfaces/httpapi"
	"github.com/magentamen/picks/internal/platform/id"
	"github.com/magentamen/picks/internal/platform/logging"
	"github.com/magentamen/picks/internal/usecase"
)

// App is the assembled API process: HTTP server, optional results poller
// and the storage they share.
type App struct {
	Server *http.Server
	Poller *usecase.ResultsPoller

	repos  *repositories
	logger *logging.Logger
}

func New(ctx context.Context, cfg config.Config, logger *logging.Logger) (*App, error) {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.HTTPAddr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	repos, err := buildRepositories(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	calendar := cfg.Calendar()
	var odds usecase.OddsProvider
	if cfg.OddsAPIEnabled {
		odds = oddsapi.NewClient(oddsapi.ClientConfig{
			BaseURL:        cfg.OddsAPIBaseURL,
			APIKey:         cfg.OddsAPIKey,
			Sport:          cfg.OddsAPISport,
			Regions:        cfg.OddsAPIRegions,
			Timeout:        cfg.OddsAPITimeout,
			MaxRetries:     cfg.OddsAPIMaxRetries,
			RetryBackoff:   cfg.OddsAPIRetryBackoff,
			Logger:         logger,
			CircuitBreaker: cfg.OddsAPICircuitBreaker(),
		})
	} else {
		logger.Info("odds provider disabled", "reason", "ODDS_API_KEY empty")
	}

	gameService := usecase.NewGameService(repos.games, odds, calendar, logger)
	pickService := usecase.NewPickService(repos.picks, repos.participants, repos.locks, id.NewUUIDGenerator(), calendar, logger)
	resultService := usecase.NewResultService(
		repos.games,
		repos.gameResults,
		repos.picks,
		repos.participants,
		repos.results,
		repos.snapshots,
		odds,
		usecase.ResultServiceConfig{
			Calendar:     calendar,
			BookmakerKey: cfg.OddsAPIBookmaker,
			Workers:      cfg.RecalcWorkers,
		},
		logger,
	)
	starterService := usecase.NewStarterService(repos.players)
	extractor := resolution.NewExtractor(cfg.OddsAPIBookmaker, team.NewDirectory(memory.SeedTeams()))
	boardService := usecase.NewBoardService(gameService, pickService, resultService, starterService, extractor, logger)
	leaderboardService := usecase.NewLeaderboardService(repos.results, calendar)
	lockService := usecase.NewLockService(repos.locks, calendar, logger)

	handler := httpapi.NewHandler(
		gameService,
		pickService,
		resultService,
		boardService,
		leaderboardService,
		starterService,
		lockService,
		logger,
	)
	router := httpapi.NewRouter(handler, logger, cfg.CORSAllowedOrigins)

	out := &App{
		Server: &http.Server{
			Addr:         cfg.HTTPAddr,
			Handler:      router,
			ReadTimeout:  cfg.ReadTimeout,
			WriteTimeout: cfg.WriteTimeout,
		},
		repos:  repos,
		logger: logger,
	}
	if cfg.ResultsPollEnabled {
		out.Poller = usecase.NewResultsPoller(resultService, calendar, cfg.ResultsPollInterval, nil, logger)
	}
	return out, nil
}

// StartBackground starts the results poller when enabled.
func (a *App) StartBackground(ctx context.Context) {
	if a.Poller == nil {
		return
	}
	a.Poller.Start(ctx)
}

// Close stops background work, then releases storage.
func (a *App) Close(ctx context.Context) error {
	if a.Poller != nil {
		if err := a.Poller.Stop(ctx); err != nil {
			a.logger.Warn("stop results poller", "error", err)
		}
	}
	if a.repos == nil {
		return nil
	}
	return a.repos.close()
}
