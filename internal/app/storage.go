package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/magentamen/picks/internal/config"
	"github.com/magentamen/picks/internal/domain/game"
	"github.com/magentamen/picks/internal/domain/gameresult"
	"github.com/magentamen/picks/internal/domain/participant"
	"github.com/magentamen/picks/internal/domain/pick"
	"github.com/magentamen/picks/internal/domain/player"
	"github.com/magentamen/picks/internal/domain/scoring"
	"github.com/magentamen/picks/internal/domain/weeklock"
	"github.com/magentamen/picks/internal/infrastructure/repository/cache"
	"github.com/magentamen/picks/internal/infrastructure/repository/memory"
	"github.com/magentamen/picks/internal/infrastructure/repository/postgres"
	"github.com/magentamen/picks/internal/infrastructure/snapshot"
	basecache "github.com/magentamen/picks/internal/platform/cache"
	"github.com/magentamen/picks/internal/platform/logging"
	"github.com/magentamen/picks/internal/usecase"
	"github.com/redis/go-redis/v9"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"
)

type repositories struct {
	games        game.Repository
	gameResults  gameresult.Repository
	picks        pick.Repository
	participants participant.Repository
	results      scoring.Repository
	locks        weeklock.Repository
	players      player.Repository
	snapshots    usecase.SnapshotStore
	closers      []func() error
}

func (r *repositories) close() error {
	var firstErr error
	for i := len(r.closers) - 1; i >= 0; i-- {
		if err := r.closers[i](); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

func buildRepositories(ctx context.Context, cfg config.Config, logger *logging.Logger) (*repositories, error) {
	var repos *repositories
	switch cfg.StorageBackend {
	case config.StorageMemory:
		repos = memoryRepositories()
	case config.StoragePostgres:
		built, err := postgresRepositories(ctx, cfg, logger)
		if err != nil {
			return nil, err
		}
		repos = built
	default:
		return nil, fmt.Errorf("unsupported storage backend %q", cfg.StorageBackend)
	}

	if cfg.CacheEnabled {
		repos.games = cache.NewGameRepository(repos.games, basecache.NewStore[[]game.Game](cfg.CacheTTL, nil))
		repos.players = cache.NewPlayerRepository(repos.players, basecache.NewStore[[]player.Player](cfg.CacheTTL, nil))
	}

	snapshots, closeSnapshots := snapshotStore(ctx, cfg, logger)
	repos.snapshots = snapshots
	if closeSnapshots != nil {
		repos.closers = append(repos.closers, closeSnapshots)
	}

	pool := cfg.PoolPlayers
	if len(pool) == 0 && cfg.StorageBackend == config.StorageMemory {
		pool = memory.SeedParticipants()
	}
	if err := ensureParticipants(ctx, repos.participants, pool); err != nil {
		_ = repos.close()
		return nil, err
	}

	logger.Info("storage ready",
		"backend", cfg.StorageBackend,
		"cache_enabled", cfg.CacheEnabled,
		"redis_snapshots", cfg.RedisURL != "",
		"pool_players", len(pool),
	)
	return repos, nil
}

func memoryRepositories() *repositories {
	return &repositories{
		games:        memory.NewGameRepository(),
		gameResults:  memory.NewGameResultRepository(),
		picks:        memory.NewPickRepository(),
		participants: memory.NewParticipantRepository(),
		results:      memory.NewResultRepository(),
		locks:        memory.NewWeekLockRepository(),
		players:      memory.NewPlayerRepository(memory.SeedPlayers()),
	}
}

func postgresRepositories(ctx context.Context, cfg config.Config, logger *logging.Logger) (*repositories, error) {
	db, err := openDB(ctx, cfg)
	if err != nil {
		return nil, err
	}

	if cfg.DBBootstrapSeed {
		if err := postgres.BootstrapSeed(ctx, db); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("bootstrap seed: %w", err)
		}
	}

	return &repositories{
		games:        postgres.NewGameRepository(db, logger),
		gameResults:  postgres.NewGameResultRepository(db),
		picks:        postgres.NewPickRepository(db),
		participants: postgres.NewParticipantRepository(db),
		results:      postgres.NewResultRepository(db),
		locks:        postgres.NewWeekLockRepository(db),
		players:      postgres.NewPlayerRepository(db),
		closers:      []func() error{db.Close},
	}, nil
}

func openDB(ctx context.Context, cfg config.Config) (*sqlx.DB, error) {
	dsn := normalizeDBURL(cfg.DBURL, cfg.DBDisablePreparedBinary, cfg.ServiceName)
	db, err := otelsqlx.Open("postgres", dsn,
		otelsql.WithDBSystem("postgresql"),
		otelsql.WithDBName(dbNameFromURL(cfg.DBURL)),
		otelsql.WithQueryFormatter(formatDBQueryForTrace),
	)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(30 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return db, nil
}

// snapshotStore mirrors result snapshots to Redis when REDIS_URL is set and
// reachable. Otherwise snapshots stay process local.
func snapshotStore(ctx context.Context, cfg config.Config, logger *logging.Logger) (usecase.SnapshotStore, func() error) {
	if strings.TrimSpace(cfg.RedisURL) == "" {
		return snapshot.NewMemoryStore(), nil
	}

	opts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		logger.Warn("invalid REDIS_URL, using in-process snapshots", "error", err)
		return snapshot.NewMemoryStore(), nil
	}
	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		logger.Warn("redis unreachable, using in-process snapshots", "addr", opts.Addr, "error", err)
		_ = client.Close()
		return snapshot.NewMemoryStore(), nil
	}
	return snapshot.NewRedisStore(client, cfg.SnapshotTTL, logger.Named("snapshots")), client.Close
}

func ensureParticipants(ctx context.Context, repo participant.Repository, names []string) error {
	now := time.Now().UTC()
	for _, raw := range names {
		name := strings.TrimSpace(raw)
		if name == "" {
			continue
		}
		_, ok, err := repo.GetByName(ctx, name)
		if err != nil {
			return fmt.Errorf("lookup participant %s: %w", name, err)
		}
		if ok {
			continue
		}
		if err := repo.Create(ctx, participant.Participant{ID: uuid.NewString(), Name: name, CreatedAt: now}); err != nil {
			return fmt.Errorf("create participant %s: %w", name, err)
		}
	}
	return nil
}
