package cache

import (
	"context"
	"sort"
	"strconv"
	"strings"

	"github.com/magentamen/picks/internal/domain/game"
	"github.com/magentamen/picks/internal/domain/player"
	basecache "github.com/magentamen/picks/internal/platform/cache"
)

// PlayerRepository caches starter lookups per team set.
type PlayerRepository struct {
	next  player.Repository
	cache *basecache.Store[[]player.Player]
}

func NewPlayerRepository(next player.Repository, cache *basecache.Store[[]player.Player]) *PlayerRepository {
	return &PlayerRepository{next: next, cache: cache}
}

func (r *PlayerRepository) ListActiveByTeams(ctx context.Context, teams []string) ([]player.Player, error) {
	normalized := player.NormalizeTeams(teams)
	sort.Strings(normalized)
	key := "starters:" + strings.Join(normalized, ",")

	items, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) ([]player.Player, error) {
		items, err := r.next.ListActiveByTeams(ctx, normalized)
		if err != nil {
			return nil, err
		}
		return append([]player.Player(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}
	return append([]player.Player(nil), items...), nil
}

// GameRepository caches week and season game lists; writes drop every
// cached list of the written seasons.
type GameRepository struct {
	next  game.Repository
	cache *basecache.Store[[]game.Game]
}

func NewGameRepository(next game.Repository, cache *basecache.Store[[]game.Game]) *GameRepository {
	return &GameRepository{next: next, cache: cache}
}

func (r *GameRepository) ListByWeek(ctx context.Context, season, week int) ([]game.Game, error) {
	key := gameSeasonPrefix(season) + "week:" + strconv.Itoa(week)
	items, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) ([]game.Game, error) {
		items, err := r.next.ListByWeek(ctx, season, week)
		if err != nil {
			return nil, err
		}
		return append([]game.Game(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}
	return append([]game.Game(nil), items...), nil
}

func (r *GameRepository) ListBySeason(ctx context.Context, season int) ([]game.Game, error) {
	key := gameSeasonPrefix(season) + "all"
	items, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) ([]game.Game, error) {
		items, err := r.next.ListBySeason(ctx, season)
		if err != nil {
			return nil, err
		}
		return append([]game.Game(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}
	return append([]game.Game(nil), items...), nil
}

func (r *GameRepository) Upsert(ctx context.Context, games []game.Game) error {
	err := r.next.Upsert(ctx, games)

	seasons := make(map[int]struct{}, 1)
	for _, g := range games {
		seasons[g.Season] = struct{}{}
	}
	for season := range seasons {
		r.cache.DeletePrefix(ctx, gameSeasonPrefix(season))
	}
	return err
}

func gameSeasonPrefix(season int) string {
	return "games:" + strconv.Itoa(season) + ":"
}
