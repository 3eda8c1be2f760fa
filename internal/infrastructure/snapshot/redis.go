package snapshot

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bytedance/sonic"
	"github.com/magentamen/picks/internal/domain/gameresult"
	"github.com/magentamen/picks/internal/domain/resolution"
	"github.com/magentamen/picks/internal/platform/logging"
	"github.com/redis/go-redis/v9"
)

const DefaultRedisTTL = 7 * 24 * time.Hour

// RedisStore shares snapshots through Redis so several API replicas classify
// against the same results. Redis is the read path; the local MemoryStore
// answers only while Redis is unreachable or has dropped the key.
type RedisStore struct {
	client *redis.Client
	local  *MemoryStore
	ttl    time.Duration
	logger *logging.Logger
}

func NewRedisStore(client *redis.Client, ttl time.Duration, logger *logging.Logger) *RedisStore {
	if ttl <= 0 {
		ttl = DefaultRedisTTL
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &RedisStore{
		client: client,
		local:  NewMemoryStore(),
		ttl:    ttl,
		logger: logger,
	}
}

func (s *RedisStore) Load(ctx context.Context, season, week int) (resolution.Snapshot, bool, error) {
	data, err := s.client.Get(ctx, redisKey(season, week)).Bytes()
	switch {
	case errors.Is(err, redis.Nil):
		return s.local.Load(ctx, season, week)
	case err != nil:
		if snap, ok, _ := s.local.Load(ctx, season, week); ok {
			s.logger.WarnContext(ctx, "redis snapshot read failed, serving local copy", "season", season, "week", week, "error", err)
			return snap, true, nil
		}
		return resolution.Snapshot{}, false, fmt.Errorf("get snapshot from redis: %w", err)
	}

	var payload snapshotPayload
	if err := sonic.Unmarshal(data, &payload); err != nil {
		s.logger.WarnContext(ctx, "drop malformed redis snapshot", "season", season, "week", week, "error", err)
		return s.local.Load(ctx, season, week)
	}

	snap := payload.toSnapshot()
	if err := s.local.Store(ctx, snap); err != nil {
		return resolution.Snapshot{}, false, err
	}
	return snap, true, nil
}

func (s *RedisStore) Store(ctx context.Context, snap resolution.Snapshot) error {
	data, err := sonic.Marshal(payloadFromSnapshot(snap))
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	if err := s.client.Set(ctx, redisKey(snap.Season(), snap.Week()), data, s.ttl).Err(); err != nil {
		s.logger.WarnContext(ctx, "mirror snapshot to redis failed", "season", snap.Season(), "week", snap.Week(), "error", err)
	}
	return s.local.Store(ctx, snap)
}

func redisKey(season, week int) string {
	return fmt.Sprintf("picks:snapshot:%d:%d", season, week)
}

type snapshotPayload struct {
	Season  int             `json:"season"`
	Week    int             `json:"week"`
	TakenAt time.Time       `json:"taken_at"`
	Results []resultPayload `json:"results"`
}

type resultPayload struct {
	AwayTeam        string    `json:"away_team"`
	HomeTeam        string    `json:"home_team"`
	HomeScore       *int      `json:"home_score,omitempty"`
	AwayScore       *int      `json:"away_score,omitempty"`
	Final           bool      `json:"final"`
	Spread          *float64  `json:"spread,omitempty"`
	Total           *float64  `json:"total,omitempty"`
	MoneylineWinner string    `json:"moneyline_winner,omitempty"`
	SpreadWinner    string    `json:"spread_winner,omitempty"`
	MoneylinePush   bool      `json:"moneyline_push,omitempty"`
	SpreadPush      bool      `json:"spread_push,omitempty"`
	TotalResult     string    `json:"total_result,omitempty"`
	LastUpdated     time.Time `json:"last_updated"`
}

func payloadFromSnapshot(snap resolution.Snapshot) snapshotPayload {
	results := snap.Results()
	out := snapshotPayload{
		Season:  snap.Season(),
		Week:    snap.Week(),
		TakenAt: snap.TakenAt(),
		Results: make([]resultPayload, 0, len(results)),
	}
	for _, item := range results {
		out.Results = append(out.Results, resultPayload{
			AwayTeam:        item.AwayTeam,
			HomeTeam:        item.HomeTeam,
			HomeScore:       item.HomeScore,
			AwayScore:       item.AwayScore,
			Final:           item.Final,
			Spread:          item.Spread,
			Total:           item.Total,
			MoneylineWinner: item.MoneylineWinner,
			SpreadWinner:    item.SpreadWinner,
			MoneylinePush:   item.MoneylinePush,
			SpreadPush:      item.SpreadPush,
			TotalResult:     string(item.TotalResult),
			LastUpdated:     item.LastUpdated,
		})
	}
	return out
}

func (p snapshotPayload) toSnapshot() resolution.Snapshot {
	results := make([]gameresult.GameResult, 0, len(p.Results))
	for _, item := range p.Results {
		total, err := gameresult.ParseTotalResult(item.TotalResult)
		if err != nil {
			total = gameresult.TotalNone
		}
		results = append(results, gameresult.GameResult{
			Season:          p.Season,
			Week:            p.Week,
			AwayTeam:        item.AwayTeam,
			HomeTeam:        item.HomeTeam,
			HomeScore:       item.HomeScore,
			AwayScore:       item.AwayScore,
			Final:           item.Final,
			Spread:          item.Spread,
			Total:           item.Total,
			MoneylineWinner: item.MoneylineWinner,
			SpreadWinner:    item.SpreadWinner,
			MoneylinePush:   item.MoneylinePush,
			SpreadPush:      item.SpreadPush,
			TotalResult:     total,
			LastUpdated:     item.LastUpdated,
		})
	}
	return resolution.NewSnapshot(p.Season, p.Week, results, p.TakenAt)
}
