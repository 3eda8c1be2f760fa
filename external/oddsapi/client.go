package oddsapi

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/jonboulle/clockwork"
	"github.com/magentamen/picks/internal/domain/game"
	"github.com/magentamen/picks/internal/domain/gameresult"
	"github.com/magentamen/picks/internal/platform/logging"
	"github.com/magentamen/picks/internal/platform/resilience"
	"github.com/magentamen/picks/internal/usecase"
	"github.com/valyala/bytebufferpool"
)

const (
	defaultBaseURL = "https://api.the-odds-api.com/v4"
	defaultSport   = "americanfootball_nfl"
	defaultRegions = "us"
	defaultMarkets = "h2h,spreads,totals"

	providerTimeLayout = "2006-01-02T15:04:05Z"
	maxBodyBytes       = 6 << 20
)

var apiKeyParamRegex = regexp.MustCompile(`apiKey=[^&\s"']+`)
var errOddsTransient = crerr.New("odds provider transient failure")

type ClientConfig struct {
	HTTPClient     *http.Client
	BaseURL        string
	APIKey         string
	Sport          string
	Regions        string
	Markets        string
	Bookmakers     []string
	Timeout        time.Duration
	MaxRetries     int
	RetryBackoff   time.Duration
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
	Clock          clockwork.Clock
}

// Client reads NFL odds and final scores from The Odds API v4.
type Client struct {
	httpClient     *http.Client
	baseURL        string
	apiKey         string
	sport          string
	regions        string
	markets        string
	bookmakers     []string
	retry          resilience.RetryPolicy
	logger         *logging.Logger
	breaker        *resilience.CircuitBreaker
	circuitEnabled bool
	flight         resilience.SingleFlight[[]byte]
}

var _ usecase.OddsProvider = (*Client)(nil)

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	if httpClient.Timeout <= 0 {
		httpClient.Timeout = 20 * time.Second
	}

	backoff := cfg.RetryBackoff
	if backoff < 0 {
		backoff = 0
	}
	breakerCfg := cfg.CircuitBreaker.WithDefaults()

	bookmakers := make([]string, 0, len(cfg.Bookmakers))
	for _, item := range cfg.Bookmakers {
		if key := strings.ToLower(strings.TrimSpace(item)); key != "" {
			bookmakers = append(bookmakers, key)
		}
	}

	return &Client{
		httpClient: httpClient,
		baseURL:    firstNonEmpty(strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/"), defaultBaseURL),
		apiKey:     strings.TrimSpace(cfg.APIKey),
		sport:      firstNonEmpty(strings.TrimSpace(cfg.Sport), defaultSport),
		regions:    firstNonEmpty(strings.TrimSpace(cfg.Regions), defaultRegions),
		markets:    firstNonEmpty(strings.TrimSpace(cfg.Markets), defaultMarkets),
		bookmakers: bookmakers,
		retry: resilience.RetryPolicy{
			Attempts:  max(cfg.MaxRetries, 0) + 1,
			Backoff:   backoff,
			Retryable: isTransient,
			Clock:     cfg.Clock,
		},
		logger:         logger.Named("oddsapi"),
		breaker:        resilience.NewCircuitBreaker(breakerCfg, cfg.Clock),
		circuitEnabled: breakerCfg.Enabled,
	}
}

// FetchOdds returns every upcoming game the provider quotes. Season and
// week are left for the caller to assign.
func (c *Client) FetchOdds(ctx context.Context) ([]game.Game, error) {
	query := url.Values{}
	query.Set("regions", c.regions)
	query.Set("markets", c.markets)
	query.Set("dateFormat", "iso")
	query.Set("oddsFormat", "american")
	if len(c.bookmakers) > 0 {
		query.Set("bookmakers", strings.Join(c.bookmakers, ","))
	}

	var payload []oddsEvent
	if err := c.doJSON(ctx, "/sports/"+c.sport+"/odds", query, &payload); err != nil {
		return nil, fmt.Errorf("fetch odds: %w", err)
	}

	out := make([]game.Game, 0, len(payload))
	for _, item := range payload {
		mapped, ok, quoteErr := item.toGame()
		if !ok {
			c.logger.DebugContext(ctx, "skip odds event without teams", "event_id", item.ID)
			continue
		}
		if quoteErr != nil {
			c.logger.WarnContext(ctx, "drop malformed odds quotes",
				"event_id", item.ID,
				"matchup", mapped.Matchup(),
				"error", quoteErr,
			)
		}
		out = append(out, mapped)
	}
	return out, nil
}

// FetchScores returns the provider's score rows for games that started in
// [from, to]. Incomplete games are included with Completed=false.
func (c *Client) FetchScores(ctx context.Context, from, to time.Time) ([]gameresult.Score, error) {
	query := url.Values{}
	query.Set("dateFormat", "iso")
	if !from.IsZero() {
		query.Set("commenceTimeFrom", from.UTC().Format(providerTimeLayout))
	}
	if !to.IsZero() {
		query.Set("commenceTimeTo", to.UTC().Format(providerTimeLayout))
	}

	var payload []scoreEvent
	if err := c.doJSON(ctx, "/sports/"+c.sport+"/scores", query, &payload); err != nil {
		return nil, fmt.Errorf("fetch scores: %w", err)
	}

	out := make([]gameresult.Score, 0, len(payload))
	for _, item := range payload {
		mapped, err := item.toScore()
		if err != nil {
			c.logger.WarnContext(ctx, "skip malformed score event", "event_id", item.ID, "error", err)
			continue
		}
		out = append(out, mapped)
	}
	return out, nil
}

func (c *Client) doJSON(ctx context.Context, path string, query url.Values, target any) error {
	if c.apiKey == "" {
		return fmt.Errorf("%w: odds provider api key is not configured", usecase.ErrInvalidInput)
	}
	if c.circuitEnabled {
		if err := c.breaker.Allow(); err != nil {
			c.logger.WarnContext(ctx, "odds circuit breaker rejected request", "state", c.breaker.State())
			return fmt.Errorf("%w: odds provider is temporarily unavailable", usecase.ErrDependencyUnavailable)
		}
	}

	key := path + "?" + query.Encode()
	fullURL := c.buildURL(path, query)
	raw, err, shared := c.flight.Do(key, func() ([]byte, error) {
		body, reqErr := c.executeRequest(ctx, fullURL)
		if c.circuitEnabled {
			c.breaker.Record(reqErr, isTransient)
		}
		return body, reqErr
	})
	if err != nil {
		return err
	}
	if shared {
		c.logger.DebugContext(ctx, "odds request shared in-flight result", "path", path)
	}

	if err := sonic.Unmarshal(raw, target); err != nil {
		return fmt.Errorf("decode provider payload: %w", err)
	}
	return nil
}

func (c *Client) buildURL(path string, query url.Values) string {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	values := url.Values{}
	for key, items := range query {
		values[key] = items
	}
	values.Set("apiKey", c.apiKey)

	_, _ = buf.WriteString(c.baseURL)
	_, _ = buf.WriteString(path)
	_ = buf.WriteByte('?')
	_, _ = buf.WriteString(values.Encode())
	return buf.String()
}

func (c *Client) executeRequest(ctx context.Context, fullURL string) ([]byte, error) {
	var body []byte
	err := c.retry.Do(ctx, func(ctx context.Context, attempt int) error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
		if err != nil {
			return fmt.Errorf("build request: %w", err)
		}
		req.Header.Set("accept", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return fmt.Errorf("%w: send request: %s", errOddsTransient, sanitizeSensitiveText(err.Error(), c.apiKey))
		}
		raw, readErr := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
		_ = resp.Body.Close()
		if readErr != nil {
			return fmt.Errorf("%w: read response body: %v", errOddsTransient, readErr)
		}

		if remaining := resp.Header.Get("x-requests-remaining"); remaining != "" {
			c.logger.DebugContext(ctx, "odds quota", "remaining", remaining, "used", resp.Header.Get("x-requests-used"), "attempt", attempt)
		}
		if resp.StatusCode >= 200 && resp.StatusCode < 300 {
			body = raw
			return nil
		}
		if isRetryableStatus(resp.StatusCode) {
			return fmt.Errorf("%w: provider status=%d body=%s", errOddsTransient, resp.StatusCode, abbreviateBody(raw))
		}
		return fmt.Errorf("provider status=%d body=%s", resp.StatusCode, abbreviateBody(raw))
	})
	if err != nil {
		c.logger.WarnContext(ctx, "odds request failed", "url", redactAPIURL(fullURL), "error", err)
		return nil, err
	}
	return body, nil
}

func isTransient(err error) bool {
	return stderrors.Is(err, errOddsTransient)
}

func isRetryableStatus(code int) bool {
	return code == http.StatusTooManyRequests || code >= http.StatusInternalServerError
}

func redactAPIURL(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return sanitizeSensitiveText(rawURL, "")
	}
	query := parsed.Query()
	if query.Has("apiKey") {
		query.Set("apiKey", "REDACTED")
		parsed.RawQuery = query.Encode()
	}
	return parsed.String()
}

func sanitizeSensitiveText(value, apiKey string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return value
	}
	if apiKey != "" {
		value = strings.ReplaceAll(value, apiKey, "REDACTED")
	}
	return apiKeyParamRegex.ReplaceAllString(value, "apiKey=REDACTED")
}

func abbreviateBody(body []byte) string {
	text := strings.TrimSpace(string(body))
	if len(text) <= 240 {
		return text
	}
	return text[:240] + "..."
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if value != "" {
			return value
		}
	}
	return ""
}
