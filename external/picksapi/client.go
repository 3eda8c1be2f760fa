package picksapi

import (
	"context"
	"strconv"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/magentamen/picks/internal/domain/game"
	"github.com/magentamen/picks/internal/platform/logging"
	"github.com/valyala/fasthttp"
)

const defaultTimeout = 15 * time.Second

type ClientConfig struct {
	BaseURL string
	Timeout time.Duration
	Logger  *logging.Logger
}

// Client calls the picks service. Reads never fail: transport errors,
// non-2xx replies and malformed bodies are logged and yield empty values.
// Writes return the server's error message.
type Client struct {
	http    *fasthttp.Client
	baseURL string
	timeout time.Duration
	logger  *logging.Logger
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		http: &fasthttp.Client{
			Name:                "picksctl",
			ReadTimeout:         timeout,
			WriteTimeout:        timeout,
			MaxIdleConnDuration: 30 * time.Second,
		},
		baseURL: strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/"),
		timeout: timeout,
		logger:  logger.Named("picksapi"),
	}
}

func (c *Client) Games(ctx context.Context, week int) []Game {
	out := []Game{}
	c.read(ctx, "/api/games", weekQuery(week), &out)
	for i := range out {
		bookmakers, err := game.DecodeBookmakers(out[i].RawBookmakers)
		if err != nil {
			c.logger.WarnContext(ctx, "drop malformed game quotes", "matchup", out[i].Matchup(), "error", err)
			bookmakers = game.Bookmakers{}
		}
		out[i].Bookmakers = bookmakers
	}
	return nonNil(out)
}

func (c *Client) Picks(ctx context.Context, week int) Sheet {
	out := Sheet{}
	c.read(ctx, "/api/picks", weekQuery(week), &out)
	if out == nil {
		return Sheet{}
	}
	return out
}

func (c *Client) Options(ctx context.Context, week int, player string) WeekOptions {
	query := weekQuery(week)
	if player = strings.TrimSpace(player); player != "" {
		query["player"] = player
	}
	out := WeekOptions{Week: week}
	if !c.read(ctx, "/api/options", query, &out) {
		return WeekOptions{Week: week, Player: player, Categories: []CategoryOptions{}}
	}
	out.Categories = nonNil(out.Categories)
	return out
}

func (c *Client) Board(ctx context.Context, week int) WeekBoard {
	out := WeekBoard{Week: week}
	if !c.read(ctx, "/api/board", weekQuery(week), &out) {
		return WeekBoard{Week: week, Entries: []BoardEntry{}}
	}
	out.Entries = nonNil(out.Entries)
	return out
}

func (c *Client) Results(ctx context.Context, week int) ResultSheet {
	out := ResultSheet{}
	c.read(ctx, "/api/results", weekQuery(week), &out)
	if out == nil {
		return ResultSheet{}
	}
	return out
}

func (c *Client) GameResults(ctx context.Context, week int) []GameResult {
	out := []GameResult{}
	c.read(ctx, "/api/game-results/"+strconv.Itoa(week), nil, &out)
	return nonNil(out)
}

func (c *Client) Leaderboard(ctx context.Context) []Standing {
	out := []Standing{}
	c.read(ctx, "/api/leaderboard", nil, &out)
	return nonNil(out)
}

func (c *Client) Starters(ctx context.Context, teams []string) []Starter {
	out := []Starter{}
	c.read(ctx, "/api/starters", map[string]string{"teams": strings.Join(teams, ",")}, &out)
	return nonNil(out)
}

func (c *Client) LockStatus(ctx context.Context, week int) LockStatus {
	var out LockStatus
	if !c.read(ctx, "/api/week/lock/"+strconv.Itoa(week), nil, &out) {
		return LockStatus{}
	}
	return out
}

func (c *Client) SavePick(ctx context.Context, req PickRequest) error {
	_, err := c.write(ctx, "/api/picks", req)
	return err
}

func (c *Client) SaveOutcome(ctx context.Context, req OutcomeRequest) error {
	_, err := c.write(ctx, "/api/results", req)
	return err
}

func (c *Client) RefreshGames(ctx context.Context, week int) (Status, error) {
	return c.write(ctx, "/api/games/refresh", map[string]int{"week": week})
}

func (c *Client) RefreshResults(ctx context.Context, week int) (Status, error) {
	return c.write(ctx, "/api/game-results/refresh/"+strconv.Itoa(week), nil)
}

func (c *Client) Calculate(ctx context.Context, week int) (Status, error) {
	return c.write(ctx, "/api/results/calculate", map[string]int{"week": week})
}

func (c *Client) LockWeek(ctx context.Context, week int, lockedBy string) (Status, error) {
	return c.write(ctx, "/api/week/lock", map[string]any{"week": week, "locked_by": strings.TrimSpace(lockedBy)})
}

func (c *Client) UnlockWeek(ctx context.Context, week int) (Status, error) {
	return c.write(ctx, "/api/week/unlock", map[string]int{"week": week})
}

// read reports whether target was filled from a 2xx reply.
func (c *Client) read(ctx context.Context, path string, query map[string]string, target any) bool {
	status, body, err := c.do(ctx, fasthttp.MethodGet, path, query, nil)
	if err != nil {
		c.logger.WarnContext(ctx, "picks api read failed", "path", path, "error", err)
		return false
	}
	if status < 200 || status >= 300 {
		c.logger.WarnContext(ctx, "picks api read rejected", "path", path, "status", status, "message", errorMessage(body))
		return false
	}
	if err := sonic.Unmarshal(body, target); err != nil {
		c.logger.WarnContext(ctx, "picks api read returned malformed body", "path", path, "error", err)
		return false
	}
	return true
}

func (c *Client) write(ctx context.Context, path string, payload any) (Status, error) {
	var body []byte
	if payload != nil {
		encoded, err := sonic.Marshal(payload)
		if err != nil {
			return Status{}, crerr.Wrap(err, "encode request")
		}
		body = encoded
	}

	status, raw, err := c.do(ctx, fasthttp.MethodPost, path, nil, body)
	if err != nil {
		return Status{}, err
	}
	if status < 200 || status >= 300 {
		return Status{}, &APIError{StatusCode: status, Message: errorMessage(raw)}
	}

	var out Status
	if len(raw) > 0 {
		if err := sonic.Unmarshal(raw, &out); err != nil {
			return Status{}, crerr.Wrapf(err, "decode %s response", path)
		}
	}
	return out, nil
}

func (c *Client) do(ctx context.Context, method, path string, query map[string]string, body []byte) (int, []byte, error) {
	if c.baseURL == "" {
		return 0, nil, crerr.New("picks api base url is not configured")
	}
	if err := ctx.Err(); err != nil {
		return 0, nil, err
	}

	req := fasthttp.AcquireRequest()
	defer fasthttp.ReleaseRequest(req)
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(c.baseURL + path)
	req.Header.SetMethod(method)
	req.Header.Set("Accept", "application/json")
	args := req.URI().QueryArgs()
	for key, value := range query {
		args.Set(key, value)
	}
	if body != nil {
		req.Header.SetContentType("application/json")
		req.SetBodyRaw(body)
	}

	deadline := time.Now().Add(c.timeout)
	if ctxDeadline, ok := ctx.Deadline(); ok && ctxDeadline.Before(deadline) {
		deadline = ctxDeadline
	}
	if err := c.http.DoDeadline(req, resp, deadline); err != nil {
		return 0, nil, crerr.Wrapf(err, "%s %s", method, path)
	}

	raw := append([]byte(nil), resp.Body()...)
	return resp.StatusCode(), raw, nil
}

func weekQuery(week int) map[string]string {
	query := make(map[string]string, 2)
	if week > 0 {
		query["week"] = strconv.Itoa(week)
	}
	return query
}

// errorMessage extracts the server's {"error"} or {"message"} text.
func errorMessage(body []byte) string {
	var payload struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := sonic.Unmarshal(body, &payload); err == nil {
		if payload.Error != "" {
			return payload.Error
		}
		if payload.Message != "" {
			return payload.Message
		}
	}
	text := strings.TrimSpace(string(body))
	if text == "" {
		return "empty response body"
	}
	if len(text) > 240 {
		text = text[:240] + "..."
	}
	return text
}

func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
