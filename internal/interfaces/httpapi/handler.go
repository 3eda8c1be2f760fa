package httpapi

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	jsoniter "github.com/json-iterator/go"
	"github.com/magentamen/picks/internal/domain/season"
	"github.com/magentamen/picks/internal/platform/logging"
	"github.com/magentamen/picks/internal/usecase"
)

const maxRequestBody = 1 << 20

type Handler struct {
	gameService        *usecase.GameService
	pickService        *usecase.PickService
	resultService      *usecase.ResultService
	boardService       *usecase.BoardService
	leaderboardService *usecase.LeaderboardService
	starterService     *usecase.StarterService
	lockService        *usecase.LockService
	logger             *logging.Logger
	validator          *validator.Validate
}

func NewHandler(
	gameService *usecase.GameService,
	pickService *usecase.PickService,
	resultService *usecase.ResultService,
	boardService *usecase.BoardService,
	leaderboardService *usecase.LeaderboardService,
	starterService *usecase.StarterService,
	lockService *usecase.LockService,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		gameService:        gameService,
		pickService:        pickService,
		resultService:      resultService,
		boardService:       boardService,
		leaderboardService: leaderboardService,
		starterService:     starterService,
		lockService:        lockService,
		logger:             logger.Named("httpapi"),
		validator:          validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeJSON(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

// decodeRequest reads a JSON body strictly and validates it.
func (h *Handler) decodeRequest(ctx context.Context, r *http.Request, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.decodeRequest")
	defer span.End()

	decoder := jsoniter.NewDecoder(io.LimitReader(r.Body, maxRequestBody))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(payload); err != nil {
		return &usecase.UserError{Kind: usecase.ErrInvalidInput, Message: "Invalid JSON payload"}
	}
	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return &usecase.UserError{
			Kind:    usecase.ErrInvalidInput,
			Message: fmt.Sprintf("Invalid request: %v", err),
		}
	}
	return nil
}

// weekValue accepts a bare week number or a season-qualified string such
// as "2025-3". Null and empty decode to zero. The season is checked against
// the calendar by requestWeek.
type weekValue struct {
	season int
	week   int
}

func (w *weekValue) UnmarshalJSON(data []byte) error {
	raw := strings.TrimSpace(string(data))
	if raw == "null" || raw == `""` {
		*w = weekValue{}
		return nil
	}
	seasonYear, week, err := season.ParseSeasonWeek(strings.Trim(raw, `"`))
	if err != nil {
		return err
	}
	*w = weekValue{season: seasonYear, week: week}
	return nil
}

// requestWeek resolves a body week against the active season.
func (h *Handler) requestWeek(value weekValue) (int, error) {
	if err := h.gameService.Calendar().CheckSeason(value.season); err != nil {
		return 0, &usecase.UserError{Kind: usecase.ErrInvalidInput, Message: "Week belongs to another season"}
	}
	return value.week, nil
}

// queryWeek reads ?week=; anything unparsable or from another season is
// zero and left to the use case to reject.
func (h *Handler) queryWeek(r *http.Request) int {
	week, err := h.gameService.Calendar().ParseWeek(r.URL.Query().Get("week"))
	if err != nil {
		return 0
	}
	return week
}

func pathWeek(r *http.Request) int {
	week, err := strconv.Atoi(strings.TrimSpace(r.PathValue("week")))
	if err != nil || week <= 0 {
		return 0
	}
	return week
}
