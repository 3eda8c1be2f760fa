package httpapi

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/magentamen/picks/internal/usecase"
)

func (h *Handler) ListGameResults(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListGameResults")
	defer span.End()

	items, err := h.resultService.GameResults(ctx, pathWeek(r))
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	out := make([]gameResultDTO, 0, len(items))
	for _, item := range items {
		out = append(out, gameResultToDTO(item))
	}
	writeJSON(ctx, w, http.StatusOK, out)
}

func (h *Handler) RefreshGameResults(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RefreshGameResults")
	defer span.End()

	week := pathWeek(r)
	summary, err := h.resultService.RefreshGameResults(ctx, week)
	if errors.Is(err, usecase.ErrNoGameResults) {
		writeJSON(ctx, w, http.StatusBadRequest, statusBody{Success: false, Message: usecase.Message(err)})
		return
	}
	if err != nil {
		h.logger.ErrorContext(ctx, "refresh game results failed", "week", week, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeJSON(ctx, w, http.StatusOK, refreshResultsDTO{
		Success:      true,
		Message:      fmt.Sprintf("Refreshed %d game results and updated %d pick outcomes for Week %d", summary.GamesUpdated, summary.PicksUpdated, summary.Week),
		GamesUpdated: summary.GamesUpdated,
		PicksUpdated: summary.PicksUpdated,
	})
}

func (h *Handler) ListResults(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListResults")
	defer span.End()

	results, err := h.resultService.ListByWeek(ctx, h.queryWeek(r))
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	out := make(map[string]map[string]pickOutcomeDTO, len(results))
	for player, row := range results {
		values := make(map[string]pickOutcomeDTO, len(row))
		for category, item := range row {
			values[string(category)] = pickOutcomeDTO{Pick: item.Pick, Outcome: string(item.Outcome)}
		}
		out[player] = values
	}
	writeJSON(ctx, w, http.StatusOK, out)
}

func (h *Handler) SaveResult(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SaveResult")
	defer span.End()

	var req saveResultRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	week, err := h.requestWeek(req.Week)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	if err := h.resultService.SaveManual(ctx, usecase.ManualResultInput{
		Week:     week,
		Player:   req.Player,
		Category: req.Category,
		Outcome:  strings.TrimSpace(req.Outcome),
	}); err != nil {
		writeError(ctx, w, err)
		return
	}

	writeJSON(ctx, w, http.StatusOK, statusBody{Success: true})
}

func (h *Handler) CalculateResults(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CalculateResults")
	defer span.End()

	var req weekRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	week, err := h.requestWeek(req.Week)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	updated, err := h.resultService.Calculate(ctx, week)
	if err != nil {
		h.logger.ErrorContext(ctx, "calculate results failed", "week", week, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeJSON(ctx, w, http.StatusOK, calculateDTO{
		Success:        true,
		ResultsUpdated: updated,
		Message:        fmt.Sprintf("Updated %d results for Week %d", updated, week),
	})
}

func (h *Handler) GetLeaderboard(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetLeaderboard")
	defer span.End()

	standings, err := h.leaderboardService.Standings(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "build leaderboard failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	out := make([]standingDTO, 0, len(standings))
	for _, item := range standings {
		out = append(out, standingToDTO(item))
	}
	writeJSON(ctx, w, http.StatusOK, out)
}

func (h *Handler) ListStarters(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListStarters")
	defer span.End()

	var teams []string
	if raw := strings.TrimSpace(r.URL.Query().Get("teams")); raw != "" {
		teams = strings.Split(raw, ",")
	}

	items, err := h.starterService.ListActiveByTeams(ctx, teams)
	if err != nil {
		h.logger.WarnContext(ctx, "list starters failed", "error", err)
		writeJSON(ctx, w, http.StatusOK, []starterDTO{})
		return
	}

	out := make([]starterDTO, 0, len(items))
	for _, item := range items {
		out = append(out, starterToDTO(item))
	}
	writeJSON(ctx, w, http.StatusOK, out)
}
