package httpapi

import (
	"fmt"
	"net/http"
)

func (h *Handler) ListGames(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListGames")
	defer span.End()

	week := h.queryWeek(r)
	if week == 0 {
		writeJSON(ctx, w, http.StatusOK, []gameDTO{})
		return
	}

	items, err := h.gameService.ListByWeek(ctx, week)
	if err != nil {
		h.logger.WarnContext(ctx, "list games failed", "week", week, "error", err)
		writeJSON(ctx, w, http.StatusOK, []gameDTO{})
		return
	}

	out := make([]gameDTO, 0, len(items))
	for _, item := range items {
		out = append(out, gameToDTO(item))
	}
	writeJSON(ctx, w, http.StatusOK, out)
}

func (h *Handler) RefreshGames(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RefreshGames")
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

	result, err := h.gameService.RefreshWeek(ctx, week)
	if err != nil {
		h.logger.WarnContext(ctx, "refresh games failed", "week", week, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeJSON(ctx, w, http.StatusOK, refreshGamesDTO{
		Success:      true,
		Message:      fmt.Sprintf("Refreshed odds for %d games in Week %d", result.UpdatedCount, result.Week),
		UpdatedCount: result.UpdatedCount,
	})
}
