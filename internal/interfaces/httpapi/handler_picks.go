package httpapi

import (
	"net/http"

	"github.com/magentamen/picks/internal/usecase"
)

func (h *Handler) ListPicks(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListPicks")
	defer span.End()

	sheet, err := h.pickService.ListByWeek(ctx, h.queryWeek(r))
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	out := make(map[string]map[string]string, len(sheet))
	for player, row := range sheet {
		values := make(map[string]string, len(row))
		for category, value := range row {
			values[string(category)] = value
		}
		out[player] = values
	}
	writeJSON(ctx, w, http.StatusOK, out)
}

func (h *Handler) SavePick(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SavePick")
	defer span.End()

	var req savePickRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	week, err := h.requestWeek(req.Week)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	if _, err := h.pickService.Save(ctx, usecase.SavePickInput{
		Week:     week,
		Player:   req.Player,
		Category: req.Category,
		Value:    req.Value,
	}); err != nil {
		h.logger.InfoContext(ctx, "save pick rejected", "week", week, "player", req.Player, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeJSON(ctx, w, http.StatusOK, statusBody{Success: true})
}

func (h *Handler) ListOptions(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListOptions")
	defer span.End()

	options, err := h.boardService.Options(ctx, h.queryWeek(r), r.URL.Query().Get("player"))
	if err != nil {
		h.logger.WarnContext(ctx, "list options failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeJSON(ctx, w, http.StatusOK, weekOptionsToDTO(options))
}

func (h *Handler) GetBoard(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetBoard")
	defer span.End()

	board, err := h.boardService.Board(ctx, h.queryWeek(r))
	if err != nil {
		h.logger.WarnContext(ctx, "build board failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeJSON(ctx, w, http.StatusOK, weekBoardToDTO(board))
}
