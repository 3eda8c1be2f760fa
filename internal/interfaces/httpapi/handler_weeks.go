package httpapi

import (
	"fmt"
	"net/http"
	"time"
)

func (h *Handler) GetWeekLock(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetWeekLock")
	defer span.End()

	lock, locked, err := h.lockService.Status(ctx, pathWeek(r))
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeJSON(ctx, w, http.StatusOK, lockStatusToDTO(lock, locked))
}

func (h *Handler) LockWeek(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.LockWeek")
	defer span.End()

	var req lockWeekRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	week, err := h.requestWeek(req.Week)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	lock, err := h.lockService.Lock(ctx, week, req.LockedBy)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeJSON(ctx, w, http.StatusOK, lockedDTO{
		Success:  true,
		LockedAt: lock.LockedAt.UTC().Format(time.RFC3339),
	})
}

func (h *Handler) UnlockWeek(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UnlockWeek")
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

	if err := h.lockService.Unlock(ctx, week); err != nil {
		writeError(ctx, w, err)
		return
	}

	writeJSON(ctx, w, http.StatusOK, statusBody{
		Success: true,
		Message: fmt.Sprintf("Week %d unlocked successfully", week),
	})
}
