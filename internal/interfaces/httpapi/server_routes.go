package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

func registerGameRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /api/games", handler.ListGames)
	mux.HandleFunc("POST /api/games/refresh", handler.RefreshGames)
	mux.HandleFunc("GET /api/game-results/{week}", handler.ListGameResults)
	mux.HandleFunc("POST /api/game-results/refresh/{week}", handler.RefreshGameResults)
	mux.HandleFunc("GET /api/starters", handler.ListStarters)
}

func registerPickRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /api/picks", handler.ListPicks)
	mux.HandleFunc("POST /api/picks", handler.SavePick)
	mux.HandleFunc("GET /api/options", handler.ListOptions)
	mux.HandleFunc("GET /api/board", handler.GetBoard)
}

func registerResultRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /api/results", handler.ListResults)
	mux.HandleFunc("POST /api/results", handler.SaveResult)
	mux.HandleFunc("POST /api/results/calculate", handler.CalculateResults)
	mux.HandleFunc("GET /api/leaderboard", handler.GetLeaderboard)
}

func registerWeekRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /api/week/lock/{week}", handler.GetWeekLock)
	mux.HandleFunc("POST /api/week/lock", handler.LockWeek)
	mux.HandleFunc("POST /api/week/unlock", handler.UnlockWeek)
}
