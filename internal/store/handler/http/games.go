package http

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/yanis004/WebServices/internal/store/upstream/freetogame"
	"github.com/yanis004/WebServices/pkg/httputil"
)

// GamesHandler proxies the free-to-play games endpoints.
type GamesHandler struct {
	client *freetogame.Client
	logger *slog.Logger
}

// NewGamesHandler creates a new games proxy handler.
func NewGamesHandler(client *freetogame.Client, logger *slog.Logger) *GamesHandler {
	return &GamesHandler{
		client: client,
		logger: logger,
	}
}

// ListGames handles GET /f2p-games, forwarding the optional platform,
// category and sort-by query parameters upstream.
func (h *GamesHandler) ListGames(w http.ResponseWriter, r *http.Request) {
	body, err := h.client.Games(r.Context(), freetogame.GamesFilter{
		Platform: r.URL.Query().Get("platform"),
		Category: r.URL.Query().Get("category"),
		SortBy:   r.URL.Query().Get("sort-by"),
	})
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}

// GetGame handles GET /f2p-games/{id}. The ID must be numeric.
func (h *GamesHandler) GetGame(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || id < 1 {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
			Error: &httputil.ErrorResponse{Code: "INVALID_PARAMETER", Message: "game id must be a positive integer"},
		})
		return
	}

	body, err := h.client.Game(r.Context(), id)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}
