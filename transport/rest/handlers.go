package rest

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rocketscienceinc/tictactoe-referee/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-referee/internal/entity"
	"github.com/rocketscienceinc/tictactoe-referee/internal/repository"
)

type refereeService interface {
	CreateGame(ctx context.Context, board string) (*entity.Game, error)
	GetGame(ctx context.Context, id string) (*entity.Game, error)
	ListGames(ctx context.Context) ([]*entity.Game, error)
	MakeMove(ctx context.Context, id, board string) (*entity.Game, error)
	DeleteGame(ctx context.Context, id string) (*entity.Game, error)
}

// boardPayload is the body of create and move requests: the full board as a
// flat 9-character string over {X, O, -}.
type boardPayload struct {
	Board string `json:"board"`
}

type errorPayload struct {
	Error string `json:"error"`
}

type handlers struct {
	logger  *slog.Logger
	referee refereeService
}

func newHandlers(logger *slog.Logger, referee refereeService) *handlers {
	return &handlers{
		logger:  logger.With("component", "rest-handlers"),
		referee: referee,
	}
}

func (that *handlers) Ping(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("pong")); err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
}

func (that *handlers) ListGames(w http.ResponseWriter, r *http.Request) {
	games, err := that.referee.ListGames(r.Context())
	if err != nil {
		that.writeError(w, err)
		return
	}

	that.writeJSON(w, http.StatusOK, games)
}

func (that *handlers) CreateGame(w http.ResponseWriter, r *http.Request) {
	var payload boardPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		that.writeJSON(w, http.StatusBadRequest, errorPayload{Error: "malformed request body"})
		return
	}

	game, err := that.referee.CreateGame(r.Context(), payload.Board)
	if err != nil {
		that.writeError(w, err)
		return
	}

	w.Header().Set("Location", "/games/"+game.ID)
	that.writeJSON(w, http.StatusCreated, game)
}

func (that *handlers) GetGame(w http.ResponseWriter, r *http.Request) {
	game, err := that.referee.GetGame(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		that.writeError(w, err)
		return
	}

	that.writeJSON(w, http.StatusOK, game)
}

func (that *handlers) MakeMove(w http.ResponseWriter, r *http.Request) {
	var payload boardPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		that.writeJSON(w, http.StatusBadRequest, errorPayload{Error: "malformed request body"})
		return
	}

	game, err := that.referee.MakeMove(r.Context(), chi.URLParam(r, "id"), payload.Board)
	if err != nil {
		that.writeError(w, err)
		return
	}

	that.writeJSON(w, http.StatusOK, game)
}

func (that *handlers) DeleteGame(w http.ResponseWriter, r *http.Request) {
	game, err := that.referee.DeleteGame(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		that.writeError(w, err)
		return
	}

	that.writeJSON(w, http.StatusOK, game)
}

func (that *handlers) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, repository.ErrGameNotFound):
		that.writeJSON(w, http.StatusNotFound, errorPayload{Error: repository.ErrGameNotFound.Error()})
	case errors.Is(err, apperror.ErrInvalidBoard),
		errors.Is(err, apperror.ErrInvalidStartingBoard),
		errors.Is(err, apperror.ErrMoveRejected):
		that.writeJSON(w, http.StatusBadRequest, errorPayload{Error: err.Error()})
	default:
		that.logger.Error("request failed", "error", err)
		that.writeJSON(w, http.StatusInternalServerError, errorPayload{Error: "internal server error"})
	}
}

func (that *handlers) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		that.logger.Error("failed to encode response", "error", err)
	}
}
