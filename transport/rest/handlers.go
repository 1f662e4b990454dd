package rest

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rocketscienceinc/tictactoe-arbiter/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-arbiter/internal/entity"
	"github.com/rocketscienceinc/tictactoe-arbiter/internal/usecase"
)

type matchService interface {
	StartMatch(ctx context.Context, players []entity.Player, input usecase.MatchOptionsInput) (*entity.MatchResult, error)
	GetMatch(ctx context.Context, id string) (*entity.MatchResult, error)
	SubmitHumanMove(matchID, playerName string, position int) (*entity.SubmitResult, error)
	PendingHumanMoves() []entity.PendingMove
}

type startMatchRequest struct {
	Players []entity.Player           `json:"players"`
	Options usecase.MatchOptionsInput `json:"options"`
}

type submitMoveRequest struct {
	PlayerName string `json:"playerName"`
	Position   *int   `json:"position"`
}

type errorResponse struct {
	Error string `json:"error"`
}

type Handlers struct {
	logger  *slog.Logger
	matches matchService
}

func NewHandlers(logger *slog.Logger, matches matchService) *Handlers {
	return &Handlers{
		logger:  logger,
		matches: matches,
	}
}

// StartMatch - runs a whole match inside the request and answers with its result.
func (that *Handlers) StartMatch(w http.ResponseWriter, r *http.Request) {
	var req startMatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		that.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "malformed request body"})
		return
	}

	result, err := that.matches.StartMatch(r.Context(), req.Players, req.Options)
	if err != nil {
		that.writeError(w, err)
		return
	}

	that.writeJSON(w, http.StatusOK, result)
}

func (that *Handlers) GetMatch(w http.ResponseWriter, r *http.Request) {
	result, err := that.matches.GetMatch(r.Context(), chi.URLParam(r, "matchID"))
	if err != nil {
		that.writeError(w, err)
		return
	}

	that.writeJSON(w, http.StatusOK, result)
}

func (that *Handlers) SubmitMove(w http.ResponseWriter, r *http.Request) {
	var req submitMoveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Position == nil {
		that.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "position is required"})
		return
	}

	result, err := that.matches.SubmitHumanMove(chi.URLParam(r, "matchID"), req.PlayerName, *req.Position)
	if err != nil {
		that.writeError(w, err)
		return
	}

	that.writeJSON(w, http.StatusOK, result)
}

func (that *Handlers) PendingMoves(w http.ResponseWriter, _ *http.Request) {
	that.writeJSON(w, http.StatusOK, that.matches.PendingHumanMoves())
}

func (that *Handlers) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError

	switch {
	case errors.Is(err, apperror.ErrMatchNotFound):
		status = http.StatusNotFound
	case errors.Is(err, apperror.ErrInvalidPlayers),
		errors.Is(err, apperror.ErrInvalidSize),
		errors.Is(err, apperror.ErrInvalidOptions),
		errors.Is(err, apperror.ErrInvalidMove):
		status = http.StatusBadRequest
	default:
		that.logger.Error("request failed", "error", err)
	}

	that.writeJSON(w, status, errorResponse{Error: err.Error()})
}

func (that *Handlers) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		that.logger.Debug("failed to write response", "error", err)
	}
}
