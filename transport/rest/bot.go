package rest

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/rocketscienceinc/tictactoe-arbiter/internal/bot"
	"github.com/rocketscienceinc/tictactoe-arbiter/internal/entity"
)

type moveChooser interface {
	ChooseMove(board entity.Board, marker int) (int, error)
}

// NewBotRouter - serves the bot side of the move contract so a chooser can play in matches.
func NewBotRouter(logger *slog.Logger, chooser moveChooser, movePath string) http.Handler {
	if movePath == "" {
		movePath = bot.DefaultMovePath
	}

	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(requestLogger(logger))

	router.Get("/ping", NewPingHandler().PingHandler)
	router.Post(movePath, func(w http.ResponseWriter, r *http.Request) {
		log := logger.With("method", "ChooseMove")

		var req bot.MoveRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "malformed move request", http.StatusBadRequest)
			return
		}

		move, err := chooser.ChooseMove(req.Board, req.Player)
		if err != nil {
			log.Warn("failed to choose move", "error", err)
			http.Error(w, err.Error(), http.StatusUnprocessableEntity)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err = json.NewEncoder(w).Encode(bot.MoveResponse{Move: &move}); err != nil {
			log.Debug("failed to write move", "error", err)
		}
	})

	return router
}
