package bot

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rocketscienceinc/tictactoe-arbiter/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-arbiter/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient() *Client {
	return NewClient(slog.New(slog.NewTextHandler(io.Discard, nil)), nil, "")
}

func TestClient_RequestMove(t *testing.T) {
	t.Run("Returns the bot's move", func(t *testing.T) {
		// Given: a bot that answers with position 4 and records the request
		var got MoveRequest
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/move", r.URL.Path)
			assert.Equal(t, http.MethodPost, r.Method)
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
			_, _ = w.Write([]byte(`{"move":4}`))
		}))
		defer server.Close()

		player := entity.Player{ID: 2, Name: "beta", URL: server.URL}
		board := entity.Board{1, 0, 0, 0, 0, 0, 0, 0, 0}

		// When: requesting a move
		move, err := newTestClient().RequestMove(context.Background(), player, board, 2, time.Second)

		// Then: the move is returned and the payload carries board and marker
		require.NoError(t, err)
		assert.Equal(t, 4, move)
		assert.Equal(t, board, got.Board)
		assert.Equal(t, 2, got.Player)
		assert.Equal(t, 3, got.BoardSize)
		assert.Equal(t, []int{1, 2, 3, 4, 5, 6, 7, 8}, got.ValidMoves)
	})

	t.Run("Timeout surfaces as transport error", func(t *testing.T) {
		// Given: a bot slower than the timeout
		release := make(chan struct{})
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			select {
			case <-release:
			case <-r.Context().Done():
			}
		}))
		defer server.Close()
		defer close(release)

		player := entity.Player{ID: 1, Name: "slow", URL: server.URL}

		// When: requesting a move with a short timeout
		_, err := newTestClient().RequestMove(context.Background(), player, make(entity.Board, 9), 1, 50*time.Millisecond)

		// Then: a transport error mentioning the timeout is returned
		require.ErrorIs(t, err, apperror.ErrTransport)
		assert.Contains(t, err.Error(), "timeout after 50ms")
	})

	t.Run("Non-success status", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer server.Close()

		player := entity.Player{ID: 1, Name: "broken", URL: server.URL}

		_, err := newTestClient().RequestMove(context.Background(), player, make(entity.Board, 9), 1, time.Second)

		require.ErrorIs(t, err, apperror.ErrTransport)
		assert.Contains(t, err.Error(), "status 500")
	})

	t.Run("Malformed payload", func(t *testing.T) {
		for _, body := range []string{`not json`, `{}`, `{"move":"four"}`} {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte(body))
			}))

			player := entity.Player{ID: 1, Name: "garbled", URL: server.URL}

			_, err := newTestClient().RequestMove(context.Background(), player, make(entity.Board, 9), 1, time.Second)

			require.ErrorIs(t, err, apperror.ErrTransport, body)
			assert.Contains(t, err.Error(), "malformed response")
			server.Close()
		}
	})

	t.Run("Unreachable bot", func(t *testing.T) {
		server := httptest.NewServer(http.NotFoundHandler())
		url := server.URL
		server.Close()

		player := entity.Player{ID: 1, Name: "gone", URL: url}

		_, err := newTestClient().RequestMove(context.Background(), player, make(entity.Board, 9), 1, time.Second)

		require.ErrorIs(t, err, apperror.ErrTransport)
	})
}
