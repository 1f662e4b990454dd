package bot

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/rocketscienceinc/tictactoe-arbiter/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-arbiter/internal/entity"
	"github.com/rocketscienceinc/tictactoe-arbiter/internal/tictactoe"
)

const (
	DefaultMovePath = "/move"

	maxResponseBytes = 1 << 16
)

// MoveRequest is the body posted to a bot for every turn.
type MoveRequest struct {
	Board      entity.Board `json:"board"`
	Player     int          `json:"player"`
	BoardSize  int          `json:"boardSize"`
	ValidMoves []int        `json:"validMoves"`
}

type MoveResponse struct {
	Move *int `json:"move"`
}

// Client asks remote bots for moves. It never retries.
type Client struct {
	logger     *slog.Logger
	httpClient *http.Client
	movePath   string
}

func NewClient(logger *slog.Logger, httpClient *http.Client, movePath string) *Client {
	if httpClient == nil {
		httpClient = &http.Client{}
	}

	if movePath == "" {
		movePath = DefaultMovePath
	}

	return &Client{
		logger:     logger,
		httpClient: httpClient,
		movePath:   movePath,
	}
}

// RequestMove - issues exactly one bounded request to the player's bot.
// Timeouts, non-2xx answers and malformed payloads all wrap apperror.ErrTransport.
func (that *Client) RequestMove(ctx context.Context, player entity.Player, board entity.Board, marker int, timeout time.Duration) (int, error) {
	log := that.logger.With("method", "RequestMove", "player", player.Name)

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	body, err := json.Marshal(MoveRequest{
		Board:      board,
		Player:     marker,
		BoardSize:  tictactoe.SizeOf(board),
		ValidMoves: tictactoe.ValidMoves(board),
	})
	if err != nil {
		return 0, fmt.Errorf("%w: failed to marshal move request: %v", apperror.ErrTransport, err) //nolint: errorlint // single wrap target
	}

	endpoint := that.endpoint(player)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return 0, fmt.Errorf("%w: failed to build request for %s: %v", apperror.ErrTransport, endpoint, err) //nolint: errorlint // single wrap target
	}
	req.Header.Set("Content-Type", "application/json")

	started := time.Now()

	resp, err := that.httpClient.Do(req)
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return 0, fmt.Errorf("%w: timeout after %dms", apperror.ErrTransport, timeout.Milliseconds())
		}
		return 0, fmt.Errorf("%w: %v", apperror.ErrTransport, err) //nolint: errorlint // single wrap target
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return 0, fmt.Errorf("%w: bot responded with status %d", apperror.ErrTransport, resp.StatusCode)
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return 0, fmt.Errorf("%w: timeout after %dms", apperror.ErrTransport, timeout.Milliseconds())
		}
		return 0, fmt.Errorf("%w: failed to read response: %v", apperror.ErrTransport, err) //nolint: errorlint // single wrap target
	}

	var payload MoveResponse
	if err = json.Unmarshal(raw, &payload); err != nil || payload.Move == nil {
		return 0, fmt.Errorf("%w: malformed response %q", apperror.ErrTransport, truncate(string(raw), 120))
	}

	log.Debug("bot answered", "move", *payload.Move, "elapsed", time.Since(started))

	return *payload.Move, nil
}

func (that *Client) endpoint(player entity.Player) string {
	return strings.TrimRight(player.URL, "/") + that.movePath
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}

	return s[:n]
}
