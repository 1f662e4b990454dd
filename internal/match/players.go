package match

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/rocketscienceinc/tictactoe-arbiter/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-arbiter/internal/entity"
)

const (
	defaultProtocol = "http"
	defaultHost     = "localhost"
)

// NormalizePlayers - validates the player list and assigns markers 1 and 2 in order.
// A bot needs a url or a port; a human needs the human flag.
func NormalizePlayers(players []entity.Player, conf Config) ([2]entity.Player, error) {
	var out [2]entity.Player

	if len(players) != 2 {
		return out, fmt.Errorf("%w: exactly two players required, got %d", apperror.ErrInvalidPlayers, len(players))
	}

	for i, player := range players {
		player.Name = strings.TrimSpace(player.Name)
		if player.Name == "" {
			return out, fmt.Errorf("%w: player %d has no name", apperror.ErrInvalidPlayers, i+1)
		}

		player.ID = i + 1

		if player.IsHuman {
			player.Type = entity.PlayerTypeHuman
			out[i] = player
			continue
		}

		if player.URL == "" && player.Port == 0 {
			return out, fmt.Errorf("%w: player %q needs a url, a port or the human flag", apperror.ErrInvalidPlayers, player.Name)
		}

		if player.Protocol == "" {
			player.Protocol = orDefault(conf.DefaultProtocol, defaultProtocol)
		}

		if player.URL == "" {
			host := player.Host
			if host == "" {
				host = orDefault(conf.DefaultHost, defaultHost)
			}
			player.URL = player.Protocol + "://" + host + ":" + strconv.Itoa(player.Port)
		}

		player.Type = entity.PlayerTypeBot
		out[i] = player
	}

	return out, nil
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}

	return value
}
