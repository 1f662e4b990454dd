// Package websocket streams match events to observers.
package websocket

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/rocketscienceinc/tictactoe-arbiter/internal/entity"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = 30 * time.Second
	subscribeQueue = 64
)

type subscriber interface {
	Subscribe(buffer int) (<-chan entity.Event, func())
}

type Server struct {
	logger   *slog.Logger
	hub      subscriber
	upgrader websocket.Upgrader
}

func New(logger *slog.Logger, hub subscriber) *Server {
	return &Server{
		logger: logger,
		hub:    hub,
		upgrader: websocket.Upgrader{
			// observers are read-only dashboards served from anywhere
			CheckOrigin: func(_ *http.Request) bool { return true },
		},
	}
}

// ServeHTTP - upgrades the connection and relays every event until the peer goes away.
// The optional matchId query parameter limits the stream to one match.
func (that *Server) ServeHTTP(writer http.ResponseWriter, req *http.Request) {
	log := that.logger.With("method", "ServeHTTP", "remote", req.RemoteAddr)

	conn, err := that.upgrader.Upgrade(writer, req, nil)
	if err != nil {
		log.Warn("failed to upgrade connection", "error", err)
		return
	}
	defer conn.Close()

	matchID := req.URL.Query().Get("matchId")
	events, unsubscribe := that.hub.Subscribe(subscribeQueue)
	defer unsubscribe()

	log.Info("observer connected", "matchID", matchID)

	go that.readPump(conn, unsubscribe)

	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case event, ok := <-events:
			if !ok {
				log.Info("observer disconnected")
				return
			}

			if matchID != "" && event.MatchID != matchID {
				continue
			}

			if err = that.write(conn, event); err != nil {
				log.Debug("failed to write event", "error", err)
				return
			}
		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err = conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// readPump - drains control frames; any read error ends the subscription.
func (that *Server) readPump(conn *websocket.Conn, unsubscribe func()) {
	defer unsubscribe()

	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (that *Server) write(conn *websocket.Conn, event entity.Event) error {
	data, err := json.Marshal(event)
	if err != nil {
		return err //nolint: wrapcheck // logged by the caller
	}

	_ = conn.SetWriteDeadline(time.Now().Add(writeWait))

	return conn.WriteMessage(websocket.TextMessage, data) //nolint: wrapcheck // logged by the caller
}
