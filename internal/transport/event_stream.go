package transport

import (
	"net/http"
	"time"

	"github.com/goodnatureofminers/mintwatch-backend/internal/mint/events"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// stream upgrades the request and streams every published event as a JSON
// envelope until the client goes away or the monitor closes its broker.
func (h *APIHandler) stream(w http.ResponseWriter, r *http.Request) {
	started := time.Now()
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already replied with an HTTP error.
		h.metrics.ObserveRequest("events", http.StatusBadRequest, started)
		return
	}
	h.metrics.ObserveRequest("events", http.StatusSwitchingProtocols, started)

	sub := h.monitor.Subscribe()
	h.metrics.StreamClientConnected(1)
	logger := h.logger.With(zap.String("remote", r.RemoteAddr))
	logger.Debug("event stream opened")

	defer func() {
		sub.Close()
		_ = conn.Close()
		h.metrics.StreamClientConnected(-1)
		logger.Debug("event stream closed", zap.Uint64("dropped", sub.Dropped()))
	}()

	gone := make(chan struct{})
	go readPump(conn, gone)

	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-gone:
			return
		case e, ok := <-sub.Events():
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = conn.WriteMessage(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseGoingAway, "monitor closed"))
				return
			}
			if err := conn.WriteJSON(events.Wrap(e)); err != nil {
				logger.Debug("write event", zap.Error(err))
				return
			}
		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// readPump discards client messages so control frames are processed, and
// closes gone once the connection fails.
func readPump(conn *websocket.Conn, gone chan<- struct{}) {
	defer close(gone)
	conn.SetReadLimit(512)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		if _, _, err := conn.NextReader(); err != nil {
			return
		}
	}
}
