package web

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"gzctime/internal/clock"
	appLog "gzctime/internal/log"
)

const (
	clockWriteWait  = 10 * time.Second
	clockPongWait   = 60 * time.Second
	// Pings must go out before the client's pong deadline passes.
	clockPingPeriod = clockPongWait * 9 / 10
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

// clockMessage is one frame of the live clock feed.
type clockMessage struct {
	Type    string   `json:"type"` // "tick" or "error"
	Time    *timeDTO `json:"time,omitempty"`
	Message string   `json:"message,omitempty"`
}

// handleClock streams the current time over a websocket each time the
// schedule fires. One frame is sent right after the upgrade.
//
// GET /api/clock?cron=@every%201s&zone=utc&format=%25H:%25M:%25S
func (s *Server) handleClock(w http.ResponseWriter, r *http.Request) {
	spec := r.URL.Query().Get("cron")
	if spec == "" {
		spec = s.cfg.ClockCron
	}
	if _, err := s.render(r, s.now()); err != nil {
		s.fail(w, r, err)
		return
	}
	ticker, err := clock.NewTicker(spec, s.location())
	if err != nil {
		s.fail(w, r, err)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		appLog.Error("websocket upgrade failed", err)
		return
	}
	defer conn.Close()
	appLog.Info("clock feed connected", "remote", conn.RemoteAddr().String(), "cron", spec)

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()
	ticker.Start(ctx)
	defer ticker.Stop()

	// The client only sends control frames; reading detects the close.
	conn.SetReadDeadline(time.Now().Add(s.pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(s.pongWait))
	})
	go func() {
		defer cancel()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
					appLog.Warn("clock feed read error", "err", err)
				}
				return
			}
		}
	}()

	send := func(msg clockMessage) bool {
		conn.SetWriteDeadline(time.Now().Add(clockWriteWait))
		if err := conn.WriteJSON(msg); err != nil {
			appLog.Debug("clock feed write failed", "err", err)
			return false
		}
		return true
	}

	if dto, err := s.render(r, s.now()); err == nil && !send(clockMessage{Type: "tick", Time: &dto}) {
		return
	}

	ping := time.NewTicker(s.pingPeriod)
	defer ping.Stop()

	for {
		select {
		case <-ctx.Done():
			_ = conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
				time.Now().Add(clockWriteWait))
			appLog.Info("clock feed closed", "remote", conn.RemoteAddr().String())
			return
		case <-ping.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(clockWriteWait)); err != nil {
				appLog.Debug("clock feed ping failed", "err", err)
				return
			}
		case t := <-ticker.C:
			dto, err := s.render(r, t)
			if err != nil {
				send(clockMessage{Type: "error", Message: err.Error()})
				return
			}
			if !send(clockMessage{Type: "tick", Time: &dto}) {
				return
			}
		}
	}
}
