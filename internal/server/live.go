package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/theirongolddev/payoff/internal/pipeline"
)

const (
	liveWriteWait  = 10 * time.Second
	livePongWait   = 60 * time.Second
	livePingPeriod = 54 * time.Second
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
	CheckOrigin: func(_ *http.Request) bool {
		return true
	},
}

// handleLive re-simulates on every parameter frame the client sends. Each
// text frame holds a JSON simulate request; each reply is a
// SimulateResponse or an error object.
func (s *Service) handleLive(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Info("websocket upgrade failed", zap.Error(err))
		return
	}

	s.mu.Lock()
	s.live++
	s.mu.Unlock()
	defer func() {
		s.mu.Lock()
		s.live--
		s.mu.Unlock()
	}()

	send := make(chan []byte, 8)
	done := make(chan struct{})
	go s.liveWritePump(conn, send, done)

	defer func() {
		close(send)
		<-done
	}()

	_ = conn.SetReadDeadline(time.Now().Add(livePongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(livePongWait))
	})

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.log.Info("live connection closed", zap.Error(err))
			}
			return
		}

		var reply any
		var req pipeline.Request
		if err := json.Unmarshal(data, &req); err != nil {
			s.recordError(err)
			reply = errorResponse{Error: "invalid request body"}
		} else if resp, err := s.simulate(r.Context(), req); err != nil {
			reply = errorResponse{Error: err.Error()}
		} else {
			reply = resp
		}

		out, err := json.Marshal(reply)
		if err != nil {
			s.log.Error("encoding live reply", zap.Error(err))
			return
		}
		send <- out
	}
}

func (s *Service) liveWritePump(conn *websocket.Conn, send <-chan []byte, done chan<- struct{}) {
	ticker := time.NewTicker(livePingPeriod)
	abandon := func() {
		// Closing unblocks the reader; draining keeps it from blocking on send.
		_ = conn.Close()
		for range send {
		}
	}
	defer func() {
		ticker.Stop()
		_ = conn.Close()
		close(done)
	}()

	for {
		select {
		case msg, ok := <-send:
			_ = conn.SetWriteDeadline(time.Now().Add(liveWriteWait))
			if !ok {
				_ = conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
				return
			}
			if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				abandon()
				return
			}
		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(liveWriteWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				abandon()
				return
			}
		}
	}
}
