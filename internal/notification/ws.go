package notification

import (
	"encoding/json"
	"net/http"
	"time"

	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/pkg/logger"

	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 1024
)

// inbound is a message sent by a client.
type inbound struct {
	Event  string `json:"event"`
	UserID int64  `json:"userId"`
}

// Server upgrades HTTP requests to websocket connections registered on a Hub.
type Server struct {
	hub      *Hub
	upgrader websocket.Upgrader
}

// NewServer accepts websocket handshakes from allowedOrigin only. An empty
// allowedOrigin accepts same-origin requests.
func NewServer(hub *Hub, allowedOrigin string) *Server {
	s := &Server{hub: hub}
	s.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
	}
	if allowedOrigin != "" {
		s.upgrader.CheckOrigin = func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			return origin == "" || origin == allowedOrigin
		}
	}
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade already wrote the HTTP error.
		logger.Log.Warn("websocket upgrade failed", "error", err)
		return
	}

	client := NewClient()
	s.hub.Register(client)

	go s.writePump(conn, client)
	s.readPump(conn, client)
}

func (s *Server) readPump(conn *websocket.Conn, c *Client) {
	defer func() {
		s.hub.Unregister(c)
		_ = conn.Close()
	}()

	conn.SetReadLimit(maxMessageSize)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			return
		}
		var msg inbound
		if err := json.Unmarshal(data, &msg); err != nil {
			continue
		}
		if msg.Event == "userLoggedIn" && msg.UserID != 0 {
			if !s.hub.Identify(c, msg.UserID) {
				return
			}
			s.hub.Send(c, domain.Notification{
				Event:   "notification",
				Message: "Welcome! You are now connected.",
			})
		}
	}
}

func (s *Server) writePump(conn *websocket.Conn, c *Client) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.Messages():
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
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
