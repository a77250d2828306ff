package handlers

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"kzone-booking-backend/internal/session"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins for MVP
	},
}

const pingInterval = 30 * time.Second

// WebSocketHandler streams session state-change notifications, one message
// per transition
type WebSocketHandler struct {
	manager *session.Manager
}

// NewWebSocketHandler creates a new WebSocket handler
func NewWebSocketHandler(manager *session.Manager) *WebSocketHandler {
	return &WebSocketHandler{manager: manager}
}

// HandleWebSocket handles GET /ws?token=
func (h *WebSocketHandler) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if token == "" {
		respondError(w, "token required", http.StatusUnauthorized)
		return
	}

	sess, err := h.manager.Resolve(r.Context(), token)
	if err != nil {
		respondError(w, "invalid token", http.StatusUnauthorized)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error().Err(err).Msg("Failed to upgrade WebSocket connection")
		return
	}
	defer conn.Close()

	events, cancel := sess.Subscribe()
	defer cancel()

	log.Info().Str("session_id", sess.ID()).Msg("WebSocket connection established")

	// Current state first, then one message per transition
	snap := sess.Snapshot()
	if err := conn.WriteJSON(session.Event{Type: session.EventAuthState, State: snap.State, User: snap.User}); err != nil {
		log.Error().Err(err).Str("session_id", sess.ID()).Msg("Failed to send initial session state")
		return
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()

	for {
		select {
		case ev, ok := <-events:
			if !ok {
				return
			}
			if err := conn.WriteJSON(ev); err != nil {
				log.Info().Str("session_id", sess.ID()).Msg("WebSocket connection closed")
				return
			}
		case <-ticker.C:
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-done:
			log.Info().Str("session_id", sess.ID()).Msg("WebSocket connection closed by client")
			return
		}
	}
}
