package eventfeed

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Handler upgrades authenticated HTTP requests to debug-feed websocket
// connections.
type Handler struct {
	hub  *Hub
	auth Authenticator
	log  zerolog.Logger
}

// NewHandler creates a Handler.
func NewHandler(hub *Hub, auth Authenticator, log zerolog.Logger) *Handler {
	return &Handler{hub: hub, auth: auth, log: log}
}

// ServeHTTP implements http.Handler.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	clientID, err := h.auth.Authenticate(r)
	if err != nil {
		h.log.Warn().Err(err).Str("remote_addr", r.RemoteAddr).Msg("eventfeed authentication failed")
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Error().Err(err).Str("remote_addr", r.RemoteAddr).Msg("eventfeed upgrade failed")
		return
	}

	client := NewClient(uuid.NewString(), h.hub, conn)
	h.log.Info().Str("client_id", client.id).Str("auth_client_id", clientID).Msg("eventfeed client connected")

	h.hub.register <- client

	go client.writePump()
	go client.readPump()
}
