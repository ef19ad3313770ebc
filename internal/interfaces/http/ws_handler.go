package http

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/xurp-ia/xurp-api/internal/application/dto"
	"github.com/xurp-ia/xurp-api/internal/infrastructure/realtime"
	"github.com/xurp-ia/xurp-api/pkg/jwt"
)

// WSPath ruta del websocket de mensajería.
const WSPath = "/api/messages/ws"

// WSHandler websocket de mensajería. Es un http.Handler de net/http: el upgrade necesita
// http.Hijacker, que el adaptador de Fiber no ofrece.
type WSHandler struct {
	hub       *realtime.Hub
	upgrader  websocket.Upgrader
	jwtSecret string
}

// NewWSHandler construye el handler.
func NewWSHandler(hub *realtime.Hub, jwtSecret string, allowedOrigins []string) *WSHandler {
	return &WSHandler{hub: hub, upgrader: realtime.Upgrader(allowedOrigins), jwtSecret: jwtSecret}
}

// ServeHTTP autentica con ?token=, Bearer o la cookie "token" y hace el upgrade.
func (h *WSHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	token := requestToken(r)
	if token == "" {
		writeJSONError(w, http.StatusUnauthorized, dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "token requerido"})
		return
	}
	id, err := jwt.Parse(h.jwtSecret, token)
	if err != nil {
		writeJSONError(w, http.StatusUnauthorized, dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "token inválido o expirado"})
		return
	}
	h.hub.Serve(&h.upgrader, w, r, id.UserID)
}

// requestToken los navegadores no pueden poner headers en el handshake; por eso la query va primero.
func requestToken(r *http.Request) string {
	if t := r.URL.Query().Get("token"); t != "" {
		return t
	}
	if t, ok := bearerToken(r.Header.Get("Authorization")); ok && t != "" {
		return t
	}
	if ck, err := r.Cookie(TokenCookie); err == nil {
		return ck.Value
	}
	return ""
}

func writeJSONError(w http.ResponseWriter, status int, body dto.ErrorResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
