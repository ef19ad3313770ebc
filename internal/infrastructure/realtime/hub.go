// Package realtime entrega eventos por websocket a los usuarios conectados.
package realtime

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/xurp-ia/xurp-api/internal/application/dto"
	"github.com/xurp-ia/xurp-api/internal/application/ports"
	"github.com/xurp-ia/xurp-api/pkg/logger"
)

var _ ports.Notifier = (*Hub)(nil)

type directMessage struct {
	userID  string
	payload []byte
}

// Hub registra las conexiones por usuario. Un usuario puede tener varias pestañas abiertas.
// Todo el estado lo muta la goroutine de Run.
type Hub struct {
	clients    map[string]map[*Client]struct{}
	register   chan *Client
	unregister chan *Client
	direct     chan directMessage
	done       chan struct{}
	stopOnce   sync.Once
	log        *logger.Logger

	mu    sync.RWMutex
	total int
}

// NewHub construye el hub; hay que lanzar Run.
func NewHub(log *logger.Logger) *Hub {
	if log == nil {
		log = logger.Nop()
	}
	return &Hub{
		clients:    make(map[string]map[*Client]struct{}),
		register:   make(chan *Client, 128),
		unregister: make(chan *Client, 128),
		direct:     make(chan directMessage, 1024),
		done:       make(chan struct{}),
		log:        log,
	}
}

// Run atiende registros y envíos hasta que ctx termina. Al salir cierra todas las conexiones.
func (h *Hub) Run(ctx context.Context) {
	defer h.shutdown()
	for {
		select {
		case <-ctx.Done():
			return

		case c := <-h.register:
			set, ok := h.clients[c.userID]
			if !ok {
				set = make(map[*Client]struct{})
				h.clients[c.userID] = set
			}
			set[c] = struct{}{}
			h.setTotal(1)
			h.log.Debug().Str("user_id", c.userID).Int("total_clients", h.ClientCount()).Msg("ws conectado")

		case c := <-h.unregister:
			h.remove(c)

		case m := <-h.direct:
			for c := range h.clients[m.userID] {
				select {
				case c.send <- m.payload:
				default:
					// Cliente lento: se desconecta en vez de bloquear al resto.
					h.remove(c)
				}
			}
		}
	}
}

func (h *Hub) remove(c *Client) {
	set, ok := h.clients[c.userID]
	if !ok {
		return
	}
	if _, ok := set[c]; !ok {
		return
	}
	delete(set, c)
	if len(set) == 0 {
		delete(h.clients, c.userID)
	}
	close(c.send)
	h.setTotal(-1)
	h.log.Debug().Str("user_id", c.userID).Int("total_clients", h.ClientCount()).Msg("ws desconectado")
}

func (h *Hub) shutdown() {
	h.stopOnce.Do(func() { close(h.done) })
	for _, set := range h.clients {
		for c := range set {
			close(c.send)
		}
	}
	h.clients = map[string]map[*Client]struct{}{}
	h.mu.Lock()
	h.total = 0
	h.mu.Unlock()
}

func (h *Hub) setTotal(delta int) {
	h.mu.Lock()
	h.total += delta
	h.mu.Unlock()
}

// ClientCount conexiones abiertas.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.total
}

// Register agrega un cliente. No bloquea si el hub ya se detuvo.
func (h *Hub) Register(c *Client) bool {
	select {
	case <-h.done:
		return false
	default:
	}
	select {
	case h.register <- c:
		return true
	case <-h.done:
		return false
	}
}

// Unregister quita un cliente.
func (h *Hub) Unregister(c *Client) {
	select {
	case h.unregister <- c:
	case <-h.done:
	}
}

// Notify envía {type, data} a todas las conexiones de userID. Sin conexiones el evento se descarta.
func (h *Hub) Notify(userID, eventType string, data any) {
	if h == nil || userID == "" {
		return
	}
	payload, err := json.Marshal(dto.RealtimeEvent{Type: eventType, Data: data})
	if err != nil {
		h.log.Error().Err(err).Str("type", eventType).Msg("ws: serializar evento")
		return
	}
	select {
	case h.direct <- directMessage{userID: userID, payload: payload}:
	case <-h.done:
	default:
		h.log.Warn().Str("type", eventType).Str("reason", "buffer_full").Msg("ws: evento descartado")
	}
}
