package dto

import "time"

// SendMessageRequest entrada para enviar un mensaje directo.
type SendMessageRequest struct {
	RecipientID string `json:"recipientId" validate:"required,uuid"`
	Content     string `json:"content" validate:"required,min=1,max=4000"`
}

// MessageItem salida de un mensaje.
type MessageItem struct {
	ID             string     `json:"id"`
	ConversationID string     `json:"conversationId"`
	SenderID       string     `json:"senderId"`
	Content        string     `json:"content"`
	CreatedAt      time.Time  `json:"createdAt"`
	ReadAt         *time.Time `json:"readAt,omitempty"`
}

// ConversationResponse conversación con su último mensaje.
type ConversationResponse struct {
	ID            string       `json:"id"`
	PeerID        string       `json:"peerId"`
	LastMessage   *MessageItem `json:"lastMessage,omitempty"`
	UnreadCount   int          `json:"unreadCount"`
	LastMessageAt *time.Time   `json:"lastMessageAt,omitempty"`
}

// MessagePage página de mensajes (más recientes primero).
type MessagePage struct {
	Items      []MessageItem `json:"items"`
	NextBefore *time.Time    `json:"nextBefore,omitempty"`
}

// RealtimeEvent marco enviado por websocket.
type RealtimeEvent struct {
	Type string `json:"type"`
	Data any    `json:"data"`
}
