package entity

import "time"

// Conversation chat entre dos usuarios. UserA < UserB para que el par sea único.
type Conversation struct {
	ID            string
	UserA         string
	UserB         string
	CreatedAt     time.Time
	LastMessageAt *time.Time

	// Cargados en listados.
	LastMessage *Message
	UnreadCount int
}

// Peer devuelve el otro participante de la conversación.
func (c *Conversation) Peer(userID string) string {
	if c.UserA == userID {
		return c.UserB
	}
	return c.UserA
}

// Has informa si userID participa de la conversación.
func (c *Conversation) Has(userID string) bool {
	return c.UserA == userID || c.UserB == userID
}

// OrderedPair devuelve los dos ids en orden lexicográfico.
func OrderedPair(a, b string) (string, string) {
	if a < b {
		return a, b
	}
	return b, a
}

// Message mensaje de chat.
type Message struct {
	ID             string
	ConversationID string
	SenderID       string
	Content        string
	CreatedAt      time.Time
	ReadAt         *time.Time
}
