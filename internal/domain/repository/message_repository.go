package repository

import (
	"context"
	"time"

	"github.com/xurp-ia/xurp-api/internal/domain/entity"
)

// MessageRepository define el puerto de persistencia para Conversation y Message.
type MessageRepository interface {
	// GetOrCreateConversation devuelve la conversación del par (en cualquier orden), creándola si no existe.
	GetOrCreateConversation(ctx context.Context, userA, userB string) (*entity.Conversation, error)
	GetConversation(ctx context.Context, id string) (*entity.Conversation, error)
	ListConversations(ctx context.Context, userID string) ([]*entity.Conversation, error)
	CreateMessage(ctx context.Context, m *entity.Message) error
	// ListMessages mensajes más recientes primero; before (opcional) pagina hacia atrás.
	ListMessages(ctx context.Context, conversationID string, limit int, before *time.Time) ([]*entity.Message, error)
	MarkRead(ctx context.Context, conversationID, readerID string, at time.Time) (int64, error)
}
