package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/xurp-ia/xurp-api/internal/application/dto"
	"github.com/xurp-ia/xurp-api/internal/application/ports"
	"github.com/xurp-ia/xurp-api/internal/domain"
	"github.com/xurp-ia/xurp-api/internal/domain/entity"
	"github.com/xurp-ia/xurp-api/internal/domain/repository"
)

const (
	defaultMessagePage = 50
	maxMessagePage     = 200
)

// MessageUseCase mensajes directos entre usuarios.
type MessageUseCase struct {
	users    repository.UserRepository
	messages repository.MessageRepository
	notifier ports.Notifier
	now      func() time.Time
}

// NewMessageUseCase construye el caso de uso. notifier puede ser nil.
func NewMessageUseCase(users repository.UserRepository, messages repository.MessageRepository, notifier ports.Notifier) *MessageUseCase {
	return &MessageUseCase{users: users, messages: messages, notifier: notifier, now: time.Now}
}

// Send guarda el mensaje en la conversación del par y lo empuja a ambos usuarios.
func (uc *MessageUseCase) Send(ctx context.Context, senderID string, in dto.SendMessageRequest) (*dto.MessageItem, error) {
	content := strings.TrimSpace(in.Content)
	if content == "" || in.RecipientID == senderID {
		return nil, domain.ErrInvalidInput
	}
	recipient, err := uc.users.GetByID(ctx, in.RecipientID)
	if err != nil {
		return nil, err
	}
	if recipient == nil {
		return nil, domain.ErrUserNotFound
	}
	conv, err := uc.messages.GetOrCreateConversation(ctx, senderID, in.RecipientID)
	if err != nil {
		return nil, err
	}
	msg := &entity.Message{
		ID:             uuid.New().String(),
		ConversationID: conv.ID,
		SenderID:       senderID,
		Content:        content,
		CreatedAt:      uc.now(),
	}
	if err := uc.messages.CreateMessage(ctx, msg); err != nil {
		return nil, err
	}
	item := toMessageItem(msg)
	if uc.notifier != nil {
		uc.notifier.Notify(in.RecipientID, "message", item)
		uc.notifier.Notify(senderID, "message", item)
	}
	return &item, nil
}

// Conversations conversaciones del usuario con último mensaje y no leídos.
func (uc *MessageUseCase) Conversations(ctx context.Context, userID string) ([]dto.ConversationResponse, error) {
	list, err := uc.messages.ListConversations(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ConversationResponse, 0, len(list))
	for _, c := range list {
		r := dto.ConversationResponse{
			ID:            c.ID,
			PeerID:        c.Peer(userID),
			UnreadCount:   c.UnreadCount,
			LastMessageAt: c.LastMessageAt,
		}
		if c.LastMessage != nil {
			item := toMessageItem(c.LastMessage)
			r.LastMessage = &item
		}
		out = append(out, r)
	}
	return out, nil
}

// Messages página de mensajes, más recientes primero. before pagina hacia atrás.
func (uc *MessageUseCase) Messages(ctx context.Context, conversationID, userID string, limit int, before *time.Time) (*dto.MessagePage, error) {
	if _, err := uc.loadConversation(ctx, conversationID, userID); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = defaultMessagePage
	}
	if limit > maxMessagePage {
		limit = maxMessagePage
	}
	list, err := uc.messages.ListMessages(ctx, conversationID, limit, before)
	if err != nil {
		return nil, err
	}
	page := &dto.MessagePage{Items: make([]dto.MessageItem, 0, len(list))}
	for _, m := range list {
		page.Items = append(page.Items, toMessageItem(m))
	}
	if len(list) == limit {
		last := list[len(list)-1].CreatedAt
		page.NextBefore = &last
	}
	return page, nil
}

// MarkRead marca como leídos los mensajes del otro participante.
func (uc *MessageUseCase) MarkRead(ctx context.Context, conversationID, userID string) (int64, error) {
	conv, err := uc.loadConversation(ctx, conversationID, userID)
	if err != nil {
		return 0, err
	}
	n, err := uc.messages.MarkRead(ctx, conversationID, userID, uc.now())
	if err != nil {
		return 0, err
	}
	if n > 0 && uc.notifier != nil {
		uc.notifier.Notify(conv.Peer(userID), "read", map[string]any{"conversationId": conversationID, "readerId": userID})
	}
	return n, nil
}

func (uc *MessageUseCase) loadConversation(ctx context.Context, id, userID string) (*entity.Conversation, error) {
	conv, err := uc.messages.GetConversation(ctx, id)
	if err != nil {
		return nil, err
	}
	if conv == nil {
		return nil, domain.ErrNotFound
	}
	if !conv.Has(userID) {
		return nil, domain.ErrForbidden
	}
	return conv, nil
}
