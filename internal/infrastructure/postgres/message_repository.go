package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/xurp-ia/xurp-api/internal/domain"
	"github.com/xurp-ia/xurp-api/internal/domain/entity"
	"github.com/xurp-ia/xurp-api/internal/domain/repository"
)

var _ repository.MessageRepository = (*MessageRepo)(nil)

// MessageRepo conversaciones uno a uno y sus mensajes.
type MessageRepo struct {
	q Querier
}

// NewMessageRepository construye el adaptador de persistencia para mensajería.
func NewMessageRepository(q Querier) *MessageRepo {
	return &MessageRepo{q: q}
}

// GetOrCreateConversation el par se guarda ordenado; ON CONFLICT resuelve la carrera de dos altas simultáneas.
func (r *MessageRepo) GetOrCreateConversation(ctx context.Context, userA, userB string) (*entity.Conversation, error) {
	a, b := entity.OrderedPair(userA, userB)
	var c entity.Conversation
	err := r.q.QueryRow(ctx, `
		INSERT INTO conversations (id, user_a, user_b, created_at)
		VALUES ($1, $2, $3, now())
		ON CONFLICT (user_a, user_b) DO UPDATE SET user_a = EXCLUDED.user_a
		RETURNING id, user_a, user_b, created_at, last_message_at`,
		uuid.New().String(), a, b,
	).Scan(&c.ID, &c.UserA, &c.UserB, &c.CreatedAt, &c.LastMessageAt)
	if err != nil {
		if isForeignKeyViolation(err) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("upsert conversation: %w", err)
	}
	return &c, nil
}

// GetConversation nil si no existe.
func (r *MessageRepo) GetConversation(ctx context.Context, id string) (*entity.Conversation, error) {
	var c entity.Conversation
	err := r.q.QueryRow(ctx, `SELECT id, user_a, user_b, created_at, last_message_at FROM conversations WHERE id = $1`, id).
		Scan(&c.ID, &c.UserA, &c.UserB, &c.CreatedAt, &c.LastMessageAt)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get conversation: %w", err)
	}
	return &c, nil
}

// ListConversations con último mensaje y no leídos para userID, más recientes primero.
func (r *MessageRepo) ListConversations(ctx context.Context, userID string) ([]*entity.Conversation, error) {
	rows, err := r.q.Query(ctx, `
		SELECT c.id, c.user_a, c.user_b, c.created_at, c.last_message_at,
			lm.id, lm.sender_id, lm.content, lm.created_at, lm.read_at,
			(SELECT count(*) FROM messages m
				WHERE m.conversation_id = c.id AND m.sender_id <> $1 AND m.read_at IS NULL) AS unread
		FROM conversations c
		LEFT JOIN LATERAL (
			SELECT id, sender_id, content, created_at, read_at FROM messages
			WHERE conversation_id = c.id ORDER BY created_at DESC LIMIT 1
		) lm ON true
		WHERE c.user_a = $1 OR c.user_b = $1
		ORDER BY COALESCE(c.last_message_at, c.created_at) DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("list conversations: %w", err)
	}
	defer rows.Close()
	var list []*entity.Conversation
	for rows.Next() {
		var (
			c       entity.Conversation
			msgID   *string
			sender  *string
			content *string
			sentAt  *time.Time
			readAt  *time.Time
		)
		if err := rows.Scan(&c.ID, &c.UserA, &c.UserB, &c.CreatedAt, &c.LastMessageAt,
			&msgID, &sender, &content, &sentAt, &readAt, &c.UnreadCount); err != nil {
			return nil, fmt.Errorf("scan conversation: %w", err)
		}
		if msgID != nil {
			c.LastMessage = &entity.Message{
				ID:             *msgID,
				ConversationID: c.ID,
				SenderID:       *sender,
				Content:        *content,
				CreatedAt:      *sentAt,
				ReadAt:         readAt,
			}
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}

// CreateMessage inserta y actualiza last_message_at de la conversación.
func (r *MessageRepo) CreateMessage(ctx context.Context, m *entity.Message) error {
	tag, err := r.q.Exec(ctx, `
		WITH ins AS (
			INSERT INTO messages (id, conversation_id, sender_id, content, created_at)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING conversation_id, created_at
		)
		UPDATE conversations c SET last_message_at = ins.created_at
		FROM ins WHERE c.id = ins.conversation_id`,
		m.ID, m.ConversationID, m.SenderID, m.Content, m.CreatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("insert message: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListMessages más recientes primero, hasta limit, anteriores a before si se indica.
func (r *MessageRepo) ListMessages(ctx context.Context, conversationID string, limit int, before *time.Time) ([]*entity.Message, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, conversation_id, sender_id, content, created_at, read_at FROM messages
		WHERE conversation_id = $1 AND ($2::timestamptz IS NULL OR created_at < $2)
		ORDER BY created_at DESC LIMIT $3`, conversationID, before, limit)
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}
	defer rows.Close()
	var list []*entity.Message
	for rows.Next() {
		var m entity.Message
		if err := rows.Scan(&m.ID, &m.ConversationID, &m.SenderID, &m.Content, &m.CreatedAt, &m.ReadAt); err != nil {
			return nil, fmt.Errorf("scan message: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}

// MarkRead marca como leídos los mensajes recibidos por readerID.
func (r *MessageRepo) MarkRead(ctx context.Context, conversationID, readerID string, at time.Time) (int64, error) {
	tag, err := r.q.Exec(ctx, `
		UPDATE messages SET read_at = $3
		WHERE conversation_id = $1 AND sender_id <> $2 AND read_at IS NULL`, conversationID, readerID, at)
	if err != nil {
		return 0, fmt.Errorf("mark read: %w", err)
	}
	return tag.RowsAffected(), nil
}
