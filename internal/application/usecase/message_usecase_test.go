package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xurp-ia/xurp-api/internal/application/dto"
	"github.com/xurp-ia/xurp-api/internal/domain"
)

func (f *fixture) messages() *MessageUseCase {
	uc := NewMessageUseCase(f.store.Users(), f.store.Messages(), f.notifier)
	clock := baseTime
	uc.now = func() time.Time {
		clock = clock.Add(time.Second)
		return clock
	}
	return uc
}

func TestMessages_EnviarListarLeer(t *testing.T) {
	f := newFixture(t)
	uc := f.messages()

	first, err := uc.Send(context.Background(), "ana", dto.SendMessageRequest{RecipientID: "beto", Content: "hola"})
	require.NoError(t, err)
	_, err = uc.Send(context.Background(), "beto", dto.SendMessageRequest{RecipientID: "ana", Content: "qué tal"})
	require.NoError(t, err)
	_, err = uc.Send(context.Background(), "ana", dto.SendMessageRequest{RecipientID: "beto", Content: "todo bien"})
	require.NoError(t, err)

	assert.Len(t, f.notifier.For("beto"), 3)

	convs, err := uc.Conversations(context.Background(), "beto")
	require.NoError(t, err)
	require.Len(t, convs, 1)
	assert.Equal(t, first.ConversationID, convs[0].ID)
	assert.Equal(t, "ana", convs[0].PeerID)
	assert.Equal(t, 2, convs[0].UnreadCount)
	require.NotNil(t, convs[0].LastMessage)
	assert.Equal(t, "todo bien", convs[0].LastMessage.Content)

	page, err := uc.Messages(context.Background(), first.ConversationID, "beto", 2, nil)
	require.NoError(t, err)
	require.Len(t, page.Items, 2)
	assert.Equal(t, "todo bien", page.Items[0].Content)
	require.NotNil(t, page.NextBefore)

	older, err := uc.Messages(context.Background(), first.ConversationID, "beto", 2, page.NextBefore)
	require.NoError(t, err)
	require.Len(t, older.Items, 1)
	assert.Equal(t, "hola", older.Items[0].Content)

	n, err := uc.MarkRead(context.Background(), first.ConversationID, "beto")
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	_, err = uc.Messages(context.Background(), first.ConversationID, "ext", 10, nil)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestMessages_Validaciones(t *testing.T) {
	f := newFixture(t)
	uc := f.messages()
	_, err := uc.Send(context.Background(), "ana", dto.SendMessageRequest{RecipientID: "ana", Content: "yo"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = uc.Send(context.Background(), "ana", dto.SendMessageRequest{RecipientID: "nadie", Content: "x"})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
	_, err = uc.Send(context.Background(), "ana", dto.SendMessageRequest{RecipientID: "beto", Content: "   "})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
