package repository

import (
	"context"

	"github.com/xurp-ia/xurp-api/internal/domain/entity"
)

// NoteRepository define el puerto de persistencia para Note.
type NoteRepository interface {
	Create(ctx context.Context, n *entity.Note) error
	GetByID(ctx context.Context, id string) (*entity.Note, error)
	Update(ctx context.Context, n *entity.Note) error
	Delete(ctx context.Context, id string) error
	ListByAuthor(ctx context.Context, projectID, authorID string) ([]*entity.Note, error)
}
