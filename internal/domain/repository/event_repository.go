package repository

import (
	"context"
	"time"

	"github.com/xurp-ia/xurp-api/internal/domain/entity"
)

// EventRepository define el puerto de persistencia para Event.
type EventRepository interface {
	Create(ctx context.Context, e *entity.Event) error
	GetByID(ctx context.Context, id string) (*entity.Event, error)
	Update(ctx context.Context, e *entity.Event) error
	Delete(ctx context.Context, id string) error
	// ListByProject eventos que se solapan con [from, to).
	ListByProject(ctx context.Context, projectID string, from, to time.Time) ([]*entity.Event, error)
}
