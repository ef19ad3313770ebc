package repository

import (
	"context"
	"time"

	"github.com/xurp-ia/xurp-api/internal/domain/entity"
)

// TaskFilter filtros para listar tareas manuales.
type TaskFilter struct {
	ProjectID  string
	Status     string
	AssigneeID string
}

// StatusCount conteo de tareas por estado y asignado.
type StatusCount struct {
	AssigneeID *string
	Status     string
	Count      int
}

// TaskRepository define el puerto de persistencia para Task.
type TaskRepository interface {
	Create(ctx context.Context, task *entity.Task) error
	GetByID(ctx context.Context, id string) (*entity.Task, error)
	// UpdateDetails escribe título, descripción y asignado; no toca el estado.
	UpdateDetails(ctx context.Context, task *entity.Task) error
	// UpdateStatus cambia el estado solo si sigue siendo from (domain.ErrInvalidTransition si no).
	UpdateStatus(ctx context.Context, id, from, to string, updatedAt time.Time, completedAt *time.Time) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, f TaskFilter) ([]*entity.Task, error)
	// UnassignOpen quita el asignado de las tareas no completadas del usuario en el proyecto.
	UnassignOpen(ctx context.Context, projectID, userID string) (int64, error)
	CountByStatus(ctx context.Context, projectID string) ([]StatusCount, error)
}
