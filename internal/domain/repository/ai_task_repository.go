package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/xurp-ia/xurp-api/internal/domain/entity"
)

// AITaskStats agregado de tareas IA por estado y asignado.
type AITaskStats struct {
	AssigneeID *string
	Status     string
	Count      int
	Hours      decimal.Decimal
}

// AITaskRepository define el puerto de persistencia para AITask.
type AITaskRepository interface {
	CreateBatch(ctx context.Context, tasks []*entity.AITask) error
	GetByID(ctx context.Context, id string) (*entity.AITask, error)
	// UpdateStatus cambia el estado solo si sigue siendo from; si otro lo cambió antes
	// devuelve domain.ErrInvalidTransition.
	UpdateStatus(ctx context.Context, id, from, to string, updatedAt time.Time, completedAt *time.Time) error
	// UpdateAssignee escribe solo el asignado; nil deja la tarea sin asignar.
	UpdateAssignee(ctx context.Context, id string, assigneeID *string, updatedAt time.Time) error
	Delete(ctx context.Context, id string) error
	ListByProject(ctx context.Context, projectID string, day *int) ([]*entity.AITask, error)
	ListByAssignee(ctx context.Context, userID, projectID string) ([]*entity.AITask, error)
	// ListUnassignedForUpdate bloquea (FOR UPDATE) las tareas sin asignar del proyecto desde minDay.
	// Solo tiene sentido dentro de una transacción.
	ListUnassignedForUpdate(ctx context.Context, projectID string, minDay int) ([]*entity.AITask, error)
	Assign(ctx context.Context, taskID, userID string) error
	UnassignOpen(ctx context.Context, projectID, userID string) (int64, error)
	Stats(ctx context.Context, projectID string) ([]AITaskStats, error)
}
