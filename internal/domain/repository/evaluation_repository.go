package repository

import (
	"context"

	"github.com/xurp-ia/xurp-api/internal/domain/entity"
)

// EvaluationTuple clave del límite de membresía.
type EvaluationTuple struct {
	UserID     string
	ProjectID  string
	Technology string
}

// EvaluationRepository define el puerto de persistencia para UserEvaluation.
type EvaluationRepository interface {
	Create(ctx context.Context, e *entity.UserEvaluation) error
	GetByID(ctx context.Context, id string) (*entity.UserEvaluation, error)
	Delete(ctx context.Context, id string) error
	ListByUser(ctx context.Context, userID, projectID string) ([]*entity.UserEvaluation, error)
	ListByProject(ctx context.Context, projectID string) ([]*entity.UserEvaluation, error)
	Count(ctx context.Context, t EvaluationTuple) (int, error)
	// LockTuple serializa los envíos para la misma tupla hasta el fin de la transacción.
	LockTuple(ctx context.Context, t EvaluationTuple) error
	// DeleteBeyondLimit elimina, por tupla, las evaluaciones más antiguas que superan el límite
	// de la membresía vigente del usuario. Con dryRun solo cuenta.
	DeleteBeyondLimit(ctx context.Context, dryRun bool) (int64, error)
}
