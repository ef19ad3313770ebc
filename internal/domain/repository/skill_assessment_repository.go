package repository

import (
	"context"
	"time"

	"github.com/xurp-ia/xurp-api/internal/domain/entity"
)

// SkillAssessmentRepository define el puerto de persistencia para SkillAssessment.
type SkillAssessmentRepository interface {
	// Create falla con domain.ErrDuplicate si el usuario ya tiene una evaluación STARTED en el proyecto.
	Create(ctx context.Context, a *entity.SkillAssessment) error
	GetByID(ctx context.Context, id string) (*entity.SkillAssessment, error)
	Complete(ctx context.Context, a *entity.SkillAssessment) error
	FindActive(ctx context.Context, userID, projectID string, now time.Time) (*entity.SkillAssessment, error)
	// DiscardExpired borra las evaluaciones STARTED ya vencidas del usuario en el proyecto.
	DiscardExpired(ctx context.Context, userID, projectID string, now time.Time) (int64, error)
	ListByUser(ctx context.Context, userID, projectID string) ([]*entity.SkillAssessment, error)
	// LatestCompletedByProject última evaluación completada de cada usuario del proyecto.
	LatestCompletedByProject(ctx context.Context, projectID string) ([]*entity.SkillAssessment, error)
}
