package repository

import (
	"context"

	"github.com/xurp-ia/xurp-api/internal/domain/entity"
)

// CollaboratorRepository define el puerto de persistencia para Collaborator.
type CollaboratorRepository interface {
	// Add inserta el colaborador solo si no es el dueño del proyecto.
	// Devuelve domain.ErrOwnerCannotCollaborate o domain.ErrDuplicate.
	Add(ctx context.Context, c *entity.Collaborator) error
	Get(ctx context.Context, projectID, userID string) (*entity.Collaborator, error)
	ListByProject(ctx context.Context, projectID string) ([]*entity.Collaborator, error)
	UpdateRole(ctx context.Context, projectID, userID, role string) error
	Remove(ctx context.Context, projectID, userID string) error
	// DeleteOwnerRows elimina filas donde el colaborador es el dueño (datos heredados).
	// Con dryRun solo cuenta.
	DeleteOwnerRows(ctx context.Context, dryRun bool) (int64, error)
}
