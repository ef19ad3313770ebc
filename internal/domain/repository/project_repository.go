package repository

import (
	"context"

	"github.com/xurp-ia/xurp-api/internal/domain/entity"
)

// ProjectWithRole proyecto visto por un usuario concreto.
type ProjectWithRole struct {
	Project entity.Project
	Role    string // OWNER, ADMIN, MEMBER
}

// ProjectRepository define el puerto de persistencia para Project.
type ProjectRepository interface {
	Create(ctx context.Context, project *entity.Project) error
	GetByID(ctx context.Context, id string) (*entity.Project, error)
	Update(ctx context.Context, project *entity.Project) error
	Delete(ctx context.Context, id string) error
	ListForUser(ctx context.Context, userID string) ([]*ProjectWithRole, error)
	// MemberRole devuelve OWNER, ADMIN o MEMBER; "" si el usuario no pertenece al proyecto.
	MemberRole(ctx context.Context, projectID, userID string) (string, error)
}
