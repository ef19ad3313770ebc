// Package access resuelve el rol de un usuario en un proyecto y aplica los permisos.
package access

import (
	"context"

	"github.com/xurp-ia/xurp-api/internal/domain"
	"github.com/xurp-ia/xurp-api/internal/domain/entity"
	"github.com/xurp-ia/xurp-api/internal/domain/repository"
)

// Membership proyecto y rol del usuario que hace la petición.
type Membership struct {
	Project *entity.Project
	Role    string
}

// CanManage informa si el rol es OWNER o ADMIN.
func (m *Membership) CanManage() bool { return entity.CanManage(m.Role) }

// IsOwner informa si el usuario es el dueño.
func (m *Membership) IsOwner() bool { return m.Role == entity.RoleOwner }

// Guard verifica pertenencia y permisos sobre proyectos.
type Guard struct {
	projects repository.ProjectRepository
}

// NewGuard construye el guard.
func NewGuard(projects repository.ProjectRepository) *Guard {
	return &Guard{projects: projects}
}

// RequireMember exige que userID sea dueño o colaborador del proyecto.
func (g *Guard) RequireMember(ctx context.Context, projectID, userID string) (*Membership, error) {
	project, err := g.projects.GetByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, domain.ErrProjectNotFound
	}
	if project.OwnerID == userID {
		return &Membership{Project: project, Role: entity.RoleOwner}, nil
	}
	role, err := g.projects.MemberRole(ctx, projectID, userID)
	if err != nil {
		return nil, err
	}
	if role == "" {
		return nil, domain.ErrNotProjectMember
	}
	return &Membership{Project: project, Role: role}, nil
}

// RequireManager exige rol OWNER o ADMIN.
func (g *Guard) RequireManager(ctx context.Context, projectID, userID string) (*Membership, error) {
	m, err := g.RequireMember(ctx, projectID, userID)
	if err != nil {
		return nil, err
	}
	if !m.CanManage() {
		return nil, domain.ErrForbidden
	}
	return m, nil
}

// RequireOwner exige ser el dueño.
func (g *Guard) RequireOwner(ctx context.Context, projectID, userID string) (*Membership, error) {
	m, err := g.RequireMember(ctx, projectID, userID)
	if err != nil {
		return nil, err
	}
	if !m.IsOwner() {
		return nil, domain.ErrForbidden
	}
	return m, nil
}
