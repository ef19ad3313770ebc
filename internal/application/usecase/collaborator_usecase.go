package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/xurp-ia/xurp-api/internal/application/access"
	"github.com/xurp-ia/xurp-api/internal/application/dto"
	"github.com/xurp-ia/xurp-api/internal/application/ports"
	"github.com/xurp-ia/xurp-api/internal/domain"
	"github.com/xurp-ia/xurp-api/internal/domain/entity"
	"github.com/xurp-ia/xurp-api/internal/domain/repository"
)

// CollaboratorUseCase alta, baja y cambio de rol de colaboradores.
type CollaboratorUseCase struct {
	guard         *access.Guard
	users         repository.UserRepository
	collaborators repository.CollaboratorRepository
	tx            ports.TxRunner
	cache         ports.Cache
	now           func() time.Time
}

// NewCollaboratorUseCase construye el caso de uso.
func NewCollaboratorUseCase(
	guard *access.Guard,
	users repository.UserRepository,
	collaborators repository.CollaboratorRepository,
	tx ports.TxRunner,
	cache ports.Cache,
) *CollaboratorUseCase {
	return &CollaboratorUseCase{guard: guard, users: users, collaborators: collaborators, tx: tx, cache: cache, now: time.Now}
}

// List colaboradores del proyecto (sin el dueño).
func (uc *CollaboratorUseCase) List(ctx context.Context, projectID, userID string) ([]dto.CollaboratorResponse, error) {
	m, err := uc.guard.RequireMember(ctx, projectID, userID)
	if err != nil {
		return nil, err
	}
	list, err := uc.collaborators.ListByProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CollaboratorResponse, 0, len(list))
	for _, c := range list {
		if c.UserID == m.Project.OwnerID {
			continue
		}
		out = append(out, toCollaboratorResponse(c))
	}
	return out, nil
}

// Add invita a un usuario existente. El dueño nunca puede quedar como colaborador.
func (uc *CollaboratorUseCase) Add(ctx context.Context, projectID, actorID string, in dto.AddCollaboratorRequest) (*dto.CollaboratorResponse, error) {
	m, err := uc.guard.RequireManager(ctx, projectID, actorID)
	if err != nil {
		return nil, err
	}
	var user *entity.User
	switch {
	case in.UserID != "":
		user, err = uc.users.GetByID(ctx, in.UserID)
	case strings.TrimSpace(in.Email) != "":
		user, err = uc.users.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(in.Email)))
	default:
		return nil, domain.ErrInvalidInput
	}
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if user.ID == m.Project.OwnerID {
		return nil, domain.ErrOwnerCannotCollaborate
	}
	role := in.Role
	if role == "" {
		role = entity.RoleMember
	}
	if !entity.IsValidCollaboratorRole(role) {
		return nil, domain.ErrInvalidInput
	}
	c := &entity.Collaborator{
		ProjectID:  projectID,
		UserID:     user.ID,
		Role:       role,
		CreatedAt:  uc.now(),
		Email:      user.Email,
		Name:       user.Name,
		Profession: user.Profession,
	}
	if err := uc.collaborators.Add(ctx, c); err != nil {
		return nil, err
	}
	_ = uc.cache.Delete(ctx, ports.ProgressKey(projectID))
	out := toCollaboratorResponse(c)
	return &out, nil
}

// UpdateRole cambia el rol de un colaborador. Requiere OWNER o ADMIN.
func (uc *CollaboratorUseCase) UpdateRole(ctx context.Context, projectID, actorID, targetID string, in dto.UpdateCollaboratorRequest) (*dto.CollaboratorResponse, error) {
	if _, err := uc.guard.RequireManager(ctx, projectID, actorID); err != nil {
		return nil, err
	}
	if !entity.IsValidCollaboratorRole(in.Role) {
		return nil, domain.ErrInvalidInput
	}
	c, err := uc.collaborators.Get(ctx, projectID, targetID)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	if err := uc.collaborators.UpdateRole(ctx, projectID, targetID, in.Role); err != nil {
		return nil, err
	}
	c.Role = in.Role
	out := toCollaboratorResponse(c)
	return &out, nil
}

// Remove quita al colaborador y desasigna sus tareas abiertas en la misma transacción.
// Un colaborador puede quitarse a sí mismo (abandonar el proyecto).
func (uc *CollaboratorUseCase) Remove(ctx context.Context, projectID, actorID, targetID string) error {
	if actorID == targetID {
		if _, err := uc.guard.RequireMember(ctx, projectID, actorID); err != nil {
			return err
		}
	} else if _, err := uc.guard.RequireManager(ctx, projectID, actorID); err != nil {
		return err
	}
	c, err := uc.collaborators.Get(ctx, projectID, targetID)
	if err != nil {
		return err
	}
	if c == nil {
		return domain.ErrNotFound
	}
	err = uc.tx.Run(ctx, func(repos ports.TxRepositories) error {
		if err := repos.Collaborators.Remove(ctx, projectID, targetID); err != nil {
			return err
		}
		if _, err := repos.Tasks.UnassignOpen(ctx, projectID, targetID); err != nil {
			return err
		}
		_, err := repos.AITasks.UnassignOpen(ctx, projectID, targetID)
		return err
	})
	if err != nil {
		return err
	}
	_ = uc.cache.Delete(ctx, ports.ProgressKey(projectID))
	return nil
}
