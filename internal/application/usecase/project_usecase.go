package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/xurp-ia/xurp-api/internal/application/access"
	"github.com/xurp-ia/xurp-api/internal/application/dto"
	"github.com/xurp-ia/xurp-api/internal/application/ports"
	"github.com/xurp-ia/xurp-api/internal/domain"
	"github.com/xurp-ia/xurp-api/internal/domain/entity"
	"github.com/xurp-ia/xurp-api/internal/domain/repository"
)

// ProjectUseCase casos de uso CRUD de proyectos.
type ProjectUseCase struct {
	guard         *access.Guard
	projects      repository.ProjectRepository
	collaborators repository.CollaboratorRepository
	users         repository.UserRepository
	tx            ports.TxRunner
	cache         ports.Cache
	now           func() time.Time
}

// NewProjectUseCase construye el caso de uso.
func NewProjectUseCase(
	guard *access.Guard,
	projects repository.ProjectRepository,
	collaborators repository.CollaboratorRepository,
	users repository.UserRepository,
	tx ports.TxRunner,
	cache ports.Cache,
) *ProjectUseCase {
	return &ProjectUseCase{
		guard:         guard,
		projects:      projects,
		collaborators: collaborators,
		users:         users,
		tx:            tx,
		cache:         cache,
		now:           time.Now,
	}
}

// Create crea el proyecto con ownerID como dueño y su configuración por defecto, en una transacción.
func (uc *ProjectUseCase) Create(ctx context.Context, ownerID string, in dto.CreateProjectRequest) (*dto.ProjectResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.ErrInvalidInput
	}
	now := uc.now()
	project := &entity.Project{
		ID:          uuid.New().String(),
		Name:        name,
		Description: in.Description,
		Logo:        in.Logo,
		Location:    in.Location,
		OwnerID:     ownerID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	err := uc.tx.Run(ctx, func(repos ports.TxRepositories) error {
		if err := repos.Projects.Create(ctx, project); err != nil {
			return err
		}
		return repos.Settings.Upsert(ctx, entity.DefaultProjectSettings(project.ID, now))
	})
	if err != nil {
		return nil, err
	}
	out := ToProjectResponse(project, entity.RoleOwner)
	return &out, nil
}

// List proyectos donde el usuario es dueño o colaborador.
func (uc *ProjectUseCase) List(ctx context.Context, userID string) ([]dto.ProjectResponse, error) {
	list, err := uc.projects.ListForUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProjectResponse, 0, len(list))
	for _, p := range list {
		out = append(out, ToProjectResponse(&p.Project, p.Role))
	}
	return out, nil
}

// Get detalle del proyecto con dueño y colaboradores. El dueño nunca aparece entre los colaboradores.
func (uc *ProjectUseCase) Get(ctx context.Context, projectID, userID string) (*dto.ProjectDetailResponse, error) {
	m, err := uc.guard.RequireMember(ctx, projectID, userID)
	if err != nil {
		return nil, err
	}
	owner, err := uc.users.GetByID(ctx, m.Project.OwnerID)
	if err != nil {
		return nil, err
	}
	collabs, err := uc.collaborators.ListByProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	out := &dto.ProjectDetailResponse{
		ProjectResponse: ToProjectResponse(m.Project, m.Role),
		Owner:           toUserSummary(owner),
		Collaborators:   make([]dto.CollaboratorResponse, 0, len(collabs)),
		CurrentDay:      m.Project.CurrentDay(uc.now()),
	}
	for _, c := range collabs {
		if c.UserID == m.Project.OwnerID {
			continue
		}
		out.Collaborators = append(out.Collaborators, toCollaboratorResponse(c))
	}
	return out, nil
}

// Update modifica los datos básicos. Requiere OWNER o ADMIN.
func (uc *ProjectUseCase) Update(ctx context.Context, projectID, userID string, in dto.UpdateProjectRequest) (*dto.ProjectResponse, error) {
	m, err := uc.guard.RequireManager(ctx, projectID, userID)
	if err != nil {
		return nil, err
	}
	p := m.Project
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, domain.ErrInvalidInput
		}
		p.Name = name
	}
	if in.Description != nil {
		p.Description = *in.Description
	}
	if in.Logo != nil {
		p.Logo = *in.Logo
	}
	if in.Location != nil {
		p.Location = *in.Location
	}
	p.UpdatedAt = uc.now()
	if err := uc.projects.Update(ctx, p); err != nil {
		return nil, err
	}
	_ = uc.cache.Delete(ctx, ports.ProgressKey(projectID))
	out := ToProjectResponse(p, m.Role)
	return &out, nil
}

// BasicInfo datos básicos del proyecto.
func (uc *ProjectUseCase) BasicInfo(ctx context.Context, projectID, userID string) (*dto.BasicInfoResponse, error) {
	m, err := uc.guard.RequireMember(ctx, projectID, userID)
	if err != nil {
		return nil, err
	}
	return &dto.BasicInfoResponse{
		Name:        m.Project.Name,
		Description: m.Project.Description,
		Logo:        m.Project.Logo,
		Location:    m.Project.Location,
	}, nil
}

// UpdateBasicInfo actualiza los datos básicos y devuelve el resultado.
func (uc *ProjectUseCase) UpdateBasicInfo(ctx context.Context, projectID, userID string, in dto.UpdateProjectRequest) (*dto.BasicInfoResponse, error) {
	p, err := uc.Update(ctx, projectID, userID, in)
	if err != nil {
		return nil, err
	}
	return &dto.BasicInfoResponse{Name: p.Name, Description: p.Description, Logo: p.Logo, Location: p.Location}, nil
}

// Delete elimina el proyecto y sus datos asociados. Solo el dueño.
func (uc *ProjectUseCase) Delete(ctx context.Context, projectID, userID string) error {
	if _, err := uc.guard.RequireOwner(ctx, projectID, userID); err != nil {
		return err
	}
	if err := uc.projects.Delete(ctx, projectID); err != nil {
		return err
	}
	_ = uc.cache.Delete(ctx, ports.ProgressKey(projectID))
	return nil
}
