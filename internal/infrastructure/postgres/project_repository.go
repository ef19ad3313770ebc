package postgres

import (
	"context"
	"fmt"

	"github.com/xurp-ia/xurp-api/internal/domain"
	"github.com/xurp-ia/xurp-api/internal/domain/entity"
	"github.com/xurp-ia/xurp-api/internal/domain/repository"
)

var _ repository.ProjectRepository = (*ProjectRepo)(nil)

// ProjectRepo implementación del puerto ProjectRepository (usable con pool o tx).
type ProjectRepo struct {
	q Querier
}

// NewProjectRepository construye el adaptador de persistencia para proyectos.
func NewProjectRepository(q Querier) *ProjectRepo {
	return &ProjectRepo{q: q}
}

const projectColumns = `p.id, p.name, p.description, p.logo, p.location, p.owner_id, p.created_at, p.updated_at`

func scanProject(row interface{ Scan(...any) error }, p *entity.Project, extra ...any) error {
	dest := append([]any{&p.ID, &p.Name, &p.Description, &p.Logo, &p.Location, &p.OwnerID, &p.CreatedAt, &p.UpdatedAt}, extra...)
	return row.Scan(dest...)
}

// Create persiste un proyecto.
func (r *ProjectRepo) Create(ctx context.Context, p *entity.Project) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO projects (id, name, description, logo, location, owner_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		p.ID, p.Name, p.Description, p.Logo, p.Location, p.OwnerID, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert project: %w", err)
	}
	return nil
}

// GetByID obtiene un proyecto; nil si no existe.
func (r *ProjectRepo) GetByID(ctx context.Context, id string) (*entity.Project, error) {
	var p entity.Project
	err := scanProject(r.q.QueryRow(ctx, `SELECT `+projectColumns+` FROM projects p WHERE p.id = $1`, id), &p)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get project: %w", err)
	}
	return &p, nil
}

// Update actualiza los datos básicos.
func (r *ProjectRepo) Update(ctx context.Context, p *entity.Project) error {
	tag, err := r.q.Exec(ctx, `
		UPDATE projects SET name = $2, description = $3, logo = $4, location = $5, updated_at = $6
		WHERE id = $1`,
		p.ID, p.Name, p.Description, p.Logo, p.Location, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update project: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrProjectNotFound
	}
	return nil
}

// Delete elimina el proyecto; colaboradores, tareas, eventos, notas y configuración caen en cascada.
func (r *ProjectRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM projects WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete project: %w", err)
	}
	return nil
}

// ListForUser proyectos donde el usuario es dueño o colaborador, con su rol.
func (r *ProjectRepo) ListForUser(ctx context.Context, userID string) ([]*repository.ProjectWithRole, error) {
	rows, err := r.q.Query(ctx, `
		SELECT `+projectColumns+`,
			CASE WHEN p.owner_id = $1 THEN 'OWNER' ELSE c.role END AS role
		FROM projects p
		LEFT JOIN project_collaborators c ON c.project_id = p.id AND c.user_id = $1
		WHERE p.owner_id = $1 OR c.user_id IS NOT NULL
		ORDER BY p.created_at DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	defer rows.Close()
	var list []*repository.ProjectWithRole
	for rows.Next() {
		var pr repository.ProjectWithRole
		if err := scanProject(rows, &pr.Project, &pr.Role); err != nil {
			return nil, fmt.Errorf("scan project: %w", err)
		}
		list = append(list, &pr)
	}
	return list, rows.Err()
}

// MemberRole OWNER, ADMIN o MEMBER; "" si el usuario no pertenece o el proyecto no existe.
func (r *ProjectRepo) MemberRole(ctx context.Context, projectID, userID string) (string, error) {
	var role string
	err := r.q.QueryRow(ctx, `
		SELECT CASE WHEN p.owner_id = $2 THEN 'OWNER' ELSE COALESCE(c.role, '') END
		FROM projects p
		LEFT JOIN project_collaborators c ON c.project_id = p.id AND c.user_id = $2
		WHERE p.id = $1`, projectID, userID).Scan(&role)
	if err != nil {
		if isNoRows(err) {
			return "", nil
		}
		return "", fmt.Errorf("member role: %w", err)
	}
	return role, nil
}
