package postgres

import (
	"context"
	"fmt"

	"github.com/xurp-ia/xurp-api/internal/domain"
	"github.com/xurp-ia/xurp-api/internal/domain/entity"
	"github.com/xurp-ia/xurp-api/internal/domain/repository"
)

var _ repository.CollaboratorRepository = (*CollaboratorRepo)(nil)

// CollaboratorRepo implementación del puerto CollaboratorRepository (usable con pool o tx).
type CollaboratorRepo struct {
	q Querier
}

// NewCollaboratorRepository construye el adaptador de persistencia para colaboradores.
func NewCollaboratorRepository(q Querier) *CollaboratorRepo {
	return &CollaboratorRepo{q: q}
}

// Add inserta en una sola sentencia condicionada a que el usuario no sea el dueño,
// así no hay carrera entre la verificación y el INSERT.
func (r *CollaboratorRepo) Add(ctx context.Context, c *entity.Collaborator) error {
	tag, err := r.q.Exec(ctx, `
		INSERT INTO project_collaborators (project_id, user_id, role, created_at)
		SELECT p.id, $2, $3, $4 FROM projects p
		WHERE p.id = $1 AND p.owner_id <> $2`,
		c.ProjectID, c.UserID, c.Role, c.CreatedAt,
	)
	if err != nil {
		switch {
		case isUniqueViolation(err):
			return domain.ErrDuplicate
		case isCheckViolation(err):
			return domain.ErrOwnerCannotCollaborate
		case isForeignKeyViolation(err):
			return domain.ErrUserNotFound
		}
		return fmt.Errorf("insert collaborator: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrOwnerCannotCollaborate
	}
	return nil
}

const collaboratorSelect = `
	SELECT c.project_id, c.user_id, c.role, c.created_at, u.email, u.name, u.profession
	FROM project_collaborators c
	JOIN users u ON u.id = c.user_id`

// Get colaborador con datos del usuario; nil si no existe.
func (r *CollaboratorRepo) Get(ctx context.Context, projectID, userID string) (*entity.Collaborator, error) {
	var c entity.Collaborator
	err := r.q.QueryRow(ctx, collaboratorSelect+` WHERE c.project_id = $1 AND c.user_id = $2`, projectID, userID).Scan(
		&c.ProjectID, &c.UserID, &c.Role, &c.CreatedAt, &c.Email, &c.Name, &c.Profession,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get collaborator: %w", err)
	}
	return &c, nil
}

// ListByProject colaboradores por orden de ingreso.
func (r *CollaboratorRepo) ListByProject(ctx context.Context, projectID string) ([]*entity.Collaborator, error) {
	rows, err := r.q.Query(ctx, collaboratorSelect+` WHERE c.project_id = $1 ORDER BY c.created_at, c.user_id`, projectID)
	if err != nil {
		return nil, fmt.Errorf("list collaborators: %w", err)
	}
	defer rows.Close()
	var list []*entity.Collaborator
	for rows.Next() {
		var c entity.Collaborator
		if err := rows.Scan(&c.ProjectID, &c.UserID, &c.Role, &c.CreatedAt, &c.Email, &c.Name, &c.Profession); err != nil {
			return nil, fmt.Errorf("scan collaborator: %w", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}

// UpdateRole cambia el rol; ErrNotFound si no es colaborador.
func (r *CollaboratorRepo) UpdateRole(ctx context.Context, projectID, userID, role string) error {
	tag, err := r.q.Exec(ctx,
		`UPDATE project_collaborators SET role = $3 WHERE project_id = $1 AND user_id = $2`,
		projectID, userID, role,
	)
	if err != nil {
		return fmt.Errorf("update collaborator role: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Remove elimina al colaborador del proyecto.
func (r *CollaboratorRepo) Remove(ctx context.Context, projectID, userID string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM project_collaborators WHERE project_id = $1 AND user_id = $2`, projectID, userID); err != nil {
		return fmt.Errorf("remove collaborator: %w", err)
	}
	return nil
}

// DeleteOwnerRows limpia filas heredadas donde el dueño figura como colaborador.
func (r *CollaboratorRepo) DeleteOwnerRows(ctx context.Context, dryRun bool) (int64, error) {
	if dryRun {
		var n int64
		err := r.q.QueryRow(ctx, `
			SELECT count(*) FROM project_collaborators c
			JOIN projects p ON p.id = c.project_id AND p.owner_id = c.user_id`).Scan(&n)
		if err != nil {
			return 0, fmt.Errorf("count owner collaborators: %w", err)
		}
		return n, nil
	}
	tag, err := r.q.Exec(ctx, `
		DELETE FROM project_collaborators c
		USING projects p
		WHERE p.id = c.project_id AND p.owner_id = c.user_id`)
	if err != nil {
		return 0, fmt.Errorf("delete owner collaborators: %w", err)
	}
	return tag.RowsAffected(), nil
}
