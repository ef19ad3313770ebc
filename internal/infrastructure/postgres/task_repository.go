package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/xurp-ia/xurp-api/internal/domain"
	"github.com/xurp-ia/xurp-api/internal/domain/entity"
	"github.com/xurp-ia/xurp-api/internal/domain/repository"
)

var _ repository.TaskRepository = (*TaskRepo)(nil)

// TaskRepo implementación del puerto TaskRepository (usable con pool o tx).
type TaskRepo struct {
	q Querier
}

// NewTaskRepository construye el adaptador de persistencia para tareas manuales.
func NewTaskRepository(q Querier) *TaskRepo {
	return &TaskRepo{q: q}
}

const taskColumns = `id, project_id, title, description, status, assignee_id, created_by, created_at, updated_at, completed_at`

func scanTask(row interface{ Scan(...any) error }) (*entity.Task, error) {
	var t entity.Task
	err := row.Scan(&t.ID, &t.ProjectID, &t.Title, &t.Description, &t.Status, &t.AssigneeID,
		&t.CreatedBy, &t.CreatedAt, &t.UpdatedAt, &t.CompletedAt)
	return &t, err
}

// Create persiste una tarea.
func (r *TaskRepo) Create(ctx context.Context, t *entity.Task) error {
	_, err := r.q.Exec(ctx, `INSERT INTO tasks (`+taskColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		t.ID, t.ProjectID, t.Title, t.Description, t.Status, t.AssigneeID, t.CreatedBy, t.CreatedAt, t.UpdatedAt, t.CompletedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrInvalidInput
		}
		return fmt.Errorf("insert task: %w", err)
	}
	return nil
}

// GetByID obtiene una tarea; nil si no existe.
func (r *TaskRepo) GetByID(ctx context.Context, id string) (*entity.Task, error) {
	t, err := scanTask(r.q.QueryRow(ctx, `SELECT `+taskColumns+` FROM tasks WHERE id = $1`, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get task: %w", err)
	}
	return t, nil
}

// UpdateDetails guarda título, descripción y asignado.
func (r *TaskRepo) UpdateDetails(ctx context.Context, t *entity.Task) error {
	tag, err := r.q.Exec(ctx, `
		UPDATE tasks SET title = $2, description = $3, assignee_id = $4, updated_at = $5
		WHERE id = $1`,
		t.ID, t.Title, t.Description, t.AssigneeID, t.UpdatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrInvalidInput
		}
		return fmt.Errorf("update task: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// UpdateStatus cambia el estado con control optimista sobre el estado leído.
func (r *TaskRepo) UpdateStatus(ctx context.Context, id, from, to string, updatedAt time.Time, completedAt *time.Time) error {
	tag, err := r.q.Exec(ctx, `
		UPDATE tasks SET status = $3, updated_at = $4, completed_at = $5
		WHERE id = $1 AND status = $2`,
		id, from, to, updatedAt, completedAt,
	)
	if err != nil {
		return fmt.Errorf("update task status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return staleOrMissing(ctx, r.q, "tasks", id)
	}
	return nil
}

// Delete elimina la tarea.
func (r *TaskRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM tasks WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	return nil
}

// List tareas del proyecto con filtros opcionales de estado y asignado.
func (r *TaskRepo) List(ctx context.Context, f repository.TaskFilter) ([]*entity.Task, error) {
	where := []string{"project_id = $1"}
	args := []any{f.ProjectID}
	if f.Status != "" {
		args = append(args, f.Status)
		where = append(where, fmt.Sprintf("status = $%d", len(args)))
	}
	if f.AssigneeID != "" {
		args = append(args, f.AssigneeID)
		where = append(where, fmt.Sprintf("assignee_id = $%d", len(args)))
	}
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE ` + strings.Join(where, " AND ") + ` ORDER BY created_at DESC`
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	defer rows.Close()
	var list []*entity.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("scan task: %w", err)
		}
		list = append(list, t)
	}
	return list, rows.Err()
}

// UnassignOpen libera las tareas no completadas del usuario en el proyecto.
func (r *TaskRepo) UnassignOpen(ctx context.Context, projectID, userID string) (int64, error) {
	tag, err := r.q.Exec(ctx, `
		UPDATE tasks SET assignee_id = NULL, updated_at = now()
		WHERE project_id = $1 AND assignee_id = $2 AND status <> 'COMPLETED'`, projectID, userID)
	if err != nil {
		return 0, fmt.Errorf("unassign tasks: %w", err)
	}
	return tag.RowsAffected(), nil
}

// CountByStatus conteo agrupado por estado y asignado.
func (r *TaskRepo) CountByStatus(ctx context.Context, projectID string) ([]repository.StatusCount, error) {
	rows, err := r.q.Query(ctx, `
		SELECT assignee_id, status, count(*) FROM tasks
		WHERE project_id = $1 GROUP BY assignee_id, status`, projectID)
	if err != nil {
		return nil, fmt.Errorf("count tasks: %w", err)
	}
	defer rows.Close()
	var out []repository.StatusCount
	for rows.Next() {
		var c repository.StatusCount
		if err := rows.Scan(&c.AssigneeID, &c.Status, &c.Count); err != nil {
			return nil, fmt.Errorf("scan task count: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}
