package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/xurp-ia/xurp-api/internal/domain"
	"github.com/xurp-ia/xurp-api/internal/domain/entity"
	"github.com/xurp-ia/xurp-api/internal/domain/repository"
)

var _ repository.AITaskRepository = (*AITaskRepo)(nil)

// AITaskRepo implementación del puerto AITaskRepository (usable con pool o tx).
type AITaskRepo struct {
	q Querier
}

// NewAITaskRepository construye el adaptador de persistencia para tareas IA.
func NewAITaskRepository(q Querier) *AITaskRepo {
	return &AITaskRepo{q: q}
}

const aiTaskColumns = `id, project_id, title, description, status, assignee_id, day_number, skill_level, estimated_hours, created_at, updated_at, completed_at`

func (r *AITaskRepo) queryList(ctx context.Context, query string, args ...any) ([]*entity.AITask, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list ai tasks: %w", err)
	}
	defer rows.Close()
	var list []*entity.AITask
	for rows.Next() {
		var t entity.AITask
		if err := rows.Scan(&t.ID, &t.ProjectID, &t.Title, &t.Description, &t.Status, &t.AssigneeID,
			&t.DayNumber, &t.SkillLevel, &t.EstimatedHours, &t.CreatedAt, &t.UpdatedAt, &t.CompletedAt); err != nil {
			return nil, fmt.Errorf("scan ai task: %w", err)
		}
		list = append(list, &t)
	}
	return list, rows.Err()
}

// CreateBatch inserta el lote en un solo round-trip.
func (r *AITaskRepo) CreateBatch(ctx context.Context, tasks []*entity.AITask) error {
	if len(tasks) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	for _, t := range tasks {
		batch.Queue(`INSERT INTO ai_tasks (`+aiTaskColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
			t.ID, t.ProjectID, t.Title, t.Description, t.Status, t.AssigneeID,
			t.DayNumber, t.SkillLevel, t.EstimatedHours, t.CreatedAt, t.UpdatedAt, t.CompletedAt,
		)
	}
	br := r.q.SendBatch(ctx, batch)
	defer br.Close()
	for range tasks {
		if _, err := br.Exec(); err != nil {
			if isUniqueViolation(err) {
				return domain.ErrDuplicate
			}
			return fmt.Errorf("insert ai task: %w", err)
		}
	}
	return br.Close()
}

// GetByID obtiene una tarea IA; nil si no existe.
func (r *AITaskRepo) GetByID(ctx context.Context, id string) (*entity.AITask, error) {
	list, err := r.queryList(ctx, `SELECT `+aiTaskColumns+` FROM ai_tasks WHERE id = $1`, id)
	if err != nil || len(list) == 0 {
		return nil, err
	}
	return list[0], nil
}

// UpdateStatus cambia el estado con control optimista sobre el estado leído.
func (r *AITaskRepo) UpdateStatus(ctx context.Context, id, from, to string, updatedAt time.Time, completedAt *time.Time) error {
	tag, err := r.q.Exec(ctx, `
		UPDATE ai_tasks SET status = $3, updated_at = $4, completed_at = $5
		WHERE id = $1 AND status = $2`,
		id, from, to, updatedAt, completedAt,
	)
	if err != nil {
		return fmt.Errorf("update ai task status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return staleOrMissing(ctx, r.q, "ai_tasks", id)
	}
	return nil
}

// UpdateAssignee reasigna la tarea sin tocar estado ni fechas de cierre.
func (r *AITaskRepo) UpdateAssignee(ctx context.Context, id string, assigneeID *string, updatedAt time.Time) error {
	tag, err := r.q.Exec(ctx, `UPDATE ai_tasks SET assignee_id = $2, updated_at = $3 WHERE id = $1`,
		id, assigneeID, updatedAt)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrInvalidInput
		}
		return fmt.Errorf("update ai task assignee: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina la tarea IA.
func (r *AITaskRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM ai_tasks WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete ai task: %w", err)
	}
	return nil
}

// ListByProject tareas del proyecto, opcionalmente de un solo día.
func (r *AITaskRepo) ListByProject(ctx context.Context, projectID string, day *int) ([]*entity.AITask, error) {
	return r.queryList(ctx, `
		SELECT `+aiTaskColumns+` FROM ai_tasks
		WHERE project_id = $1 AND ($2::int IS NULL OR day_number = $2)
		ORDER BY day_number, created_at, id`, projectID, day)
}

// ListByAssignee tareas asignadas al usuario; projectID vacío = todos sus proyectos.
func (r *AITaskRepo) ListByAssignee(ctx context.Context, userID, projectID string) ([]*entity.AITask, error) {
	return r.queryList(ctx, `
		SELECT `+aiTaskColumns+` FROM ai_tasks
		WHERE assignee_id = $1 AND ($2::uuid IS NULL OR project_id = $2)
		ORDER BY day_number, created_at, id`, userID, nullIfEmpty(projectID))
}

// ListUnassignedForUpdate bloquea las filas candidatas hasta el fin de la transacción.
// SKIP LOCKED deja fuera las que otra asignación concurrente ya tomó.
func (r *AITaskRepo) ListUnassignedForUpdate(ctx context.Context, projectID string, minDay int) ([]*entity.AITask, error) {
	return r.queryList(ctx, `
		SELECT `+aiTaskColumns+` FROM ai_tasks
		WHERE project_id = $1 AND assignee_id IS NULL AND day_number >= $2 AND status <> 'COMPLETED'
		ORDER BY day_number, created_at, id
		FOR UPDATE SKIP LOCKED`, projectID, minDay)
}

// Assign fija el asignado solo si la tarea sigue libre.
func (r *AITaskRepo) Assign(ctx context.Context, taskID, userID string) error {
	tag, err := r.q.Exec(ctx, `
		UPDATE ai_tasks SET assignee_id = $2, updated_at = now()
		WHERE id = $1 AND assignee_id IS NULL`, taskID, userID)
	if err != nil {
		return fmt.Errorf("assign ai task: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrConflict
	}
	return nil
}

// UnassignOpen libera las tareas IA no completadas del usuario en el proyecto.
func (r *AITaskRepo) UnassignOpen(ctx context.Context, projectID, userID string) (int64, error) {
	tag, err := r.q.Exec(ctx, `
		UPDATE ai_tasks SET assignee_id = NULL, updated_at = now()
		WHERE project_id = $1 AND assignee_id = $2 AND status <> 'COMPLETED'`, projectID, userID)
	if err != nil {
		return 0, fmt.Errorf("unassign ai tasks: %w", err)
	}
	return tag.RowsAffected(), nil
}

// Stats conteo y suma de horas por estado y asignado.
func (r *AITaskRepo) Stats(ctx context.Context, projectID string) ([]repository.AITaskStats, error) {
	rows, err := r.q.Query(ctx, `
		SELECT assignee_id, status, count(*), COALESCE(sum(estimated_hours), 0)
		FROM ai_tasks WHERE project_id = $1
		GROUP BY assignee_id, status`, projectID)
	if err != nil {
		return nil, fmt.Errorf("ai task stats: %w", err)
	}
	defer rows.Close()
	var out []repository.AITaskStats
	for rows.Next() {
		var s repository.AITaskStats
		if err := rows.Scan(&s.AssigneeID, &s.Status, &s.Count, &s.Hours); err != nil {
			return nil, fmt.Errorf("scan ai task stats: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}
