package postgres

import (
	"context"
	"fmt"

	"github.com/xurp-ia/xurp-api/internal/domain/entity"
	"github.com/xurp-ia/xurp-api/internal/domain/repository"
)

var _ repository.EvaluationRepository = (*EvaluationRepo)(nil)

// EvaluationRepo implementación del puerto EvaluationRepository (usable con pool o tx).
type EvaluationRepo struct {
	q Querier
}

// NewEvaluationRepository construye el adaptador de persistencia para evaluaciones técnicas.
func NewEvaluationRepository(q Querier) *EvaluationRepo {
	return &EvaluationRepo{q: q}
}

const evaluationColumns = `id, user_id, project_id, technology, profession, level, score, questions_data, created_at`

func (r *EvaluationRepo) queryList(ctx context.Context, query string, args ...any) ([]*entity.UserEvaluation, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list evaluations: %w", err)
	}
	defer rows.Close()
	var list []*entity.UserEvaluation
	for rows.Next() {
		var e entity.UserEvaluation
		if err := rows.Scan(&e.ID, &e.UserID, &e.ProjectID, &e.Technology, &e.Profession, &e.Level,
			&e.Score, &e.QuestionsData, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan evaluation: %w", err)
		}
		list = append(list, &e)
	}
	return list, rows.Err()
}

// Create persiste la evaluación.
func (r *EvaluationRepo) Create(ctx context.Context, e *entity.UserEvaluation) error {
	_, err := r.q.Exec(ctx, `INSERT INTO user_evaluations (`+evaluationColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		e.ID, e.UserID, e.ProjectID, e.Technology, e.Profession, e.Level, e.Score, e.QuestionsData, e.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert evaluation: %w", err)
	}
	return nil
}

// GetByID obtiene una evaluación; nil si no existe.
func (r *EvaluationRepo) GetByID(ctx context.Context, id string) (*entity.UserEvaluation, error) {
	list, err := r.queryList(ctx, `SELECT `+evaluationColumns+` FROM user_evaluations WHERE id = $1`, id)
	if err != nil || len(list) == 0 {
		return nil, err
	}
	return list[0], nil
}

// Delete elimina la evaluación.
func (r *EvaluationRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM user_evaluations WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete evaluation: %w", err)
	}
	return nil
}

// ListByUser evaluaciones del usuario, más recientes primero; projectID vacío = todas.
func (r *EvaluationRepo) ListByUser(ctx context.Context, userID, projectID string) ([]*entity.UserEvaluation, error) {
	return r.queryList(ctx, `
		SELECT `+evaluationColumns+` FROM user_evaluations
		WHERE user_id = $1 AND ($2::uuid IS NULL OR project_id = $2)
		ORDER BY created_at DESC`, userID, nullIfEmpty(projectID))
}

// ListByProject evaluaciones de todos los integrantes del proyecto.
func (r *EvaluationRepo) ListByProject(ctx context.Context, projectID string) ([]*entity.UserEvaluation, error) {
	return r.queryList(ctx, `
		SELECT `+evaluationColumns+` FROM user_evaluations
		WHERE project_id = $1 ORDER BY created_at DESC`, projectID)
}

// Count evaluaciones existentes para la tupla.
func (r *EvaluationRepo) Count(ctx context.Context, t repository.EvaluationTuple) (int, error) {
	var n int
	err := r.q.QueryRow(ctx, `
		SELECT count(*) FROM user_evaluations
		WHERE user_id = $1 AND project_id = $2 AND technology = $3`,
		t.UserID, t.ProjectID, t.Technology).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count evaluations: %w", err)
	}
	return n, nil
}

// LockTuple toma un advisory lock de transacción sobre la tupla: dos envíos simultáneos
// no pueden contar a la vez y superar el límite.
func (r *EvaluationRepo) LockTuple(ctx context.Context, t repository.EvaluationTuple) error {
	key := t.UserID + "|" + t.ProjectID + "|" + t.Technology
	if _, err := r.q.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`, key); err != nil {
		return fmt.Errorf("lock evaluation tuple: %w", err)
	}
	return nil
}

// deleteBeyondLimitCTE filas que exceden el límite de la membresía vigente, conservando las más recientes.
// Debe coincidir con la tabla de membership.EvaluationLimit.
const deleteBeyondLimitCTE = `
	WITH ranked AS (
		SELECT e.id,
			row_number() OVER (PARTITION BY e.user_id, e.project_id, e.technology ORDER BY e.created_at DESC) AS rn,
			CASE
				WHEN u.membership_type = 'ENTERPRISE' AND (u.membership_expires_at IS NULL OR u.membership_expires_at > now()) THEN NULL
				WHEN u.membership_type = 'PRO' AND (u.membership_expires_at IS NULL OR u.membership_expires_at > now()) THEN 3
				ELSE 1
			END AS max_allowed
		FROM user_evaluations e
		JOIN users u ON u.id = e.user_id
		WHERE e.project_id IS NOT NULL
	),
	excess AS (
		SELECT id FROM ranked WHERE max_allowed IS NOT NULL AND rn > max_allowed
	)`

// DeleteBeyondLimit reparación de datos heredados.
func (r *EvaluationRepo) DeleteBeyondLimit(ctx context.Context, dryRun bool) (int64, error) {
	if dryRun {
		var n int64
		if err := r.q.QueryRow(ctx, deleteBeyondLimitCTE+` SELECT count(*) FROM excess`).Scan(&n); err != nil {
			return 0, fmt.Errorf("count excess evaluations: %w", err)
		}
		return n, nil
	}
	tag, err := r.q.Exec(ctx, deleteBeyondLimitCTE+` DELETE FROM user_evaluations WHERE id IN (SELECT id FROM excess)`)
	if err != nil {
		return 0, fmt.Errorf("delete excess evaluations: %w", err)
	}
	return tag.RowsAffected(), nil
}
