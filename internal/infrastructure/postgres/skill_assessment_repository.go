package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/xurp-ia/xurp-api/internal/domain"
	"github.com/xurp-ia/xurp-api/internal/domain/entity"
	"github.com/xurp-ia/xurp-api/internal/domain/repository"
)

var _ repository.SkillAssessmentRepository = (*SkillAssessmentRepo)(nil)

// SkillAssessmentRepo implementación del puerto SkillAssessmentRepository.
type SkillAssessmentRepo struct {
	q Querier
}

// NewSkillAssessmentRepository construye el adaptador de persistencia para evaluaciones de habilidades.
func NewSkillAssessmentRepository(q Querier) *SkillAssessmentRepo {
	return &SkillAssessmentRepo{q: q}
}

const assessmentColumns = `id, user_id, project_id, status, score, skill_level, questions, answers, timed_out, started_at, expires_at, completed_at`

func (r *SkillAssessmentRepo) queryList(ctx context.Context, query string, args ...any) ([]*entity.SkillAssessment, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list assessments: %w", err)
	}
	defer rows.Close()
	var list []*entity.SkillAssessment
	for rows.Next() {
		var a entity.SkillAssessment
		if err := rows.Scan(&a.ID, &a.UserID, &a.ProjectID, &a.Status, &a.Score, &a.SkillLevel,
			&a.Questions, &a.Answers, &a.TimedOut, &a.StartedAt, &a.ExpiresAt, &a.CompletedAt); err != nil {
			return nil, fmt.Errorf("scan assessment: %w", err)
		}
		list = append(list, &a)
	}
	return list, rows.Err()
}

// Create persiste la evaluación iniciada.
func (r *SkillAssessmentRepo) Create(ctx context.Context, a *entity.SkillAssessment) error {
	_, err := r.q.Exec(ctx, `INSERT INTO skill_assessments (`+assessmentColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		a.ID, a.UserID, a.ProjectID, a.Status, a.Score, a.SkillLevel, a.Questions, a.Answers,
		a.TimedOut, a.StartedAt, a.ExpiresAt, a.CompletedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert assessment: %w", err)
	}
	return nil
}

// GetByID obtiene una evaluación; nil si no existe.
func (r *SkillAssessmentRepo) GetByID(ctx context.Context, id string) (*entity.SkillAssessment, error) {
	list, err := r.queryList(ctx, `SELECT `+assessmentColumns+` FROM skill_assessments WHERE id = $1`, id)
	if err != nil || len(list) == 0 {
		return nil, err
	}
	return list[0], nil
}

// Complete guarda el resultado. El filtro por estado impide un segundo envío concurrente.
func (r *SkillAssessmentRepo) Complete(ctx context.Context, a *entity.SkillAssessment) error {
	tag, err := r.q.Exec(ctx, `
		UPDATE skill_assessments
		SET status = $2, score = $3, skill_level = $4, answers = $5, timed_out = $6, completed_at = $7
		WHERE id = $1 AND status = 'STARTED'`,
		a.ID, a.Status, a.Score, a.SkillLevel, a.Answers, a.TimedOut, a.CompletedAt,
	)
	if err != nil {
		return fmt.Errorf("complete assessment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		existing, err := r.GetByID(ctx, a.ID)
		if err != nil {
			return err
		}
		if existing == nil {
			return domain.ErrNotFound
		}
		return domain.ErrAssessmentCompleted
	}
	return nil
}

// FindActive evaluación iniciada y no vencida del usuario en el proyecto.
func (r *SkillAssessmentRepo) FindActive(ctx context.Context, userID, projectID string, now time.Time) (*entity.SkillAssessment, error) {
	list, err := r.queryList(ctx, `
		SELECT `+assessmentColumns+` FROM skill_assessments
		WHERE user_id = $1 AND project_id = $2 AND status = 'STARTED' AND expires_at > $3
		ORDER BY started_at DESC LIMIT 1`, userID, projectID, now)
	if err != nil || len(list) == 0 {
		return nil, err
	}
	return list[0], nil
}

// DiscardExpired borra las evaluaciones abiertas y vencidas para liberar el índice único parcial.
func (r *SkillAssessmentRepo) DiscardExpired(ctx context.Context, userID, projectID string, now time.Time) (int64, error) {
	tag, err := r.q.Exec(ctx, `
		DELETE FROM skill_assessments
		WHERE user_id = $1 AND project_id = $2 AND status = 'STARTED' AND expires_at <= $3`,
		userID, projectID, now)
	if err != nil {
		return 0, fmt.Errorf("discard expired assessments: %w", err)
	}
	return tag.RowsAffected(), nil
}

// ListByUser evaluaciones del usuario; projectID vacío = todas.
func (r *SkillAssessmentRepo) ListByUser(ctx context.Context, userID, projectID string) ([]*entity.SkillAssessment, error) {
	return r.queryList(ctx, `
		SELECT `+assessmentColumns+` FROM skill_assessments
		WHERE user_id = $1 AND ($2::uuid IS NULL OR project_id = $2)
		ORDER BY started_at DESC`, userID, nullIfEmpty(projectID))
}

// LatestCompletedByProject una fila por usuario: su última evaluación completada.
func (r *SkillAssessmentRepo) LatestCompletedByProject(ctx context.Context, projectID string) ([]*entity.SkillAssessment, error) {
	return r.queryList(ctx, `
		SELECT DISTINCT ON (user_id) `+assessmentColumns+` FROM skill_assessments
		WHERE project_id = $1 AND status = 'COMPLETED' AND completed_at IS NOT NULL
		ORDER BY user_id, completed_at DESC`, projectID)
}
