package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/xurp-ia/xurp-api/internal/domain/entity"
	"github.com/xurp-ia/xurp-api/internal/domain/repository"
)

var _ repository.SettingsRepository = (*SettingsRepo)(nil)

// SettingsRepo configuración por proyecto; working_days se guarda como JSONB.
type SettingsRepo struct {
	q Querier
}

// NewSettingsRepository construye el adaptador de persistencia para la configuración de proyectos.
func NewSettingsRepository(q Querier) *SettingsRepo {
	return &SettingsRepo{q: q}
}

// Get nil si el proyecto aún no tiene fila de configuración.
func (r *SettingsRepo) Get(ctx context.Context, projectID string) (*entity.ProjectSettings, error) {
	var (
		s    entity.ProjectSettings
		days []byte
	)
	err := r.q.QueryRow(ctx, `
		SELECT project_id, working_days, hours_per_day, timezone, auto_assign_daily, notify_on_assignment, theme, updated_at
		FROM project_settings WHERE project_id = $1`, projectID).Scan(
		&s.ProjectID, &days, &s.HoursPerDay, &s.Timezone, &s.AutoAssignDaily, &s.NotifyOnAssignment, &s.Theme, &s.UpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get settings: %w", err)
	}
	if err := json.Unmarshal(days, &s.WorkingDays); err != nil {
		return nil, fmt.Errorf("decode working days: %w", err)
	}
	return &s, nil
}

// Upsert crea o reemplaza la configuración.
func (r *SettingsRepo) Upsert(ctx context.Context, s *entity.ProjectSettings) error {
	days, err := json.Marshal(s.WorkingDays)
	if err != nil {
		return fmt.Errorf("encode working days: %w", err)
	}
	_, err = r.q.Exec(ctx, `
		INSERT INTO project_settings (project_id, working_days, hours_per_day, timezone, auto_assign_daily, notify_on_assignment, theme, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (project_id) DO UPDATE SET
			working_days = EXCLUDED.working_days,
			hours_per_day = EXCLUDED.hours_per_day,
			timezone = EXCLUDED.timezone,
			auto_assign_daily = EXCLUDED.auto_assign_daily,
			notify_on_assignment = EXCLUDED.notify_on_assignment,
			theme = EXCLUDED.theme,
			updated_at = EXCLUDED.updated_at`,
		s.ProjectID, string(days), s.HoursPerDay, s.Timezone, s.AutoAssignDaily, s.NotifyOnAssignment, s.Theme, s.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert settings: %w", err)
	}
	return nil
}

// ListAutoAssign proyectos que piden asignación diaria automática.
func (r *SettingsRepo) ListAutoAssign(ctx context.Context) ([]string, error) {
	rows, err := r.q.Query(ctx, `SELECT project_id FROM project_settings WHERE auto_assign_daily ORDER BY project_id`)
	if err != nil {
		return nil, fmt.Errorf("list auto assign: %w", err)
	}
	ids, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("scan auto assign: %w", err)
	}
	return ids, nil
}
