package repository

import (
	"context"

	"github.com/xurp-ia/xurp-api/internal/domain/entity"
)

// SettingsRepository define el puerto de persistencia para ProjectSettings.
type SettingsRepository interface {
	Get(ctx context.Context, projectID string) (*entity.ProjectSettings, error)
	Upsert(ctx context.Context, s *entity.ProjectSettings) error
	// ListAutoAssign IDs de los proyectos con autoAssignDaily activo, ordenados.
	ListAutoAssign(ctx context.Context) ([]string, error)
}
