package usecase

import (
	"context"
	"sort"
	"time"

	"github.com/xurp-ia/xurp-api/internal/application/access"
	"github.com/xurp-ia/xurp-api/internal/application/dto"
	"github.com/xurp-ia/xurp-api/internal/domain"
	"github.com/xurp-ia/xurp-api/internal/domain/entity"
	"github.com/xurp-ia/xurp-api/internal/domain/repository"
)

// SettingsUseCase configuración del proyecto guardada en el servidor.
type SettingsUseCase struct {
	guard    *access.Guard
	settings repository.SettingsRepository
	now      func() time.Time
}

// NewSettingsUseCase construye el caso de uso.
func NewSettingsUseCase(guard *access.Guard, settings repository.SettingsRepository) *SettingsUseCase {
	return &SettingsUseCase{guard: guard, settings: settings, now: time.Now}
}

// Get devuelve la configuración; si nunca se guardó, la configuración por defecto.
func (uc *SettingsUseCase) Get(ctx context.Context, projectID, userID string) (*dto.ProjectSettingsDTO, error) {
	m, err := uc.guard.RequireMember(ctx, projectID, userID)
	if err != nil {
		return nil, err
	}
	s, err := uc.settings.Get(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if s == nil {
		s = entity.DefaultProjectSettings(projectID, m.Project.CreatedAt)
	}
	out := toSettingsDTO(s)
	return &out, nil
}

// Update reemplaza la configuración. Requiere OWNER o ADMIN.
func (uc *SettingsUseCase) Update(ctx context.Context, projectID, userID string, in dto.ProjectSettingsDTO) (*dto.ProjectSettingsDTO, error) {
	if _, err := uc.guard.RequireManager(ctx, projectID, userID); err != nil {
		return nil, err
	}
	if _, err := time.LoadLocation(in.Timezone); err != nil || in.HoursPerDay < 1 || in.HoursPerDay > 24 {
		return nil, domain.ErrInvalidInput
	}
	days, err := normalizeWorkingDays(in.WorkingDays)
	if err != nil {
		return nil, err
	}
	s := &entity.ProjectSettings{
		ProjectID:          projectID,
		WorkingDays:        days,
		HoursPerDay:        in.HoursPerDay,
		Timezone:           in.Timezone,
		AutoAssignDaily:    in.AutoAssignDaily,
		NotifyOnAssignment: in.NotifyOnAssignment,
		Theme:              in.Theme,
		UpdatedAt:          uc.now(),
	}
	if err := uc.settings.Upsert(ctx, s); err != nil {
		return nil, err
	}
	out := toSettingsDTO(s)
	return &out, nil
}

func normalizeWorkingDays(in []int) ([]int, error) {
	if len(in) == 0 {
		return nil, domain.ErrInvalidInput
	}
	seen := make(map[int]bool, len(in))
	out := make([]int, 0, len(in))
	for _, d := range in {
		if d < 1 || d > 7 {
			return nil, domain.ErrInvalidInput
		}
		if !seen[d] {
			seen[d] = true
			out = append(out, d)
		}
	}
	sort.Ints(out)
	return out, nil
}
