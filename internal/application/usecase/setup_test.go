package usecase

import (
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/xurp-ia/xurp-api/internal/application/access"
	"github.com/xurp-ia/xurp-api/internal/application/apptest"
	"github.com/xurp-ia/xurp-api/internal/domain/entity"
	"github.com/xurp-ia/xurp-api/internal/infrastructure/ai"
)

var baseTime = time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

type fixture struct {
	store    *apptest.Store
	cache    *apptest.Cache
	notifier *apptest.Notifier
	guard    *access.Guard
}

// newFixture dueño "owner", colaboradores "ana" (MEMBER) y "beto" (MEMBER), proyecto "p1"; "ext" no pertenece.
func newFixture(t *testing.T) *fixture {
	t.Helper()
	s := apptest.NewStore()
	s.SeedUser("owner", "owner@xurp.io", "Olga")
	s.SeedUser("ana", "ana@xurp.io", "Ana")
	s.SeedUser("beto", "beto@xurp.io", "Beto")
	s.SeedUser("ext", "ext@xurp.io", "Externo")
	s.SeedProject("p1", "owner", baseTime)
	s.SeedCollaborator("p1", "ana", entity.RoleMember, baseTime.Add(time.Minute))
	s.SeedCollaborator("p1", "beto", entity.RoleMember, baseTime.Add(2*time.Minute))
	return &fixture{
		store:    s,
		cache:    apptest.NewCache(),
		notifier: &apptest.Notifier{},
		guard:    access.NewGuard(s.Projects()),
	}
}

func (f *fixture) aiTasks() *AITaskUseCase {
	uc := NewAITaskUseCase(AITaskDeps{
		Guard:       f.guard,
		Projects:    f.store.Projects(),
		AITasks:     f.store.AITasks(),
		Assessments: f.store.Assessments(),
		Settings:    f.store.Settings(),
		Tx:          f.store.TxRunner(),
		Cache:       f.cache,
		AI:          ai.NewTemplateGenerator(),
		Notifier:    f.notifier,
	})
	uc.now = func() time.Time { return baseTime }
	return uc
}

func (f *fixture) seedAITasks(n, day int, level string) []string {
	ids := make([]string, 0, n)
	for i := 0; i < n; i++ {
		id := fmt.Sprintf("t-%d-%s-%02d", day, level, i)
		f.store.SeedAITask(&entity.AITask{
			ID:             id,
			ProjectID:      "p1",
			Title:          id,
			Status:         entity.TaskStatusPending,
			DayNumber:      day,
			SkillLevel:     level,
			EstimatedHours: decimal.NewFromInt(2),
			CreatedAt:      baseTime.Add(time.Duration(i) * time.Second),
		})
		ids = append(ids, id)
	}
	return ids
}

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }
