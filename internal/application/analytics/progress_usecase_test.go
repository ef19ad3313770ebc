package analytics

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xurp-ia/xurp-api/internal/application/access"
	"github.com/xurp-ia/xurp-api/internal/application/apptest"
	"github.com/xurp-ia/xurp-api/internal/application/dto"
	"github.com/xurp-ia/xurp-api/internal/application/ports"
	"github.com/xurp-ia/xurp-api/internal/domain"
	"github.com/xurp-ia/xurp-api/internal/domain/entity"
)

type fakeReport struct{ last *dto.ProjectReport }

func (f *fakeReport) GenerateProjectReport(r *dto.ProjectReport) ([]byte, error) {
	f.last = r
	return []byte("%PDF"), nil
}

type fakeExporter struct{ last *dto.PlanExport }

func (f *fakeExporter) ExportPlan(p *dto.PlanExport) ([]byte, error) {
	f.last = p
	return []byte("<Project/>"), nil
}

var created = time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

func setup(t *testing.T) (*ProgressUseCase, *apptest.Store, *apptest.Cache, *fakeReport, *fakeExporter) {
	t.Helper()
	s := apptest.NewStore()
	s.SeedUser("owner", "o@xurp.io", "Olga")
	s.SeedUser("ana", "a@xurp.io", "Ana")
	s.SeedProject("p1", "owner", created)
	s.SeedCollaborator("p1", "ana", entity.RoleMember, created)
	ana := "ana"
	s.SeedAITask(&entity.AITask{ID: "t1", ProjectID: "p1", Status: entity.TaskStatusCompleted, AssigneeID: &ana, DayNumber: 1, EstimatedHours: decimal.RequireFromString("2.5")})
	s.SeedAITask(&entity.AITask{ID: "t2", ProjectID: "p1", Status: entity.TaskStatusInProgress, AssigneeID: &ana, DayNumber: 1, EstimatedHours: decimal.NewFromInt(3)})
	s.SeedAITask(&entity.AITask{ID: "t3", ProjectID: "p1", Status: entity.TaskStatusPending, DayNumber: 2, EstimatedHours: decimal.NewFromInt(1)})
	require.NoError(t, s.Tasks().Create(context.Background(), &entity.Task{ID: "m1", ProjectID: "p1", Status: entity.TaskStatusCompleted, AssigneeID: &ana}))

	cache := apptest.NewCache()
	rep, exp := &fakeReport{}, &fakeExporter{}
	uc := NewProgressUseCase(Deps{
		Guard:         access.NewGuard(s.Projects()),
		Users:         s.Users(),
		Collaborators: s.Collaborators(),
		Tasks:         s.Tasks(),
		AITasks:       s.AITasks(),
		Settings:      s.Settings(),
		Cache:         cache,
		Report:        rep,
		Exporter:      exp,
	})
	uc.now = func() time.Time { return created.AddDate(0, 0, 1) }
	return uc, s, cache, rep, exp
}

func TestProgress_Totales(t *testing.T) {
	uc, _, cache, _, _ := setup(t)
	out, err := uc.Progress(context.Background(), "p1", "ana")
	require.NoError(t, err)

	assert.Equal(t, 2, out.CurrentDay)
	assert.Equal(t, dto.StatusBreakdown{Pending: 1, InProgress: 1, Completed: 1, Total: 3}, out.AITasks)
	assert.Equal(t, dto.StatusBreakdown{Completed: 1, Total: 1}, out.Tasks)
	assert.Equal(t, 1, out.Unassigned)
	assert.Equal(t, 50, out.CompletionPercent)
	assert.True(t, out.HoursTotal.Equal(decimal.RequireFromString("6.5")))
	assert.True(t, out.HoursCompleted.Equal(decimal.RequireFromString("2.5")))

	require.Len(t, out.Members, 2)
	assert.Equal(t, entity.RoleOwner, out.Members[0].Role)
	assert.Zero(t, out.Members[0].AITasks.Total)
	assert.Equal(t, 2, out.Members[1].AITasks.Total)
	assert.True(t, out.Members[1].HoursAssigned.Equal(decimal.RequireFromString("5.5")))

	assert.True(t, cache.Has(ports.ProgressKey("p1")))
}

func TestProgress_UsaCache(t *testing.T) {
	uc, s, _, _, _ := setup(t)
	first, err := uc.Progress(context.Background(), "p1", "ana")
	require.NoError(t, err)

	s.SeedAITask(&entity.AITask{ID: "t4", ProjectID: "p1", Status: entity.TaskStatusPending, DayNumber: 3})
	second, err := uc.Progress(context.Background(), "p1", "ana")
	require.NoError(t, err)
	assert.Equal(t, first.AITasks.Total, second.AITasks.Total)
}

func TestProgress_SinCache(t *testing.T) {
	uc, s, cache, _, _ := setup(t)
	cache.Down = true
	_, err := uc.Progress(context.Background(), "p1", "ana")
	require.NoError(t, err)

	s.SeedAITask(&entity.AITask{ID: "t4", ProjectID: "p1", Status: entity.TaskStatusPending, DayNumber: 3})
	out, err := uc.Progress(context.Background(), "p1", "ana")
	require.NoError(t, err)
	assert.Equal(t, 4, out.AITasks.Total)
}

func TestProgress_NoIntegrante(t *testing.T) {
	uc, s, _, _, _ := setup(t)
	s.SeedUser("ext", "e@xurp.io", "E")
	_, err := uc.Progress(context.Background(), "p1", "ext")
	assert.ErrorIs(t, err, domain.ErrNotProjectMember)
}

func TestReportYExport(t *testing.T) {
	uc, _, _, rep, exp := setup(t)
	pdf, name, err := uc.ReportPDF(context.Background(), "p1", "owner")
	require.NoError(t, err)
	assert.Equal(t, "%PDF", string(pdf))
	assert.Equal(t, "avance-p1.pdf", name)
	require.NotNil(t, rep.last)
	assert.Len(t, rep.last.AITasks, 3)
	assert.Equal(t, "Olga", rep.last.Owner.Name)

	_, name, err = uc.ExportXML(context.Background(), "p1", "ana")
	require.NoError(t, err)
	assert.Equal(t, "plan-p1.xml", name)
	require.NotNil(t, exp.last)
	assert.Equal(t, 8, exp.last.HoursPerDay)
	assert.Contains(t, exp.last.Assignees, "ana")
	assert.Contains(t, exp.last.Assignees, "owner")
}
