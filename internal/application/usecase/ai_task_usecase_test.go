package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xurp-ia/xurp-api/internal/application/apptest"
	"github.com/xurp-ia/xurp-api/internal/application/dto"
	"github.com/xurp-ia/xurp-api/internal/application/ports"
	"github.com/xurp-ia/xurp-api/internal/domain"
	"github.com/xurp-ia/xurp-api/internal/domain/entity"
	"github.com/xurp-ia/xurp-api/internal/domain/repository"
)

func assignedCount(tasks []*entity.AITask) map[string]int {
	out := map[string]int{}
	for _, t := range tasks {
		if t.AssigneeID != nil {
			out[*t.AssigneeID]++
		}
	}
	return out
}

func TestAssignDaily_DuenoNuncaRecibeTareas(t *testing.T) {
	f := newFixture(t)
	f.seedAITasks(5, 1, entity.SkillPrincipiante)
	uc := f.aiTasks()

	resp, err := uc.AssignDaily(context.Background(), "p1", "owner", dto.AssignDailyRequest{})
	require.NoError(t, err)
	assert.Equal(t, 5, resp.AssignedTasks)
	assert.Equal(t, 1, resp.CurrentDay)
	assert.Len(t, resp.Assignments, 5)

	counts := assignedCount(f.store.AllAITasks())
	assert.Zero(t, counts["owner"])
	assert.Contains(t, []int{2, 3}, counts["ana"])
	assert.Contains(t, []int{2, 3}, counts["beto"])
	assert.Equal(t, 5, counts["ana"]+counts["beto"])
	assert.Equal(t, 1, f.store.TxCount)
}

func TestAssignDaily_FilaHeredadaDelDuenoSeIgnora(t *testing.T) {
	f := newFixture(t)
	f.store.SeedCollaborator("p1", "owner", entity.RoleAdmin, baseTime)
	f.seedAITasks(4, 1, entity.SkillPrincipiante)

	_, err := f.aiTasks().AssignDaily(context.Background(), "p1", "owner", dto.AssignDailyRequest{})
	require.NoError(t, err)
	counts := assignedCount(f.store.AllAITasks())
	assert.Zero(t, counts["owner"])
	assert.Equal(t, 2, counts["ana"])
	assert.Equal(t, 2, counts["beto"])
}

func TestAssignDaily_SinColaboradores(t *testing.T) {
	f := newFixture(t)
	f.store.SeedProject("solo", "owner", baseTime)
	f.store.SeedAITask(&entity.AITask{ID: "x1", ProjectID: "solo", Status: entity.TaskStatusPending, DayNumber: 1, SkillLevel: entity.SkillPrincipiante})

	resp, err := f.aiTasks().AssignDaily(context.Background(), "solo", "owner", dto.AssignDailyRequest{})
	require.NoError(t, err)
	assert.Zero(t, resp.AssignedTasks)
	assert.NotEmpty(t, resp.Message)
	assert.Nil(t, f.store.AITask("x1").AssigneeID)
}

func TestAssignDaily_SinTareas(t *testing.T) {
	f := newFixture(t)
	resp, err := f.aiTasks().AssignDaily(context.Background(), "p1", "owner", dto.AssignDailyRequest{})
	require.NoError(t, err)
	assert.Zero(t, resp.AssignedTasks)
	assert.Equal(t, "No hay tareas pendientes por asignar", resp.Message)
	assert.Empty(t, resp.Assignments)
}

func TestAssignDaily_TodoONada(t *testing.T) {
	f := newFixture(t)
	f.seedAITasks(4, 1, entity.SkillPrincipiante)
	f.store.FailAssignAfter = 2

	_, err := f.aiTasks().AssignDaily(context.Background(), "p1", "owner", dto.AssignDailyRequest{})
	require.Error(t, err)
	assert.Empty(t, assignedCount(f.store.AllAITasks()))
	assert.False(t, f.cache.Has(ports.AssignLockKey("p1")), "el candado se libera aunque falle")
}

func TestAssignDaily_CandadoOcupado(t *testing.T) {
	f := newFixture(t)
	f.seedAITasks(2, 1, entity.SkillPrincipiante)
	_, ok, err := f.cache.AcquireLock(context.Background(), ports.AssignLockKey("p1"), time.Minute)
	require.NoError(t, err)
	require.True(t, ok)

	_, err = f.aiTasks().AssignDaily(context.Background(), "p1", "owner", dto.AssignDailyRequest{})
	assert.ErrorIs(t, err, domain.ErrAssignmentInProgress)
	assert.Empty(t, assignedCount(f.store.AllAITasks()))
}

func TestAssignDaily_SoloAdministradores(t *testing.T) {
	f := newFixture(t)
	_, err := f.aiTasks().AssignDaily(context.Background(), "p1", "ana", dto.AssignDailyRequest{})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = f.aiTasks().AssignDaily(context.Background(), "p1", "ext", dto.AssignDailyRequest{})
	assert.ErrorIs(t, err, domain.ErrNotProjectMember)
}

func TestAssignDaily_OmiteDiasPasadosYFiltraPorDia(t *testing.T) {
	f := newFixture(t)
	past := f.seedAITasks(2, 1, entity.SkillPrincipiante)
	f.seedAITasks(2, 3, entity.SkillPrincipiante)
	day4 := f.seedAITasks(2, 4, entity.SkillPrincipiante)
	uc := f.aiTasks()
	uc.now = func() time.Time { return baseTime.AddDate(0, 0, 2) } // día 3

	resp, err := uc.AssignDaily(context.Background(), "p1", "owner", dto.AssignDailyRequest{Day: intPtr(3)})
	require.NoError(t, err)
	assert.Equal(t, 3, resp.CurrentDay)
	assert.Equal(t, 2, resp.AssignedTasks)
	for _, id := range past {
		assert.Nil(t, f.store.AITask(id).AssigneeID)
	}
	for _, id := range day4 {
		assert.Nil(t, f.store.AITask(id).AssigneeID)
	}
}

func TestAssignDaily_PorHabilidad(t *testing.T) {
	f := newFixture(t)
	done := baseTime.Add(time.Hour)
	f.store.SeedAssessment(&entity.SkillAssessment{ID: "a1", UserID: "beto", ProjectID: "p1", Status: entity.AssessmentCompleted, SkillLevel: entity.SkillAvanzado, CompletedAt: &done})
	advanced := f.seedAITasks(2, 1, entity.SkillAvanzado)

	_, err := f.aiTasks().AssignDaily(context.Background(), "p1", "owner", dto.AssignDailyRequest{BySkill: true})
	require.NoError(t, err)
	for _, id := range advanced {
		require.NotNil(t, f.store.AITask(id).AssigneeID)
		assert.Equal(t, "beto", *f.store.AITask(id).AssigneeID)
	}
}

func TestAssignDaily_Notifica(t *testing.T) {
	f := newFixture(t)
	f.seedAITasks(2, 1, entity.SkillPrincipiante)
	_, err := f.aiTasks().AssignDaily(context.Background(), "p1", "owner", dto.AssignDailyRequest{})
	require.NoError(t, err)
	assert.Len(t, f.notifier.For("ana"), 1)
	assert.Len(t, f.notifier.For("beto"), 1)
	assert.Empty(t, f.notifier.For("owner"))
}

func TestGenerate_PersisteEnTransaccion(t *testing.T) {
	f := newFixture(t)
	uc := f.aiTasks()
	out, err := uc.Generate(context.Background(), "owner", dto.GenerateAITasksRequest{ProjectID: "p1", Days: 2, TasksPerDay: 3})
	require.NoError(t, err)
	assert.Len(t, out, 6)
	assert.Len(t, f.store.AllAITasks(), 6)
	assert.Equal(t, 1, f.store.TxCount)

	_, err = uc.Generate(context.Background(), "ana", dto.GenerateAITasksRequest{ProjectID: "p1", Days: 1, TasksPerDay: 1})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestUpdateStatus_CompletadoEsTerminal(t *testing.T) {
	f := newFixture(t)
	ids := f.seedAITasks(1, 1, entity.SkillPrincipiante)
	uc := f.aiTasks()
	_, err := uc.UpdateAssignee(context.Background(), ids[0], "owner", strPtr("ana"))
	require.NoError(t, err)

	_, err = uc.UpdateStatus(context.Background(), ids[0], "beto", entity.TaskStatusInProgress)
	assert.ErrorIs(t, err, domain.ErrForbidden, "solo el asignado o un administrador")

	out, err := uc.UpdateStatus(context.Background(), ids[0], "ana", entity.TaskStatusCompleted)
	require.NoError(t, err)
	assert.NotNil(t, out.CompletedAt)

	for _, to := range []string{entity.TaskStatusPending, entity.TaskStatusInProgress} {
		_, err = uc.UpdateStatus(context.Background(), ids[0], "owner", to)
		assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	}
	assert.Equal(t, entity.TaskStatusCompleted, f.store.AITask(ids[0]).Status)
}

func TestUpdateAssignee_DebeSerIntegrante(t *testing.T) {
	f := newFixture(t)
	ids := f.seedAITasks(1, 1, entity.SkillPrincipiante)
	_, err := f.aiTasks().UpdateAssignee(context.Background(), ids[0], "owner", strPtr("ext"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	out, err := f.aiTasks().UpdateAssignee(context.Background(), ids[0], "owner", nil)
	require.NoError(t, err)
	assert.Nil(t, out.AssigneeID)
}

// aiTasksAfterRead ejecuta afterRead una sola vez, justo después de leer la tarea.
type aiTasksAfterRead struct {
	repository.AITaskRepository
	afterRead func()
}

func (r *aiTasksAfterRead) GetByID(ctx context.Context, id string) (*entity.AITask, error) {
	task, err := r.AITaskRepository.GetByID(ctx, id)
	if fn := r.afterRead; fn != nil {
		r.afterRead = nil
		fn()
	}
	return task, err
}

func TestUpdateAssignee_ConservaCierreConcurrente(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	ids := f.seedAITasks(1, 1, entity.SkillPrincipiante)
	_, err := f.aiTasks().UpdateAssignee(ctx, ids[0], "owner", strPtr("ana"))
	require.NoError(t, err)

	uc := f.aiTasks()
	uc.aiTasks = &aiTasksAfterRead{
		AITaskRepository: f.store.AITasks(),
		afterRead: func() {
			_, err := f.aiTasks().UpdateStatus(ctx, ids[0], "ana", entity.TaskStatusCompleted)
			require.NoError(t, err)
		},
	}
	out, err := uc.UpdateAssignee(ctx, ids[0], "owner", strPtr("beto"))
	require.NoError(t, err)
	assert.Equal(t, "beto", *out.AssigneeID)

	got := f.store.AITask(ids[0])
	assert.Equal(t, entity.TaskStatusCompleted, got.Status)
	assert.NotNil(t, got.CompletedAt)
	require.NotNil(t, got.AssigneeID)
	assert.Equal(t, "beto", *got.AssigneeID)
}

func TestUpdateStatus_EstadoLeidoDesactualizado(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	ids := f.seedAITasks(1, 1, entity.SkillPrincipiante)
	_, err := f.aiTasks().UpdateAssignee(ctx, ids[0], "owner", strPtr("ana"))
	require.NoError(t, err)

	uc := f.aiTasks()
	uc.aiTasks = &aiTasksAfterRead{
		AITaskRepository: f.store.AITasks(),
		afterRead: func() {
			_, err := f.aiTasks().UpdateStatus(ctx, ids[0], "ana", entity.TaskStatusCompleted)
			require.NoError(t, err)
		},
	}
	_, err = uc.UpdateStatus(ctx, ids[0], "owner", entity.TaskStatusInProgress)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)

	got := f.store.AITask(ids[0])
	assert.Equal(t, entity.TaskStatusCompleted, got.Status)
	assert.NotNil(t, got.CompletedAt)
}

// lockTakenOver simula que el candado expira y otra ejecución lo toma mientras dura la asignación.
type lockTakenOver struct {
	*apptest.Cache
}

func (c lockTakenOver) AcquireLock(ctx context.Context, key string, ttl time.Duration) (string, bool, error) {
	token, ok, err := c.Cache.AcquireLock(ctx, key, ttl)
	if ok {
		_ = c.Cache.Delete(ctx, key)
		_, _, _ = c.Cache.AcquireLock(ctx, key, ttl)
	}
	return token, ok, err
}

func TestAssignDaily_NoLiberaCandadoAjeno(t *testing.T) {
	f := newFixture(t)
	f.seedAITasks(2, 1, entity.SkillPrincipiante)
	uc := f.aiTasks()
	uc.cache = lockTakenOver{f.cache}

	_, err := uc.AssignDaily(context.Background(), "p1", "owner", dto.AssignDailyRequest{})
	require.NoError(t, err)
	assert.True(t, f.cache.Has(ports.AssignLockKey("p1")), "el candado de la otra ejecución sigue tomado")
}

func TestCache_LiberarExigeToken(t *testing.T) {
	ctx := context.Background()
	c := apptest.NewCache()
	token, ok, err := c.AcquireLock(ctx, "lock", time.Minute)
	require.NoError(t, err)
	require.True(t, ok)

	_, ok, err = c.AcquireLock(ctx, "lock", time.Minute)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, c.ReleaseLock(ctx, "lock", "otro"))
	assert.True(t, c.Has("lock"))
	require.NoError(t, c.ReleaseLock(ctx, "lock", token))
	assert.False(t, c.Has("lock"))
}

func TestAssignDailyAuto_SoloProyectosConAutoAsignacion(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.seedAITasks(2, 1, entity.SkillPrincipiante)
	settings := f.store.Settings()
	for id, auto := range map[string]bool{"p1": true, "borrado": true, "manual": false} {
		st := entity.DefaultProjectSettings(id, baseTime)
		st.AutoAssignDaily = auto
		require.NoError(t, settings.Upsert(ctx, st))
	}

	results, err := f.aiTasks().AssignDailyAuto(ctx, dto.AssignDailyRequest{})
	require.NoError(t, err)
	require.Len(t, results, 2)

	assert.Equal(t, "borrado", results[0].ProjectID)
	assert.ErrorIs(t, results[0].Err, domain.ErrProjectNotFound)

	assert.Equal(t, "p1", results[1].ProjectID)
	require.NoError(t, results[1].Err)
	assert.Equal(t, 2, results[1].Result.AssignedTasks)
	assert.Len(t, assignedCount(f.store.AllAITasks()), 2)
}
