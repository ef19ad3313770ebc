package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xurp-ia/xurp-api/internal/application/dto"
	"github.com/xurp-ia/xurp-api/internal/application/ports"
	"github.com/xurp-ia/xurp-api/internal/domain"
	"github.com/xurp-ia/xurp-api/internal/domain/entity"
	"github.com/xurp-ia/xurp-api/internal/domain/repository"
)

func (f *fixture) tasks() *TaskUseCase {
	return NewTaskUseCase(f.guard, f.store.Tasks(), f.cache)
}

func TestTask_FlujoDeEstados(t *testing.T) {
	f := newFixture(t)
	uc := f.tasks()
	task, err := uc.Create(context.Background(), "ana", dto.CreateTaskRequest{ProjectID: "p1", Title: "Diseño", AssigneeID: strPtr("beto")})
	require.NoError(t, err)
	assert.Equal(t, entity.TaskStatusPending, task.Status)

	_, err = uc.ChangeStatus(context.Background(), task.ID, "ana", entity.TaskStatusInProgress)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	out, err := uc.ChangeStatus(context.Background(), task.ID, "beto", entity.TaskStatusInProgress)
	require.NoError(t, err)
	assert.Equal(t, entity.TaskStatusInProgress, out.Status)

	out, err = uc.ChangeStatus(context.Background(), task.ID, "beto", entity.TaskStatusInProgress)
	require.NoError(t, err, "pedir el estado actual no es error")
	assert.Nil(t, out.CompletedAt)

	out, err = uc.ChangeStatus(context.Background(), task.ID, "owner", entity.TaskStatusCompleted)
	require.NoError(t, err)
	assert.NotNil(t, out.CompletedAt)

	_, err = uc.ChangeStatus(context.Background(), task.ID, "owner", entity.TaskStatusPending)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestTask_AsignadoDebeSerIntegrante(t *testing.T) {
	f := newFixture(t)
	_, err := f.tasks().Create(context.Background(), "ana", dto.CreateTaskRequest{ProjectID: "p1", Title: "X", AssigneeID: strPtr("ext")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.tasks().Create(context.Background(), "ext", dto.CreateTaskRequest{ProjectID: "p1", Title: "X"})
	assert.ErrorIs(t, err, domain.ErrNotProjectMember)
}

func TestTask_InvalidaCacheDeAvance(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.cache.SetJSON(context.Background(), ports.ProgressKey("p1"), map[string]int{"x": 1}, 0))
	_, err := f.tasks().Create(context.Background(), "ana", dto.CreateTaskRequest{ProjectID: "p1", Title: "X"})
	require.NoError(t, err)
	assert.False(t, f.cache.Has(ports.ProgressKey("p1")))
}

func TestTask_EditarYBorrar(t *testing.T) {
	f := newFixture(t)
	uc := f.tasks()
	task, err := uc.Create(context.Background(), "ana", dto.CreateTaskRequest{ProjectID: "p1", Title: "X", AssigneeID: strPtr("ana")})
	require.NoError(t, err)

	_, err = uc.Update(context.Background(), task.ID, "beto", dto.UpdateTaskRequest{Title: strPtr("Y")})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	out, err := uc.Update(context.Background(), task.ID, "ana", dto.UpdateTaskRequest{Title: strPtr("Y"), ClearAssignee: true})
	require.NoError(t, err)
	assert.Equal(t, "Y", out.Title)
	assert.Nil(t, out.AssigneeID)

	require.NoError(t, uc.Delete(context.Background(), task.ID, "owner"))
	_, err = uc.Get(context.Background(), task.ID, "ana")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// tasksAfterRead ejecuta afterRead una sola vez, justo después de leer la tarea.
type tasksAfterRead struct {
	repository.TaskRepository
	afterRead func()
}

func (r *tasksAfterRead) GetByID(ctx context.Context, id string) (*entity.Task, error) {
	task, err := r.TaskRepository.GetByID(ctx, id)
	if fn := r.afterRead; fn != nil {
		r.afterRead = nil
		fn()
	}
	return task, err
}

func TestTask_EditarConservaCierreConcurrente(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	task, err := f.tasks().Create(ctx, "ana", dto.CreateTaskRequest{ProjectID: "p1", Title: "X", AssigneeID: strPtr("beto")})
	require.NoError(t, err)

	uc := f.tasks()
	uc.tasks = &tasksAfterRead{
		TaskRepository: f.store.Tasks(),
		afterRead: func() {
			_, err := f.tasks().ChangeStatus(ctx, task.ID, "beto", entity.TaskStatusCompleted)
			require.NoError(t, err)
		},
	}
	out, err := uc.Update(ctx, task.ID, "ana", dto.UpdateTaskRequest{Title: strPtr("Y"), AssigneeID: strPtr("ana")})
	require.NoError(t, err)
	assert.Equal(t, "Y", out.Title)

	got, err := f.tasks().Get(ctx, task.ID, "owner")
	require.NoError(t, err)
	assert.Equal(t, entity.TaskStatusCompleted, got.Status)
	assert.NotNil(t, got.CompletedAt)
	assert.Equal(t, "Y", got.Title)
	require.NotNil(t, got.AssigneeID)
	assert.Equal(t, "ana", *got.AssigneeID)
}

func TestTask_CambioDeEstadoDesactualizado(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	task, err := f.tasks().Create(ctx, "ana", dto.CreateTaskRequest{ProjectID: "p1", Title: "X", AssigneeID: strPtr("beto")})
	require.NoError(t, err)

	uc := f.tasks()
	uc.tasks = &tasksAfterRead{
		TaskRepository: f.store.Tasks(),
		afterRead: func() {
			_, err := f.tasks().ChangeStatus(ctx, task.ID, "beto", entity.TaskStatusCompleted)
			require.NoError(t, err)
		},
	}
	_, err = uc.ChangeStatus(ctx, task.ID, "owner", entity.TaskStatusInProgress)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)

	got, err := f.tasks().Get(ctx, task.ID, "owner")
	require.NoError(t, err)
	assert.Equal(t, entity.TaskStatusCompleted, got.Status)
	assert.NotNil(t, got.CompletedAt)
}
