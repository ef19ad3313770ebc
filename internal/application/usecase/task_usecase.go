package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/xurp-ia/xurp-api/internal/application/access"
	"github.com/xurp-ia/xurp-api/internal/application/dto"
	"github.com/xurp-ia/xurp-api/internal/application/ports"
	"github.com/xurp-ia/xurp-api/internal/domain"
	"github.com/xurp-ia/xurp-api/internal/domain/entity"
	"github.com/xurp-ia/xurp-api/internal/domain/repository"
	"github.com/xurp-ia/xurp-api/internal/domain/workflow"
)

// TaskUseCase casos de uso de tareas manuales.
type TaskUseCase struct {
	guard *access.Guard
	tasks repository.TaskRepository
	cache ports.Cache
	now   func() time.Time
}

// NewTaskUseCase construye el caso de uso.
func NewTaskUseCase(guard *access.Guard, tasks repository.TaskRepository, cache ports.Cache) *TaskUseCase {
	return &TaskUseCase{guard: guard, tasks: tasks, cache: cache, now: time.Now}
}

// Create crea una tarea PENDING. El asignado, si viene, debe pertenecer al proyecto.
func (uc *TaskUseCase) Create(ctx context.Context, userID string, in dto.CreateTaskRequest) (*dto.TaskResponse, error) {
	if _, err := uc.guard.RequireMember(ctx, in.ProjectID, userID); err != nil {
		return nil, err
	}
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.AssigneeID != nil {
		if err := requireAssignee(ctx, uc.guard, in.ProjectID, *in.AssigneeID); err != nil {
			return nil, err
		}
	}
	now := uc.now()
	task := &entity.Task{
		ID:          uuid.New().String(),
		ProjectID:   in.ProjectID,
		Title:       title,
		Description: in.Description,
		Status:      entity.TaskStatusPending,
		AssigneeID:  in.AssigneeID,
		CreatedBy:   userID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.tasks.Create(ctx, task); err != nil {
		return nil, err
	}
	uc.invalidate(ctx, task.ProjectID)
	out := ToTaskResponse(task)
	return &out, nil
}

// List tareas del proyecto con filtros opcionales.
func (uc *TaskUseCase) List(ctx context.Context, userID string, q dto.TaskListQuery) ([]dto.TaskResponse, error) {
	if _, err := uc.guard.RequireMember(ctx, q.ProjectID, userID); err != nil {
		return nil, err
	}
	list, err := uc.tasks.List(ctx, repository.TaskFilter{ProjectID: q.ProjectID, Status: q.Status, AssigneeID: q.AssigneeID})
	if err != nil {
		return nil, err
	}
	out := make([]dto.TaskResponse, 0, len(list))
	for _, t := range list {
		out = append(out, ToTaskResponse(t))
	}
	return out, nil
}

// Get obtiene una tarea visible para el usuario.
func (uc *TaskUseCase) Get(ctx context.Context, id, userID string) (*dto.TaskResponse, error) {
	task, _, err := uc.load(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	out := ToTaskResponse(task)
	return &out, nil
}

// Update edita título, descripción o asignado. Requiere OWNER, ADMIN o ser el creador.
func (uc *TaskUseCase) Update(ctx context.Context, id, userID string, in dto.UpdateTaskRequest) (*dto.TaskResponse, error) {
	task, m, err := uc.load(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	if !m.CanManage() && task.CreatedBy != userID {
		return nil, domain.ErrForbidden
	}
	if in.Title != nil {
		title := strings.TrimSpace(*in.Title)
		if title == "" {
			return nil, domain.ErrInvalidInput
		}
		task.Title = title
	}
	if in.Description != nil {
		task.Description = *in.Description
	}
	switch {
	case in.ClearAssignee:
		task.AssigneeID = nil
	case in.AssigneeID != nil:
		if err := requireAssignee(ctx, uc.guard, task.ProjectID, *in.AssigneeID); err != nil {
			return nil, err
		}
		task.AssigneeID = in.AssigneeID
	}
	task.UpdatedAt = uc.now()
	if err := uc.tasks.UpdateDetails(ctx, task); err != nil {
		return nil, err
	}
	uc.invalidate(ctx, task.ProjectID)
	out := ToTaskResponse(task)
	return &out, nil
}

// ChangeStatus aplica una transición de estado. Solo el asignado, OWNER o ADMIN.
// Pedir el estado actual no modifica nada.
func (uc *TaskUseCase) ChangeStatus(ctx context.Context, id, userID, status string) (*dto.TaskResponse, error) {
	task, m, err := uc.load(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	if !m.CanManage() && (task.AssigneeID == nil || *task.AssigneeID != userID) {
		return nil, domain.ErrForbidden
	}
	changed, err := workflow.Transition(task.Status, status)
	if err != nil {
		return nil, err
	}
	if changed {
		now := uc.now()
		var completedAt *time.Time
		if status == entity.TaskStatusCompleted {
			completedAt = &now
		}
		if err := uc.tasks.UpdateStatus(ctx, task.ID, task.Status, status, now, completedAt); err != nil {
			return nil, err
		}
		task.Status = status
		task.UpdatedAt = now
		task.CompletedAt = completedAt
		uc.invalidate(ctx, task.ProjectID)
	}
	out := ToTaskResponse(task)
	return &out, nil
}

// Delete elimina la tarea. Requiere OWNER, ADMIN o ser el creador.
func (uc *TaskUseCase) Delete(ctx context.Context, id, userID string) error {
	task, m, err := uc.load(ctx, id, userID)
	if err != nil {
		return err
	}
	if !m.CanManage() && task.CreatedBy != userID {
		return domain.ErrForbidden
	}
	if err := uc.tasks.Delete(ctx, id); err != nil {
		return err
	}
	uc.invalidate(ctx, task.ProjectID)
	return nil
}

func (uc *TaskUseCase) load(ctx context.Context, id, userID string) (*entity.Task, *access.Membership, error) {
	task, err := uc.tasks.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if task == nil {
		return nil, nil, domain.ErrNotFound
	}
	m, err := uc.guard.RequireMember(ctx, task.ProjectID, userID)
	if err != nil {
		return nil, nil, err
	}
	return task, m, nil
}

func (uc *TaskUseCase) invalidate(ctx context.Context, projectID string) {
	_ = uc.cache.Delete(ctx, ports.ProgressKey(projectID))
}

// requireAssignee verifica que el asignado pertenezca al proyecto (dueño incluido).
func requireAssignee(ctx context.Context, guard *access.Guard, projectID, assigneeID string) error {
	_, err := guard.RequireMember(ctx, projectID, assigneeID)
	if errors.Is(err, domain.ErrNotProjectMember) {
		return fmt.Errorf("%w: el asignado no pertenece al proyecto", domain.ErrInvalidInput)
	}
	return err
}
