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
	"github.com/xurp-ia/xurp-api/internal/domain/planning"
	"github.com/xurp-ia/xurp-api/internal/domain/repository"
	"github.com/xurp-ia/xurp-api/internal/domain/workflow"
	"github.com/xurp-ia/xurp-api/pkg/logger"
)

// assignLockTTL vida máxima del candado de asignación si el proceso muere sin liberarlo.
const assignLockTTL = 30 * time.Second

// AITaskUseCase generación, consulta y asignación de tareas IA.
type AITaskUseCase struct {
	guard       *access.Guard
	projects    repository.ProjectRepository
	aiTasks     repository.AITaskRepository
	assessments repository.SkillAssessmentRepository
	settings    repository.SettingsRepository
	tx          ports.TxRunner
	cache       ports.Cache
	ai          ports.AIService
	notifier    ports.Notifier
	log         *logger.Logger
	now         func() time.Time
}

// AITaskDeps dependencias del caso de uso.
type AITaskDeps struct {
	Guard       *access.Guard
	Projects    repository.ProjectRepository
	AITasks     repository.AITaskRepository
	Assessments repository.SkillAssessmentRepository
	Settings    repository.SettingsRepository
	Tx          ports.TxRunner
	Cache       ports.Cache
	AI          ports.AIService
	Notifier    ports.Notifier // opcional
	Logger      *logger.Logger
}

// NewAITaskUseCase construye el caso de uso.
func NewAITaskUseCase(d AITaskDeps) *AITaskUseCase {
	log := d.Logger
	if log == nil {
		log = logger.Nop()
	}
	return &AITaskUseCase{
		guard:       d.Guard,
		projects:    d.Projects,
		aiTasks:     d.AITasks,
		assessments: d.Assessments,
		settings:    d.Settings,
		tx:          d.Tx,
		cache:       d.Cache,
		ai:          d.AI,
		notifier:    d.Notifier,
		log:         log,
		now:         time.Now,
	}
}

// Generate pide un plan al generador y lo persiste en una transacción. Requiere OWNER o ADMIN.
func (uc *AITaskUseCase) Generate(ctx context.Context, userID string, in dto.GenerateAITasksRequest) ([]dto.AITaskResponse, error) {
	m, err := uc.guard.RequireManager(ctx, in.ProjectID, userID)
	if err != nil {
		return nil, err
	}
	if in.Days < 1 || in.TasksPerDay < 1 {
		return nil, domain.ErrInvalidInput
	}
	generated, err := uc.ai.GenerateTaskPlan(ctx, dto.TaskPlanRequest{
		ProjectName: m.Project.Name,
		Description: m.Project.Description,
		Focus:       strings.TrimSpace(in.Focus),
		Days:        in.Days,
		TasksPerDay: in.TasksPerDay,
	})
	if err != nil {
		return nil, fmt.Errorf("generar plan: %w", err)
	}
	now := uc.now()
	tasks := make([]*entity.AITask, 0, len(generated))
	for _, g := range generated {
		level := g.SkillLevel
		if !entity.IsValidSkillLevel(level) {
			level = entity.SkillPrincipiante
		}
		day := g.DayNumber
		if day < 1 {
			day = 1
		}
		tasks = append(tasks, &entity.AITask{
			ID:             uuid.New().String(),
			ProjectID:      in.ProjectID,
			Title:          g.Title,
			Description:    g.Description,
			Status:         entity.TaskStatusPending,
			DayNumber:      day,
			SkillLevel:     level,
			EstimatedHours: g.EstimatedHours,
			CreatedAt:      now,
			UpdatedAt:      now,
		})
	}
	err = uc.tx.Run(ctx, func(repos ports.TxRepositories) error {
		return repos.AITasks.CreateBatch(ctx, tasks)
	})
	if err != nil {
		return nil, err
	}
	uc.invalidate(ctx, in.ProjectID)
	uc.log.Info().Str("project_id", in.ProjectID).Int("tasks", len(tasks)).Msg("plan de tareas generado")
	return toAITaskResponses(tasks), nil
}

// ListByProject tareas IA del proyecto; day filtra por día del plan.
func (uc *AITaskUseCase) ListByProject(ctx context.Context, projectID, userID string, day *int) ([]dto.AITaskResponse, error) {
	if _, err := uc.guard.RequireMember(ctx, projectID, userID); err != nil {
		return nil, err
	}
	list, err := uc.aiTasks.ListByProject(ctx, projectID, day)
	if err != nil {
		return nil, err
	}
	return toAITaskResponses(list), nil
}

// ListMine tareas IA asignadas al usuario; projectID vacío lista todos sus proyectos.
func (uc *AITaskUseCase) ListMine(ctx context.Context, userID, projectID string) ([]dto.AITaskResponse, error) {
	if projectID != "" {
		if _, err := uc.guard.RequireMember(ctx, projectID, userID); err != nil {
			return nil, err
		}
	}
	list, err := uc.aiTasks.ListByAssignee(ctx, userID, projectID)
	if err != nil {
		return nil, err
	}
	return toAITaskResponses(list), nil
}

// CurrentDay día actual del plan del proyecto.
func (uc *AITaskUseCase) CurrentDay(ctx context.Context, projectID, userID string) (*dto.CurrentDayResponse, error) {
	m, err := uc.guard.RequireMember(ctx, projectID, userID)
	if err != nil {
		return nil, err
	}
	return &dto.CurrentDayResponse{ProjectID: projectID, CurrentDay: m.Project.CurrentDay(uc.now())}, nil
}

// AssignDaily asignación automática pedida por un usuario. Requiere OWNER o ADMIN.
func (uc *AITaskUseCase) AssignDaily(ctx context.Context, projectID, userID string, in dto.AssignDailyRequest) (*dto.AssignDailyResponse, error) {
	m, err := uc.guard.RequireManager(ctx, projectID, userID)
	if err != nil {
		return nil, err
	}
	return uc.assign(ctx, m.Project, in)
}

// AssignDailySystem asignación automática sin verificación de permisos (CLI de mantenimiento).
func (uc *AITaskUseCase) AssignDailySystem(ctx context.Context, projectID string, in dto.AssignDailyRequest) (*dto.AssignDailyResponse, error) {
	project, err := uc.projects.GetByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, domain.ErrProjectNotFound
	}
	return uc.assign(ctx, project, in)
}

// ProjectAssignResult resultado de la asignación automática de un proyecto.
type ProjectAssignResult struct {
	ProjectID string
	Result    *dto.AssignDailyResponse
	Err       error
}

// AssignDailyAuto corre AssignDailySystem en cada proyecto con autoAssignDaily activo.
// El fallo de un proyecto queda en su resultado y no detiene a los demás.
func (uc *AITaskUseCase) AssignDailyAuto(ctx context.Context, in dto.AssignDailyRequest) ([]ProjectAssignResult, error) {
	ids, err := uc.settings.ListAutoAssign(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]ProjectAssignResult, 0, len(ids))
	for _, id := range ids {
		if err := ctx.Err(); err != nil {
			return out, err
		}
		res, err := uc.AssignDailySystem(ctx, id, in)
		if err != nil {
			uc.log.Warn().Err(err).Str("project_id", id).Msg("asignación automática fallida")
		}
		out = append(out, ProjectAssignResult{ProjectID: id, Result: res, Err: err})
	}
	return out, nil
}

// assign reparte round-robin las tareas sin asignar desde el día actual entre los colaboradores
// (nunca el dueño). Todo ocurre en una transacción con las filas candidatas bloqueadas.
func (uc *AITaskUseCase) assign(ctx context.Context, project *entity.Project, in dto.AssignDailyRequest) (*dto.AssignDailyResponse, error) {
	currentDay := project.CurrentDay(uc.now())
	if in.Day != nil && *in.Day < 1 {
		return nil, domain.ErrInvalidInput
	}

	lockKey := ports.AssignLockKey(project.ID)
	token, ok, err := uc.cache.AcquireLock(ctx, lockKey, assignLockTTL)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.ErrAssignmentInProgress
	}
	defer func() { _ = uc.cache.ReleaseLock(context.WithoutCancel(ctx), lockKey, token) }()

	var levels map[string]string
	if in.BySkill {
		latest, err := uc.assessments.LatestCompletedByProject(ctx, project.ID)
		if err != nil {
			return nil, err
		}
		levels = make(map[string]string, len(latest))
		for _, a := range latest {
			levels[a.UserID] = a.SkillLevel
		}
	}

	resp := &dto.AssignDailyResponse{CurrentDay: currentDay, Assignments: []dto.AssignmentItem{}}
	err = uc.tx.Run(ctx, func(repos ports.TxRepositories) error {
		collabs, err := repos.Collaborators.ListByProject(ctx, project.ID)
		if err != nil {
			return err
		}
		members := make([]planning.Member, 0, len(collabs))
		for _, c := range collabs {
			members = append(members, planning.Member{UserID: c.UserID, JoinedAt: c.CreatedAt, SkillLevel: levels[c.UserID]})
		}
		if len(planning.EligibleMembers(project.OwnerID, members)) == 0 {
			resp.Message = "No hay colaboradores elegibles para asignar tareas"
			return nil
		}
		rows, err := repos.AITasks.ListUnassignedForUpdate(ctx, project.ID, currentDay)
		if err != nil {
			return err
		}
		candidates := make([]planning.TaskCandidate, 0, len(rows))
		for _, t := range rows {
			candidates = append(candidates, planning.TaskCandidate{
				ID:         t.ID,
				DayNumber:  t.DayNumber,
				SkillLevel: t.SkillLevel,
				CreatedAt:  t.CreatedAt,
				Assigned:   t.AssigneeID != nil,
			})
		}
		plan, err := planning.Plan(project.OwnerID, candidates, members, planning.Options{
			CurrentDay: currentDay,
			Day:        in.Day,
			BySkill:    in.BySkill,
		})
		if err != nil {
			return err
		}
		if len(plan) == 0 {
			resp.Message = "No hay tareas pendientes por asignar"
			return nil
		}
		for _, a := range plan {
			if err := repos.AITasks.Assign(ctx, a.TaskID, a.UserID); err != nil {
				return err
			}
			resp.Assignments = append(resp.Assignments, dto.AssignmentItem{TaskID: a.TaskID, UserID: a.UserID})
		}
		resp.AssignedTasks = len(plan)
		resp.Message = fmt.Sprintf("Se asignaron %d tareas", len(plan))
		return nil
	})
	if err != nil {
		if errors.Is(err, planning.ErrNoEligibleCollaborators) {
			resp.Message = "No hay colaboradores elegibles para asignar tareas"
			return resp, nil
		}
		return nil, err
	}
	if resp.AssignedTasks > 0 {
		uc.invalidate(ctx, project.ID)
		uc.notifyAssignments(ctx, project.ID, resp.Assignments)
		uc.log.Info().Str("project_id", project.ID).Int("assigned", resp.AssignedTasks).Int("current_day", currentDay).Msg("asignación diaria")
	}
	return resp, nil
}

func (uc *AITaskUseCase) notifyAssignments(ctx context.Context, projectID string, items []dto.AssignmentItem) {
	if uc.notifier == nil {
		return
	}
	settings, err := uc.settings.Get(ctx, projectID)
	if err != nil {
		uc.log.Warn().Err(err).Str("project_id", projectID).Msg("no se pudo leer la configuración del proyecto")
		return
	}
	if settings != nil && !settings.NotifyOnAssignment {
		return
	}
	byUser := make(map[string][]string)
	for _, a := range items {
		byUser[a.UserID] = append(byUser[a.UserID], a.TaskID)
	}
	for userID, taskIDs := range byUser {
		uc.notifier.Notify(userID, "assignment", map[string]any{"projectId": projectID, "taskIds": taskIDs})
	}
}

// UpdateStatus aplica una transición de estado. Solo el asignado, OWNER o ADMIN.
func (uc *AITaskUseCase) UpdateStatus(ctx context.Context, id, userID, status string) (*dto.AITaskResponse, error) {
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
		if err := uc.aiTasks.UpdateStatus(ctx, task.ID, task.Status, status, now, completedAt); err != nil {
			return nil, err
		}
		task.Status = status
		task.UpdatedAt = now
		task.CompletedAt = completedAt
		uc.invalidate(ctx, task.ProjectID)
	}
	out := ToAITaskResponse(task)
	return &out, nil
}

// UpdateAssignee reasigna la tarea (sobrescritura directa). nil la deja sin asignar. Requiere OWNER o ADMIN.
func (uc *AITaskUseCase) UpdateAssignee(ctx context.Context, id, userID string, assigneeID *string) (*dto.AITaskResponse, error) {
	task, m, err := uc.load(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	if !m.CanManage() {
		return nil, domain.ErrForbidden
	}
	if assigneeID != nil {
		if err := requireAssignee(ctx, uc.guard, task.ProjectID, *assigneeID); err != nil {
			return nil, err
		}
	}
	now := uc.now()
	if err := uc.aiTasks.UpdateAssignee(ctx, task.ID, assigneeID, now); err != nil {
		return nil, err
	}
	task.AssigneeID = assigneeID
	task.UpdatedAt = now
	uc.invalidate(ctx, task.ProjectID)
	out := ToAITaskResponse(task)
	return &out, nil
}

// Delete elimina una tarea IA. Requiere OWNER o ADMIN.
func (uc *AITaskUseCase) Delete(ctx context.Context, id, userID string) error {
	task, m, err := uc.load(ctx, id, userID)
	if err != nil {
		return err
	}
	if !m.CanManage() {
		return domain.ErrForbidden
	}
	if err := uc.aiTasks.Delete(ctx, id); err != nil {
		return err
	}
	uc.invalidate(ctx, task.ProjectID)
	return nil
}

func (uc *AITaskUseCase) load(ctx context.Context, id, userID string) (*entity.AITask, *access.Membership, error) {
	task, err := uc.aiTasks.GetByID(ctx, id)
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

func (uc *AITaskUseCase) invalidate(ctx context.Context, projectID string) {
	_ = uc.cache.Delete(ctx, ports.ProgressKey(projectID))
}
