// Package analytics arma el tablero de avance de un proyecto y sus documentos (PDF, XML).
package analytics

import (
	"context"
	"math"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/xurp-ia/xurp-api/internal/application/access"
	"github.com/xurp-ia/xurp-api/internal/application/dto"
	"github.com/xurp-ia/xurp-api/internal/application/ports"
	"github.com/xurp-ia/xurp-api/internal/application/usecase"
	"github.com/xurp-ia/xurp-api/internal/domain/entity"
	"github.com/xurp-ia/xurp-api/internal/domain/repository"
	"github.com/xurp-ia/xurp-api/pkg/logger"
)

// ProgressUseCase tablero de avance, reporte PDF y exportación del plan.
type ProgressUseCase struct {
	guard         *access.Guard
	users         repository.UserRepository
	collaborators repository.CollaboratorRepository
	tasks         repository.TaskRepository
	aiTasks       repository.AITaskRepository
	settings      repository.SettingsRepository
	cache         ports.Cache
	report        ports.ReportGenerator
	exporter      ports.PlanExporter
	ttl           time.Duration
	log           *logger.Logger
	now           func() time.Time
}

// Deps dependencias del caso de uso.
type Deps struct {
	Guard         *access.Guard
	Users         repository.UserRepository
	Collaborators repository.CollaboratorRepository
	Tasks         repository.TaskRepository
	AITasks       repository.AITaskRepository
	Settings      repository.SettingsRepository
	Cache         ports.Cache
	Report        ports.ReportGenerator
	Exporter      ports.PlanExporter
	CacheTTL      time.Duration
	Logger        *logger.Logger
}

// NewProgressUseCase construye el caso de uso.
func NewProgressUseCase(d Deps) *ProgressUseCase {
	ttl := d.CacheTTL
	if ttl <= 0 {
		ttl = time.Minute
	}
	log := d.Logger
	if log == nil {
		log = logger.Nop()
	}
	return &ProgressUseCase{
		guard:         d.Guard,
		users:         d.Users,
		collaborators: d.Collaborators,
		tasks:         d.Tasks,
		aiTasks:       d.AITasks,
		settings:      d.Settings,
		cache:         d.Cache,
		report:        d.Report,
		exporter:      d.Exporter,
		ttl:           ttl,
		log:           log,
		now:           time.Now,
	}
}

// Progress tablero de avance. Se cachea por proyecto y se invalida en cada escritura de tareas.
func (uc *ProgressUseCase) Progress(ctx context.Context, projectID, userID string) (*dto.ProjectProgressResponse, error) {
	m, err := uc.guard.RequireMember(ctx, projectID, userID)
	if err != nil {
		return nil, err
	}
	key := ports.ProgressKey(projectID)
	var cached dto.ProjectProgressResponse
	if hit, err := uc.cache.GetJSON(ctx, key, &cached); err != nil {
		uc.log.Warn().Err(err).Str("project_id", projectID).Msg("lectura de caché de avance")
	} else if hit {
		return &cached, nil
	}
	out, err := uc.compute(ctx, m.Project)
	if err != nil {
		return nil, err
	}
	if err := uc.cache.SetJSON(ctx, key, out, uc.ttl); err != nil {
		uc.log.Warn().Err(err).Str("project_id", projectID).Msg("escritura de caché de avance")
	}
	return out, nil
}

type memberRow struct {
	userID string
	name   string
	role   string
}

func (uc *ProgressUseCase) compute(ctx context.Context, project *entity.Project) (*dto.ProjectProgressResponse, error) {
	var (
		taskCounts []repository.StatusCount
		aiStats    []repository.AITaskStats
		collabs    []*entity.Collaborator
		owner      *entity.User
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		taskCounts, err = uc.tasks.CountByStatus(gctx, project.ID)
		return err
	})
	g.Go(func() (err error) {
		aiStats, err = uc.aiTasks.Stats(gctx, project.ID)
		return err
	})
	g.Go(func() (err error) {
		collabs, err = uc.collaborators.ListByProject(gctx, project.ID)
		return err
	})
	g.Go(func() (err error) {
		owner, err = uc.users.GetByID(gctx, project.OwnerID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	members := []memberRow{{userID: project.OwnerID, role: entity.RoleOwner}}
	if owner != nil {
		members[0].name = owner.Name
	}
	for _, c := range collabs {
		if c.UserID == project.OwnerID {
			continue
		}
		members = append(members, memberRow{userID: c.UserID, name: c.Name, role: c.Role})
	}
	byUser := make(map[string]*dto.MemberProgress, len(members))
	out := &dto.ProjectProgressResponse{
		ProjectID:      project.ID,
		ProjectName:    project.Name,
		CurrentDay:     project.CurrentDay(uc.now()),
		HoursTotal:     decimal.Zero,
		HoursCompleted: decimal.Zero,
		Members:        make([]dto.MemberProgress, 0, len(members)),
		GeneratedAt:    uc.now().UTC(),
	}
	for _, mr := range members {
		byUser[mr.userID] = &dto.MemberProgress{
			UserID:         mr.userID,
			Name:           mr.name,
			Role:           mr.role,
			HoursAssigned:  decimal.Zero,
			HoursCompleted: decimal.Zero,
		}
	}

	for _, c := range taskCounts {
		addCount(&out.Tasks, c.Status, c.Count)
		if c.AssigneeID == nil {
			if c.Status != entity.TaskStatusCompleted {
				out.Unassigned += c.Count
			}
			continue
		}
		if mp, ok := byUser[*c.AssigneeID]; ok {
			addCount(&mp.Tasks, c.Status, c.Count)
		}
	}
	for _, s := range aiStats {
		addCount(&out.AITasks, s.Status, s.Count)
		out.HoursTotal = out.HoursTotal.Add(s.Hours)
		if s.Status == entity.TaskStatusCompleted {
			out.HoursCompleted = out.HoursCompleted.Add(s.Hours)
		}
		if s.AssigneeID == nil {
			if s.Status != entity.TaskStatusCompleted {
				out.Unassigned += s.Count
			}
			continue
		}
		if mp, ok := byUser[*s.AssigneeID]; ok {
			addCount(&mp.AITasks, s.Status, s.Count)
			mp.HoursAssigned = mp.HoursAssigned.Add(s.Hours)
			if s.Status == entity.TaskStatusCompleted {
				mp.HoursCompleted = mp.HoursCompleted.Add(s.Hours)
			}
		}
	}
	out.CompletionPercent = completion(out.Tasks.Completed+out.AITasks.Completed, out.Tasks.Total+out.AITasks.Total)
	for _, mr := range members {
		out.Members = append(out.Members, *byUser[mr.userID])
	}
	return out, nil
}

func addCount(b *dto.StatusBreakdown, status string, n int) {
	switch status {
	case entity.TaskStatusPending:
		b.Pending += n
	case entity.TaskStatusInProgress:
		b.InProgress += n
	case entity.TaskStatusCompleted:
		b.Completed += n
	}
	b.Total += n
}

func completion(done, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(100 * float64(done) / float64(total)))
}

// ReportPDF genera el PDF de avance con el resumen y las listas de tareas.
func (uc *ProgressUseCase) ReportPDF(ctx context.Context, projectID, userID string) ([]byte, string, error) {
	m, err := uc.guard.RequireMember(ctx, projectID, userID)
	if err != nil {
		return nil, "", err
	}
	var (
		progress *dto.ProjectProgressResponse
		tasks    []*entity.Task
		aiTasks  []*entity.AITask
		owner    *entity.User
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		progress, err = uc.compute(gctx, m.Project)
		return err
	})
	g.Go(func() (err error) {
		tasks, err = uc.tasks.List(gctx, repository.TaskFilter{ProjectID: projectID})
		return err
	})
	g.Go(func() (err error) {
		aiTasks, err = uc.aiTasks.ListByProject(gctx, projectID, nil)
		return err
	})
	g.Go(func() (err error) {
		owner, err = uc.users.GetByID(gctx, m.Project.OwnerID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, "", err
	}
	report := &dto.ProjectReport{
		Project:  usecase.ToProjectResponse(m.Project, ""),
		Progress: *progress,
	}
	if owner != nil {
		report.Owner = dto.UserSummary{ID: owner.ID, Email: owner.Email, Name: owner.Name, Profession: owner.Profession}
	}
	for _, t := range tasks {
		report.Tasks = append(report.Tasks, usecase.ToTaskResponse(t))
	}
	for _, t := range aiTasks {
		report.AITasks = append(report.AITasks, usecase.ToAITaskResponse(t))
	}
	pdf, err := uc.report.GenerateProjectReport(report)
	if err != nil {
		return nil, "", err
	}
	return pdf, "avance-" + projectID + ".pdf", nil
}

// ExportXML exporta el plan de tareas IA. El día N del plan arranca en el N-ésimo día hábil
// contado desde la fecha de creación del proyecto.
func (uc *ProgressUseCase) ExportXML(ctx context.Context, projectID, userID string) ([]byte, string, error) {
	m, err := uc.guard.RequireMember(ctx, projectID, userID)
	if err != nil {
		return nil, "", err
	}
	var (
		settings *entity.ProjectSettings
		aiTasks  []*entity.AITask
		collabs  []*entity.Collaborator
		owner    *entity.User
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		settings, err = uc.settings.Get(gctx, projectID)
		return err
	})
	g.Go(func() (err error) {
		aiTasks, err = uc.aiTasks.ListByProject(gctx, projectID, nil)
		return err
	})
	g.Go(func() (err error) {
		collabs, err = uc.collaborators.ListByProject(gctx, projectID)
		return err
	})
	g.Go(func() (err error) {
		owner, err = uc.users.GetByID(gctx, m.Project.OwnerID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, "", err
	}
	if settings == nil {
		settings = entity.DefaultProjectSettings(projectID, m.Project.CreatedAt)
	}
	plan := &dto.PlanExport{
		Project:     usecase.ToProjectResponse(m.Project, ""),
		StartDate:   m.Project.CreatedAt.UTC(),
		HoursPerDay: settings.HoursPerDay,
		WorkingDays: settings.WorkingDays,
		Assignees:   make(map[string]dto.UserSummary, len(collabs)+1),
	}
	if owner != nil {
		plan.Assignees[owner.ID] = dto.UserSummary{ID: owner.ID, Email: owner.Email, Name: owner.Name}
	}
	for _, c := range collabs {
		plan.Assignees[c.UserID] = dto.UserSummary{ID: c.UserID, Email: c.Email, Name: c.Name, Profession: c.Profession}
	}
	for _, t := range aiTasks {
		plan.Tasks = append(plan.Tasks, usecase.ToAITaskResponse(t))
	}
	doc, err := uc.exporter.ExportPlan(plan)
	if err != nil {
		return nil, "", err
	}
	return doc, "plan-" + projectID + ".xml", nil
}
