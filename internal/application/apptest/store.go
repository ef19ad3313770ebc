// Package apptest implementa en memoria los puertos de persistencia, caché y notificación
// para las pruebas de los casos de uso.
package apptest

import (
	"context"
	"encoding/json"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/xurp-ia/xurp-api/internal/application/ports"
	"github.com/xurp-ia/xurp-api/internal/domain"
	"github.com/xurp-ia/xurp-api/internal/domain/entity"
	"github.com/xurp-ia/xurp-api/internal/domain/membership"
	"github.com/xurp-ia/xurp-api/internal/domain/repository"
)

// Store base de datos en memoria compartida por todos los repositorios falsos.
type Store struct {
	mu   sync.Mutex
	txMu sync.Mutex

	users         map[string]*entity.User
	projects      map[string]*entity.Project
	collaborators map[string]*entity.Collaborator // projectID|userID
	tasks         map[string]*entity.Task
	aiTasks       map[string]*entity.AITask
	evaluations   map[string]*entity.UserEvaluation
	assessments   map[string]*entity.SkillAssessment
	events        map[string]*entity.Event
	notes         map[string]*entity.Note
	conversations map[string]*entity.Conversation
	messages      map[string]*entity.Message
	settings      map[string]*entity.ProjectSettings

	// FailAssignAfter hace fallar Assign después de n llamadas exitosas (0 = nunca).
	FailAssignAfter int
	assignCalls     int
	// TxCount transacciones ejecutadas.
	TxCount int
}

// NewStore construye un Store vacío.
func NewStore() *Store {
	return &Store{
		users:         map[string]*entity.User{},
		projects:      map[string]*entity.Project{},
		collaborators: map[string]*entity.Collaborator{},
		tasks:         map[string]*entity.Task{},
		aiTasks:       map[string]*entity.AITask{},
		evaluations:   map[string]*entity.UserEvaluation{},
		assessments:   map[string]*entity.SkillAssessment{},
		events:        map[string]*entity.Event{},
		notes:         map[string]*entity.Note{},
		conversations: map[string]*entity.Conversation{},
		messages:      map[string]*entity.Message{},
		settings:      map[string]*entity.ProjectSettings{},
	}
}

func collabKey(projectID, userID string) string { return projectID + "|" + userID }

func cp[T any](v *T) *T {
	c := *v
	return &c
}

// --- helpers de siembra ---

// SeedUser agrega un usuario con membresía FREE.
func (s *Store) SeedUser(id, email, name string) *entity.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	u := &entity.User{ID: id, Email: email, Name: name, MembershipType: entity.MembershipFree, CreatedAt: time.Now()}
	s.users[id] = u
	return cp(u)
}

// SeedProject agrega un proyecto.
func (s *Store) SeedProject(id, ownerID string, createdAt time.Time) *entity.Project {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := &entity.Project{ID: id, Name: "Proyecto " + id, OwnerID: ownerID, CreatedAt: createdAt, UpdatedAt: createdAt}
	s.projects[id] = p
	return cp(p)
}

// SeedCollaborator agrega un colaborador sin validar (permite simular datos heredados).
func (s *Store) SeedCollaborator(projectID, userID, role string, joined time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.collaborators[collabKey(projectID, userID)] = &entity.Collaborator{ProjectID: projectID, UserID: userID, Role: role, CreatedAt: joined}
}

// SeedAITask agrega una tarea IA.
func (s *Store) SeedAITask(t *entity.AITask) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.aiTasks[t.ID] = cp(t)
}

// AITask devuelve una copia de la tarea IA.
func (s *Store) AITask(id string) *entity.AITask {
	s.mu.Lock()
	defer s.mu.Unlock()
	if t, ok := s.aiTasks[id]; ok {
		return cp(t)
	}
	return nil
}

// AllAITasks copia de todas las tareas IA.
func (s *Store) AllAITasks() []*entity.AITask {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*entity.AITask, 0, len(s.aiTasks))
	for _, t := range s.aiTasks {
		out = append(out, cp(t))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// HasCollaborator informa si existe la fila de colaborador.
func (s *Store) HasCollaborator(projectID, userID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.collaborators[collabKey(projectID, userID)]
	return ok
}

// Repos repositorios atados a este Store.
func (s *Store) Repos() ports.TxRepositories {
	return ports.TxRepositories{
		Projects:      s.Projects(),
		Collaborators: s.Collaborators(),
		Tasks:         s.Tasks(),
		AITasks:       s.AITasks(),
		Evaluations:   s.Evaluations(),
		Settings:      s.Settings(),
	}
}

// --- TxRunner ---

type snapshot struct {
	projects      map[string]*entity.Project
	collaborators map[string]*entity.Collaborator
	tasks         map[string]*entity.Task
	aiTasks       map[string]*entity.AITask
	evaluations   map[string]*entity.UserEvaluation
	settings      map[string]*entity.ProjectSettings
}

func cloneMap[T any](m map[string]*T) map[string]*T {
	out := make(map[string]*T, len(m))
	for k, v := range m {
		out[k] = cp(v)
	}
	return out
}

// TxRunner ejecuta las transacciones de forma serializada y restaura el estado si fn falla.
type TxRunner struct{ s *Store }

// TxRunner construye el runner.
func (s *Store) TxRunner() *TxRunner { return &TxRunner{s: s} }

var _ ports.TxRunner = (*TxRunner)(nil)

// Run implementa ports.TxRunner.
func (r *TxRunner) Run(ctx context.Context, fn func(repos ports.TxRepositories) error) error {
	r.s.txMu.Lock()
	defer r.s.txMu.Unlock()

	r.s.mu.Lock()
	r.s.TxCount++
	snap := snapshot{
		projects:      cloneMap(r.s.projects),
		collaborators: cloneMap(r.s.collaborators),
		tasks:         cloneMap(r.s.tasks),
		aiTasks:       cloneMap(r.s.aiTasks),
		evaluations:   cloneMap(r.s.evaluations),
		settings:      cloneMap(r.s.settings),
	}
	r.s.mu.Unlock()

	if err := fn(r.s.Repos()); err != nil {
		r.s.mu.Lock()
		r.s.projects = snap.projects
		r.s.collaborators = snap.collaborators
		r.s.tasks = snap.tasks
		r.s.aiTasks = snap.aiTasks
		r.s.evaluations = snap.evaluations
		r.s.settings = snap.settings
		r.s.mu.Unlock()
		return err
	}
	return nil
}

// --- Users ---

type userRepo struct{ s *Store }

// Users repositorio de usuarios.
func (s *Store) Users() repository.UserRepository { return userRepo{s} }

func (r userRepo) Create(_ context.Context, u *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, e := range r.s.users {
		if e.Email == u.Email {
			return domain.ErrEmailAlreadyExists
		}
	}
	r.s.users[u.ID] = cp(u)
	return nil
}

func (r userRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if u, ok := r.s.users[id]; ok {
		return cp(u), nil
	}
	return nil, nil
}

func (r userRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if u.Email == email {
			return cp(u), nil
		}
	}
	return nil, nil
}

func (r userRepo) Update(_ context.Context, u *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.users[u.ID] = cp(u)
	return nil
}

func (r userRepo) UpdateMembership(_ context.Context, userID, t string, exp *time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[userID]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.MembershipType = t
	u.MembershipExpiresAt = exp
	return nil
}

// --- Projects ---

type projectRepo struct{ s *Store }

// Projects repositorio de proyectos.
func (s *Store) Projects() repository.ProjectRepository { return projectRepo{s} }

func (r projectRepo) Create(_ context.Context, p *entity.Project) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.projects[p.ID] = cp(p)
	return nil
}

func (r projectRepo) GetByID(_ context.Context, id string) (*entity.Project, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if p, ok := r.s.projects[id]; ok {
		return cp(p), nil
	}
	return nil, nil
}

func (r projectRepo) Update(_ context.Context, p *entity.Project) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.projects[p.ID] = cp(p)
	return nil
}

func (r projectRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.projects, id)
	for k, c := range r.s.collaborators {
		if c.ProjectID == id {
			delete(r.s.collaborators, k)
		}
	}
	for k, t := range r.s.aiTasks {
		if t.ProjectID == id {
			delete(r.s.aiTasks, k)
		}
	}
	for k, t := range r.s.tasks {
		if t.ProjectID == id {
			delete(r.s.tasks, k)
		}
	}
	delete(r.s.settings, id)
	return nil
}

func (r projectRepo) ListForUser(_ context.Context, userID string) ([]*repository.ProjectWithRole, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*repository.ProjectWithRole
	for _, p := range r.s.projects {
		if p.OwnerID == userID {
			out = append(out, &repository.ProjectWithRole{Project: *p, Role: entity.RoleOwner})
			continue
		}
		if c, ok := r.s.collaborators[collabKey(p.ID, userID)]; ok {
			out = append(out, &repository.ProjectWithRole{Project: *p, Role: c.Role})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Project.ID < out[j].Project.ID })
	return out, nil
}

func (r projectRepo) MemberRole(_ context.Context, projectID, userID string) (string, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.projects[projectID]
	if !ok {
		return "", nil
	}
	if p.OwnerID == userID {
		return entity.RoleOwner, nil
	}
	if c, ok := r.s.collaborators[collabKey(projectID, userID)]; ok {
		return c.Role, nil
	}
	return "", nil
}

// --- Collaborators ---

type collaboratorRepo struct{ s *Store }

// Collaborators repositorio de colaboradores.
func (s *Store) Collaborators() repository.CollaboratorRepository { return collaboratorRepo{s} }

func (r collaboratorRepo) Add(_ context.Context, c *entity.Collaborator) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.projects[c.ProjectID]
	if !ok {
		return domain.ErrProjectNotFound
	}
	if p.OwnerID == c.UserID {
		return domain.ErrOwnerCannotCollaborate
	}
	k := collabKey(c.ProjectID, c.UserID)
	if _, ok := r.s.collaborators[k]; ok {
		return domain.ErrDuplicate
	}
	r.s.collaborators[k] = cp(c)
	return nil
}

func (r collaboratorRepo) Get(_ context.Context, projectID, userID string) (*entity.Collaborator, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if c, ok := r.s.collaborators[collabKey(projectID, userID)]; ok {
		return cp(c), nil
	}
	return nil, nil
}

func (r collaboratorRepo) ListByProject(_ context.Context, projectID string) ([]*entity.Collaborator, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.Collaborator
	for _, c := range r.s.collaborators {
		if c.ProjectID != projectID {
			continue
		}
		cc := cp(c)
		if u, ok := r.s.users[c.UserID]; ok {
			cc.Email, cc.Name, cc.Profession = u.Email, u.Name, u.Profession
		}
		out = append(out, cc)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].UserID < out[j].UserID
	})
	return out, nil
}

func (r collaboratorRepo) UpdateRole(_ context.Context, projectID, userID, role string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.collaborators[collabKey(projectID, userID)]
	if !ok {
		return domain.ErrNotFound
	}
	c.Role = role
	return nil
}

func (r collaboratorRepo) Remove(_ context.Context, projectID, userID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.collaborators, collabKey(projectID, userID))
	return nil
}

func (r collaboratorRepo) DeleteOwnerRows(_ context.Context, dryRun bool) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var n int64
	for k, c := range r.s.collaborators {
		if p, ok := r.s.projects[c.ProjectID]; ok && p.OwnerID == c.UserID {
			n++
			if !dryRun {
				delete(r.s.collaborators, k)
			}
		}
	}
	return n, nil
}

// --- Tasks ---

type taskRepo struct{ s *Store }

// Tasks repositorio de tareas manuales.
func (s *Store) Tasks() repository.TaskRepository { return taskRepo{s} }

func (r taskRepo) Create(_ context.Context, t *entity.Task) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.tasks[t.ID] = cp(t)
	return nil
}

func (r taskRepo) GetByID(_ context.Context, id string) (*entity.Task, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if t, ok := r.s.tasks[id]; ok {
		return cp(t), nil
	}
	return nil, nil
}

func (r taskRepo) UpdateDetails(_ context.Context, t *entity.Task) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur, ok := r.s.tasks[t.ID]
	if !ok {
		return domain.ErrNotFound
	}
	cur.Title = t.Title
	cur.Description = t.Description
	cur.AssigneeID = t.AssigneeID
	cur.UpdatedAt = t.UpdatedAt
	return nil
}

func (r taskRepo) UpdateStatus(_ context.Context, id, from, to string, updatedAt time.Time, completedAt *time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur, ok := r.s.tasks[id]
	if !ok {
		return domain.ErrNotFound
	}
	if cur.Status != from {
		return domain.ErrInvalidTransition
	}
	cur.Status = to
	cur.UpdatedAt = updatedAt
	cur.CompletedAt = completedAt
	return nil
}

func (r taskRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.tasks, id)
	return nil
}

func (r taskRepo) List(_ context.Context, f repository.TaskFilter) ([]*entity.Task, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.Task
	for _, t := range r.s.tasks {
		if t.ProjectID != f.ProjectID || (f.Status != "" && t.Status != f.Status) {
			continue
		}
		if f.AssigneeID != "" && (t.AssigneeID == nil || *t.AssigneeID != f.AssigneeID) {
			continue
		}
		out = append(out, cp(t))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r taskRepo) UnassignOpen(_ context.Context, projectID, userID string) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var n int64
	for _, t := range r.s.tasks {
		if t.ProjectID == projectID && t.AssigneeID != nil && *t.AssigneeID == userID && t.Status != entity.TaskStatusCompleted {
			t.AssigneeID = nil
			n++
		}
	}
	return n, nil
}

func (r taskRepo) CountByStatus(_ context.Context, projectID string) ([]repository.StatusCount, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	counts := map[string]*repository.StatusCount{}
	for _, t := range r.s.tasks {
		if t.ProjectID != projectID {
			continue
		}
		k := t.Status + "|"
		if t.AssigneeID != nil {
			k += *t.AssigneeID
		}
		if counts[k] == nil {
			counts[k] = &repository.StatusCount{Status: t.Status, AssigneeID: t.AssigneeID}
		}
		counts[k].Count++
	}
	out := make([]repository.StatusCount, 0, len(counts))
	for _, c := range counts {
		out = append(out, *c)
	}
	return out, nil
}

// --- AITasks ---

type aiTaskRepo struct{ s *Store }

// AITasks repositorio de tareas IA.
func (s *Store) AITasks() repository.AITaskRepository { return aiTaskRepo{s} }

func (r aiTaskRepo) CreateBatch(_ context.Context, tasks []*entity.AITask) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, t := range tasks {
		r.s.aiTasks[t.ID] = cp(t)
	}
	return nil
}

func (r aiTaskRepo) GetByID(_ context.Context, id string) (*entity.AITask, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if t, ok := r.s.aiTasks[id]; ok {
		return cp(t), nil
	}
	return nil, nil
}

func (r aiTaskRepo) UpdateStatus(_ context.Context, id, from, to string, updatedAt time.Time, completedAt *time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur, ok := r.s.aiTasks[id]
	if !ok {
		return domain.ErrNotFound
	}
	if cur.Status != from {
		return domain.ErrInvalidTransition
	}
	cur.Status = to
	cur.UpdatedAt = updatedAt
	cur.CompletedAt = completedAt
	return nil
}

func (r aiTaskRepo) UpdateAssignee(_ context.Context, id string, assigneeID *string, updatedAt time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur, ok := r.s.aiTasks[id]
	if !ok {
		return domain.ErrNotFound
	}
	cur.AssigneeID = assigneeID
	cur.UpdatedAt = updatedAt
	return nil
}

func (r aiTaskRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.aiTasks, id)
	return nil
}

func (r aiTaskRepo) list(match func(*entity.AITask) bool) []*entity.AITask {
	var out []*entity.AITask
	for _, t := range r.s.aiTasks {
		if match(t) {
			out = append(out, cp(t))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].DayNumber != out[j].DayNumber {
			return out[i].DayNumber < out[j].DayNumber
		}
		return out[i].ID < out[j].ID
	})
	return out
}

func (r aiTaskRepo) ListByProject(_ context.Context, projectID string, day *int) ([]*entity.AITask, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.list(func(t *entity.AITask) bool {
		return t.ProjectID == projectID && (day == nil || t.DayNumber == *day)
	}), nil
}

func (r aiTaskRepo) ListByAssignee(_ context.Context, userID, projectID string) ([]*entity.AITask, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.list(func(t *entity.AITask) bool {
		return t.AssigneeID != nil && *t.AssigneeID == userID && (projectID == "" || t.ProjectID == projectID)
	}), nil
}

func (r aiTaskRepo) ListUnassignedForUpdate(_ context.Context, projectID string, minDay int) ([]*entity.AITask, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.list(func(t *entity.AITask) bool {
		return t.ProjectID == projectID && t.AssigneeID == nil && t.DayNumber >= minDay && t.Status != entity.TaskStatusCompleted
	}), nil
}

func (r aiTaskRepo) Assign(_ context.Context, taskID, userID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.assignCalls++
	if r.s.FailAssignAfter > 0 && r.s.assignCalls > r.s.FailAssignAfter {
		return domain.ErrConflict
	}
	t, ok := r.s.aiTasks[taskID]
	if !ok {
		return domain.ErrNotFound
	}
	u := userID
	t.AssigneeID = &u
	return nil
}

func (r aiTaskRepo) UnassignOpen(_ context.Context, projectID, userID string) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var n int64
	for _, t := range r.s.aiTasks {
		if t.ProjectID == projectID && t.AssigneeID != nil && *t.AssigneeID == userID && t.Status != entity.TaskStatusCompleted {
			t.AssigneeID = nil
			n++
		}
	}
	return n, nil
}

func (r aiTaskRepo) Stats(_ context.Context, projectID string) ([]repository.AITaskStats, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	stats := map[string]*repository.AITaskStats{}
	for _, t := range r.s.aiTasks {
		if t.ProjectID != projectID {
			continue
		}
		k := t.Status + "|"
		if t.AssigneeID != nil {
			k += *t.AssigneeID
		}
		if stats[k] == nil {
			stats[k] = &repository.AITaskStats{Status: t.Status, AssigneeID: t.AssigneeID}
		}
		stats[k].Count++
		stats[k].Hours = stats[k].Hours.Add(t.EstimatedHours)
	}
	out := make([]repository.AITaskStats, 0, len(stats))
	for _, st := range stats {
		out = append(out, *st)
	}
	return out, nil
}

// --- Evaluations ---

type evaluationRepo struct{ s *Store }

// Evaluations repositorio de evaluaciones técnicas.
func (s *Store) Evaluations() repository.EvaluationRepository { return evaluationRepo{s} }

func (r evaluationRepo) Create(_ context.Context, e *entity.UserEvaluation) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.evaluations[e.ID] = cp(e)
	return nil
}

func (r evaluationRepo) GetByID(_ context.Context, id string) (*entity.UserEvaluation, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if e, ok := r.s.evaluations[id]; ok {
		return cp(e), nil
	}
	return nil, nil
}

func (r evaluationRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.evaluations, id)
	return nil
}

func (r evaluationRepo) ListByUser(_ context.Context, userID, projectID string) ([]*entity.UserEvaluation, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.UserEvaluation
	for _, e := range r.s.evaluations {
		if e.UserID == userID && (projectID == "" || (e.ProjectID != nil && *e.ProjectID == projectID)) {
			out = append(out, cp(e))
		}
	}
	return out, nil
}

func (r evaluationRepo) ListByProject(_ context.Context, projectID string) ([]*entity.UserEvaluation, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.UserEvaluation
	for _, e := range r.s.evaluations {
		if e.ProjectID != nil && *e.ProjectID == projectID {
			out = append(out, cp(e))
		}
	}
	return out, nil
}

func (r evaluationRepo) Count(_ context.Context, t repository.EvaluationTuple) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	n := 0
	for _, e := range r.s.evaluations {
		if e.UserID == t.UserID && e.ProjectID != nil && *e.ProjectID == t.ProjectID && e.Technology == t.Technology {
			n++
		}
	}
	return n, nil
}

// LockTuple no hace nada: TxRunner ya serializa las transacciones.
func (r evaluationRepo) LockTuple(context.Context, repository.EvaluationTuple) error { return nil }

func (r evaluationRepo) DeleteBeyondLimit(_ context.Context, dryRun bool) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	groups := map[string][]*entity.UserEvaluation{}
	for _, e := range r.s.evaluations {
		if e.ProjectID == nil {
			continue
		}
		k := e.UserID + "|" + *e.ProjectID + "|" + e.Technology
		groups[k] = append(groups[k], e)
	}
	var n int64
	now := time.Now()
	for _, list := range groups {
		tier := entity.MembershipFree
		if u, ok := r.s.users[list[0].UserID]; ok {
			tier = u.EffectiveMembership(now)
		}
		limit := membership.EvaluationLimit(tier)
		if limit == membership.Unlimited || len(list) <= limit {
			continue
		}
		sort.Slice(list, func(i, j int) bool { return list[i].CreatedAt.After(list[j].CreatedAt) })
		for _, e := range list[limit:] {
			n++
			if !dryRun {
				delete(r.s.evaluations, e.ID)
			}
		}
	}
	return n, nil
}

// --- SkillAssessments ---

type assessmentRepo struct{ s *Store }

// Assessments repositorio de evaluaciones de habilidades.
func (s *Store) Assessments() repository.SkillAssessmentRepository { return assessmentRepo{s} }

// SeedAssessment agrega una evaluación de habilidades.
func (s *Store) SeedAssessment(a *entity.SkillAssessment) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.assessments[a.ID] = cp(a)
}

func (r assessmentRepo) Create(_ context.Context, a *entity.SkillAssessment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if a.Status == entity.AssessmentStarted {
		for _, cur := range r.s.assessments {
			if cur.UserID == a.UserID && cur.ProjectID == a.ProjectID && cur.Status == entity.AssessmentStarted {
				return domain.ErrDuplicate
			}
		}
	}
	r.s.assessments[a.ID] = cp(a)
	return nil
}

func (r assessmentRepo) DiscardExpired(_ context.Context, userID, projectID string, now time.Time) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var n int64
	for id, a := range r.s.assessments {
		if a.UserID == userID && a.ProjectID == projectID && a.Status == entity.AssessmentStarted && !a.ExpiresAt.After(now) {
			delete(r.s.assessments, id)
			n++
		}
	}
	return n, nil
}

func (r assessmentRepo) GetByID(_ context.Context, id string) (*entity.SkillAssessment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if a, ok := r.s.assessments[id]; ok {
		return cp(a), nil
	}
	return nil, nil
}

func (r assessmentRepo) Complete(_ context.Context, a *entity.SkillAssessment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur, ok := r.s.assessments[a.ID]
	if !ok {
		return domain.ErrNotFound
	}
	if cur.Status == entity.AssessmentCompleted {
		return domain.ErrAssessmentCompleted
	}
	r.s.assessments[a.ID] = cp(a)
	return nil
}

func (r assessmentRepo) FindActive(_ context.Context, userID, projectID string, now time.Time) (*entity.SkillAssessment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, a := range r.s.assessments {
		if a.UserID == userID && a.ProjectID == projectID && a.Status == entity.AssessmentStarted && a.ExpiresAt.After(now) {
			return cp(a), nil
		}
	}
	return nil, nil
}

func (r assessmentRepo) ListByUser(_ context.Context, userID, projectID string) ([]*entity.SkillAssessment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.SkillAssessment
	for _, a := range r.s.assessments {
		if a.UserID == userID && (projectID == "" || a.ProjectID == projectID) {
			out = append(out, cp(a))
		}
	}
	return out, nil
}

func (r assessmentRepo) LatestCompletedByProject(_ context.Context, projectID string) ([]*entity.SkillAssessment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	latest := map[string]*entity.SkillAssessment{}
	for _, a := range r.s.assessments {
		if a.ProjectID != projectID || a.Status != entity.AssessmentCompleted || a.CompletedAt == nil {
			continue
		}
		if cur, ok := latest[a.UserID]; !ok || a.CompletedAt.After(*cur.CompletedAt) {
			latest[a.UserID] = a
		}
	}
	out := make([]*entity.SkillAssessment, 0, len(latest))
	for _, a := range latest {
		out = append(out, cp(a))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UserID < out[j].UserID })
	return out, nil
}

// --- Events ---

type eventRepo struct{ s *Store }

// Events repositorio de eventos.
func (s *Store) Events() repository.EventRepository { return eventRepo{s} }

func (r eventRepo) Create(_ context.Context, e *entity.Event) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.events[e.ID] = cp(e)
	return nil
}

func (r eventRepo) GetByID(_ context.Context, id string) (*entity.Event, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if e, ok := r.s.events[id]; ok {
		return cp(e), nil
	}
	return nil, nil
}

func (r eventRepo) Update(_ context.Context, e *entity.Event) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.events[e.ID] = cp(e)
	return nil
}

func (r eventRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.events, id)
	return nil
}

func (r eventRepo) ListByProject(_ context.Context, projectID string, from, to time.Time) ([]*entity.Event, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.Event
	for _, e := range r.s.events {
		if e.ProjectID == projectID && e.StartsAt.Before(to) && !e.EndsAt.Before(from) {
			out = append(out, cp(e))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartsAt.Before(out[j].StartsAt) })
	return out, nil
}

// --- Notes ---

type noteRepo struct{ s *Store }

// Notes repositorio de notas.
func (s *Store) Notes() repository.NoteRepository { return noteRepo{s} }

func (r noteRepo) Create(_ context.Context, n *entity.Note) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.notes[n.ID] = cp(n)
	return nil
}

func (r noteRepo) GetByID(_ context.Context, id string) (*entity.Note, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if n, ok := r.s.notes[id]; ok {
		return cp(n), nil
	}
	return nil, nil
}

func (r noteRepo) Update(_ context.Context, n *entity.Note) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.notes[n.ID] = cp(n)
	return nil
}

func (r noteRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.notes, id)
	return nil
}

func (r noteRepo) ListByAuthor(_ context.Context, projectID, authorID string) ([]*entity.Note, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.Note
	for _, n := range r.s.notes {
		if n.ProjectID == projectID && n.AuthorID == authorID {
			out = append(out, cp(n))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Pinned != out[j].Pinned {
			return out[i].Pinned
		}
		return out[i].UpdatedAt.After(out[j].UpdatedAt)
	})
	return out, nil
}

// --- Messages ---

type messageRepo struct{ s *Store }

// Messages repositorio de conversaciones y mensajes.
func (s *Store) Messages() repository.MessageRepository { return messageRepo{s} }

func (r messageRepo) GetOrCreateConversation(_ context.Context, userA, userB string) (*entity.Conversation, error) {
	a, b := entity.OrderedPair(userA, userB)
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, c := range r.s.conversations {
		if c.UserA == a && c.UserB == b {
			return cp(c), nil
		}
	}
	c := &entity.Conversation{ID: uuid.New().String(), UserA: a, UserB: b, CreatedAt: time.Now()}
	r.s.conversations[c.ID] = c
	return cp(c), nil
}

func (r messageRepo) GetConversation(_ context.Context, id string) (*entity.Conversation, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if c, ok := r.s.conversations[id]; ok {
		return cp(c), nil
	}
	return nil, nil
}

func (r messageRepo) ListConversations(_ context.Context, userID string) ([]*entity.Conversation, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.Conversation
	for _, c := range r.s.conversations {
		if !c.Has(userID) {
			continue
		}
		cc := cp(c)
		for _, m := range r.s.messages {
			if m.ConversationID != c.ID {
				continue
			}
			if cc.LastMessage == nil || m.CreatedAt.After(cc.LastMessage.CreatedAt) {
				cc.LastMessage = cp(m)
			}
			if m.SenderID != userID && m.ReadAt == nil {
				cc.UnreadCount++
			}
		}
		out = append(out, cc)
	}
	return out, nil
}

func (r messageRepo) CreateMessage(_ context.Context, m *entity.Message) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.conversations[m.ConversationID]
	if !ok {
		return domain.ErrNotFound
	}
	at := m.CreatedAt
	c.LastMessageAt = &at
	r.s.messages[m.ID] = cp(m)
	return nil
}

func (r messageRepo) ListMessages(_ context.Context, conversationID string, limit int, before *time.Time) ([]*entity.Message, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.Message
	for _, m := range r.s.messages {
		if m.ConversationID == conversationID && (before == nil || m.CreatedAt.Before(*before)) {
			out = append(out, cp(m))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r messageRepo) MarkRead(_ context.Context, conversationID, readerID string, at time.Time) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var n int64
	for _, m := range r.s.messages {
		if m.ConversationID == conversationID && m.SenderID != readerID && m.ReadAt == nil {
			t := at
			m.ReadAt = &t
			n++
		}
	}
	return n, nil
}

// --- Settings ---

type settingsRepo struct{ s *Store }

// Settings repositorio de configuración de proyectos.
func (s *Store) Settings() repository.SettingsRepository { return settingsRepo{s} }

func (r settingsRepo) ListAutoAssign(_ context.Context) ([]string, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []string
	for id, st := range r.s.settings {
		if st.AutoAssignDaily {
			out = append(out, id)
		}
	}
	sort.Strings(out)
	return out, nil
}

func (r settingsRepo) Get(_ context.Context, projectID string) (*entity.ProjectSettings, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if st, ok := r.s.settings[projectID]; ok {
		c := cp(st)
		c.WorkingDays = append([]int(nil), st.WorkingDays...)
		return c, nil
	}
	return nil, nil
}

func (r settingsRepo) Upsert(_ context.Context, st *entity.ProjectSettings) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c := cp(st)
	c.WorkingDays = append([]int(nil), st.WorkingDays...)
	r.s.settings[st.ProjectID] = c
	return nil
}

// --- Cache y Notifier ---

// Cache caché en memoria con expiración.
type Cache struct {
	mu    sync.Mutex
	items map[string]cacheItem
	Down  bool // simula Redis caído
}

type cacheItem struct {
	data    []byte
	expires time.Time
}

var _ ports.Cache = (*Cache)(nil)

// NewCache construye la caché.
func NewCache() *Cache { return &Cache{items: map[string]cacheItem{}} }

func (c *Cache) GetJSON(_ context.Context, key string, dest any) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	it, ok := c.items[key]
	if c.Down || !ok || time.Now().After(it.expires) {
		return false, nil
	}
	return true, json.Unmarshal(it.data, dest)
}

func (c *Cache) SetJSON(_ context.Context, key string, value any, ttl time.Duration) error {
	if c.Down {
		return nil
	}
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items[key] = cacheItem{data: data, expires: time.Now().Add(ttl)}
	return nil
}

func (c *Cache) Delete(_ context.Context, keys ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, k := range keys {
		delete(c.items, k)
	}
	return nil
}

func (c *Cache) AcquireLock(_ context.Context, key string, ttl time.Duration) (string, bool, error) {
	if c.Down {
		return "", true, nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if it, ok := c.items[key]; ok && time.Now().Before(it.expires) {
		return "", false, nil
	}
	token := uuid.NewString()
	c.items[key] = cacheItem{data: []byte(token), expires: time.Now().Add(ttl)}
	return token, true, nil
}

func (c *Cache) ReleaseLock(_ context.Context, key, token string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if it, ok := c.items[key]; ok && token != "" && string(it.data) == token {
		delete(c.items, key)
	}
	return nil
}

func (c *Cache) Available(context.Context) bool { return !c.Down }

// Has informa si la clave existe.
func (c *Cache) Has(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.items[key]
	return ok
}

// Notification evento registrado por Notifier.
type Notification struct {
	UserID string
	Type   string
	Data   any
}

// Notifier registra las notificaciones en lugar de enviarlas.
type Notifier struct {
	mu   sync.Mutex
	Sent []Notification
}

var _ ports.Notifier = (*Notifier)(nil)

func (n *Notifier) Notify(userID, eventType string, data any) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.Sent = append(n.Sent, Notification{UserID: userID, Type: eventType, Data: data})
}

// For notificaciones enviadas a userID.
func (n *Notifier) For(userID string) []Notification {
	n.mu.Lock()
	defer n.mu.Unlock()
	var out []Notification
	for _, x := range n.Sent {
		if x.UserID == userID {
			out = append(out, x)
		}
	}
	return out
}
