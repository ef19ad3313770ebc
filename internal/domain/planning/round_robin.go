// Package planning reparte las tareas generadas de un proyecto entre sus colaboradores.
package planning

import (
	"errors"
	"sort"
	"time"

	"github.com/xurp-ia/xurp-api/internal/domain/entity"
)

// ErrNoEligibleCollaborators el proyecto no tiene colaboradores (distintos del dueño) a quienes asignar.
var ErrNoEligibleCollaborators = errors.New("no hay colaboradores elegibles para asignar tareas")

// TaskCandidate datos mínimos de una AITask para planificar.
type TaskCandidate struct {
	ID         string
	DayNumber  int
	SkillLevel string
	CreatedAt  time.Time
	Assigned   bool
}

// Member colaborador candidato. SkillLevel es el último nivel evaluado ("" si no tiene evaluación).
type Member struct {
	UserID     string
	JoinedAt   time.Time
	SkillLevel string
}

// Assignment tarea → usuario.
type Assignment struct {
	TaskID string
	UserID string
}

// Options filtros de la asignación.
type Options struct {
	CurrentDay int  // se excluyen tareas de días anteriores
	Day        *int // si no es nil, solo tareas de ese día
	BySkill    bool // cada tarea va a colaboradores con nivel >= al de la tarea
}

// EligibleMembers excluye al dueño, elimina duplicados y ordena por fecha de ingreso y luego userID.
func EligibleMembers(ownerID string, members []Member) []Member {
	seen := make(map[string]bool, len(members))
	out := make([]Member, 0, len(members))
	for _, m := range members {
		if m.UserID == "" || m.UserID == ownerID || seen[m.UserID] {
			continue
		}
		seen[m.UserID] = true
		out = append(out, m)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].JoinedAt.Equal(out[j].JoinedAt) {
			return out[i].JoinedAt.Before(out[j].JoinedAt)
		}
		return out[i].UserID < out[j].UserID
	})
	return out
}

// EligibleTasks filtra las tareas sin asignar según el día y las ordena por
// día, nivel de habilidad, fecha de creación e id.
func EligibleTasks(tasks []TaskCandidate, opts Options) []TaskCandidate {
	out := make([]TaskCandidate, 0, len(tasks))
	for _, t := range tasks {
		if t.Assigned || t.DayNumber < opts.CurrentDay {
			continue
		}
		if opts.Day != nil && t.DayNumber != *opts.Day {
			continue
		}
		out = append(out, t)
	}
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.DayNumber != b.DayNumber {
			return a.DayNumber < b.DayNumber
		}
		if ra, rb := entity.SkillRank(a.SkillLevel), entity.SkillRank(b.SkillLevel); ra != rb {
			return ra < rb
		}
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.Before(b.CreatedAt)
		}
		return a.ID < b.ID
	})
	return out
}

// Plan calcula la asignación round-robin. El dueño nunca recibe tareas.
// Con cero colaboradores elegibles devuelve ErrNoEligibleCollaborators y ningún resultado parcial.
func Plan(ownerID string, tasks []TaskCandidate, members []Member, opts Options) ([]Assignment, error) {
	pool := EligibleMembers(ownerID, members)
	if len(pool) == 0 {
		return nil, ErrNoEligibleCollaborators
	}
	ordered := EligibleTasks(tasks, opts)
	plan := make([]Assignment, 0, len(ordered))

	if !opts.BySkill {
		for i, t := range ordered {
			plan = append(plan, Assignment{TaskID: t.ID, UserID: pool[i%len(pool)].UserID})
		}
		return plan, nil
	}

	// Por habilidad: entre los que califican, el de menos tareas asignadas; empate por orden del pool.
	load := make(map[string]int, len(pool))
	for _, t := range ordered {
		candidates := qualified(pool, t.SkillLevel)
		if len(candidates) == 0 {
			candidates = pool
		}
		best := candidates[0]
		for _, m := range candidates[1:] {
			if load[m.UserID] < load[best.UserID] {
				best = m
			}
		}
		load[best.UserID]++
		plan = append(plan, Assignment{TaskID: t.ID, UserID: best.UserID})
	}
	return plan, nil
}

// qualified miembros cuyo nivel es >= al de la tarea. Sin evaluación cuenta como Principiante.
func qualified(pool []Member, taskLevel string) []Member {
	need := entity.SkillRank(taskLevel)
	out := make([]Member, 0, len(pool))
	for _, m := range pool {
		rank := entity.SkillRank(m.SkillLevel)
		if rank == 0 {
			rank = entity.SkillRank(entity.SkillPrincipiante)
		}
		if rank >= need {
			out = append(out, m)
		}
	}
	return out
}
