package planning_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xurp-ia/xurp-api/internal/domain/entity"
	"github.com/xurp-ia/xurp-api/internal/domain/planning"
)

var base = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

func member(id string, joinedMin int, level string) planning.Member {
	return planning.Member{UserID: id, JoinedAt: base.Add(time.Duration(joinedMin) * time.Minute), SkillLevel: level}
}

func tasks(n, day int) []planning.TaskCandidate {
	out := make([]planning.TaskCandidate, n)
	for i := range out {
		out[i] = planning.TaskCandidate{
			ID:         fmt.Sprintf("t%02d", i),
			DayNumber:  day,
			SkillLevel: entity.SkillPrincipiante,
			CreatedAt:  base.Add(time.Duration(i) * time.Second),
		}
	}
	return out
}

func countByUser(plan []planning.Assignment) map[string]int {
	out := map[string]int{}
	for _, a := range plan {
		out[a.UserID]++
	}
	return out
}

// Escenario: dueño O, colaboradores [A, B] (O aparece duplicado como colaborador), 5 tareas del día actual.
func TestPlan_EscenarioDuenoExcluido(t *testing.T) {
	members := []planning.Member{member("O", 0, ""), member("A", 1, ""), member("B", 2, ""), member("O", 3, "")}

	plan, err := planning.Plan("O", tasks(5, 1), members, planning.Options{CurrentDay: 1})
	require.NoError(t, err)
	require.Len(t, plan, 5)

	counts := countByUser(plan)
	assert.Zero(t, counts["O"])
	assert.Equal(t, 3, counts["A"])
	assert.Equal(t, 2, counts["B"])
}

func TestPlan_SinColaboradoresNoAsigna(t *testing.T) {
	plan, err := planning.Plan("O", tasks(3, 1), []planning.Member{member("O", 0, "")}, planning.Options{CurrentDay: 1})
	assert.ErrorIs(t, err, planning.ErrNoEligibleCollaborators)
	assert.Nil(t, plan)
}

// N tareas sobre K colaboradores: cada uno recibe ⌈N/K⌉ o ⌊N/K⌋.
func TestPlan_DistribucionBalanceada(t *testing.T) {
	for n := 0; n <= 17; n++ {
		for k := 1; k <= 5; k++ {
			members := make([]planning.Member, 0, k)
			for i := 0; i < k; i++ {
				members = append(members, member(fmt.Sprintf("u%d", i), i, ""))
			}
			plan, err := planning.Plan("owner", tasks(n, 2), members, planning.Options{CurrentDay: 2})
			require.NoError(t, err)
			require.Len(t, plan, n)

			counts := countByUser(plan)
			lo, hi := n/k, (n+k-1)/k
			for _, m := range members {
				c := counts[m.UserID]
				assert.True(t, c == lo || c == hi, "n=%d k=%d user=%s recibió %d", n, k, m.UserID, c)
			}
		}
	}
}

func TestPlan_OrdenDeTareas(t *testing.T) {
	in := []planning.TaskCandidate{
		{ID: "d3", DayNumber: 3, SkillLevel: entity.SkillPrincipiante, CreatedAt: base},
		{ID: "d2-av", DayNumber: 2, SkillLevel: entity.SkillAvanzado, CreatedAt: base},
		{ID: "d2-pr-late", DayNumber: 2, SkillLevel: entity.SkillPrincipiante, CreatedAt: base.Add(time.Minute)},
		{ID: "d2-pr", DayNumber: 2, SkillLevel: entity.SkillPrincipiante, CreatedAt: base},
		{ID: "d1-old", DayNumber: 1, SkillLevel: entity.SkillPrincipiante, CreatedAt: base},
		{ID: "d2-taken", DayNumber: 2, SkillLevel: entity.SkillPrincipiante, CreatedAt: base, Assigned: true},
	}
	members := []planning.Member{member("B", 5, ""), member("A", 1, "")}

	plan, err := planning.Plan("O", in, members, planning.Options{CurrentDay: 2})
	require.NoError(t, err)

	want := []planning.Assignment{
		{TaskID: "d2-pr", UserID: "A"},
		{TaskID: "d2-pr-late", UserID: "B"},
		{TaskID: "d2-av", UserID: "A"},
		{TaskID: "d3", UserID: "B"},
	}
	if diff := cmp.Diff(want, plan); diff != "" {
		t.Errorf("plan inesperado (-want +got):\n%s", diff)
	}
}

func TestPlan_FiltroDiaExacto(t *testing.T) {
	in := append(tasks(2, 2), tasks(3, 3)...)
	for i := range in {
		in[i].ID = fmt.Sprintf("t%d-%d", in[i].DayNumber, i)
	}
	day := 3
	plan, err := planning.Plan("O", in, []planning.Member{member("A", 0, "")}, planning.Options{CurrentDay: 1, Day: &day})
	require.NoError(t, err)
	assert.Len(t, plan, 3)
}

func TestPlan_PorHabilidad(t *testing.T) {
	in := []planning.TaskCandidate{
		{ID: "p1", DayNumber: 1, SkillLevel: entity.SkillPrincipiante, CreatedAt: base},
		{ID: "p2", DayNumber: 1, SkillLevel: entity.SkillPrincipiante, CreatedAt: base.Add(time.Second)},
		{ID: "a1", DayNumber: 1, SkillLevel: entity.SkillAvanzado, CreatedAt: base},
		{ID: "a2", DayNumber: 1, SkillLevel: entity.SkillAvanzado, CreatedAt: base.Add(time.Second)},
	}
	members := []planning.Member{
		member("junior", 0, entity.SkillPrincipiante),
		member("senior", 1, entity.SkillAvanzado),
	}

	plan, err := planning.Plan("O", in, members, planning.Options{CurrentDay: 1, BySkill: true})
	require.NoError(t, err)

	byTask := map[string]string{}
	for _, a := range plan {
		byTask[a.TaskID] = a.UserID
	}
	assert.Equal(t, "senior", byTask["a1"], "solo senior califica para tareas avanzadas")
	assert.Equal(t, "senior", byTask["a2"])
	assert.Equal(t, "junior", byTask["p1"])
	assert.Equal(t, "senior", byTask["p2"], "las tareas de principiante se reparten por carga")
}

func TestPlan_PorHabilidadSinCalificadosUsaTodos(t *testing.T) {
	in := []planning.TaskCandidate{
		{ID: "a1", DayNumber: 1, SkillLevel: entity.SkillAvanzado, CreatedAt: base},
		{ID: "a2", DayNumber: 1, SkillLevel: entity.SkillAvanzado, CreatedAt: base.Add(time.Second)},
	}
	members := []planning.Member{member("x", 0, ""), member("y", 1, entity.SkillIntermedio)}

	plan, err := planning.Plan("O", in, members, planning.Options{CurrentDay: 1, BySkill: true})
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"x": 1, "y": 1}, countByUser(plan))
}
