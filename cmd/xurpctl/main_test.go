package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xurp-ia/xurp-api/internal/application/dto"
	"github.com/xurp-ia/xurp-api/internal/application/usecase"
	"github.com/xurp-ia/xurp-api/internal/domain"
)

func TestRootCmd_Subcomandos(t *testing.T) {
	root := newRootCmd()
	for _, path := range [][]string{
		{"migrate", "up"},
		{"migrate", "status"},
		{"repair", "owner-collaborators"},
		{"repair", "evaluations"},
		{"assign-daily"},
	} {
		cmd, _, err := root.Find(path)
		require.NoError(t, err, path)
		assert.Equal(t, path[len(path)-1], cmd.Name())
	}
}

func TestRepair_DryRunPorDefectoApagado(t *testing.T) {
	cmd, _, err := newRootCmd().Find([]string{"repair", "evaluations"})
	require.NoError(t, err)
	f := cmd.Flag("dry-run")
	require.NotNil(t, f)
	assert.Equal(t, "false", f.DefValue)
}

func TestAssignDaily_ExigeProyecto(t *testing.T) {
	t.Setenv("APP_ENV", "test")
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs([]string{"assign-daily", "--by-skill"})

	err := root.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--project")
}

func TestAssignDaily_ProyectoYAllSonExcluyentes(t *testing.T) {
	t.Setenv("APP_ENV", "test")
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs([]string{"assign-daily", "--project", "p1", "--all"})

	err := root.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "project")
	assert.Contains(t, err.Error(), "all")
}

func TestPrintAutoResults_FallaSiAlgunProyectoFalla(t *testing.T) {
	var out bytes.Buffer
	err := printAutoResults(&out, []usecase.ProjectAssignResult{
		{ProjectID: "p1", Result: &dto.AssignDailyResponse{CurrentDay: 2, AssignedTasks: 1,
			Assignments: []dto.AssignmentItem{{TaskID: "t1", UserID: "ana"}}}},
		{ProjectID: "p2", Err: domain.ErrAssignmentInProgress},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 de 2")
	assert.Contains(t, out.String(), "proyecto p1: día 2: 1 tareas asignadas")
	assert.Contains(t, out.String(), "t1 -> ana")
	assert.Contains(t, out.String(), "proyecto p2: error:")

	out.Reset()
	require.NoError(t, printAutoResults(&out, []usecase.ProjectAssignResult{
		{ProjectID: "p1", Result: &dto.AssignDailyResponse{CurrentDay: 1}},
	}))
}
