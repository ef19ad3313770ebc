package ai

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xurp-ia/xurp-api/internal/application/dto"
	"github.com/xurp-ia/xurp-api/internal/domain/entity"
)

func TestGenerateTaskPlan_RepartePorDia(t *testing.T) {
	g := NewTemplateGenerator()
	plan, err := g.GenerateTaskPlan(context.Background(), dto.TaskPlanRequest{ProjectName: "Tienda", Days: 3, TasksPerDay: 6})
	require.NoError(t, err)
	require.Len(t, plan, 18)

	perDay := map[int]int{}
	for _, task := range plan {
		perDay[task.DayNumber]++
		assert.True(t, entity.IsValidSkillLevel(task.SkillLevel))
		assert.True(t, task.EstimatedHours.IsPositive())
		assert.NotEmpty(t, task.Title)
	}
	assert.Equal(t, map[int]int{1: 6, 2: 6, 3: 6}, perDay)
}

func TestGenerateTaskPlan_Determinista(t *testing.T) {
	g := NewTemplateGenerator()
	req := dto.TaskPlanRequest{ProjectName: "Tienda", Focus: "pagos", Days: 2, TasksPerDay: 2}
	a, err := g.GenerateTaskPlan(context.Background(), req)
	require.NoError(t, err)
	b, err := g.GenerateTaskPlan(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestGenerateTaskPlan_Invalido(t *testing.T) {
	_, err := NewTemplateGenerator().GenerateTaskPlan(context.Background(), dto.TaskPlanRequest{Days: 0, TasksPerDay: 1})
	assert.Error(t, err)
}

func TestGenerateQuestions(t *testing.T) {
	g := NewTemplateGenerator()
	qs, err := g.GenerateQuestions(context.Background(), dto.QuestionRequest{Technology: "Go", Level: entity.SkillAvanzado, Count: 4})
	require.NoError(t, err)
	require.Len(t, qs, 4)
	for _, q := range qs {
		assert.Contains(t, q.Question, "Go")
		assert.GreaterOrEqual(t, q.CorrectIndex, 0)
		assert.Less(t, q.CorrectIndex, len(q.Options))
	}

	_, err = g.GenerateQuestions(context.Background(), dto.QuestionRequest{Technology: "  "})
	assert.Error(t, err)
}
