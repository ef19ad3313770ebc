package pdf

import (
	"bytes"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xurp-ia/xurp-api/internal/application/dto"
	"github.com/xurp-ia/xurp-api/internal/domain/entity"
)

func sampleReport() *dto.ProjectReport {
	ana := "ana"
	return &dto.ProjectReport{
		Project: dto.ProjectResponse{ID: "p1", Name: "Tienda online"},
		Owner:   dto.UserSummary{ID: "owner", Name: "Olga"},
		Progress: dto.ProjectProgressResponse{
			ProjectID:         "p1",
			CurrentDay:        3,
			CompletionPercent: 40,
			HoursTotal:        decimal.NewFromInt(10),
			HoursCompleted:    decimal.NewFromInt(4),
			Members: []dto.MemberProgress{
				{UserID: "owner", Name: "Olga", Role: entity.RoleOwner, HoursAssigned: decimal.Zero, HoursCompleted: decimal.Zero},
				{UserID: "ana", Name: "Ana", Role: entity.RoleMember, HoursAssigned: decimal.NewFromInt(6), HoursCompleted: decimal.NewFromInt(4)},
			},
			GeneratedAt: time.Date(2026, 3, 4, 10, 0, 0, 0, time.UTC),
		},
		Tasks: []dto.TaskResponse{{ID: "m1", Title: "Comprar dominio", Status: entity.TaskStatusPending, AssigneeID: &ana}},
		AITasks: []dto.AITaskResponse{
			{ID: "t1", Title: "Definir alcance", Status: entity.TaskStatusCompleted, DayNumber: 1, SkillLevel: entity.SkillPrincipiante, EstimatedHours: decimal.NewFromInt(4)},
		},
	}
}

func TestGenerateProjectReport(t *testing.T) {
	for _, url := range []string{"", "https://app.xurp.io/"} {
		doc, err := NewReportGenerator(url).GenerateProjectReport(sampleReport())
		require.NoError(t, err)
		assert.True(t, bytes.HasPrefix(doc, []byte("%PDF")))
	}
}

func TestGenerateProjectReport_SinTareas(t *testing.T) {
	r := sampleReport()
	r.Tasks, r.AITasks = nil, nil
	doc, err := NewReportGenerator("").GenerateProjectReport(r)
	require.NoError(t, err)
	assert.NotEmpty(t, doc)
}

func TestStatusLabel(t *testing.T) {
	assert.Equal(t, "En progreso", statusLabel(entity.TaskStatusInProgress))
	assert.Equal(t, "OTRO", statusLabel("OTRO"))
}
