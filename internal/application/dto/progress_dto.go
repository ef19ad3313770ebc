package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// StatusBreakdown conteo por estado.
type StatusBreakdown struct {
	Pending    int `json:"pending"`
	InProgress int `json:"inProgress"`
	Completed  int `json:"completed"`
	Total      int `json:"total"`
}

// MemberProgress avance de un integrante.
type MemberProgress struct {
	UserID         string          `json:"userId"`
	Name           string          `json:"name"`
	Role           string          `json:"role"`
	Tasks          StatusBreakdown `json:"tasks"`
	AITasks        StatusBreakdown `json:"aiTasks"`
	HoursAssigned  decimal.Decimal `json:"hoursAssigned"`
	HoursCompleted decimal.Decimal `json:"hoursCompleted"`
}

// ProjectProgressResponse tablero de avance del proyecto.
type ProjectProgressResponse struct {
	ProjectID         string           `json:"projectId"`
	ProjectName       string           `json:"projectName"`
	CurrentDay        int              `json:"currentDay"`
	Tasks             StatusBreakdown  `json:"tasks"`
	AITasks           StatusBreakdown  `json:"aiTasks"`
	Unassigned        int              `json:"unassigned"`
	CompletionPercent int              `json:"completionPercent"`
	HoursTotal        decimal.Decimal  `json:"hoursTotal"`
	HoursCompleted    decimal.Decimal  `json:"hoursCompleted"`
	Members           []MemberProgress `json:"members"`
	GeneratedAt       time.Time        `json:"generatedAt"`
}

// ProjectReport datos completos para el PDF de avance.
type ProjectReport struct {
	Project  ProjectResponse
	Owner    UserSummary
	Progress ProjectProgressResponse
	Tasks    []TaskResponse
	AITasks  []AITaskResponse
}

// PlanExport datos para exportar el plan de tareas IA.
type PlanExport struct {
	Project     ProjectResponse
	StartDate   time.Time
	HoursPerDay int
	WorkingDays []int
	Tasks       []AITaskResponse
	Assignees   map[string]UserSummary
}
