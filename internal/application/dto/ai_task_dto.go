package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// GenerateAITasksRequest entrada para generar el plan de tareas.
type GenerateAITasksRequest struct {
	ProjectID   string `json:"projectId" validate:"required,uuid"`
	Days        int    `json:"days" validate:"required,min=1,max=30"`
	TasksPerDay int    `json:"tasksPerDay" validate:"required,min=1,max=10"`
	Focus       string `json:"focus" validate:"max=500"`
}

// AssignDailyRequest opciones de la asignación automática.
type AssignDailyRequest struct {
	Day     *int `json:"day" validate:"omitempty,min=1"`
	BySkill bool `json:"bySkill"`
}

// UpdateAssigneeRequest entrada para reasignar una tarea IA. AssigneeID nil la deja sin asignar.
type UpdateAssigneeRequest struct {
	AssigneeID *string `json:"assigneeId" validate:"omitempty,uuid"`
}

// AITaskResponse salida de una tarea IA.
type AITaskResponse struct {
	ID             string          `json:"id"`
	ProjectID      string          `json:"projectId"`
	Title          string          `json:"title"`
	Description    string          `json:"description"`
	Status         string          `json:"status"`
	AssigneeID     *string         `json:"assigneeId"`
	DayNumber      int             `json:"dayNumber"`
	SkillLevel     string          `json:"skillLevel"`
	EstimatedHours decimal.Decimal `json:"estimatedHours"`
	CreatedAt      time.Time       `json:"createdAt"`
	CompletedAt    *time.Time      `json:"completedAt,omitempty"`
}

// AssignmentItem tarea asignada a un usuario.
type AssignmentItem struct {
	TaskID string `json:"taskId"`
	UserID string `json:"userId"`
}

// AssignDailyResponse resultado de la asignación automática.
type AssignDailyResponse struct {
	Message       string           `json:"message"`
	AssignedTasks int              `json:"assignedTasks"`
	CurrentDay    int              `json:"currentDay"`
	Assignments   []AssignmentItem `json:"assignments"`
}

// CurrentDayResponse día actual del plan.
type CurrentDayResponse struct {
	ProjectID  string `json:"projectId"`
	CurrentDay int    `json:"currentDay"`
}
