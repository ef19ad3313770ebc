package dto

import "time"

// CreateTaskRequest entrada para crear una tarea manual.
type CreateTaskRequest struct {
	ProjectID   string  `json:"projectId" validate:"required,uuid"`
	Title       string  `json:"title" validate:"required,min=1,max=300"`
	Description string  `json:"description" validate:"max=5000"`
	AssigneeID  *string `json:"assigneeId" validate:"omitempty,uuid"`
}

// UpdateTaskRequest entrada para editar una tarea. ClearAssignee quita el asignado.
type UpdateTaskRequest struct {
	Title         *string `json:"title" validate:"omitempty,min=1,max=300"`
	Description   *string `json:"description" validate:"omitempty,max=5000"`
	AssigneeID    *string `json:"assigneeId" validate:"omitempty,uuid"`
	ClearAssignee bool    `json:"clearAssignee"`
}

// UpdateStatusRequest entrada para cambiar el estado (tareas e IA).
type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=PENDING IN_PROGRESS COMPLETED"`
}

// TaskListQuery filtros de listado.
type TaskListQuery struct {
	ProjectID  string `query:"projectId" validate:"required,uuid"`
	Status     string `query:"status" validate:"omitempty,oneof=PENDING IN_PROGRESS COMPLETED"`
	AssigneeID string `query:"assigneeId" validate:"omitempty,uuid"`
}

// TaskResponse salida de una tarea manual.
type TaskResponse struct {
	ID          string     `json:"id"`
	ProjectID   string     `json:"projectId"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Status      string     `json:"status"`
	AssigneeID  *string    `json:"assigneeId"`
	CreatedBy   string     `json:"createdBy"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
}
