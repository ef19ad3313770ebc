package entity

import "time"

// Estados de una tarea (manual o generada por IA).
const (
	TaskStatusPending    = "PENDING"
	TaskStatusInProgress = "IN_PROGRESS"
	TaskStatusCompleted  = "COMPLETED"
)

// Task tarea manual de un proyecto.
type Task struct {
	ID          string
	ProjectID   string
	Title       string
	Description string
	Status      string
	AssigneeID  *string
	CreatedBy   string
	CreatedAt   time.Time
	UpdatedAt   time.Time
	CompletedAt *time.Time
}

// IsValidTaskStatus informa si s es un estado conocido.
func IsValidTaskStatus(s string) bool {
	return s == TaskStatusPending || s == TaskStatusInProgress || s == TaskStatusCompleted
}
