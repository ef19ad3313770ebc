package entity

import "time"

// Event evento del calendario de un proyecto.
type Event struct {
	ID          string
	ProjectID   string
	Title       string
	Description string
	StartsAt    time.Time
	EndsAt      time.Time
	AllDay      bool
	CreatedBy   string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
