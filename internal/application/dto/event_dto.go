package dto

import "time"

// EventRequest entrada para crear o reemplazar un evento.
type EventRequest struct {
	Title       string    `json:"title" validate:"required,min=1,max=200"`
	Description string    `json:"description" validate:"max=5000"`
	StartsAt    time.Time `json:"startsAt" validate:"required"`
	EndsAt      time.Time `json:"endsAt" validate:"required,gtefield=StartsAt"`
	AllDay      bool      `json:"allDay"`
}

// EventResponse salida de un evento.
type EventResponse struct {
	ID          string    `json:"id"`
	ProjectID   string    `json:"projectId"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	StartsAt    time.Time `json:"startsAt"`
	EndsAt      time.Time `json:"endsAt"`
	AllDay      bool      `json:"allDay"`
	CreatedBy   string    `json:"createdBy"`
}
