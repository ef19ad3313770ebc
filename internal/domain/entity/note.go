package entity

import "time"

// Note nota personal de un usuario dentro de un proyecto.
type Note struct {
	ID        string
	ProjectID string
	AuthorID  string
	Title     string
	Content   string
	Pinned    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
