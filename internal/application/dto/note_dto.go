package dto

import "time"

// CreateNoteRequest entrada para crear una nota.
type CreateNoteRequest struct {
	ProjectID string `json:"projectId" validate:"required,uuid"`
	Title     string `json:"title" validate:"required,min=1,max=200"`
	Content   string `json:"content" validate:"max=20000"`
	Pinned    bool   `json:"pinned"`
}

// UpdateNoteRequest entrada para editar una nota.
type UpdateNoteRequest struct {
	Title   *string `json:"title" validate:"omitempty,min=1,max=200"`
	Content *string `json:"content" validate:"omitempty,max=20000"`
	Pinned  *bool   `json:"pinned"`
}

// NoteResponse salida de una nota.
type NoteResponse struct {
	ID        string    `json:"id"`
	ProjectID string    `json:"projectId"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Pinned    bool      `json:"pinned"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
