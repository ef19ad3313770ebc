package dto

import "time"

// CreateProjectRequest entrada para crear un proyecto.
type CreateProjectRequest struct {
	Name        string `json:"name" validate:"required,min=1,max=200"`
	Description string `json:"description" validate:"max=5000"`
	Logo        string `json:"logo" validate:"omitempty,max=2048"`
	Location    string `json:"location" validate:"max=200"`
}

// UpdateProjectRequest entrada para actualizar un proyecto (también usada por basic-info).
type UpdateProjectRequest struct {
	Name        *string `json:"name" validate:"omitempty,min=1,max=200"`
	Description *string `json:"description" validate:"omitempty,max=5000"`
	Logo        *string `json:"logo" validate:"omitempty,max=2048"`
	Location    *string `json:"location" validate:"omitempty,max=200"`
}

// ProjectResponse salida de un proyecto.
type ProjectResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Logo        string    `json:"logo"`
	Location    string    `json:"location"`
	OwnerID     string    `json:"ownerId"`
	Role        string    `json:"role,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// ProjectDetailResponse proyecto con dueño y colaboradores.
type ProjectDetailResponse struct {
	ProjectResponse
	Owner         UserSummary            `json:"owner"`
	Collaborators []CollaboratorResponse `json:"collaborators"`
	CurrentDay    int                    `json:"currentDay"`
}

// BasicInfoResponse datos básicos editables del proyecto.
type BasicInfoResponse struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Logo        string `json:"logo"`
	Location    string `json:"location"`
}
