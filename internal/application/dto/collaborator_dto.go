package dto

import "time"

// AddCollaboratorRequest entrada para invitar a un colaborador (por email o por id).
type AddCollaboratorRequest struct {
	Email  string `json:"email" validate:"required_without=UserID,omitempty,email"`
	UserID string `json:"userId" validate:"required_without=Email,omitempty,uuid"`
	Role   string `json:"role" validate:"omitempty,oneof=ADMIN MEMBER"`
}

// UpdateCollaboratorRequest entrada para cambiar el rol.
type UpdateCollaboratorRequest struct {
	Role string `json:"role" validate:"required,oneof=ADMIN MEMBER"`
}

// CollaboratorResponse salida de un colaborador.
type CollaboratorResponse struct {
	UserID     string    `json:"userId"`
	Email      string    `json:"email"`
	Name       string    `json:"name"`
	Profession string    `json:"profession"`
	Role       string    `json:"role"`
	JoinedAt   time.Time `json:"joinedAt"`
}
