package dto

import "time"

// RegisterRequest entrada para registro.
type RegisterRequest struct {
	Email      string `json:"email" validate:"required,email"`
	Password   string `json:"password" validate:"required,min=8,max=72"`
	Name       string `json:"name" validate:"required,min=1,max=200"`
	Profession string `json:"profession" validate:"omitempty,max=120"`
}

// LoginRequest entrada para login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse salida con token JWT.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// UpdateProfileRequest entrada para actualizar el perfil propio.
type UpdateProfileRequest struct {
	Name       *string `json:"name" validate:"omitempty,min=1,max=200"`
	Profession *string `json:"profession" validate:"omitempty,max=120"`
}

// UserResponse salida de un usuario (sin password).
type UserResponse struct {
	ID                  string     `json:"id"`
	Email               string     `json:"email"`
	Name                string     `json:"name"`
	Profession          string     `json:"profession"`
	MembershipType      string     `json:"membershipType"`
	MembershipExpiresAt *time.Time `json:"membershipExpiresAt,omitempty"`
	CreatedAt           time.Time  `json:"createdAt"`
}

// UserSummary datos públicos de un usuario (búsquedas, listados de miembros).
type UserSummary struct {
	ID         string `json:"id"`
	Email      string `json:"email"`
	Name       string `json:"name"`
	Profession string `json:"profession"`
}
