package entity

import "time"

// Roles de un colaborador dentro de un proyecto. RoleOwner no se persiste en la tabla
// de colaboradores: se deriva de Project.OwnerID.
const (
	RoleOwner  = "OWNER"
	RoleAdmin  = "ADMIN"
	RoleMember = "MEMBER"
)

// Collaborator vincula un usuario (que no es el dueño) con un proyecto.
type Collaborator struct {
	ProjectID string
	UserID    string
	Role      string
	CreatedAt time.Time

	// Datos del usuario, cargados en listados.
	Email      string
	Name       string
	Profession string
}

// IsValidCollaboratorRole informa si role puede guardarse en la tabla de colaboradores.
func IsValidCollaboratorRole(role string) bool {
	return role == RoleAdmin || role == RoleMember
}

// CanManage informa si el rol permite administrar el proyecto (dueño o ADMIN).
func CanManage(role string) bool {
	return role == RoleOwner || role == RoleAdmin
}
