package entity

import "time"

// Tipos de membresía.
const (
	MembershipFree       = "FREE"
	MembershipPro        = "PRO"
	MembershipEnterprise = "ENTERPRISE"
)

// User representa una persona registrada en Xurp.
type User struct {
	ID                  string
	Email               string
	PasswordHash        string // bcrypt hash, nunca plano en dominio después de persistir
	Name                string
	Profession          string
	MembershipType      string // FREE, PRO, ENTERPRISE
	MembershipExpiresAt *time.Time
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// EffectiveMembership devuelve la membresía vigente en now: una membresía de pago vencida cuenta como FREE.
func (u *User) EffectiveMembership(now time.Time) string {
	switch u.MembershipType {
	case MembershipPro, MembershipEnterprise:
		if u.MembershipExpiresAt != nil && !u.MembershipExpiresAt.After(now) {
			return MembershipFree
		}
		return u.MembershipType
	default:
		return MembershipFree
	}
}

// IsValidMembership informa si t es un tipo de membresía conocido.
func IsValidMembership(t string) bool {
	return t == MembershipFree || t == MembershipPro || t == MembershipEnterprise
}
