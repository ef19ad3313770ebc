package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Niveles de habilidad, en el orden en que se comparan.
const (
	SkillPrincipiante = "Principiante"
	SkillIntermedio   = "Intermedio"
	SkillAvanzado     = "Avanzado"
)

// AITask tarea generada para un día del plan del proyecto.
type AITask struct {
	ID             string
	ProjectID      string
	Title          string
	Description    string
	Status         string
	AssigneeID     *string
	DayNumber      int
	SkillLevel     string
	EstimatedHours decimal.Decimal
	CreatedAt      time.Time
	UpdatedAt      time.Time
	CompletedAt    *time.Time
}

// SkillRank devuelve el orden del nivel (1..3) o 0 si no es un nivel conocido.
func SkillRank(level string) int {
	switch level {
	case SkillPrincipiante:
		return 1
	case SkillIntermedio:
		return 2
	case SkillAvanzado:
		return 3
	default:
		return 0
	}
}

// IsValidSkillLevel informa si level es un nivel conocido.
func IsValidSkillLevel(level string) bool {
	return SkillRank(level) > 0
}
