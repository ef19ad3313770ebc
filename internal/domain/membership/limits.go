// Package membership contiene la tabla de límites por tipo de membresía.
package membership

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/xurp-ia/xurp-api/internal/domain/entity"
)

// Unlimited valor de límite sin tope.
const Unlimited = -1

// evaluationLimits evaluaciones permitidas por (usuario, proyecto, tecnología).
var evaluationLimits = map[string]int{
	entity.MembershipFree:       1,
	entity.MembershipPro:        3,
	entity.MembershipEnterprise: Unlimited,
}

// Plan descripción pública de un tipo de membresía.
type Plan struct {
	Type            string
	EvaluationLimit int
	Description     string
}

// Plans devuelve la tabla estática de planes.
func Plans() []Plan {
	return []Plan{
		{Type: entity.MembershipFree, EvaluationLimit: evaluationLimits[entity.MembershipFree], Description: "Una evaluación por tecnología y proyecto"},
		{Type: entity.MembershipPro, EvaluationLimit: evaluationLimits[entity.MembershipPro], Description: "Hasta tres evaluaciones por tecnología y proyecto"},
		{Type: entity.MembershipEnterprise, EvaluationLimit: evaluationLimits[entity.MembershipEnterprise], Description: "Evaluaciones ilimitadas"},
	}
}

// EvaluationLimit límite para el tipo de membresía. Un tipo desconocido se trata como FREE.
func EvaluationLimit(tier string) int {
	if l, ok := evaluationLimits[tier]; ok {
		return l
	}
	return evaluationLimits[entity.MembershipFree]
}

// CanEvaluate informa si con used evaluaciones previas se permite una más.
func CanEvaluate(tier string, used int) bool {
	limit := EvaluationLimit(tier)
	return limit == Unlimited || used < limit
}

// Remaining evaluaciones disponibles; Unlimited si no hay tope.
func Remaining(tier string, used int) int {
	limit := EvaluationLimit(tier)
	if limit == Unlimited {
		return Unlimited
	}
	if used >= limit {
		return 0
	}
	return limit - used
}

// NormalizeTechnology clave canónica de una tecnología: sin tildes, en minúsculas y con espacios colapsados.
// "  React.JS " y "react.js" cuentan como la misma tecnología para el límite.
func NormalizeTechnology(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		out = s
	}
	out = cases.Fold().String(out)
	return strings.Join(strings.Fields(out), " ")
}
