package membership_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/xurp-ia/xurp-api/internal/domain/entity"
	"github.com/xurp-ia/xurp-api/internal/domain/membership"
)

func TestEvaluationLimit(t *testing.T) {
	assert.Equal(t, 1, membership.EvaluationLimit(entity.MembershipFree))
	assert.Equal(t, 3, membership.EvaluationLimit(entity.MembershipPro))
	assert.Equal(t, membership.Unlimited, membership.EvaluationLimit(entity.MembershipEnterprise))
	assert.Equal(t, 1, membership.EvaluationLimit("GOLD"), "tipo desconocido se trata como FREE")
}

// Después de cada envío aceptado el conteo nunca supera el límite.
func TestCanEvaluate_NuncaSuperaLimite(t *testing.T) {
	for _, tier := range []string{entity.MembershipFree, entity.MembershipPro} {
		used := 0
		for attempt := 0; attempt < 10; attempt++ {
			if membership.CanEvaluate(tier, used) {
				used++
			}
		}
		assert.Equal(t, membership.EvaluationLimit(tier), used, tier)
	}
	assert.True(t, membership.CanEvaluate(entity.MembershipEnterprise, 10_000))
}

func TestRemaining(t *testing.T) {
	assert.Equal(t, 2, membership.Remaining(entity.MembershipPro, 1))
	assert.Equal(t, 0, membership.Remaining(entity.MembershipFree, 4))
	assert.Equal(t, membership.Unlimited, membership.Remaining(entity.MembershipEnterprise, 4))
}

func TestNormalizeTechnology(t *testing.T) {
	cases := map[string]string{
		"  React.JS ":      "react.js",
		"react.js":         "react.js",
		"Diseño   UX":      "diseno ux",
		"PROGRAMACIÓN Go":  "programacion go",
		"":                 "",
	}
	for in, want := range cases {
		assert.Equal(t, want, membership.NormalizeTechnology(in), in)
	}
}

func TestPlans(t *testing.T) {
	plans := membership.Plans()
	assert.Len(t, plans, 3)
	assert.Equal(t, entity.MembershipFree, plans[0].Type)
}
