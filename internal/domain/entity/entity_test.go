package entity_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/xurp-ia/xurp-api/internal/domain/entity"
)

func TestProject_CurrentDay(t *testing.T) {
	created := time.Date(2026, 3, 10, 22, 30, 0, 0, time.UTC)
	p := &entity.Project{CreatedAt: created}

	cases := []struct {
		name string
		now  time.Time
		want int
	}{
		{"mismo día", created.Add(time.Hour), 1},
		{"día siguiente aunque no pasen 24h", time.Date(2026, 3, 11, 1, 0, 0, 0, time.UTC), 2},
		{"una semana", time.Date(2026, 3, 17, 12, 0, 0, 0, time.UTC), 8},
		{"reloj atrasado", created.Add(-48 * time.Hour), 1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, p.CurrentDay(tc.now))
		})
	}
}

func TestUser_EffectiveMembership(t *testing.T) {
	now := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)

	assert.Equal(t, entity.MembershipFree, (&entity.User{MembershipType: ""}).EffectiveMembership(now))
	assert.Equal(t, entity.MembershipPro, (&entity.User{MembershipType: entity.MembershipPro}).EffectiveMembership(now))
	assert.Equal(t, entity.MembershipPro, (&entity.User{MembershipType: entity.MembershipPro, MembershipExpiresAt: &future}).EffectiveMembership(now))
	assert.Equal(t, entity.MembershipFree, (&entity.User{MembershipType: entity.MembershipEnterprise, MembershipExpiresAt: &past}).EffectiveMembership(now))
}

func TestSkillRank(t *testing.T) {
	assert.Less(t, entity.SkillRank(entity.SkillPrincipiante), entity.SkillRank(entity.SkillIntermedio))
	assert.Less(t, entity.SkillRank(entity.SkillIntermedio), entity.SkillRank(entity.SkillAvanzado))
	assert.Zero(t, entity.SkillRank("Experto"))
}

func TestConversation_Peer(t *testing.T) {
	a, b := entity.OrderedPair("u2", "u1")
	assert.Equal(t, "u1", a)
	assert.Equal(t, "u2", b)

	c := &entity.Conversation{UserA: a, UserB: b}
	assert.Equal(t, "u2", c.Peer("u1"))
	assert.Equal(t, "u1", c.Peer("u2"))
	assert.False(t, c.Has("u3"))
}
