package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xurp-ia/xurp-api/internal/application/dto"
	"github.com/xurp-ia/xurp-api/internal/domain/entity"
	"github.com/xurp-ia/xurp-api/internal/domain/membership"
)

func (f *fixture) membership() *MembershipUseCase {
	uc := NewMembershipUseCase(f.store.Users(), f.store.Evaluations())
	uc.now = func() time.Time { return baseTime }
	return uc
}

func TestMembership_UpgradeYExtension(t *testing.T) {
	f := newFixture(t)
	uc := f.membership()

	st, err := uc.Upgrade(context.Background(), "ana", dto.UpgradeMembershipRequest{Type: entity.MembershipPro, Months: 1})
	require.NoError(t, err)
	require.NotNil(t, st.MembershipExpiresAt)
	assert.Equal(t, baseTime.AddDate(0, 1, 0), *st.MembershipExpiresAt)
	assert.Equal(t, entity.MembershipPro, st.EffectiveType)

	st, err = uc.Upgrade(context.Background(), "ana", dto.UpgradeMembershipRequest{Type: entity.MembershipPro, Months: 2})
	require.NoError(t, err)
	assert.Equal(t, baseTime.AddDate(0, 3, 0), *st.MembershipExpiresAt, "se extiende desde el vencimiento vigente")

	st, err = uc.Upgrade(context.Background(), "ana", dto.UpgradeMembershipRequest{Type: entity.MembershipFree})
	require.NoError(t, err)
	assert.Nil(t, st.MembershipExpiresAt)
}

func TestMembership_StatusVencida(t *testing.T) {
	f := newFixture(t)
	past := baseTime.Add(-time.Minute)
	require.NoError(t, f.store.Users().UpdateMembership(context.Background(), "ana", entity.MembershipEnterprise, &past))

	st, err := f.membership().Status(context.Background(), "ana")
	require.NoError(t, err)
	assert.Equal(t, entity.MembershipEnterprise, st.MembershipType)
	assert.Equal(t, entity.MembershipFree, st.EffectiveType)
	assert.True(t, st.Expired)
	assert.Len(t, st.Plans, 3)
}

func TestMembership_Check(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.store.Users().UpdateMembership(context.Background(), "ana", entity.MembershipEnterprise, nil))
	uc := f.membership()

	chk, err := uc.Check(context.Background(), "ana", "p1", "Go")
	require.NoError(t, err)
	assert.True(t, chk.CanEvaluate)
	assert.Equal(t, membership.Unlimited, chk.Limit)
	assert.Equal(t, membership.Unlimited, chk.Remaining)

	chk, err = uc.Check(context.Background(), "beto", "p1", "Go")
	require.NoError(t, err)
	assert.Equal(t, 1, chk.Limit)
	assert.Equal(t, 1, chk.Remaining)
}
