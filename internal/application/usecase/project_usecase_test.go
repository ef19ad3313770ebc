package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xurp-ia/xurp-api/internal/application/dto"
	"github.com/xurp-ia/xurp-api/internal/domain"
	"github.com/xurp-ia/xurp-api/internal/domain/entity"
)

func (f *fixture) projects() *ProjectUseCase {
	uc := NewProjectUseCase(f.guard, f.store.Projects(), f.store.Collaborators(), f.store.Users(), f.store.TxRunner(), f.cache)
	uc.now = func() time.Time { return baseTime.AddDate(0, 0, 4) }
	return uc
}

func TestProject_CreateConConfiguracion(t *testing.T) {
	f := newFixture(t)
	out, err := f.projects().Create(context.Background(), "ana", dto.CreateProjectRequest{Name: "  Nuevo  "})
	require.NoError(t, err)
	assert.Equal(t, "Nuevo", out.Name)
	assert.Equal(t, entity.RoleOwner, out.Role)

	s, err := f.store.Settings().Get(context.Background(), out.ID)
	require.NoError(t, err)
	require.NotNil(t, s)
	assert.Equal(t, []int{1, 2, 3, 4, 5}, s.WorkingDays)

	list, err := f.projects().List(context.Background(), "ana")
	require.NoError(t, err)
	roles := map[string]string{}
	for _, p := range list {
		roles[p.ID] = p.Role
	}
	assert.Equal(t, entity.RoleOwner, roles[out.ID])
	assert.Equal(t, entity.RoleMember, roles["p1"])
}

func TestProject_Get(t *testing.T) {
	f := newFixture(t)
	f.store.SeedCollaborator("p1", "owner", entity.RoleAdmin, baseTime)
	out, err := f.projects().Get(context.Background(), "p1", "beto")
	require.NoError(t, err)
	assert.Equal(t, "Olga", out.Owner.Name)
	assert.Equal(t, 5, out.CurrentDay)
	assert.Len(t, out.Collaborators, 2)

	_, err = f.projects().Get(context.Background(), "p1", "ext")
	assert.ErrorIs(t, err, domain.ErrNotProjectMember)
	_, err = f.projects().Get(context.Background(), "nope", "ana")
	assert.ErrorIs(t, err, domain.ErrProjectNotFound)
}

func TestProject_Permisos(t *testing.T) {
	f := newFixture(t)
	uc := f.projects()
	_, err := uc.Update(context.Background(), "p1", "ana", dto.UpdateProjectRequest{Name: strPtr("X")})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	f.store.SeedCollaborator("p1", "ext", entity.RoleAdmin, baseTime)
	info, err := uc.UpdateBasicInfo(context.Background(), "p1", "ext", dto.UpdateProjectRequest{Location: strPtr("Medellín")})
	require.NoError(t, err)
	assert.Equal(t, "Medellín", info.Location)

	assert.ErrorIs(t, uc.Delete(context.Background(), "p1", "ext"), domain.ErrForbidden)
	assert.NoError(t, uc.Delete(context.Background(), "p1", "owner"))
	_, err = uc.BasicInfo(context.Background(), "p1", "owner")
	assert.ErrorIs(t, err, domain.ErrProjectNotFound)
}
