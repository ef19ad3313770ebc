package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xurp-ia/xurp-api/internal/application/dto"
	"github.com/xurp-ia/xurp-api/internal/domain"
)

func TestEvents_RangoYValidacion(t *testing.T) {
	f := newFixture(t)
	uc := NewEventUseCase(f.guard, f.store.Events())
	uc.now = func() time.Time { return baseTime }

	in := dto.EventRequest{Title: "Kickoff", StartsAt: baseTime.Add(24 * time.Hour), EndsAt: baseTime.Add(25 * time.Hour)}
	ev, err := uc.Create(context.Background(), "p1", "ana", in)
	require.NoError(t, err)

	next := dto.EventRequest{Title: "Abril", StartsAt: baseTime.AddDate(0, 1, 0), EndsAt: baseTime.AddDate(0, 1, 0)}
	_, err = uc.Create(context.Background(), "p1", "ana", next)
	require.NoError(t, err)

	list, err := uc.List(context.Background(), "p1", "beto", nil, nil)
	require.NoError(t, err)
	require.Len(t, list, 1, "por defecto solo el mes actual")
	assert.Equal(t, ev.ID, list[0].ID)

	bad := in
	bad.EndsAt = bad.StartsAt.Add(-time.Minute)
	_, err = uc.Update(context.Background(), "p1", ev.ID, "ana", bad)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	assert.ErrorIs(t, uc.Delete(context.Background(), "otro", ev.ID, "ana"), domain.ErrProjectNotFound)
	assert.NoError(t, uc.Delete(context.Background(), "p1", ev.ID, "beto"))
}

func TestNotes_SoloAutorYFijadasPrimero(t *testing.T) {
	f := newFixture(t)
	uc := NewNoteUseCase(f.guard, f.store.Notes())
	clock := baseTime
	uc.now = func() time.Time { clock = clock.Add(time.Minute); return clock }

	a, err := uc.Create(context.Background(), "ana", dto.CreateNoteRequest{ProjectID: "p1", Title: "a"})
	require.NoError(t, err)
	_, err = uc.Create(context.Background(), "ana", dto.CreateNoteRequest{ProjectID: "p1", Title: "b"})
	require.NoError(t, err)
	pinned := true
	_, err = uc.Update(context.Background(), a.ID, "ana", dto.UpdateNoteRequest{Pinned: &pinned})
	require.NoError(t, err)

	list, err := uc.List(context.Background(), "p1", "ana")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "a", list[0].Title)

	others, err := uc.List(context.Background(), "p1", "beto")
	require.NoError(t, err)
	assert.Empty(t, others)

	assert.ErrorIs(t, uc.Delete(context.Background(), a.ID, "beto"), domain.ErrForbidden)
}

func TestSettings_PorDefectoYValidacion(t *testing.T) {
	f := newFixture(t)
	uc := NewSettingsUseCase(f.guard, f.store.Settings())

	s, err := uc.Get(context.Background(), "p1", "ana")
	require.NoError(t, err)
	assert.Equal(t, 8, s.HoursPerDay)

	in := dto.ProjectSettingsDTO{WorkingDays: []int{5, 1, 1, 3}, HoursPerDay: 6, Timezone: "UTC", Theme: "dark"}
	_, err = uc.Update(context.Background(), "p1", "ana", in)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	out, err := uc.Update(context.Background(), "p1", "owner", in)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 3, 5}, out.WorkingDays)

	in.Timezone = "Marte/Olympus"
	_, err = uc.Update(context.Background(), "p1", "owner", in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
