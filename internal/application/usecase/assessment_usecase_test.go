package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xurp-ia/xurp-api/internal/domain"
	"github.com/xurp-ia/xurp-api/internal/domain/assessment"
	"github.com/xurp-ia/xurp-api/internal/domain/entity"
	"github.com/xurp-ia/xurp-api/internal/domain/repository"
)

func (f *fixture) assessments(now *time.Time) *SkillAssessmentUseCase {
	uc := NewSkillAssessmentUseCase(f.guard, f.store.Assessments(), 0)
	uc.now = func() time.Time { return *now }
	return uc
}

func allCorrect() map[string]int {
	out := map[string]int{}
	for _, q := range assessment.Questions() {
		out[q.ID] = q.CorrectIndex
	}
	return out
}

func TestAssessment_StartReutilizaLaActiva(t *testing.T) {
	f := newFixture(t)
	now := baseTime
	uc := f.assessments(&now)

	first, err := uc.Start(context.Background(), "ana", "p1")
	require.NoError(t, err)
	assert.Len(t, first.Questions, 10)
	assert.Equal(t, baseTime.Add(assessment.DefaultDuration), first.ExpiresAt)

	now = baseTime.Add(10 * time.Minute)
	again, err := uc.Start(context.Background(), "ana", "p1")
	require.NoError(t, err)
	assert.Equal(t, first.ID, again.ID)

	now = baseTime.Add(time.Hour)
	fresh, err := uc.Start(context.Background(), "ana", "p1")
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, fresh.ID)
}

func TestAssessment_SubmitCalificaYNoSeRepite(t *testing.T) {
	f := newFixture(t)
	now := baseTime
	uc := f.assessments(&now)
	started, err := uc.Start(context.Background(), "ana", "p1")
	require.NoError(t, err)

	_, err = uc.Submit(context.Background(), started.ID, "beto", allCorrect())
	assert.ErrorIs(t, err, domain.ErrForbidden)

	now = baseTime.Add(5 * time.Minute)
	out, err := uc.Submit(context.Background(), started.ID, "ana", allCorrect())
	require.NoError(t, err)
	assert.Equal(t, 100, out.Score)
	assert.Equal(t, entity.SkillAvanzado, out.SkillLevel)
	assert.False(t, out.TimedOut)
	assert.Empty(t, out.Questions)

	_, err = uc.Submit(context.Background(), started.ID, "ana", allCorrect())
	assert.ErrorIs(t, err, domain.ErrAssessmentCompleted)
}

func TestAssessment_EnvioTardioSeCalificaYMarca(t *testing.T) {
	f := newFixture(t)
	now := baseTime
	uc := f.assessments(&now)
	started, err := uc.Start(context.Background(), "ana", "p1")
	require.NoError(t, err)

	answers := map[string]int{}
	for i, q := range assessment.Questions() {
		if i < 6 {
			answers[q.ID] = q.CorrectIndex
		}
	}
	now = baseTime.Add(45 * time.Minute)
	out, err := uc.Submit(context.Background(), started.ID, "ana", answers)
	require.NoError(t, err)
	assert.True(t, out.TimedOut)
	assert.Equal(t, 60, out.Score)
	assert.Equal(t, entity.SkillIntermedio, out.SkillLevel)

	list, err := uc.ListByProject(context.Background(), "p1", "owner")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "ana", list[0].UserID)
}

func TestAssessment_GetOcultaPreguntasAOtros(t *testing.T) {
	f := newFixture(t)
	now := baseTime
	uc := f.assessments(&now)
	started, err := uc.Start(context.Background(), "ana", "p1")
	require.NoError(t, err)

	mine, err := uc.Get(context.Background(), started.ID, "ana")
	require.NoError(t, err)
	assert.Len(t, mine.Questions, 10)

	other, err := uc.Get(context.Background(), started.ID, "owner")
	require.NoError(t, err)
	assert.Empty(t, other.Questions)

	_, err = uc.Get(context.Background(), started.ID, "beto")
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

// assessmentsStartedMeanwhile ejecuta meanwhile una sola vez, después de la primera búsqueda de la activa.
type assessmentsStartedMeanwhile struct {
	repository.SkillAssessmentRepository
	meanwhile func()
}

func (r *assessmentsStartedMeanwhile) FindActive(ctx context.Context, userID, projectID string, now time.Time) (*entity.SkillAssessment, error) {
	active, err := r.SkillAssessmentRepository.FindActive(ctx, userID, projectID, now)
	if fn := r.meanwhile; fn != nil {
		r.meanwhile = nil
		fn()
	}
	return active, err
}

func TestAssessment_StartConcurrenteDevuelveLaMisma(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	now := baseTime

	var other string
	uc := f.assessments(&now)
	uc.assessments = &assessmentsStartedMeanwhile{
		SkillAssessmentRepository: f.store.Assessments(),
		meanwhile: func() {
			started, err := f.assessments(&now).Start(ctx, "ana", "p1")
			require.NoError(t, err)
			other = started.ID
		},
	}
	got, err := uc.Start(ctx, "ana", "p1")
	require.NoError(t, err)
	assert.Equal(t, other, got.ID)
	assert.Len(t, got.Questions, 10)

	list, err := f.store.Assessments().ListByUser(ctx, "ana", "p1")
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestAssessment_StartDescartaLaVencida(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	now := baseTime
	uc := f.assessments(&now)
	first, err := uc.Start(ctx, "ana", "p1")
	require.NoError(t, err)

	now = baseTime.Add(time.Hour)
	fresh, err := uc.Start(ctx, "ana", "p1")
	require.NoError(t, err)

	list, err := f.store.Assessments().ListByUser(ctx, "ana", "p1")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, fresh.ID, list[0].ID)

	_, err = uc.Submit(ctx, first.ID, "ana", allCorrect())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
