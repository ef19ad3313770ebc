package usecase

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xurp-ia/xurp-api/internal/application/dto"
	"github.com/xurp-ia/xurp-api/internal/domain"
	"github.com/xurp-ia/xurp-api/internal/domain/entity"
	"github.com/xurp-ia/xurp-api/internal/infrastructure/ai"
)

func (f *fixture) evaluations() *EvaluationUseCase {
	uc := NewEvaluationUseCase(f.guard, f.store.Users(), f.store.Evaluations(), f.store.TxRunner(), ai.NewTemplateGenerator())
	uc.now = func() time.Time { return baseTime }
	return uc
}

func submission(tech string, selected ...int) dto.SubmitEvaluationRequest {
	req := dto.SubmitEvaluationRequest{ProjectID: "p1", Technology: tech, Level: entity.SkillIntermedio}
	for _, s := range selected {
		sel := s
		req.Answers = append(req.Answers, dto.EvaluationAnswer{Question: "q", Options: []string{"a", "b", "c"}, CorrectIndex: 1, SelectedIndex: &sel})
	}
	return req
}

func TestSubmitEvaluation_CalculaPuntaje(t *testing.T) {
	f := newFixture(t)
	out, err := f.evaluations().Submit(context.Background(), "ana", submission("Go", 1, 1, 0, 1))
	require.NoError(t, err)
	assert.Equal(t, 75, out.Score)
	assert.Equal(t, entity.SkillIntermedio, out.ResultLevel)
	assert.Equal(t, "go", out.Technology)
	assert.NotEmpty(t, out.QuestionsData)
}

func TestSubmitEvaluation_LimiteFree(t *testing.T) {
	f := newFixture(t)
	uc := f.evaluations()
	_, err := uc.Submit(context.Background(), "ana", submission("React.js", 1))
	require.NoError(t, err)

	// Misma tecnología escrita distinto cuenta para la misma tupla.
	_, err = uc.Submit(context.Background(), "ana", submission("  REACT.JS ", 1))
	assert.ErrorIs(t, err, domain.ErrEvaluationLimit)

	_, err = uc.Submit(context.Background(), "ana", submission("Vue", 1))
	assert.NoError(t, err)
}

func TestSubmitEvaluation_MembresiaVencidaCuentaComoFree(t *testing.T) {
	f := newFixture(t)
	past := baseTime.Add(-time.Hour)
	require.NoError(t, f.store.Users().UpdateMembership(context.Background(), "ana", entity.MembershipPro, &past))
	uc := f.evaluations()
	_, err := uc.Submit(context.Background(), "ana", submission("Go", 1))
	require.NoError(t, err)
	_, err = uc.Submit(context.Background(), "ana", submission("Go", 1))
	assert.ErrorIs(t, err, domain.ErrEvaluationLimit)
}

func TestSubmitEvaluation_ConcurrenteNoSuperaLimite(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.store.Users().UpdateMembership(context.Background(), "ana", entity.MembershipPro, nil))
	uc := f.evaluations()

	var wg sync.WaitGroup
	var mu sync.Mutex
	ok, rejected := 0, 0
	for i := 0; i < 12; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := uc.Submit(context.Background(), "ana", submission("Go", 1))
			mu.Lock()
			defer mu.Unlock()
			if err == nil {
				ok++
			} else if assert.ErrorIs(t, err, domain.ErrEvaluationLimit) {
				rejected++
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 3, ok)
	assert.Equal(t, 9, rejected)

	list, err := f.store.Evaluations().ListByUser(context.Background(), "ana", "p1")
	require.NoError(t, err)
	assert.Len(t, list, 3)
}

func TestSubmitEvaluation_NoIntegrante(t *testing.T) {
	f := newFixture(t)
	_, err := f.evaluations().Submit(context.Background(), "ext", submission("Go", 1))
	assert.ErrorIs(t, err, domain.ErrNotProjectMember)
}

func TestDeleteEvaluation_SoloAutor(t *testing.T) {
	f := newFixture(t)
	uc := f.evaluations()
	out, err := uc.Submit(context.Background(), "ana", submission("Go", 1))
	require.NoError(t, err)

	assert.ErrorIs(t, uc.Delete(context.Background(), out.ID, "beto"), domain.ErrForbidden)
	assert.NoError(t, uc.Delete(context.Background(), out.ID, "ana"))
	assert.ErrorIs(t, uc.Delete(context.Background(), out.ID, "ana"), domain.ErrNotFound)
}

func TestEvaluationQuestions(t *testing.T) {
	f := newFixture(t)
	qs, err := f.evaluations().Questions(context.Background(), dto.QuestionRequest{Technology: "Postgres"})
	require.NoError(t, err)
	assert.Len(t, qs, defaultQuestionCount)
}
