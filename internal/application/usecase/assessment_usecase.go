package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/xurp-ia/xurp-api/internal/application/access"
	"github.com/xurp-ia/xurp-api/internal/application/dto"
	"github.com/xurp-ia/xurp-api/internal/domain"
	"github.com/xurp-ia/xurp-api/internal/domain/assessment"
	"github.com/xurp-ia/xurp-api/internal/domain/entity"
	"github.com/xurp-ia/xurp-api/internal/domain/repository"
)

// SkillAssessmentUseCase evaluación de habilidades cronometrada.
type SkillAssessmentUseCase struct {
	guard       *access.Guard
	assessments repository.SkillAssessmentRepository
	duration    time.Duration
	now         func() time.Time
}

// NewSkillAssessmentUseCase construye el caso de uso. duration <= 0 usa la duración por defecto.
func NewSkillAssessmentUseCase(guard *access.Guard, assessments repository.SkillAssessmentRepository, duration time.Duration) *SkillAssessmentUseCase {
	if duration <= 0 {
		duration = assessment.DefaultDuration
	}
	return &SkillAssessmentUseCase{guard: guard, assessments: assessments, duration: duration, now: time.Now}
}

// Start inicia la evaluación o devuelve la que el usuario tiene en curso para el proyecto.
func (uc *SkillAssessmentUseCase) Start(ctx context.Context, userID, projectID string) (*dto.SkillAssessmentResponse, error) {
	if _, err := uc.guard.RequireMember(ctx, projectID, userID); err != nil {
		return nil, err
	}
	now := uc.now()
	active, err := uc.assessments.FindActive(ctx, userID, projectID, now)
	if err != nil {
		return nil, err
	}
	if active != nil {
		return activeResponse(active)
	}
	// una evaluación vencida sin enviar se descarta al iniciar otra
	if _, err := uc.assessments.DiscardExpired(ctx, userID, projectID, now); err != nil {
		return nil, err
	}
	qs := assessment.Questions()
	snapshot, err := json.Marshal(qs)
	if err != nil {
		return nil, err
	}
	a := &entity.SkillAssessment{
		ID:        uuid.New().String(),
		UserID:    userID,
		ProjectID: projectID,
		Status:    entity.AssessmentStarted,
		Questions: snapshot,
		StartedAt: now,
		ExpiresAt: now.Add(uc.duration),
	}
	if err := uc.assessments.Create(ctx, a); err != nil {
		if !errors.Is(err, domain.ErrDuplicate) {
			return nil, err
		}
		// otra petición del mismo usuario la creó primero
		active, err := uc.assessments.FindActive(ctx, userID, projectID, now)
		if err != nil {
			return nil, err
		}
		if active == nil {
			return nil, domain.ErrConflict
		}
		return activeResponse(active)
	}
	out := toAssessmentResponse(a, qs)
	return &out, nil
}

func activeResponse(a *entity.SkillAssessment) (*dto.SkillAssessmentResponse, error) {
	qs, err := decodeQuestions(a)
	if err != nil {
		return nil, err
	}
	out := toAssessmentResponse(a, qs)
	return &out, nil
}

// Submit califica la evaluación. Un envío tardío se califica igual y queda marcado como timedOut.
func (uc *SkillAssessmentUseCase) Submit(ctx context.Context, id, userID string, answers map[string]int) (*dto.SkillAssessmentResponse, error) {
	a, err := uc.assessments.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, domain.ErrNotFound
	}
	if a.UserID != userID {
		return nil, domain.ErrForbidden
	}
	if a.Status == entity.AssessmentCompleted {
		return nil, domain.ErrAssessmentCompleted
	}
	qs, err := decodeQuestions(a)
	if err != nil {
		return nil, err
	}
	if answers == nil {
		answers = map[string]int{}
	}
	result := assessment.Grade(qs, answers)
	raw, err := json.Marshal(answers)
	if err != nil {
		return nil, err
	}
	now := uc.now()
	a.Status = entity.AssessmentCompleted
	a.Score = result.Score
	a.SkillLevel = result.SkillLevel
	a.Answers = raw
	a.TimedOut = assessment.Expired(a.ExpiresAt, now)
	a.CompletedAt = &now
	if err := uc.assessments.Complete(ctx, a); err != nil {
		return nil, err
	}
	out := toAssessmentResponse(a, nil)
	return &out, nil
}

// Get devuelve la evaluación al dueño o a quien administre el proyecto. Las preguntas solo se
// incluyen mientras está en curso.
func (uc *SkillAssessmentUseCase) Get(ctx context.Context, id, userID string) (*dto.SkillAssessmentResponse, error) {
	a, err := uc.assessments.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, domain.ErrNotFound
	}
	if a.UserID != userID {
		if _, err := uc.guard.RequireManager(ctx, a.ProjectID, userID); err != nil {
			return nil, err
		}
	}
	var qs []assessment.Question
	if a.Status == entity.AssessmentStarted && a.UserID == userID {
		if qs, err = decodeQuestions(a); err != nil {
			return nil, err
		}
	}
	out := toAssessmentResponse(a, qs)
	return &out, nil
}

// ListByProject última evaluación completada de cada integrante.
func (uc *SkillAssessmentUseCase) ListByProject(ctx context.Context, projectID, userID string) ([]dto.SkillAssessmentResponse, error) {
	if _, err := uc.guard.RequireMember(ctx, projectID, userID); err != nil {
		return nil, err
	}
	list, err := uc.assessments.LatestCompletedByProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	return toAssessmentResponses(list), nil
}

// ListMine evaluaciones del usuario; projectID opcional.
func (uc *SkillAssessmentUseCase) ListMine(ctx context.Context, userID, projectID string) ([]dto.SkillAssessmentResponse, error) {
	list, err := uc.assessments.ListByUser(ctx, userID, projectID)
	if err != nil {
		return nil, err
	}
	return toAssessmentResponses(list), nil
}

func toAssessmentResponses(list []*entity.SkillAssessment) []dto.SkillAssessmentResponse {
	out := make([]dto.SkillAssessmentResponse, 0, len(list))
	for _, a := range list {
		out = append(out, toAssessmentResponse(a, nil))
	}
	return out
}

func decodeQuestions(a *entity.SkillAssessment) ([]assessment.Question, error) {
	var qs []assessment.Question
	if len(a.Questions) == 0 {
		return qs, nil
	}
	if err := json.Unmarshal(a.Questions, &qs); err != nil {
		return nil, fmt.Errorf("decodificar preguntas de la evaluación %s: %w", a.ID, err)
	}
	return qs, nil
}
