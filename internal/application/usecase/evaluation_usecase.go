package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/xurp-ia/xurp-api/internal/application/access"
	"github.com/xurp-ia/xurp-api/internal/application/dto"
	"github.com/xurp-ia/xurp-api/internal/application/ports"
	"github.com/xurp-ia/xurp-api/internal/domain"
	"github.com/xurp-ia/xurp-api/internal/domain/assessment"
	"github.com/xurp-ia/xurp-api/internal/domain/entity"
	"github.com/xurp-ia/xurp-api/internal/domain/membership"
	"github.com/xurp-ia/xurp-api/internal/domain/repository"
)

const defaultQuestionCount = 5

// EvaluationUseCase evaluaciones técnicas limitadas por membresía.
type EvaluationUseCase struct {
	guard       *access.Guard
	users       repository.UserRepository
	evaluations repository.EvaluationRepository
	tx          ports.TxRunner
	ai          ports.AIService
	now         func() time.Time
}

// NewEvaluationUseCase construye el caso de uso.
func NewEvaluationUseCase(
	guard *access.Guard,
	users repository.UserRepository,
	evaluations repository.EvaluationRepository,
	tx ports.TxRunner,
	ai ports.AIService,
) *EvaluationUseCase {
	return &EvaluationUseCase{guard: guard, users: users, evaluations: evaluations, tx: tx, ai: ai, now: time.Now}
}

// Questions genera preguntas de opción múltiple. La clave de respuesta viaja al cliente.
func (uc *EvaluationUseCase) Questions(ctx context.Context, in dto.QuestionRequest) ([]dto.EvaluationQuestion, error) {
	if strings.TrimSpace(in.Technology) == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.Count <= 0 {
		in.Count = defaultQuestionCount
	}
	if in.Level == "" {
		in.Level = entity.SkillPrincipiante
	}
	qs, err := uc.ai.GenerateQuestions(ctx, in)
	if err != nil {
		return nil, fmt.Errorf("generar preguntas: %w", err)
	}
	return qs, nil
}

// Submit califica y registra una evaluación. El conteo y la inserción ocurren en una transacción
// serializada por tupla (usuario, proyecto, tecnología), así el límite nunca se supera.
func (uc *EvaluationUseCase) Submit(ctx context.Context, userID string, in dto.SubmitEvaluationRequest) (*dto.EvaluationResponse, error) {
	if _, err := uc.guard.RequireMember(ctx, in.ProjectID, userID); err != nil {
		return nil, err
	}
	tech := membership.NormalizeTechnology(in.Technology)
	if tech == "" || len(in.Answers) == 0 {
		return nil, domain.ErrInvalidInput
	}
	correct := 0
	for _, a := range in.Answers {
		if a.CorrectIndex < 0 || a.CorrectIndex >= len(a.Options) {
			return nil, fmt.Errorf("%w: correctIndex fuera de rango", domain.ErrInvalidInput)
		}
		if a.SelectedIndex != nil && *a.SelectedIndex == a.CorrectIndex {
			correct++
		}
	}
	user, err := uc.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	data, err := json.Marshal(in.Answers)
	if err != nil {
		return nil, err
	}
	level := in.Level
	if level == "" {
		level = entity.SkillPrincipiante
	}
	now := uc.now()
	projectID := in.ProjectID
	ev := &entity.UserEvaluation{
		ID:            uuid.New().String(),
		UserID:        userID,
		ProjectID:     &projectID,
		Technology:    tech,
		Profession:    strings.TrimSpace(in.Profession),
		Level:         level,
		Score:         assessment.Score(correct, len(in.Answers)),
		QuestionsData: data,
		CreatedAt:     now,
	}
	tier := user.EffectiveMembership(now)
	tuple := repository.EvaluationTuple{UserID: userID, ProjectID: projectID, Technology: tech}
	err = uc.tx.Run(ctx, func(repos ports.TxRepositories) error {
		if err := repos.Evaluations.LockTuple(ctx, tuple); err != nil {
			return err
		}
		used, err := repos.Evaluations.Count(ctx, tuple)
		if err != nil {
			return err
		}
		if !membership.CanEvaluate(tier, used) {
			return domain.ErrEvaluationLimit
		}
		return repos.Evaluations.Create(ctx, ev)
	})
	if err != nil {
		return nil, err
	}
	out := toEvaluationResponse(ev)
	return &out, nil
}

// ListMine evaluaciones del usuario; projectID opcional.
func (uc *EvaluationUseCase) ListMine(ctx context.Context, userID, projectID string) ([]dto.EvaluationResponse, error) {
	list, err := uc.evaluations.ListByUser(ctx, userID, projectID)
	if err != nil {
		return nil, err
	}
	return toEvaluationResponses(list), nil
}

// ListByProject evaluaciones de todos los integrantes del proyecto.
func (uc *EvaluationUseCase) ListByProject(ctx context.Context, projectID, userID string) ([]dto.EvaluationResponse, error) {
	if _, err := uc.guard.RequireMember(ctx, projectID, userID); err != nil {
		return nil, err
	}
	list, err := uc.evaluations.ListByProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	return toEvaluationResponses(list), nil
}

// Get una evaluación visible para el autor o para los integrantes de su proyecto.
func (uc *EvaluationUseCase) Get(ctx context.Context, id, userID string) (*dto.EvaluationResponse, error) {
	ev, err := uc.evaluations.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if ev == nil {
		return nil, domain.ErrNotFound
	}
	if ev.UserID != userID {
		if ev.ProjectID == nil {
			return nil, domain.ErrForbidden
		}
		if _, err := uc.guard.RequireMember(ctx, *ev.ProjectID, userID); err != nil {
			return nil, err
		}
	}
	out := toEvaluationResponse(ev)
	return &out, nil
}

// Delete elimina una evaluación propia.
func (uc *EvaluationUseCase) Delete(ctx context.Context, id, userID string) error {
	ev, err := uc.evaluations.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if ev == nil {
		return domain.ErrNotFound
	}
	if ev.UserID != userID {
		return domain.ErrForbidden
	}
	return uc.evaluations.Delete(ctx, id)
}

func toEvaluationResponses(list []*entity.UserEvaluation) []dto.EvaluationResponse {
	out := make([]dto.EvaluationResponse, 0, len(list))
	for _, e := range list {
		out = append(out, toEvaluationResponse(e))
	}
	return out
}
