package usecase

import (
	"context"
	"time"

	"github.com/xurp-ia/xurp-api/internal/application/dto"
	"github.com/xurp-ia/xurp-api/internal/domain"
	"github.com/xurp-ia/xurp-api/internal/domain/entity"
	"github.com/xurp-ia/xurp-api/internal/domain/membership"
	"github.com/xurp-ia/xurp-api/internal/domain/repository"
)

// MembershipUseCase estado, cupos y cambio de plan.
type MembershipUseCase struct {
	users       repository.UserRepository
	evaluations repository.EvaluationRepository
	now         func() time.Time
}

// NewMembershipUseCase construye el caso de uso.
func NewMembershipUseCase(users repository.UserRepository, evaluations repository.EvaluationRepository) *MembershipUseCase {
	return &MembershipUseCase{users: users, evaluations: evaluations, now: time.Now}
}

// Plans tabla estática de planes.
func (uc *MembershipUseCase) Plans() []dto.PlanResponse {
	plans := membership.Plans()
	out := make([]dto.PlanResponse, 0, len(plans))
	for _, p := range plans {
		out = append(out, dto.PlanResponse{Type: p.Type, EvaluationLimit: p.EvaluationLimit, Description: p.Description})
	}
	return out
}

// Status membresía guardada y vigente del usuario.
func (uc *MembershipUseCase) Status(ctx context.Context, userID string) (*dto.MembershipStatusResponse, error) {
	user, err := uc.loadUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return uc.status(user), nil
}

func (uc *MembershipUseCase) status(user *entity.User) *dto.MembershipStatusResponse {
	effective := user.EffectiveMembership(uc.now())
	stored := user.MembershipType
	if stored == "" {
		stored = entity.MembershipFree
	}
	return &dto.MembershipStatusResponse{
		MembershipType:      stored,
		EffectiveType:       effective,
		MembershipExpiresAt: user.MembershipExpiresAt,
		Expired:             stored != effective,
		Plans:               uc.Plans(),
	}
}

// Check cupo de evaluaciones para (usuario, proyecto, tecnología).
func (uc *MembershipUseCase) Check(ctx context.Context, userID, projectID, technology string) (*dto.MembershipCheckResponse, error) {
	tech := membership.NormalizeTechnology(technology)
	if projectID == "" || tech == "" {
		return nil, domain.ErrInvalidInput
	}
	user, err := uc.loadUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	used, err := uc.evaluations.Count(ctx, repository.EvaluationTuple{UserID: userID, ProjectID: projectID, Technology: tech})
	if err != nil {
		return nil, err
	}
	tier := user.EffectiveMembership(uc.now())
	return &dto.MembershipCheckResponse{
		CanEvaluate: membership.CanEvaluate(tier, used),
		Used:        used,
		Limit:       membership.EvaluationLimit(tier),
		Remaining:   membership.Remaining(tier, used),
		Technology:  tech,
	}, nil
}

// Upgrade cambia el plan. Los planes de pago extienden el vencimiento desde el vencimiento vigente
// (si es del mismo plan) o desde ahora. FREE borra el vencimiento. No hay cobro.
func (uc *MembershipUseCase) Upgrade(ctx context.Context, userID string, in dto.UpgradeMembershipRequest) (*dto.MembershipStatusResponse, error) {
	if !entity.IsValidMembership(in.Type) {
		return nil, domain.ErrInvalidInput
	}
	user, err := uc.loadUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	now := uc.now()
	var expires *time.Time
	if in.Type != entity.MembershipFree {
		months := in.Months
		if months <= 0 {
			months = 1
		}
		base := now
		if user.EffectiveMembership(now) == in.Type && user.MembershipExpiresAt != nil {
			base = *user.MembershipExpiresAt
		}
		t := base.AddDate(0, months, 0)
		expires = &t
	}
	if err := uc.users.UpdateMembership(ctx, userID, in.Type, expires); err != nil {
		return nil, err
	}
	user.MembershipType = in.Type
	user.MembershipExpiresAt = expires
	return uc.status(user), nil
}

func (uc *MembershipUseCase) loadUser(ctx context.Context, userID string) (*entity.User, error) {
	user, err := uc.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	return user, nil
}
