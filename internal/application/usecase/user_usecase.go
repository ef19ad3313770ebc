package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/xurp-ia/xurp-api/internal/application/auth"
	"github.com/xurp-ia/xurp-api/internal/application/dto"
	"github.com/xurp-ia/xurp-api/internal/domain"
	"github.com/xurp-ia/xurp-api/internal/domain/repository"
)

// UserUseCase casos de uso sobre el perfil del usuario.
type UserUseCase struct {
	repo repository.UserRepository
}

// NewUserUseCase construye el caso de uso.
func NewUserUseCase(repo repository.UserRepository) *UserUseCase {
	return &UserUseCase{repo: repo}
}

// Me devuelve el perfil del usuario autenticado.
func (uc *UserUseCase) Me(ctx context.Context, userID string) (*dto.UserResponse, error) {
	user, err := uc.repo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	return auth.ToUserResponse(user), nil
}

// UpdateMe actualiza nombre y profesión.
func (uc *UserUseCase) UpdateMe(ctx context.Context, userID string, in dto.UpdateProfileRequest) (*dto.UserResponse, error) {
	user, err := uc.repo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if in.Name != nil {
		user.Name = strings.TrimSpace(*in.Name)
	}
	if in.Profession != nil {
		user.Profession = strings.TrimSpace(*in.Profession)
	}
	user.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, user); err != nil {
		return nil, err
	}
	return auth.ToUserResponse(user), nil
}

// SearchByEmail búsqueda exacta por email (formulario de invitación).
func (uc *UserUseCase) SearchByEmail(ctx context.Context, email string) (*dto.UserSummary, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, domain.ErrInvalidInput
	}
	user, err := uc.repo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	s := toUserSummary(user)
	return &s, nil
}
