package auth

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/xurp-ia/xurp-api/internal/application/dto"
	"github.com/xurp-ia/xurp-api/internal/domain"
	"github.com/xurp-ia/xurp-api/internal/domain/entity"
	"github.com/xurp-ia/xurp-api/internal/domain/repository"
	"github.com/xurp-ia/xurp-api/pkg/jwt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase casos de uso de autenticación: registro y login.
type AuthUseCase struct {
	userRepo repository.UserRepository
	jwtCfg   JWTConfig
	now      func() time.Time
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(userRepo repository.UserRepository, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, jwtCfg: jwtCfg, now: time.Now}
}

// RegisterUser crea un usuario FREE: hashea password con bcrypt y persiste.
// Devuelve ErrEmailAlreadyExists si el email ya existe.
func (uc *AuthUseCase) RegisterUser(ctx context.Context, in dto.RegisterRequest) (*dto.UserResponse, error) {
	email := normalizeEmail(in.Email)
	existing, err := uc.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := uc.now()
	name := strings.TrimSpace(in.Name)
	if name == "" {
		name = email
	}
	user := &entity.User{
		ID:             uuid.New().String(),
		Email:          email,
		PasswordHash:   string(hash),
		Name:           name,
		Profession:     strings.TrimSpace(in.Profession),
		MembershipType: entity.MembershipFree,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return ToUserResponse(user), nil
}

// Login verifica email/password, genera JWT y retorna token + usuario.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := uc.userRepo.GetByEmail(ctx, normalizeEmail(in.Email))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, jwt.Identity{
		UserID:     user.ID,
		Email:      user.Email,
		Membership: user.EffectiveMembership(uc.now()),
	}, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{Token: token, User: *ToUserResponse(user)}, nil
}

// TokenTTL duración del token, para la cookie.
func (uc *AuthUseCase) TokenTTL() time.Duration {
	return time.Duration(uc.jwtCfg.ExpMinutes) * time.Minute
}

func normalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// ToUserResponse convierte la entidad a DTO (sin password).
func ToUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:                  u.ID,
		Email:               u.Email,
		Name:                u.Name,
		Profession:          u.Profession,
		MembershipType:      u.MembershipType,
		MembershipExpiresAt: u.MembershipExpiresAt,
		CreatedAt:           u.CreatedAt,
	}
}
