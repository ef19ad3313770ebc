package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/xurp-ia/xurp-api/internal/application/auth"
	"github.com/xurp-ia/xurp-api/internal/application/dto"
)

// AuthHandler maneja registro y login.
type AuthHandler struct {
	uc           *auth.AuthUseCase
	secureCookie bool
}

// NewAuthHandler construye el handler de auth. secureCookie marca la cookie del token como Secure.
func NewAuthHandler(uc *auth.AuthUseCase, secureCookie bool) *AuthHandler {
	return &AuthHandler{uc: uc, secureCookie: secureCookie}
}

// Register godoc
// @Summary      Registrar usuario
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterRequest  true  "email, password, name"
// @Success      201   {object}  dto.UserResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/auth/register [post]
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var in dto.RegisterRequest
	if err := bindBody(c, &in); err != nil {
		return respondError(c, err)
	}
	user, err := h.uc.RegisterUser(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(user)
}

// Login godoc
// @Summary      Iniciar sesión
// @Description  Devuelve el JWT y además lo deja en la cookie HttpOnly "token".
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "email, password"
// @Success      200   {object}  dto.LoginResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := bindBody(c, &in); err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.Login(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	c.Cookie(&fiber.Cookie{
		Name:     TokenCookie,
		Value:    out.Token,
		Path:     "/",
		Expires:  time.Now().Add(h.uc.TokenTTL()),
		HTTPOnly: true,
		Secure:   h.secureCookie,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	return c.JSON(out)
}

// Logout godoc
// @Summary      Cerrar sesión (borra la cookie del token)
// @Tags         auth
// @Success      204
// @Router       /api/auth/logout [post]
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	c.ClearCookie(TokenCookie)
	return c.SendStatus(fiber.StatusNoContent)
}
