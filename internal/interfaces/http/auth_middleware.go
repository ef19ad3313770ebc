package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/xurp-ia/xurp-api/internal/application/dto"
	"github.com/xurp-ia/xurp-api/pkg/jwt"
)

// Locals keys de la identidad autenticada en Fiber.
const (
	LocalUserID     = "user_id"
	LocalEmail      = "email"
	LocalMembership = "membership"
)

// TokenCookie cookie con el JWT que usa el middleware del frontend.
const TokenCookie = "token"

// AuthMiddleware valida el JWT (Bearer o cookie "token") y deja la identidad en c.Locals.
func AuthMiddleware(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString, errResp := tokenFromCtx(c)
		if errResp != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(errResp)
		}
		id, err := jwt.Parse(jwtSecret, tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "token inválido o expirado"})
		}
		c.Locals(LocalUserID, id.UserID)
		c.Locals(LocalEmail, id.Email)
		c.Locals(LocalMembership, id.Membership)
		return c.Next()
	}
}

// tokenFromCtx el header Authorization tiene prioridad; la cookie es el respaldo.
func tokenFromCtx(c *fiber.Ctx) (string, *dto.ErrorResponse) {
	authHeader := c.Get(fiber.HeaderAuthorization)
	if authHeader == "" {
		if cookie := strings.TrimSpace(c.Cookies(TokenCookie)); cookie != "" {
			return cookie, nil
		}
		return "", &dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "Authorization header requerido"}
	}
	tokenString, ok := bearerToken(authHeader)
	if !ok {
		return "", &dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "formato: Bearer <token>"}
	}
	if tokenString == "" {
		return "", &dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "token vacío"}
	}
	return tokenString, nil
}

func bearerToken(header string) (string, bool) {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	return strings.TrimSpace(parts[1]), true
}

// GetUserID devuelve el UserID del contexto (después del middleware de auth).
func GetUserID(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalUserID).(string)
	return s
}

// GetEmail devuelve el email del token.
func GetEmail(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalEmail).(string)
	return s
}

// GetMembership devuelve la membresía que viajaba en el token (solo informativa).
func GetMembership(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalMembership).(string)
	return s
}
