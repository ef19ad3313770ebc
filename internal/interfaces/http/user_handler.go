package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/xurp-ia/xurp-api/internal/application/dto"
	"github.com/xurp-ia/xurp-api/internal/application/usecase"
)

// UserHandler perfil propio y búsqueda por email.
type UserHandler struct {
	uc *usecase.UserUseCase
}

// NewUserHandler construye el handler.
func NewUserHandler(uc *usecase.UserUseCase) *UserHandler {
	return &UserHandler{uc: uc}
}

// Me godoc
// @Summary      Perfil del usuario autenticado
// @Tags         users
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.UserResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/users/me [get]
func (h *UserHandler) Me(c *fiber.Ctx) error {
	out, err := h.uc.Me(c.UserContext(), GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// UpdateMe godoc
// @Summary      Actualizar nombre y profesión
// @Tags         users
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.UpdateProfileRequest  true  "name, profession"
// @Success      200   {object}  dto.UserResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/users/me [put]
func (h *UserHandler) UpdateMe(c *fiber.Ctx) error {
	var in dto.UpdateProfileRequest
	if err := bindBody(c, &in); err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.UpdateMe(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Search godoc
// @Summary      Buscar usuario por email exacto
// @Tags         users
// @Security     Bearer
// @Produce      json
// @Param        email  query  string  true  "email"
// @Success      200  {object}  dto.UserSummary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/users/search [get]
func (h *UserHandler) Search(c *fiber.Ctx) error {
	out, err := h.uc.SearchByEmail(c.UserContext(), c.Query("email"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
