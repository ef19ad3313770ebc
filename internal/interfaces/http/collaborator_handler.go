package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/xurp-ia/xurp-api/internal/application/dto"
	"github.com/xurp-ia/xurp-api/internal/application/usecase"
)

// CollaboratorHandler integrantes de un proyecto.
type CollaboratorHandler struct {
	uc *usecase.CollaboratorUseCase
}

// NewCollaboratorHandler construye el handler.
func NewCollaboratorHandler(uc *usecase.CollaboratorUseCase) *CollaboratorHandler {
	return &CollaboratorHandler{uc: uc}
}

// List godoc
// @Summary      Colaboradores del proyecto (el dueño nunca aparece)
// @Tags         collaborators
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del proyecto"
// @Success      200  {array}  dto.CollaboratorResponse
// @Router       /api/projects/{id}/collaborators [get]
func (h *CollaboratorHandler) List(c *fiber.Ctx) error {
	id, err := uuidParam(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.List(c.UserContext(), id, GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Add godoc
// @Summary      Agregar colaborador por email o userId
// @Tags         collaborators
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                      true  "ID del proyecto"
// @Param        body  body  dto.AddCollaboratorRequest  true  "email | userId, role"
// @Success      201   {object}  dto.CollaboratorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse  "OWNER_CANNOT_COLLABORATE | DUPLICATE"
// @Router       /api/projects/{id}/collaborators [post]
func (h *CollaboratorHandler) Add(c *fiber.Ctx) error {
	id, err := uuidParam(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	var in dto.AddCollaboratorRequest
	if err := bindBody(c, &in); err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.Add(c.UserContext(), id, GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// UpdateRole godoc
// @Summary      Cambiar rol de un colaborador
// @Tags         collaborators
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id      path  string                         true  "ID del proyecto"
// @Param        userId  path  string                         true  "ID del colaborador"
// @Param        body    body  dto.UpdateCollaboratorRequest  true  "role"
// @Success      200     {object}  dto.CollaboratorResponse
// @Router       /api/projects/{id}/collaborators/{userId} [put]
func (h *CollaboratorHandler) UpdateRole(c *fiber.Ctx) error {
	id, err := uuidParam(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	target, err := uuidParam(c, "userId")
	if err != nil {
		return respondError(c, err)
	}
	var in dto.UpdateCollaboratorRequest
	if err := bindBody(c, &in); err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.UpdateRole(c.UserContext(), id, GetUserID(c), target, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Remove godoc
// @Summary      Quitar colaborador (o abandonar el proyecto)
// @Description  Las tareas no completadas del colaborador quedan sin asignar.
// @Tags         collaborators
// @Security     Bearer
// @Param        id      path  string  true  "ID del proyecto"
// @Param        userId  path  string  true  "ID del colaborador"
// @Success      204
// @Router       /api/projects/{id}/collaborators/{userId} [delete]
func (h *CollaboratorHandler) Remove(c *fiber.Ctx) error {
	id, err := uuidParam(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	target, err := uuidParam(c, "userId")
	if err != nil {
		return respondError(c, err)
	}
	if err := h.uc.Remove(c.UserContext(), id, GetUserID(c), target); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
