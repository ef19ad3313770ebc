package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/xurp-ia/xurp-api/internal/application/dto"
	"github.com/xurp-ia/xurp-api/internal/application/usecase"
)

// ProjectHandler CRUD de proyectos, datos básicos y configuración.
type ProjectHandler struct {
	uc       *usecase.ProjectUseCase
	settings *usecase.SettingsUseCase
}

// NewProjectHandler construye el handler.
func NewProjectHandler(uc *usecase.ProjectUseCase, settings *usecase.SettingsUseCase) *ProjectHandler {
	return &ProjectHandler{uc: uc, settings: settings}
}

// Create godoc
// @Summary      Crear proyecto (el usuario autenticado queda como dueño)
// @Tags         projects
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateProjectRequest  true  "name, description, logo, location"
// @Success      201   {object}  dto.ProjectResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/projects [post]
func (h *ProjectHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateProjectRequest
	if err := bindBody(c, &in); err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.Create(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Proyectos propios y en los que colabora, con su rol
// @Tags         projects
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.ProjectResponse
// @Router       /api/projects [get]
func (h *ProjectHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext(), GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Get godoc
// @Summary      Detalle del proyecto con dueño y colaboradores
// @Tags         projects
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del proyecto"
// @Success      200  {object}  dto.ProjectDetailResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/projects/{id} [get]
func (h *ProjectHandler) Get(c *fiber.Ctx) error {
	id, err := uuidParam(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.Get(c.UserContext(), id, GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar proyecto (dueño o ADMIN)
// @Tags         projects
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                    true  "ID del proyecto"
// @Param        body  body  dto.UpdateProjectRequest  true  "campos a cambiar"
// @Success      200   {object}  dto.ProjectResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/projects/{id} [put]
func (h *ProjectHandler) Update(c *fiber.Ctx) error {
	id, err := uuidParam(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	var in dto.UpdateProjectRequest
	if err := bindBody(c, &in); err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.Update(c.UserContext(), id, GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar proyecto (solo el dueño)
// @Tags         projects
// @Security     Bearer
// @Param        id   path  string  true  "ID del proyecto"
// @Success      204
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/projects/{id} [delete]
func (h *ProjectHandler) Delete(c *fiber.Ctx) error {
	id, err := uuidParam(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	if err := h.uc.Delete(c.UserContext(), id, GetUserID(c)); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// BasicInfo godoc
// @Summary      Datos básicos del proyecto
// @Tags         projects
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del proyecto"
// @Success      200  {object}  dto.BasicInfoResponse
// @Router       /api/projects/{id}/basic-info [get]
func (h *ProjectHandler) BasicInfo(c *fiber.Ctx) error {
	id, err := uuidParam(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.BasicInfo(c.UserContext(), id, GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// UpdateBasicInfo godoc
// @Summary      Actualizar datos básicos
// @Tags         projects
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                    true  "ID del proyecto"
// @Param        body  body  dto.UpdateProjectRequest  true  "name, description, logo, location"
// @Success      200   {object}  dto.BasicInfoResponse
// @Router       /api/projects/{id}/basic-info [put]
func (h *ProjectHandler) UpdateBasicInfo(c *fiber.Ctx) error {
	id, err := uuidParam(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	var in dto.UpdateProjectRequest
	if err := bindBody(c, &in); err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.UpdateBasicInfo(c.UserContext(), id, GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetSettings godoc
// @Summary      Configuración del proyecto (valores por defecto si no existe)
// @Tags         projects
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del proyecto"
// @Success      200  {object}  dto.ProjectSettingsDTO
// @Router       /api/projects/{id}/settings [get]
func (h *ProjectHandler) GetSettings(c *fiber.Ctx) error {
	id, err := uuidParam(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	out, err := h.settings.Get(c.UserContext(), id, GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// UpdateSettings godoc
// @Summary      Reemplazar configuración (dueño o ADMIN)
// @Tags         projects
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                  true  "ID del proyecto"
// @Param        body  body  dto.ProjectSettingsDTO  true  "configuración completa"
// @Success      200   {object}  dto.ProjectSettingsDTO
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/projects/{id}/settings [put]
func (h *ProjectHandler) UpdateSettings(c *fiber.Ctx) error {
	id, err := uuidParam(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	var in dto.ProjectSettingsDTO
	if err := bindBody(c, &in); err != nil {
		return respondError(c, err)
	}
	out, err := h.settings.Update(c.UserContext(), id, GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
