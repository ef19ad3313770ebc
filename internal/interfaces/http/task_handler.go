package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/xurp-ia/xurp-api/internal/application/dto"
	"github.com/xurp-ia/xurp-api/internal/application/usecase"
	"github.com/xurp-ia/xurp-api/internal/domain/entity"
)

// TaskHandler tareas manuales y su flujo de estados.
type TaskHandler struct {
	uc *usecase.TaskUseCase
}

// NewTaskHandler construye el handler.
func NewTaskHandler(uc *usecase.TaskUseCase) *TaskHandler {
	return &TaskHandler{uc: uc}
}

// Create godoc
// @Summary      Crear tarea (queda PENDING)
// @Tags         tasks
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateTaskRequest  true  "projectId, title, description, assigneeId"
// @Success      201   {object}  dto.TaskResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/tasks [post]
func (h *TaskHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateTaskRequest
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
// @Summary      Listar tareas de un proyecto
// @Tags         tasks
// @Security     Bearer
// @Produce      json
// @Param        projectId   query  string  true   "ID del proyecto"
// @Param        status      query  string  false  "PENDING | IN_PROGRESS | COMPLETED"
// @Param        assigneeId  query  string  false  "ID del asignado"
// @Success      200  {array}  dto.TaskResponse
// @Router       /api/tasks [get]
func (h *TaskHandler) List(c *fiber.Ctx) error {
	var q dto.TaskListQuery
	if err := bindQuery(c, &q); err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.List(c.UserContext(), GetUserID(c), q)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Get godoc
// @Summary      Obtener tarea
// @Tags         tasks
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la tarea"
// @Success      200  {object}  dto.TaskResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/tasks/{id} [get]
func (h *TaskHandler) Get(c *fiber.Ctx) error {
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
// @Summary      Editar tarea
// @Tags         tasks
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                 true  "ID de la tarea"
// @Param        body  body  dto.UpdateTaskRequest  true  "campos a cambiar"
// @Success      200   {object}  dto.TaskResponse
// @Router       /api/tasks/{id} [put]
func (h *TaskHandler) Update(c *fiber.Ctx) error {
	id, err := uuidParam(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	var in dto.UpdateTaskRequest
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
// @Summary      Eliminar tarea
// @Tags         tasks
// @Security     Bearer
// @Param        id   path  string  true  "ID de la tarea"
// @Success      204
// @Router       /api/tasks/{id} [delete]
func (h *TaskHandler) Delete(c *fiber.Ctx) error {
	id, err := uuidParam(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	if err := h.uc.Delete(c.UserContext(), id, GetUserID(c)); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// UpdateStatus godoc
// @Summary      Cambiar estado de la tarea
// @Description  PENDING -> IN_PROGRESS -> COMPLETED. COMPLETED es terminal.
// @Tags         tasks
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                   true  "ID de la tarea"
// @Param        body  body  dto.UpdateStatusRequest  true  "status"
// @Success      200   {object}  dto.TaskResponse
// @Failure      409   {object}  dto.ErrorResponse  "INVALID_TRANSITION"
// @Router       /api/tasks/{id}/status [patch]
func (h *TaskHandler) UpdateStatus(c *fiber.Ctx) error {
	var in dto.UpdateStatusRequest
	if err := bindBody(c, &in); err != nil {
		return respondError(c, err)
	}
	return h.changeStatus(c, in.Status)
}

// Start godoc
// @Summary      Iniciar tarea (IN_PROGRESS)
// @Tags         tasks
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la tarea"
// @Success      200  {object}  dto.TaskResponse
// @Router       /api/tasks/{id}/start [post]
func (h *TaskHandler) Start(c *fiber.Ctx) error {
	return h.changeStatus(c, entity.TaskStatusInProgress)
}

// Complete godoc
// @Summary      Completar tarea
// @Tags         tasks
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la tarea"
// @Success      200  {object}  dto.TaskResponse
// @Router       /api/tasks/{id}/complete [post]
func (h *TaskHandler) Complete(c *fiber.Ctx) error {
	return h.changeStatus(c, entity.TaskStatusCompleted)
}

func (h *TaskHandler) changeStatus(c *fiber.Ctx, status string) error {
	id, err := uuidParam(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.ChangeStatus(c.UserContext(), id, GetUserID(c), status)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
