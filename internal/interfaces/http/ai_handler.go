package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/xurp-ia/xurp-api/internal/application/dto"
	"github.com/xurp-ia/xurp-api/internal/application/usecase"
)

// generateTimeout tope para la generación del plan.
const generateTimeout = 20 * time.Second

// AIHandler tareas IA: generación, consulta, asignación diaria y cambios de estado.
type AIHandler struct {
	uc *usecase.AITaskUseCase
}

// NewAIHandler construye el handler.
func NewAIHandler(uc *usecase.AITaskUseCase) *AIHandler {
	return &AIHandler{uc: uc}
}

// Generate godoc
// @Summary      Generar plan de tareas IA
// @Description  Genera days × tasksPerDay tareas y las guarda en una transacción. Dueño o ADMIN.
//               Timeout interno de 20 s.
// @Tags         ai-tasks
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.GenerateAITasksRequest  true  "projectId, days (1..30), tasksPerDay (1..10), focus"
// @Success      201   {array}   dto.AITaskResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      408   {object}  dto.ErrorResponse
// @Router       /api/ai-tasks/generate [post]
func (h *AIHandler) Generate(c *fiber.Ctx) error {
	var in dto.GenerateAITasksRequest
	if err := bindBody(c, &in); err != nil {
		return respondError(c, err)
	}
	ctx, cancel := context.WithTimeout(c.UserContext(), generateTimeout)
	defer cancel()
	out, err := h.uc.Generate(ctx, GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListByProject godoc
// @Summary      Tareas IA del proyecto
// @Tags         ai-tasks
// @Security     Bearer
// @Produce      json
// @Param        projectId  path   string  true   "ID del proyecto"
// @Param        day        query  int     false  "filtrar por día"
// @Success      200  {array}  dto.AITaskResponse
// @Router       /api/ai-tasks/project/{projectId} [get]
func (h *AIHandler) ListByProject(c *fiber.Ctx) error {
	projectID, err := uuidParam(c, "projectId")
	if err != nil {
		return respondError(c, err)
	}
	day, err := optionalIntQuery(c, "day")
	if err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.ListByProject(c.UserContext(), projectID, GetUserID(c), day)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ListMine godoc
// @Summary      Tareas IA asignadas al usuario
// @Tags         ai-tasks
// @Security     Bearer
// @Produce      json
// @Param        projectId  query  string  false  "ID del proyecto"
// @Success      200  {array}  dto.AITaskResponse
// @Router       /api/ai-tasks/my [get]
func (h *AIHandler) ListMine(c *fiber.Ctx) error {
	projectID, err := optionalUUIDQuery(c, "projectId")
	if err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.ListMine(c.UserContext(), GetUserID(c), projectID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// CurrentDay godoc
// @Summary      Día actual del proyecto (día 1 = día de creación)
// @Tags         ai-tasks
// @Security     Bearer
// @Produce      json
// @Param        projectId  path  string  true  "ID del proyecto"
// @Success      200  {object}  dto.CurrentDayResponse
// @Router       /api/ai-tasks/project/{projectId}/current-day [get]
func (h *AIHandler) CurrentDay(c *fiber.Ctx) error {
	projectID, err := uuidParam(c, "projectId")
	if err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.CurrentDay(c.UserContext(), projectID, GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// AssignDaily godoc
// @Summary      Asignación diaria de tareas IA
// @Description  Reparte las tareas sin asignar (desde el día actual o el indicado) entre los
//               colaboradores en round-robin o por habilidad. El dueño nunca recibe tareas.
// @Tags         ai-tasks
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        projectId  path  string                  true   "ID del proyecto"
// @Param        body       body  dto.AssignDailyRequest  false  "day, bySkill"
// @Success      200  {object}  dto.AssignDailyResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse  "ASSIGNMENT_IN_PROGRESS"
// @Router       /api/ai-tasks/assign-daily/{projectId} [post]
func (h *AIHandler) AssignDaily(c *fiber.Ctx) error {
	projectID, err := uuidParam(c, "projectId")
	if err != nil {
		return respondError(c, err)
	}
	var in dto.AssignDailyRequest
	if len(c.Body()) > 0 {
		if err := bindBody(c, &in); err != nil {
			return respondError(c, err)
		}
	}
	out, err := h.uc.AssignDaily(c.UserContext(), projectID, GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// UpdateStatus godoc
// @Summary      Cambiar estado de una tarea IA
// @Tags         ai-tasks
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                   true  "ID de la tarea IA"
// @Param        body  body  dto.UpdateStatusRequest  true  "status"
// @Success      200   {object}  dto.AITaskResponse
// @Failure      409   {object}  dto.ErrorResponse  "INVALID_TRANSITION"
// @Router       /api/ai-tasks/{id}/status [patch]
func (h *AIHandler) UpdateStatus(c *fiber.Ctx) error {
	id, err := uuidParam(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	var in dto.UpdateStatusRequest
	if err := bindBody(c, &in); err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.UpdateStatus(c.UserContext(), id, GetUserID(c), in.Status)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// UpdateAssignee godoc
// @Summary      Asignar o desasignar manualmente una tarea IA
// @Tags         ai-tasks
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                     true  "ID de la tarea IA"
// @Param        body  body  dto.UpdateAssigneeRequest  true  "assigneeId (null desasigna)"
// @Success      200   {object}  dto.AITaskResponse
// @Router       /api/ai-tasks/{id}/assignee [put]
func (h *AIHandler) UpdateAssignee(c *fiber.Ctx) error {
	id, err := uuidParam(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	var in dto.UpdateAssigneeRequest
	if err := bindBody(c, &in); err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.UpdateAssignee(c.UserContext(), id, GetUserID(c), in.AssigneeID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar tarea IA
// @Tags         ai-tasks
// @Security     Bearer
// @Param        id   path  string  true  "ID de la tarea IA"
// @Success      204
// @Router       /api/ai-tasks/{id} [delete]
func (h *AIHandler) Delete(c *fiber.Ctx) error {
	id, err := uuidParam(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	if err := h.uc.Delete(c.UserContext(), id, GetUserID(c)); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
