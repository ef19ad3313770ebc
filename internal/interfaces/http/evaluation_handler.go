package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/xurp-ia/xurp-api/internal/application/dto"
	"github.com/xurp-ia/xurp-api/internal/application/usecase"
)

// EvaluationHandler evaluaciones técnicas y membresía.
type EvaluationHandler struct {
	uc         *usecase.EvaluationUseCase
	membership *usecase.MembershipUseCase
}

// NewEvaluationHandler construye el handler.
func NewEvaluationHandler(uc *usecase.EvaluationUseCase, membership *usecase.MembershipUseCase) *EvaluationHandler {
	return &EvaluationHandler{uc: uc, membership: membership}
}

// Questions godoc
// @Summary      Generar preguntas de evaluación
// @Tags         evaluations
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.QuestionRequest  true  "technology, profession, level, count (1..20)"
// @Success      200   {array}   dto.EvaluationQuestion
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/evaluations/questions [post]
func (h *EvaluationHandler) Questions(c *fiber.Ctx) error {
	var in dto.QuestionRequest
	if err := bindBody(c, &in); err != nil {
		return respondError(c, err)
	}
	ctx, cancel := context.WithTimeout(c.UserContext(), generateTimeout)
	defer cancel()
	out, err := h.uc.Questions(ctx, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Submit godoc
// @Summary      Registrar evaluación
// @Description  El servidor calcula el puntaje y aplica el límite de la membresía vigente.
// @Tags         evaluations
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SubmitEvaluationRequest  true  "projectId, technology, level, answers"
// @Success      201   {object}  dto.EvaluationResponse
// @Failure      403   {object}  dto.ErrorResponse  "EVALUATION_LIMIT_REACHED"
// @Router       /api/evaluations [post]
func (h *EvaluationHandler) Submit(c *fiber.Ctx) error {
	var in dto.SubmitEvaluationRequest
	if err := bindBody(c, &in); err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.Submit(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListMine godoc
// @Summary      Mis evaluaciones
// @Tags         evaluations
// @Security     Bearer
// @Produce      json
// @Param        projectId  query  string  false  "ID del proyecto"
// @Success      200  {array}  dto.EvaluationResponse
// @Router       /api/evaluations/me [get]
func (h *EvaluationHandler) ListMine(c *fiber.Ctx) error {
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

// ListByProject godoc
// @Summary      Evaluaciones de los integrantes del proyecto
// @Tags         evaluations
// @Security     Bearer
// @Produce      json
// @Param        projectId  path  string  true  "ID del proyecto"
// @Success      200  {array}  dto.EvaluationResponse
// @Router       /api/evaluations/project/{projectId} [get]
func (h *EvaluationHandler) ListByProject(c *fiber.Ctx) error {
	projectID, err := uuidParam(c, "projectId")
	if err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.ListByProject(c.UserContext(), projectID, GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Get godoc
// @Summary      Obtener evaluación
// @Tags         evaluations
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la evaluación"
// @Success      200  {object}  dto.EvaluationResponse
// @Router       /api/evaluations/{id} [get]
func (h *EvaluationHandler) Get(c *fiber.Ctx) error {
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

// Delete godoc
// @Summary      Eliminar evaluación (solo el autor)
// @Tags         evaluations
// @Security     Bearer
// @Param        id   path  string  true  "ID de la evaluación"
// @Success      204
// @Router       /api/evaluations/{id} [delete]
func (h *EvaluationHandler) Delete(c *fiber.Ctx) error {
	id, err := uuidParam(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	if err := h.uc.Delete(c.UserContext(), id, GetUserID(c)); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// MembershipStatus godoc
// @Summary      Estado de la membresía
// @Tags         membership
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.MembershipStatusResponse
// @Router       /api/membership/status [get]
func (h *EvaluationHandler) MembershipStatus(c *fiber.Ctx) error {
	out, err := h.membership.Status(c.UserContext(), GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// MembershipCheck godoc
// @Summary      Cupo de evaluaciones para una tecnología
// @Tags         membership
// @Security     Bearer
// @Produce      json
// @Param        projectId   query  string  true  "ID del proyecto"
// @Param        technology  query  string  true  "tecnología"
// @Success      200  {object}  dto.MembershipCheckResponse
// @Router       /api/membership/check [get]
func (h *EvaluationHandler) MembershipCheck(c *fiber.Ctx) error {
	projectID, err := optionalUUIDQuery(c, "projectId")
	if err != nil {
		return respondError(c, err)
	}
	out, err := h.membership.Check(c.UserContext(), GetUserID(c), projectID, c.Query("technology"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// MembershipUpgrade godoc
// @Summary      Cambiar de plan (sin cobro)
// @Tags         membership
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.UpgradeMembershipRequest  true  "type, months (1..24)"
// @Success      200   {object}  dto.MembershipStatusResponse
// @Router       /api/membership/upgrade [post]
func (h *EvaluationHandler) MembershipUpgrade(c *fiber.Ctx) error {
	var in dto.UpgradeMembershipRequest
	if err := bindBody(c, &in); err != nil {
		return respondError(c, err)
	}
	out, err := h.membership.Upgrade(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// MembershipPlans godoc
// @Summary      Tabla de planes
// @Tags         membership
// @Produce      json
// @Success      200  {array}  dto.PlanResponse
// @Router       /api/membership/plans [get]
func (h *EvaluationHandler) MembershipPlans(c *fiber.Ctx) error {
	return c.JSON(h.membership.Plans())
}
