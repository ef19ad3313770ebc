package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/xurp-ia/xurp-api/internal/application/dto"
	"github.com/xurp-ia/xurp-api/internal/application/usecase"
)

// AssessmentHandler evaluación de habilidades cronometrada.
type AssessmentHandler struct {
	uc *usecase.SkillAssessmentUseCase
}

// NewAssessmentHandler construye el handler.
func NewAssessmentHandler(uc *usecase.SkillAssessmentUseCase) *AssessmentHandler {
	return &AssessmentHandler{uc: uc}
}

// Start godoc
// @Summary      Iniciar evaluación de habilidades
// @Description  Si ya hay una iniciada y vigente para el proyecto se devuelve esa.
// @Tags         skill-assessments
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.StartAssessmentRequest  true  "projectId"
// @Success      200   {object}  dto.SkillAssessmentResponse
// @Router       /api/skill-assessments/start [post]
func (h *AssessmentHandler) Start(c *fiber.Ctx) error {
	var in dto.StartAssessmentRequest
	if err := bindBody(c, &in); err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.Start(c.UserContext(), GetUserID(c), in.ProjectID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Submit godoc
// @Summary      Enviar respuestas
// @Description  Las respuestas tardías se califican igual y se marcan timedOut.
// @Tags         skill-assessments
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                       true  "ID de la evaluación"
// @Param        body  body  dto.SubmitAssessmentRequest  true  "answers {questionId: optionIndex}"
// @Success      200   {object}  dto.SkillAssessmentResponse
// @Failure      409   {object}  dto.ErrorResponse  "ASSESSMENT_COMPLETED"
// @Router       /api/skill-assessments/{id}/submit [post]
func (h *AssessmentHandler) Submit(c *fiber.Ctx) error {
	id, err := uuidParam(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	var in dto.SubmitAssessmentRequest
	if err := bindBody(c, &in); err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.Submit(c.UserContext(), id, GetUserID(c), in.Answers)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Get godoc
// @Summary      Obtener evaluación de habilidades
// @Tags         skill-assessments
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la evaluación"
// @Success      200  {object}  dto.SkillAssessmentResponse
// @Router       /api/skill-assessments/{id} [get]
func (h *AssessmentHandler) Get(c *fiber.Ctx) error {
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

// ListByProject godoc
// @Summary      Última evaluación completada de cada integrante
// @Tags         skill-assessments
// @Security     Bearer
// @Produce      json
// @Param        projectId  path  string  true  "ID del proyecto"
// @Success      200  {array}  dto.SkillAssessmentResponse
// @Router       /api/skill-assessments/project/{projectId} [get]
func (h *AssessmentHandler) ListByProject(c *fiber.Ctx) error {
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

// ListMine godoc
// @Summary      Mis evaluaciones de habilidades
// @Tags         skill-assessments
// @Security     Bearer
// @Produce      json
// @Param        projectId  query  string  false  "ID del proyecto"
// @Success      200  {array}  dto.SkillAssessmentResponse
// @Router       /api/skill-assessments/me [get]
func (h *AssessmentHandler) ListMine(c *fiber.Ctx) error {
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
