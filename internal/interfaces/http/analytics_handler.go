package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/xurp-ia/xurp-api/internal/application/analytics"
)

// AnalyticsHandler avance del proyecto, reporte PDF y exportación del plan.
type AnalyticsHandler struct {
	uc *analytics.ProgressUseCase
}

// NewAnalyticsHandler construye el handler.
func NewAnalyticsHandler(uc *analytics.ProgressUseCase) *AnalyticsHandler {
	return &AnalyticsHandler{uc: uc}
}

// Progress godoc
// @Summary      Tablero de avance
// @Description  Conteos por estado de tareas y tareas IA, porcentaje completado, desglose por
//               integrante, horas estimadas y día actual. Cacheado 60s.
// @Tags         analytics
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del proyecto"
// @Success      200  {object}  dto.ProjectProgressResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/projects/{id}/progress [get]
func (h *AnalyticsHandler) Progress(c *fiber.Ctx) error {
	id, err := uuidParam(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.Progress(c.UserContext(), id, GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ReportPDF godoc
// @Summary      Reporte PDF de avance
// @Tags         analytics
// @Security     Bearer
// @Produce      application/pdf
// @Param        id   path  string  true  "ID del proyecto"
// @Success      200  {file}    binary
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/projects/{id}/report.pdf [get]
func (h *AnalyticsHandler) ReportPDF(c *fiber.Ctx) error {
	id, err := uuidParam(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	pdf, filename, err := h.uc.ReportPDF(c.UserContext(), id, GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `inline; filename="`+filename+`"`)
	return c.Send(pdf)
}

// ExportXML godoc
// @Summary      Exportar el plan de tareas IA (MS Project XML)
// @Tags         analytics
// @Security     Bearer
// @Produce      application/xml
// @Param        id   path  string  true  "ID del proyecto"
// @Success      200  {file}    binary
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/projects/{id}/export.xml [get]
func (h *AnalyticsHandler) ExportXML(c *fiber.Ctx) error {
	id, err := uuidParam(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	doc, filename, err := h.uc.ExportXML(c.UserContext(), id, GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationXMLCharsetUTF8)
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(doc)
}
