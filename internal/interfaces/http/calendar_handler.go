package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/xurp-ia/xurp-api/internal/application/dto"
	"github.com/xurp-ia/xurp-api/internal/application/usecase"
)

// CalendarHandler eventos del calendario y notas personales.
type CalendarHandler struct {
	events *usecase.EventUseCase
	notes  *usecase.NoteUseCase
}

// NewCalendarHandler construye el handler.
func NewCalendarHandler(events *usecase.EventUseCase, notes *usecase.NoteUseCase) *CalendarHandler {
	return &CalendarHandler{events: events, notes: notes}
}

// ListEvents godoc
// @Summary      Eventos del proyecto en un rango (por defecto el mes actual)
// @Tags         events
// @Security     Bearer
// @Produce      json
// @Param        projectId  path   string  true   "ID del proyecto"
// @Param        from       query  string  false  "RFC3339"
// @Param        to         query  string  false  "RFC3339"
// @Success      200  {array}  dto.EventResponse
// @Router       /api/events/{projectId} [get]
func (h *CalendarHandler) ListEvents(c *fiber.Ctx) error {
	projectID, err := uuidParam(c, "projectId")
	if err != nil {
		return respondError(c, err)
	}
	from, err := optionalTimeQuery(c, "from")
	if err != nil {
		return respondError(c, err)
	}
	to, err := optionalTimeQuery(c, "to")
	if err != nil {
		return respondError(c, err)
	}
	out, err := h.events.List(c.UserContext(), projectID, GetUserID(c), from, to)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// CreateEvent godoc
// @Summary      Crear evento
// @Tags         events
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        projectId  path  string            true  "ID del proyecto"
// @Param        body       body  dto.EventRequest  true  "title, startsAt, endsAt"
// @Success      201  {object}  dto.EventResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/events/{projectId} [post]
func (h *CalendarHandler) CreateEvent(c *fiber.Ctx) error {
	projectID, err := uuidParam(c, "projectId")
	if err != nil {
		return respondError(c, err)
	}
	var in dto.EventRequest
	if err := bindBody(c, &in); err != nil {
		return respondError(c, err)
	}
	out, err := h.events.Create(c.UserContext(), projectID, GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// UpdateEvent godoc
// @Summary      Editar evento
// @Tags         events
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        projectId  path  string            true  "ID del proyecto"
// @Param        eventId    path  string            true  "ID del evento"
// @Param        body       body  dto.EventRequest  true  "evento completo"
// @Success      200  {object}  dto.EventResponse
// @Router       /api/events/{projectId}/{eventId} [put]
func (h *CalendarHandler) UpdateEvent(c *fiber.Ctx) error {
	projectID, err := uuidParam(c, "projectId")
	if err != nil {
		return respondError(c, err)
	}
	eventID, err := uuidParam(c, "eventId")
	if err != nil {
		return respondError(c, err)
	}
	var in dto.EventRequest
	if err := bindBody(c, &in); err != nil {
		return respondError(c, err)
	}
	out, err := h.events.Update(c.UserContext(), projectID, eventID, GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// DeleteEvent godoc
// @Summary      Eliminar evento
// @Tags         events
// @Security     Bearer
// @Param        projectId  path  string  true  "ID del proyecto"
// @Param        eventId    path  string  true  "ID del evento"
// @Success      204
// @Router       /api/events/{projectId}/{eventId} [delete]
func (h *CalendarHandler) DeleteEvent(c *fiber.Ctx) error {
	projectID, err := uuidParam(c, "projectId")
	if err != nil {
		return respondError(c, err)
	}
	eventID, err := uuidParam(c, "eventId")
	if err != nil {
		return respondError(c, err)
	}
	if err := h.events.Delete(c.UserContext(), projectID, eventID, GetUserID(c)); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ListNotes godoc
// @Summary      Mis notas en el proyecto (fijadas primero)
// @Tags         notes
// @Security     Bearer
// @Produce      json
// @Param        projectId  query  string  true  "ID del proyecto"
// @Success      200  {array}  dto.NoteResponse
// @Router       /api/notes [get]
func (h *CalendarHandler) ListNotes(c *fiber.Ctx) error {
	projectID := c.Query("projectId")
	if err := validateUUID(projectID, "projectId"); err != nil {
		return respondError(c, err)
	}
	out, err := h.notes.List(c.UserContext(), projectID, GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// CreateNote godoc
// @Summary      Crear nota
// @Tags         notes
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateNoteRequest  true  "projectId, title, content, pinned"
// @Success      201   {object}  dto.NoteResponse
// @Router       /api/notes [post]
func (h *CalendarHandler) CreateNote(c *fiber.Ctx) error {
	var in dto.CreateNoteRequest
	if err := bindBody(c, &in); err != nil {
		return respondError(c, err)
	}
	out, err := h.notes.Create(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// UpdateNote godoc
// @Summary      Editar nota (solo el autor)
// @Tags         notes
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                 true  "ID de la nota"
// @Param        body  body  dto.UpdateNoteRequest  true  "campos a cambiar"
// @Success      200   {object}  dto.NoteResponse
// @Router       /api/notes/{id} [put]
func (h *CalendarHandler) UpdateNote(c *fiber.Ctx) error {
	id, err := uuidParam(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	var in dto.UpdateNoteRequest
	if err := bindBody(c, &in); err != nil {
		return respondError(c, err)
	}
	out, err := h.notes.Update(c.UserContext(), id, GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// DeleteNote godoc
// @Summary      Eliminar nota (solo el autor)
// @Tags         notes
// @Security     Bearer
// @Param        id   path  string  true  "ID de la nota"
// @Success      204
// @Router       /api/notes/{id} [delete]
func (h *CalendarHandler) DeleteNote(c *fiber.Ctx) error {
	id, err := uuidParam(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	if err := h.notes.Delete(c.UserContext(), id, GetUserID(c)); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
