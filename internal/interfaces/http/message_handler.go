package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/xurp-ia/xurp-api/internal/application/dto"
	"github.com/xurp-ia/xurp-api/internal/application/usecase"
)

// MessageHandler mensajería directa entre usuarios.
type MessageHandler struct {
	uc *usecase.MessageUseCase
}

// NewMessageHandler construye el handler.
func NewMessageHandler(uc *usecase.MessageUseCase) *MessageHandler {
	return &MessageHandler{uc: uc}
}

// Send godoc
// @Summary      Enviar mensaje
// @Description  Crea la conversación del par si no existe y empuja el mensaje por websocket a ambos.
// @Tags         messages
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SendMessageRequest  true  "recipientId, content (1..4000)"
// @Success      201   {object}  dto.MessageItem
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/messages [post]
func (h *MessageHandler) Send(c *fiber.Ctx) error {
	var in dto.SendMessageRequest
	if err := bindBody(c, &in); err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.Send(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Conversations godoc
// @Summary      Mis conversaciones con último mensaje y no leídos
// @Tags         messages
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.ConversationResponse
// @Router       /api/messages/conversations [get]
func (h *MessageHandler) Conversations(c *fiber.Ctx) error {
	out, err := h.uc.Conversations(c.UserContext(), GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Messages godoc
// @Summary      Mensajes de una conversación, más recientes primero
// @Tags         messages
// @Security     Bearer
// @Produce      json
// @Param        id      path   string  true   "ID de la conversación"
// @Param        limit   query  int     false  "tamaño de página"
// @Param        before  query  string  false  "RFC3339; mensajes anteriores a esta fecha"
// @Success      200  {object}  dto.MessagePage
// @Router       /api/messages/conversations/{id} [get]
func (h *MessageHandler) Messages(c *fiber.Ctx) error {
	id, err := uuidParam(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	limit, err := optionalIntQuery(c, "limit")
	if err != nil {
		return respondError(c, err)
	}
	before, err := optionalTimeQuery(c, "before")
	if err != nil {
		return respondError(c, err)
	}
	n := 0
	if limit != nil {
		n = *limit
	}
	out, err := h.uc.Messages(c.UserContext(), id, GetUserID(c), n, before)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// MarkRead godoc
// @Summary      Marcar como leídos los mensajes del otro participante
// @Tags         messages
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la conversación"
// @Success      200  {object}  map[string]int64
// @Router       /api/messages/conversations/{id}/read [patch]
func (h *MessageHandler) MarkRead(c *fiber.Ctx) error {
	id, err := uuidParam(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	n, err := h.uc.MarkRead(c.UserContext(), id, GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"updated": n})
}
