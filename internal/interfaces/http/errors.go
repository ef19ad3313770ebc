package http

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/xurp-ia/xurp-api/internal/application/dto"
	"github.com/xurp-ia/xurp-api/internal/domain"
)

// requestError error de entrada detectado antes de llegar al caso de uso.
type requestError struct {
	code    string
	message string
	fields  []dto.FieldError
}

func (e *requestError) Error() string { return e.message }

func invalidBody() error {
	return &requestError{code: "INVALID_BODY", message: "cuerpo inválido"}
}

func invalidParam(message string) error {
	return &requestError{code: "INVALID_PARAMS", message: message}
}

// errorMapping respuesta HTTP de un error de dominio.
type errorMapping struct {
	err    error
	status int
	code   string
}

// El orden importa: los errores específicos van antes que los genéricos.
var errorTable = []errorMapping{
	{domain.ErrInvalidInput, fiber.StatusBadRequest, "VALIDATION"},
	{domain.ErrUnauthorized, fiber.StatusUnauthorized, "UNAUTHORIZED"},
	{domain.ErrEvaluationLimit, fiber.StatusForbidden, "EVALUATION_LIMIT_REACHED"},
	{domain.ErrNotProjectMember, fiber.StatusForbidden, "NOT_PROJECT_MEMBER"},
	{domain.ErrForbidden, fiber.StatusForbidden, "FORBIDDEN"},
	{domain.ErrProjectNotFound, fiber.StatusNotFound, "PROJECT_NOT_FOUND"},
	{domain.ErrUserNotFound, fiber.StatusNotFound, "USER_NOT_FOUND"},
	{domain.ErrNotFound, fiber.StatusNotFound, "NOT_FOUND"},
	{domain.ErrOwnerCannotCollaborate, fiber.StatusConflict, "OWNER_CANNOT_COLLABORATE"},
	{domain.ErrInvalidTransition, fiber.StatusConflict, "INVALID_TRANSITION"},
	{domain.ErrEmailAlreadyExists, fiber.StatusConflict, "EMAIL_EXISTS"},
	{domain.ErrDuplicate, fiber.StatusConflict, "DUPLICATE"},
	{domain.ErrAssessmentCompleted, fiber.StatusConflict, "ASSESSMENT_COMPLETED"},
	{domain.ErrAssignmentInProgress, fiber.StatusConflict, "ASSIGNMENT_IN_PROGRESS"},
	{domain.ErrConflict, fiber.StatusConflict, "CONFLICT"},
}

// respondError traduce err a status + dto.ErrorResponse. Lo no mapeado es 500 y se registra.
func respondError(c *fiber.Ctx, err error) error {
	var reqErr *requestError
	if errors.As(err, &reqErr) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code: reqErr.code, Message: reqErr.message, Fields: reqErr.fields,
		})
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return c.Status(fiber.StatusRequestTimeout).JSON(dto.ErrorResponse{
			Code: "TIMEOUT", Message: "el generador tardó demasiado; intenta de nuevo",
		})
	}
	for _, m := range errorTable {
		if errors.Is(err, m.err) {
			return c.Status(m.status).JSON(dto.ErrorResponse{Code: m.code, Message: err.Error()})
		}
	}
	log.Error().Err(err).
		Str("method", c.Method()).
		Str("path", c.Path()).
		Str("request_id", c.GetRespHeader(fiber.HeaderXRequestID)).
		Msg("error no controlado")
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "error interno"})
}

// ErrorHandler manejador global de Fiber: errores propios de Fiber (404 de ruta, 405, cuerpo
// demasiado grande) conservan su status; el resto pasa por respondError.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return c.Status(fe.Code).JSON(dto.ErrorResponse{Code: "HTTP_ERROR", Message: fe.Message})
	}
	return respondError(c, err)
}
