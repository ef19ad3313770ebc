package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrProjectNotFound    = errors.New("proyecto no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrConflict           = errors.New("conflicto con el estado actual")

	// Reglas de negocio de Xurp.
	ErrOwnerCannotCollaborate = errors.New("el dueño del proyecto no puede ser colaborador")
	ErrNotProjectMember       = errors.New("el usuario no pertenece al proyecto")
	ErrInvalidTransition      = errors.New("transición de estado no permitida")
	ErrEvaluationLimit        = errors.New("límite de evaluaciones alcanzado para la membresía")
	ErrAssessmentCompleted    = errors.New("la evaluación de habilidades ya fue enviada")
	ErrAssignmentInProgress   = errors.New("ya hay una asignación en curso para el proyecto")
)
