// Package workflow define las transiciones válidas del estado de una tarea.
package workflow

import (
	"github.com/xurp-ia/xurp-api/internal/domain"
	"github.com/xurp-ia/xurp-api/internal/domain/entity"
)

// allowed transiciones hacia adelante. COMPLETED es terminal.
var allowed = map[string]map[string]bool{
	entity.TaskStatusPending: {
		entity.TaskStatusInProgress: true,
		entity.TaskStatusCompleted:  true,
	},
	entity.TaskStatusInProgress: {
		entity.TaskStatusCompleted: true,
	},
}

// Transition valida el paso de from a to.
// Devuelve changed=false sin error si to es el estado actual (no-op).
func Transition(from, to string) (changed bool, err error) {
	if !entity.IsValidTaskStatus(to) {
		return false, domain.ErrInvalidInput
	}
	if from == to {
		return false, nil
	}
	if !allowed[from][to] {
		return false, domain.ErrInvalidTransition
	}
	return true, nil
}
