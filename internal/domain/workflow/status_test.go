package workflow_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/xurp-ia/xurp-api/internal/domain"
	"github.com/xurp-ia/xurp-api/internal/domain/entity"
	"github.com/xurp-ia/xurp-api/internal/domain/workflow"
)

func TestTransition(t *testing.T) {
	cases := []struct {
		from, to string
		changed  bool
		err      error
	}{
		{entity.TaskStatusPending, entity.TaskStatusInProgress, true, nil},
		{entity.TaskStatusPending, entity.TaskStatusCompleted, true, nil},
		{entity.TaskStatusInProgress, entity.TaskStatusCompleted, true, nil},
		{entity.TaskStatusInProgress, entity.TaskStatusPending, false, domain.ErrInvalidTransition},
		{entity.TaskStatusCompleted, entity.TaskStatusPending, false, domain.ErrInvalidTransition},
		{entity.TaskStatusCompleted, entity.TaskStatusInProgress, false, domain.ErrInvalidTransition},
		{entity.TaskStatusCompleted, entity.TaskStatusCompleted, false, nil},
		{entity.TaskStatusPending, "DONE", false, domain.ErrInvalidInput},
	}
	for _, tc := range cases {
		t.Run(tc.from+"->"+tc.to, func(t *testing.T) {
			changed, err := workflow.Transition(tc.from, tc.to)
			assert.Equal(t, tc.changed, changed)
			assert.ErrorIs(t, err, tc.err)
		})
	}
}

// Una tarea COMPLETED nunca vuelve a PENDING, sin importar el camino.
func TestTransition_CompletedEsTerminal(t *testing.T) {
	for _, to := range []string{entity.TaskStatusPending, entity.TaskStatusInProgress} {
		_, err := workflow.Transition(entity.TaskStatusCompleted, to)
		assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	}
}
