package ports

import (
	"context"

	"github.com/xurp-ia/xurp-api/internal/application/dto"
)

// AIService puerto de salida para la generación asistida (plan de tareas y preguntas).
// El contexto debe llevar un timeout si el adaptador hace llamadas externas.
type AIService interface {
	// GenerateTaskPlan propone tareas repartidas en req.Days días, req.TasksPerDay por día.
	GenerateTaskPlan(ctx context.Context, req dto.TaskPlanRequest) ([]dto.GeneratedTask, error)
	// GenerateQuestions propone preguntas de opción múltiple sobre una tecnología.
	GenerateQuestions(ctx context.Context, req dto.QuestionRequest) ([]dto.EvaluationQuestion, error)
}
