package dto

import "github.com/shopspring/decimal"

// TaskPlanRequest parámetros para el generador de tareas.
type TaskPlanRequest struct {
	ProjectName string
	Description string
	Focus       string
	Days        int
	TasksPerDay int
}

// GeneratedTask tarea propuesta por el generador.
type GeneratedTask struct {
	Title          string
	Description    string
	DayNumber      int
	SkillLevel     string
	EstimatedHours decimal.Decimal
}

// QuestionRequest parámetros para generar preguntas de evaluación.
type QuestionRequest struct {
	Technology string `json:"technology" validate:"required,min=1,max=100"`
	Profession string `json:"profession" validate:"max=120"`
	Level      string `json:"level" validate:"omitempty,oneof=Principiante Intermedio Avanzado"`
	Count      int    `json:"count" validate:"omitempty,min=1,max=20"`
}

// EvaluationQuestion pregunta de opción múltiple generada.
type EvaluationQuestion struct {
	Question     string   `json:"question"`
	Options      []string `json:"options"`
	CorrectIndex int      `json:"correctIndex"`
}
