package dto

import "time"

// StartAssessmentRequest entrada para iniciar la evaluación de habilidades.
type StartAssessmentRequest struct {
	ProjectID string `json:"projectId" validate:"required,uuid"`
}

// SubmitAssessmentRequest respuestas: questionId → índice de opción.
type SubmitAssessmentRequest struct {
	Answers map[string]int `json:"answers"`
}

// AssessmentQuestion pregunta servida al cliente (sin respuesta correcta).
type AssessmentQuestion struct {
	ID      string   `json:"id"`
	Topic   string   `json:"topic"`
	Prompt  string   `json:"prompt"`
	Options []string `json:"options"`
}

// SkillAssessmentResponse salida de una evaluación de habilidades.
type SkillAssessmentResponse struct {
	ID          string               `json:"id"`
	UserID      string               `json:"userId"`
	ProjectID   string               `json:"projectId"`
	Status      string               `json:"status"`
	Score       int                  `json:"score"`
	SkillLevel  string               `json:"skillLevel,omitempty"`
	TimedOut    bool                 `json:"timedOut"`
	StartedAt   time.Time            `json:"startedAt"`
	ExpiresAt   time.Time            `json:"expiresAt"`
	CompletedAt *time.Time           `json:"completedAt,omitempty"`
	Questions   []AssessmentQuestion `json:"questions,omitempty"`
}
