package entity

import (
	"encoding/json"
	"time"
)

// Estados de una evaluación de habilidades.
const (
	AssessmentStarted   = "STARTED"
	AssessmentCompleted = "COMPLETED"
)

// SkillAssessment cuestionario cronometrado que ubica a un colaborador en un nivel.
type SkillAssessment struct {
	ID          string
	UserID      string
	ProjectID   string
	Status      string
	Score       int
	SkillLevel  string
	Questions   json.RawMessage // snapshot de las preguntas servidas (con respuesta correcta)
	Answers     json.RawMessage
	TimedOut    bool
	StartedAt   time.Time
	ExpiresAt   time.Time
	CompletedAt *time.Time
}
