package dto

import (
	"encoding/json"
	"time"
)

// EvaluationAnswer pregunta respondida en una evaluación técnica.
type EvaluationAnswer struct {
	Question      string   `json:"question" validate:"required"`
	Options       []string `json:"options" validate:"required,min=2,max=8"`
	CorrectIndex  int      `json:"correctIndex" validate:"min=0"`
	SelectedIndex *int     `json:"selectedIndex"`
}

// SubmitEvaluationRequest entrada para registrar una evaluación técnica.
type SubmitEvaluationRequest struct {
	ProjectID  string             `json:"projectId" validate:"required,uuid"`
	Technology string             `json:"technology" validate:"required,min=1,max=100"`
	Profession string             `json:"profession" validate:"max=120"`
	Level      string             `json:"level" validate:"omitempty,oneof=Principiante Intermedio Avanzado"`
	Answers    []EvaluationAnswer `json:"answers" validate:"required,min=1,max=50,dive"`
}

// EvaluationResponse salida de una evaluación técnica.
type EvaluationResponse struct {
	ID            string          `json:"id"`
	UserID        string          `json:"userId"`
	ProjectID     *string         `json:"projectId"`
	Technology    string          `json:"technology"`
	Profession    string          `json:"profession"`
	Level         string          `json:"level"`
	Score         int             `json:"score"`
	ResultLevel   string          `json:"resultLevel"`
	QuestionsData json.RawMessage `json:"questionsData,omitempty"`
	CreatedAt     time.Time       `json:"createdAt"`
}
