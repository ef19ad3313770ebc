package entity

import (
	"encoding/json"
	"time"
)

// UserEvaluation resultado de una evaluación técnica de un usuario en un proyecto.
// ProjectID es nil en evaluaciones históricas o de proyectos eliminados.
type UserEvaluation struct {
	ID            string
	UserID        string
	ProjectID     *string
	Technology    string // normalizada, ver membership.NormalizeTechnology
	Profession    string
	Level         string
	Score         int
	QuestionsData json.RawMessage
	CreatedAt     time.Time
}
