// Package assessment califica la evaluación de habilidades y la traduce a un nivel.
package assessment

import (
	"math"
	"time"

	"github.com/xurp-ia/xurp-api/internal/domain/entity"
)

// Umbrales de nivel sobre el puntaje porcentual.
const (
	AdvancedThreshold     = 80
	IntermediateThreshold = 50

	// DefaultDuration tiempo de la evaluación cronometrada.
	DefaultDuration = 30 * time.Minute
)

// Question pregunta de opción múltiple. CorrectIndex nunca se envía al cliente antes de calificar.
type Question struct {
	ID           string   `json:"id"`
	Topic        string   `json:"topic"`
	Prompt       string   `json:"prompt"`
	Options      []string `json:"options"`
	CorrectIndex int      `json:"correct_index"`
}

// Result resultado de calificar un cuestionario.
type Result struct {
	Correct    int
	Total      int
	Score      int
	SkillLevel string
}

// Score porcentaje de aciertos redondeado. Un cuestionario vacío puntúa 0.
func Score(correct, total int) int {
	if total <= 0 || correct <= 0 {
		return 0
	}
	if correct > total {
		correct = total
	}
	return int(math.Round(100 * float64(correct) / float64(total)))
}

// LevelFor nivel de habilidad para un puntaje.
func LevelFor(score int) string {
	switch {
	case score >= AdvancedThreshold:
		return entity.SkillAvanzado
	case score >= IntermediateThreshold:
		return entity.SkillIntermedio
	default:
		return entity.SkillPrincipiante
	}
}

// Grade califica las respuestas (questionID → índice de opción). Las preguntas sin respuesta,
// o con un índice fuera de rango, cuentan como incorrectas.
func Grade(questions []Question, answers map[string]int) Result {
	correct := 0
	for _, q := range questions {
		idx, ok := answers[q.ID]
		if !ok || idx < 0 || idx >= len(q.Options) {
			continue
		}
		if idx == q.CorrectIndex {
			correct++
		}
	}
	score := Score(correct, len(questions))
	return Result{Correct: correct, Total: len(questions), Score: score, SkillLevel: LevelFor(score)}
}

// Expired informa si la evaluación iniciada en startedAt ya venció en now.
func Expired(expiresAt, now time.Time) bool {
	return now.After(expiresAt)
}
