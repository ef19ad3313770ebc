package ai

import (
	"context"
	"fmt"
	"hash/fnv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/xurp-ia/xurp-api/internal/application/dto"
	"github.com/xurp-ia/xurp-api/internal/application/ports"
	"github.com/xurp-ia/xurp-api/internal/domain/entity"
)

// Verificar en tiempo de compilación que TemplateGenerator implementa AIService.
var _ ports.AIService = (*TemplateGenerator)(nil)

// TemplateGenerator adaptador local y determinista del puerto AIService.
// El mismo pedido produce siempre el mismo plan, sin llamadas externas.
type TemplateGenerator struct{}

// NewTemplateGenerator construye el generador.
func NewTemplateGenerator() *TemplateGenerator {
	return &TemplateGenerator{}
}

type taskTemplate struct {
	title       string
	description string
	level       string
	hours       string
}

// Fases del plan; el día N toma plantillas de la fase que le corresponde.
var phases = [][]taskTemplate{
	{
		{"Revisar alcance de %s", "Leer la descripción del proyecto y anotar dudas sobre el alcance.", entity.SkillPrincipiante, "1.5"},
		{"Configurar entorno de trabajo", "Preparar repositorio, accesos y herramientas compartidas del equipo.", entity.SkillPrincipiante, "2"},
		{"Definir requisitos de %s", "Listar requisitos funcionales y criterios de aceptación.", entity.SkillIntermedio, "3"},
		{"Proponer arquitectura inicial", "Bosquejar componentes principales y sus responsabilidades.", entity.SkillAvanzado, "4"},
	},
	{
		{"Diseñar modelo de datos", "Definir entidades, relaciones y restricciones principales.", entity.SkillIntermedio, "3"},
		{"Implementar módulo base de %s", "Construir la primera funcionalidad de punta a punta.", entity.SkillIntermedio, "4"},
		{"Documentar decisiones técnicas", "Registrar decisiones y supuestos en la wiki del proyecto.", entity.SkillPrincipiante, "1"},
		{"Revisar integraciones externas", "Evaluar servicios externos necesarios y sus límites.", entity.SkillAvanzado, "3"},
	},
	{
		{"Escribir pruebas de %s", "Cubrir los casos principales y los bordes con pruebas automatizadas.", entity.SkillIntermedio, "3"},
		{"Corregir incidencias abiertas", "Resolver los errores reportados durante la semana.", entity.SkillPrincipiante, "2"},
		{"Optimizar rendimiento", "Medir tiempos de respuesta y atacar los cuellos de botella.", entity.SkillAvanzado, "4"},
		{"Preparar demo para el equipo", "Armar una demostración corta del avance.", entity.SkillPrincipiante, "1.5"},
	},
}

// GenerateTaskPlan reparte req.TasksPerDay tareas por día durante req.Days días.
func (g *TemplateGenerator) GenerateTaskPlan(ctx context.Context, req dto.TaskPlanRequest) ([]dto.GeneratedTask, error) {
	if req.Days < 1 || req.TasksPerDay < 1 {
		return nil, fmt.Errorf("AI: días y tareas por día deben ser positivos")
	}
	subject := strings.TrimSpace(req.Focus)
	if subject == "" {
		subject = strings.TrimSpace(req.ProjectName)
	}
	if subject == "" {
		subject = "el proyecto"
	}
	offset := int(seed(req.ProjectName + "|" + req.Focus))
	out := make([]dto.GeneratedTask, 0, req.Days*req.TasksPerDay)
	for day := 1; day <= req.Days; day++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		phase := phases[(day-1)*len(phases)/req.Days]
		for i := 0; i < req.TasksPerDay; i++ {
			t := phase[(offset+day+i)%len(phase)]
			title := t.title
			if strings.Contains(title, "%s") {
				title = fmt.Sprintf(title, subject)
			}
			if i >= len(phase) {
				title = fmt.Sprintf("%s (parte %d)", title, i/len(phase)+1)
			}
			out = append(out, dto.GeneratedTask{
				Title:          title,
				Description:    t.description,
				DayNumber:      day,
				SkillLevel:     t.level,
				EstimatedHours: decimal.RequireFromString(t.hours),
			})
		}
	}
	return out, nil
}

type questionTemplate struct {
	prompt  string
	options []string
	correct int
}

var questionTemplates = map[string][]questionTemplate{
	entity.SkillPrincipiante: {
		{"¿Cuál es el propósito principal de %s?", []string{"Resolver un problema concreto del dominio para el que fue creado", "Reemplazar el sistema operativo", "Gestionar la facturación", "Ninguno"}, 0},
		{"¿Dónde se consulta primero la referencia oficial de %s?", []string{"Foros anónimos", "La documentación oficial", "Redes sociales", "No existe"}, 1},
		{"Al empezar con %s, ¿qué conviene hacer?", []string{"Ir directo a producción", "Ignorar los errores", "Seguir un ejemplo mínimo y ejecutarlo", "Copiar código sin leerlo"}, 2},
	},
	entity.SkillIntermedio: {
		{"¿Qué práctica mejora la mantenibilidad de un proyecto con %s?", []string{"Duplicar código", "Pruebas automatizadas y módulos pequeños", "Variables globales", "Evitar revisiones"}, 1},
		{"Ante un error intermitente en %s, ¿qué se hace primero?", []string{"Reproducirlo y aislarlo", "Reiniciar el servidor", "Ignorarlo", "Reescribir todo"}, 0},
		{"¿Cómo se gestionan las dependencias en un proyecto con %s?", []string{"A mano en cada equipo", "No se gestionan", "Con el gestor de paquetes y versiones fijadas", "Copiando carpetas"}, 2},
	},
	entity.SkillAvanzado: {
		{"¿Qué indica un cuello de botella en un sistema con %s?", []string{"Nada relevante", "Un recurso que limita el rendimiento total", "Un error de sintaxis", "Un problema de estilo"}, 1},
		{"¿Cómo se valida un cambio de rendimiento en %s?", []string{"Con intuición", "Midiendo antes y después con el mismo escenario", "Preguntando al equipo", "Sin medir"}, 1},
		{"Para escalar un servicio basado en %s, ¿qué se revisa primero?", []string{"El color de la interfaz", "El nombre del repositorio", "El estado compartido y la concurrencia", "La licencia"}, 2},
	},
}

// GenerateQuestions devuelve req.Count preguntas del nivel pedido sobre req.Technology.
func (g *TemplateGenerator) GenerateQuestions(ctx context.Context, req dto.QuestionRequest) ([]dto.EvaluationQuestion, error) {
	tech := strings.TrimSpace(req.Technology)
	if tech == "" {
		return nil, fmt.Errorf("AI: tecnología vacía")
	}
	templates, ok := questionTemplates[req.Level]
	if !ok {
		templates = questionTemplates[entity.SkillPrincipiante]
	}
	count := req.Count
	if count <= 0 {
		count = len(templates)
	}
	offset := int(seed(strings.ToLower(tech)))
	out := make([]dto.EvaluationQuestion, 0, count)
	for i := 0; i < count; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		t := templates[(offset+i)%len(templates)]
		q := fmt.Sprintf(t.prompt, tech)
		if i >= len(templates) {
			q = fmt.Sprintf("%s (variante %d)", q, i/len(templates)+1)
		}
		out = append(out, dto.EvaluationQuestion{
			Question:     q,
			Options:      append([]string(nil), t.options...),
			CorrectIndex: t.correct,
		})
	}
	return out, nil
}

func seed(s string) uint32 {
	h := fnv.New32a()
	_, _ = h.Write([]byte(s))
	return h.Sum32()
}
