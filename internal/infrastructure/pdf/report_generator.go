// Package pdf genera el reporte de avance de un proyecto con Maroto v2.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Nombre del proyecto + dueño  │  Día N + fecha      │
//	│  ─────────────────────────────────────────────────────────  │
//	│  RESUMEN: % completado / horas / sin asignar                │
//	│  TABLA INTEGRANTES: Nombre | Rol | Tareas | Horas           │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA TAREAS IA: Día | Título | Nivel | Estado | Horas     │
//	│  TABLA TAREAS: Título | Estado | Asignado                   │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: QR al proyecto (si hay URL pública)                │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"fmt"
	"strings"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/xurp-ia/xurp-api/internal/application/dto"
	"github.com/xurp-ia/xurp-api/internal/application/ports"
	"github.com/xurp-ia/xurp-api/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 38, Green: 70, Blue: 160}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorDone    = &props.Color{Red: 30, Green: 130, Blue: 76}
)

var _ ports.ReportGenerator = (*ReportGenerator)(nil)

// ReportGenerator implementa ports.ReportGenerator usando Maroto v2.
type ReportGenerator struct {
	// PublicURL base del frontend; si no está vacía el pie lleva un QR al proyecto.
	PublicURL string
}

// NewReportGenerator construye el generador.
func NewReportGenerator(publicURL string) *ReportGenerator {
	return &ReportGenerator{PublicURL: strings.TrimRight(publicURL, "/")}
}

// GenerateProjectReport genera el PDF y devuelve sus bytes.
func (g *ReportGenerator) GenerateProjectReport(r *dto.ProjectReport) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Reporte de avance - "+r.Project.Name, true).
		WithAuthor(nonEmpty(r.Owner.Name, "Xurp IA"), true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(r))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(summaryRow(&r.Progress))
	m.AddRows(line.NewRow(3))

	m.AddRows(sectionTitle("INTEGRANTES"))
	m.AddRows(tableHeader([]string{"Nombre", "Rol", "Tareas", "Tareas IA", "Horas (hechas/asignadas)"}, []int{4, 2, 2, 2, 2}))
	m.AddRows(memberRows(r.Progress.Members)...)
	m.AddRows(line.NewRow(3))

	m.AddRows(sectionTitle("TAREAS IA"))
	if len(r.AITasks) == 0 {
		m.AddRows(emptyRow("Sin tareas IA generadas"))
	} else {
		m.AddRows(tableHeader([]string{"Día", "Título", "Nivel", "Estado", "Horas"}, []int{1, 6, 2, 2, 1}))
		m.AddRows(aiTaskRows(r.AITasks)...)
	}
	m.AddRows(line.NewRow(3))

	m.AddRows(sectionTitle("TAREAS"))
	if len(r.Tasks) == 0 {
		m.AddRows(emptyRow("Sin tareas manuales"))
	} else {
		m.AddRows(tableHeader([]string{"Título", "Estado", "Asignado"}, []int{7, 2, 3}))
		m.AddRows(taskRows(r.Tasks, assigneeNames(&r.Progress))...)
	}

	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(g.footerRows(r)...)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar reporte: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(r *dto.ProjectReport) core.Row {
	return row.New(18).Add(
		col.New(8).Add(
			text.New(r.Project.Name, props.Text{Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1}),
			text.New("Dueño: "+nonEmpty(r.Owner.Name, r.Owner.Email), props.Text{Size: 9, Top: 9, Color: colorGray}),
		),
		col.New(4).Add(
			text.New(fmt.Sprintf("DÍA %d", r.Progress.CurrentDay), props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 1, Color: colorPrimary,
			}),
			text.New("Generado: "+r.Progress.GeneratedAt.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 9, Color: colorGray,
			}),
		),
	)
}

func summaryRow(p *dto.ProjectProgressResponse) core.Row {
	stat := func(label, value string, c *props.Color) core.Col {
		return col.New(3).Add(
			text.New(label, props.Text{Size: 7, Color: colorGray, Align: align.Center, Top: 1}),
			text.New(value, props.Text{Style: fontstyle.Bold, Size: 12, Color: c, Align: align.Center, Top: 6}),
		)
	}
	return row.New(16).Add(
		stat("COMPLETADO", fmt.Sprintf("%d%%", p.CompletionPercent), colorDone),
		stat("TAREAS IA", fmt.Sprintf("%d/%d", p.AITasks.Completed, p.AITasks.Total), colorPrimary),
		stat("HORAS", p.HoursCompleted.StringFixed(1)+" / "+p.HoursTotal.StringFixed(1), colorPrimary),
		stat("SIN ASIGNAR", fmt.Sprintf("%d", p.Unassigned), colorGray),
	)
}

func sectionTitle(title string) core.Row {
	return row.New(7).Add(col.New(12).Add(
		text.New(title, props.Text{Style: fontstyle.Bold, Size: 9, Color: colorPrimary, Top: 1}),
	))
}

func emptyRow(msg string) core.Row {
	return row.New(6).Add(col.New(12).Add(
		text.New(msg, props.Text{Size: 8, Color: colorGray, Top: 1, Left: 1}),
	))
}

func tableHeader(labels []string, sizes []int) core.Row {
	cols := make([]core.Col, 0, len(labels))
	for i, l := range labels {
		cols = append(cols, col.New(sizes[i]).Add(text.New(l, props.Text{
			Style: fontstyle.Bold, Size: 8, Color: colorGray, Top: 1, Left: 1,
		})))
	}
	return row.New(6).Add(cols...)
}

func cell(size int, s string) core.Col {
	return col.New(size).Add(text.New(s, props.Text{Size: 8, Top: 1, Left: 1}))
}

func memberRows(members []dto.MemberProgress) []core.Row {
	out := make([]core.Row, 0, len(members))
	for _, mp := range members {
		out = append(out, row.New(6).Add(
			cell(4, mp.Name),
			cell(2, mp.Role),
			cell(2, fmt.Sprintf("%d/%d", mp.Tasks.Completed, mp.Tasks.Total)),
			cell(2, fmt.Sprintf("%d/%d", mp.AITasks.Completed, mp.AITasks.Total)),
			cell(2, mp.HoursCompleted.StringFixed(1)+"/"+mp.HoursAssigned.StringFixed(1)),
		))
	}
	return out
}

func aiTaskRows(tasks []dto.AITaskResponse) []core.Row {
	out := make([]core.Row, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, row.New(6).Add(
			cell(1, fmt.Sprintf("%d", t.DayNumber)),
			cell(6, t.Title),
			cell(2, t.SkillLevel),
			cell(2, statusLabel(t.Status)),
			cell(1, t.EstimatedHours.StringFixed(1)),
		))
	}
	return out
}

func taskRows(tasks []dto.TaskResponse, names map[string]string) []core.Row {
	out := make([]core.Row, 0, len(tasks))
	for _, t := range tasks {
		assignee := "—"
		if t.AssigneeID != nil {
			assignee = nonEmpty(names[*t.AssigneeID], *t.AssigneeID)
		}
		out = append(out, row.New(6).Add(
			cell(7, t.Title),
			cell(2, statusLabel(t.Status)),
			cell(3, assignee),
		))
	}
	return out
}

func (g *ReportGenerator) footerRows(r *dto.ProjectReport) []core.Row {
	legend := text.New("Reporte generado por Xurp IA. Los porcentajes incluyen tareas manuales y tareas IA.",
		props.Text{Size: 6.5, Color: colorGray, Top: 2})
	if g.PublicURL == "" {
		return []core.Row{row.New(8).Add(col.New(12).Add(legend))}
	}
	return []core.Row{row.New(35).Add(
		col.New(3).Add(code.NewQr(g.PublicURL+"/projects/"+r.Project.ID, props.Rect{Percent: 95, Center: true})),
		col.New(9).Add(
			text.New("Escanea el código para abrir el proyecto.", props.Text{Size: 8, Top: 4, Left: 3, Color: colorGray}),
			legend,
		),
	)}
}

// ── helpers ───────────────────────────────────────────────────────────────────

func assigneeNames(p *dto.ProjectProgressResponse) map[string]string {
	names := make(map[string]string, len(p.Members))
	for _, mp := range p.Members {
		names[mp.UserID] = mp.Name
	}
	return names
}

func statusLabel(s string) string {
	switch s {
	case entity.TaskStatusPending:
		return "Pendiente"
	case entity.TaskStatusInProgress:
		return "En progreso"
	case entity.TaskStatusCompleted:
		return "Completada"
	}
	return s
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
