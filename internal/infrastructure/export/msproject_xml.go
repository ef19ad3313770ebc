// Package export serializa el plan de tareas IA como XML de MS Project (MSPDI).
package export

import (
	"fmt"
	"sort"
	"time"

	"github.com/beevik/etree"
	"github.com/shopspring/decimal"

	"github.com/xurp-ia/xurp-api/internal/application/dto"
	"github.com/xurp-ia/xurp-api/internal/application/ports"
	"github.com/xurp-ia/xurp-api/internal/domain/entity"
)

const (
	mspdiNamespace = "http://schemas.microsoft.com/project"
	dateLayout     = "2006-01-02T15:04:05"
	workdayStart   = 8 // hora local de inicio de jornada
)

var _ ports.PlanExporter = (*MSProjectExporter)(nil)

// MSProjectExporter implementa ports.PlanExporter.
type MSProjectExporter struct{}

// NewMSProjectExporter construye el exportador.
func NewMSProjectExporter() *MSProjectExporter { return &MSProjectExporter{} }

// ExportPlan genera el documento. El día N del plan cae en el N-ésimo día hábil desde StartDate.
func (e *MSProjectExporter) ExportPlan(plan *dto.PlanExport) ([]byte, error) {
	hoursPerDay := plan.HoursPerDay
	if hoursPerDay <= 0 {
		hoursPerDay = 8
	}
	calendar := newWorkCalendar(plan.StartDate, plan.WorkingDays)

	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8" standalone="yes"`)
	project := doc.CreateElement("Project")
	project.CreateAttr("xmlns", mspdiNamespace)
	project.CreateElement("Name").SetText(plan.Project.Name)
	project.CreateElement("Title").SetText(plan.Project.Name)
	project.CreateElement("CreationDate").SetText(plan.Project.CreatedAt.UTC().Format(dateLayout))
	project.CreateElement("StartDate").SetText(calendar.dayStart(1).Format(dateLayout))
	project.CreateElement("MinutesPerDay").SetText(fmt.Sprintf("%d", hoursPerDay*60))
	project.CreateElement("MinutesPerWeek").SetText(fmt.Sprintf("%d", hoursPerDay*60*len(calendar.days)))
	project.CreateElement("DaysPerMonth").SetText("20")

	resourceUID := e.writeResources(project, plan.Assignees)

	tasks := project.CreateElement("Tasks")
	// UID 0: tarea resumen del proyecto, requerida por MS Project.
	summary := tasks.CreateElement("Task")
	summary.CreateElement("UID").SetText("0")
	summary.CreateElement("ID").SetText("0")
	summary.CreateElement("Name").SetText(plan.Project.Name)
	summary.CreateElement("Summary").SetText("1")
	summary.CreateElement("OutlineLevel").SetText("0")

	assignments := project.CreateElement("Assignments")
	for i, t := range plan.Tasks {
		uid := i + 1
		hours := t.EstimatedHours
		if !hours.IsPositive() {
			hours = decimal.NewFromInt(int64(hoursPerDay))
		}
		start := calendar.dayStart(t.DayNumber)
		finish := start.Add(time.Duration(hours.Mul(decimal.NewFromInt(int64(time.Hour))).IntPart()))

		task := tasks.CreateElement("Task")
		task.CreateElement("UID").SetText(fmt.Sprintf("%d", uid))
		task.CreateElement("ID").SetText(fmt.Sprintf("%d", uid))
		task.CreateElement("Name").SetText(t.Title)
		task.CreateElement("Notes").SetText(t.Description)
		task.CreateElement("OutlineLevel").SetText("1")
		task.CreateElement("Start").SetText(start.Format(dateLayout))
		task.CreateElement("Finish").SetText(finish.Format(dateLayout))
		task.CreateElement("Duration").SetText(isoDuration(hours))
		task.CreateElement("DurationFormat").SetText("5") // horas
		task.CreateElement("PercentComplete").SetText(percentComplete(t.Status))
		task.CreateElement("Text1").SetText(t.SkillLevel)
		task.CreateElement("Number1").SetText(fmt.Sprintf("%d", t.DayNumber))

		if t.AssigneeID == nil {
			continue
		}
		ruid, ok := resourceUID[*t.AssigneeID]
		if !ok {
			continue
		}
		a := assignments.CreateElement("Assignment")
		a.CreateElement("UID").SetText(fmt.Sprintf("%d", uid))
		a.CreateElement("TaskUID").SetText(fmt.Sprintf("%d", uid))
		a.CreateElement("ResourceUID").SetText(fmt.Sprintf("%d", ruid))
		a.CreateElement("Units").SetText("1")
		a.CreateElement("Work").SetText(isoDuration(hours))
	}

	doc.Indent(2)
	out, err := doc.WriteToBytes()
	if err != nil {
		return nil, fmt.Errorf("export: serializar plan: %w", err)
	}
	return out, nil
}

// writeResources un recurso por integrante, ordenados por nombre para que la salida sea estable.
func (e *MSProjectExporter) writeResources(project *etree.Element, assignees map[string]dto.UserSummary) map[string]int {
	ids := make([]string, 0, len(assignees))
	for id := range assignees {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		a, b := assignees[ids[i]], assignees[ids[j]]
		if a.Name != b.Name {
			return a.Name < b.Name
		}
		return ids[i] < ids[j]
	})
	resources := project.CreateElement("Resources")
	uids := make(map[string]int, len(ids))
	for i, id := range ids {
		u := assignees[id]
		uid := i + 1
		uids[id] = uid
		r := resources.CreateElement("Resource")
		r.CreateElement("UID").SetText(fmt.Sprintf("%d", uid))
		r.CreateElement("ID").SetText(fmt.Sprintf("%d", uid))
		r.CreateElement("Name").SetText(u.Name)
		r.CreateElement("EmailAddress").SetText(u.Email)
		r.CreateElement("Type").SetText("1") // trabajo
	}
	return uids
}

func percentComplete(status string) string {
	switch status {
	case entity.TaskStatusCompleted:
		return "100"
	case entity.TaskStatusInProgress:
		return "50"
	}
	return "0"
}

// isoDuration PT<h>H<m>M0S, formato de duraciones de MSPDI.
func isoDuration(hours decimal.Decimal) string {
	minutes := hours.Mul(decimal.NewFromInt(60)).Round(0).IntPart()
	return fmt.Sprintf("PT%dH%dM0S", minutes/60, minutes%60)
}

// workCalendar resuelve el día N del plan a una fecha hábil.
type workCalendar struct {
	start time.Time
	days  map[time.Weekday]bool
}

func newWorkCalendar(start time.Time, workingDays []int) workCalendar {
	days := make(map[time.Weekday]bool, len(workingDays))
	for _, d := range workingDays {
		if d >= 1 && d <= 7 {
			days[time.Weekday(d%7)] = true // 7 = domingo = time.Sunday
		}
	}
	if len(days) == 0 {
		for d := time.Monday; d <= time.Friday; d++ {
			days[d] = true
		}
	}
	y, m, d := start.UTC().Date()
	return workCalendar{start: time.Date(y, m, d, workdayStart, 0, 0, 0, time.UTC), days: days}
}

// dayStart inicio de la jornada del día n (n >= 1).
func (c workCalendar) dayStart(n int) time.Time {
	if n < 1 {
		n = 1
	}
	day := c.start
	for !c.days[day.Weekday()] {
		day = day.AddDate(0, 0, 1)
	}
	for i := 1; i < n; i++ {
		day = day.AddDate(0, 0, 1)
		for !c.days[day.Weekday()] {
			day = day.AddDate(0, 0, 1)
		}
	}
	return day
}
