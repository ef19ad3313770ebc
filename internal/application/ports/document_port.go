package ports

import "github.com/xurp-ia/xurp-api/internal/application/dto"

// ReportGenerator genera el PDF de avance de un proyecto.
type ReportGenerator interface {
	GenerateProjectReport(report *dto.ProjectReport) ([]byte, error)
}

// PlanExporter exporta el plan de tareas IA a un documento XML.
type PlanExporter interface {
	ExportPlan(plan *dto.PlanExport) ([]byte, error)
}
