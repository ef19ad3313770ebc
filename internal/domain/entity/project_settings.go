package entity

import "time"

// ProjectSettings configuración del proyecto guardada en el servidor.
type ProjectSettings struct {
	ProjectID          string
	WorkingDays        []int // 1 = lunes ... 7 = domingo
	HoursPerDay        int
	Timezone           string
	AutoAssignDaily    bool
	NotifyOnAssignment bool
	Theme              string
	UpdatedAt          time.Time
}

// DefaultProjectSettings configuración inicial de un proyecto nuevo.
func DefaultProjectSettings(projectID string, now time.Time) *ProjectSettings {
	return &ProjectSettings{
		ProjectID:          projectID,
		WorkingDays:        []int{1, 2, 3, 4, 5},
		HoursPerDay:        8,
		Timezone:           "America/Bogota",
		AutoAssignDaily:    false,
		NotifyOnAssignment: true,
		Theme:              "light",
		UpdatedAt:          now,
	}
}
