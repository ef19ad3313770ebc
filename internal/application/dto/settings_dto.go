package dto

import "time"

// ProjectSettingsDTO configuración del proyecto (entrada y salida).
type ProjectSettingsDTO struct {
	WorkingDays        []int     `json:"workingDays" validate:"required,min=1,max=7,unique,dive,min=1,max=7"`
	HoursPerDay        int       `json:"hoursPerDay" validate:"required,min=1,max=24"`
	Timezone           string    `json:"timezone" validate:"required,timezone"`
	AutoAssignDaily    bool      `json:"autoAssignDaily"`
	NotifyOnAssignment bool      `json:"notifyOnAssignment"`
	Theme              string    `json:"theme" validate:"required,oneof=light dark system"`
	UpdatedAt          time.Time `json:"updatedAt"`
}
