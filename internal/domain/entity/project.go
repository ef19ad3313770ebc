package entity

import "time"

// Project es el espacio de trabajo de un equipo. Tiene exactamente un dueño.
type Project struct {
	ID          string
	Name        string
	Description string
	Logo        string
	Location    string
	OwnerID     string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// CurrentDay devuelve el día del plan en now: días UTC completos desde la fecha de creación, más uno.
// El día de creación es el día 1 y nunca se devuelve un valor menor.
func (p *Project) CurrentDay(now time.Time) int {
	created := truncateDay(p.CreatedAt.UTC())
	today := truncateDay(now.UTC())
	day := int(today.Sub(created)/(24*time.Hour)) + 1
	if day < 1 {
		return 1
	}
	return day
}

func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
