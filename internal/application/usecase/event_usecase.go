package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/xurp-ia/xurp-api/internal/application/access"
	"github.com/xurp-ia/xurp-api/internal/application/dto"
	"github.com/xurp-ia/xurp-api/internal/domain"
	"github.com/xurp-ia/xurp-api/internal/domain/entity"
	"github.com/xurp-ia/xurp-api/internal/domain/repository"
)

// EventUseCase calendario del proyecto. Cualquier integrante puede escribir.
type EventUseCase struct {
	guard  *access.Guard
	events repository.EventRepository
	now    func() time.Time
}

// NewEventUseCase construye el caso de uso.
func NewEventUseCase(guard *access.Guard, events repository.EventRepository) *EventUseCase {
	return &EventUseCase{guard: guard, events: events, now: time.Now}
}

// List eventos que se solapan con [from, to). Sin rango se usa el mes actual (UTC).
func (uc *EventUseCase) List(ctx context.Context, projectID, userID string, from, to *time.Time) ([]dto.EventResponse, error) {
	if _, err := uc.guard.RequireMember(ctx, projectID, userID); err != nil {
		return nil, err
	}
	start, end := monthRange(uc.now())
	if from != nil {
		start = *from
	}
	if to != nil {
		end = *to
	}
	if end.Before(start) {
		return nil, domain.ErrInvalidInput
	}
	list, err := uc.events.ListByProject(ctx, projectID, start, end)
	if err != nil {
		return nil, err
	}
	out := make([]dto.EventResponse, 0, len(list))
	for _, e := range list {
		out = append(out, toEventResponse(e))
	}
	return out, nil
}

// Create agrega un evento.
func (uc *EventUseCase) Create(ctx context.Context, projectID, userID string, in dto.EventRequest) (*dto.EventResponse, error) {
	if _, err := uc.guard.RequireMember(ctx, projectID, userID); err != nil {
		return nil, err
	}
	if err := validateEvent(in); err != nil {
		return nil, err
	}
	now := uc.now()
	e := &entity.Event{
		ID:          uuid.New().String(),
		ProjectID:   projectID,
		Title:       strings.TrimSpace(in.Title),
		Description: in.Description,
		StartsAt:    in.StartsAt,
		EndsAt:      in.EndsAt,
		AllDay:      in.AllDay,
		CreatedBy:   userID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.events.Create(ctx, e); err != nil {
		return nil, err
	}
	out := toEventResponse(e)
	return &out, nil
}

// Update reemplaza los datos del evento.
func (uc *EventUseCase) Update(ctx context.Context, projectID, eventID, userID string, in dto.EventRequest) (*dto.EventResponse, error) {
	e, err := uc.load(ctx, projectID, eventID, userID)
	if err != nil {
		return nil, err
	}
	if err := validateEvent(in); err != nil {
		return nil, err
	}
	e.Title = strings.TrimSpace(in.Title)
	e.Description = in.Description
	e.StartsAt = in.StartsAt
	e.EndsAt = in.EndsAt
	e.AllDay = in.AllDay
	e.UpdatedAt = uc.now()
	if err := uc.events.Update(ctx, e); err != nil {
		return nil, err
	}
	out := toEventResponse(e)
	return &out, nil
}

// Delete elimina el evento.
func (uc *EventUseCase) Delete(ctx context.Context, projectID, eventID, userID string) error {
	if _, err := uc.load(ctx, projectID, eventID, userID); err != nil {
		return err
	}
	return uc.events.Delete(ctx, eventID)
}

func (uc *EventUseCase) load(ctx context.Context, projectID, eventID, userID string) (*entity.Event, error) {
	if _, err := uc.guard.RequireMember(ctx, projectID, userID); err != nil {
		return nil, err
	}
	e, err := uc.events.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if e == nil || e.ProjectID != projectID {
		return nil, domain.ErrNotFound
	}
	return e, nil
}

func validateEvent(in dto.EventRequest) error {
	if strings.TrimSpace(in.Title) == "" || in.EndsAt.Before(in.StartsAt) {
		return domain.ErrInvalidInput
	}
	return nil
}

func monthRange(now time.Time) (time.Time, time.Time) {
	now = now.UTC()
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 1, 0)
}
