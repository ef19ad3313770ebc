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

// NoteUseCase notas personales dentro de un proyecto.
type NoteUseCase struct {
	guard *access.Guard
	notes repository.NoteRepository
	now   func() time.Time
}

// NewNoteUseCase construye el caso de uso.
func NewNoteUseCase(guard *access.Guard, notes repository.NoteRepository) *NoteUseCase {
	return &NoteUseCase{guard: guard, notes: notes, now: time.Now}
}

// List notas del usuario en el proyecto, fijadas primero.
func (uc *NoteUseCase) List(ctx context.Context, projectID, userID string) ([]dto.NoteResponse, error) {
	if _, err := uc.guard.RequireMember(ctx, projectID, userID); err != nil {
		return nil, err
	}
	list, err := uc.notes.ListByAuthor(ctx, projectID, userID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.NoteResponse, 0, len(list))
	for _, n := range list {
		out = append(out, toNoteResponse(n))
	}
	return out, nil
}

// Create crea una nota.
func (uc *NoteUseCase) Create(ctx context.Context, userID string, in dto.CreateNoteRequest) (*dto.NoteResponse, error) {
	if _, err := uc.guard.RequireMember(ctx, in.ProjectID, userID); err != nil {
		return nil, err
	}
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, domain.ErrInvalidInput
	}
	now := uc.now()
	n := &entity.Note{
		ID:        uuid.New().String(),
		ProjectID: in.ProjectID,
		AuthorID:  userID,
		Title:     title,
		Content:   in.Content,
		Pinned:    in.Pinned,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.notes.Create(ctx, n); err != nil {
		return nil, err
	}
	out := toNoteResponse(n)
	return &out, nil
}

// Update edita una nota propia.
func (uc *NoteUseCase) Update(ctx context.Context, id, userID string, in dto.UpdateNoteRequest) (*dto.NoteResponse, error) {
	n, err := uc.loadOwn(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	if in.Title != nil {
		title := strings.TrimSpace(*in.Title)
		if title == "" {
			return nil, domain.ErrInvalidInput
		}
		n.Title = title
	}
	if in.Content != nil {
		n.Content = *in.Content
	}
	if in.Pinned != nil {
		n.Pinned = *in.Pinned
	}
	n.UpdatedAt = uc.now()
	if err := uc.notes.Update(ctx, n); err != nil {
		return nil, err
	}
	out := toNoteResponse(n)
	return &out, nil
}

// Delete elimina una nota propia.
func (uc *NoteUseCase) Delete(ctx context.Context, id, userID string) error {
	if _, err := uc.loadOwn(ctx, id, userID); err != nil {
		return err
	}
	return uc.notes.Delete(ctx, id)
}

func (uc *NoteUseCase) loadOwn(ctx context.Context, id, userID string) (*entity.Note, error) {
	n, err := uc.notes.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if n == nil {
		return nil, domain.ErrNotFound
	}
	if n.AuthorID != userID {
		return nil, domain.ErrForbidden
	}
	return n, nil
}
