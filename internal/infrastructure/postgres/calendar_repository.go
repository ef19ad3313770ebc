package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/xurp-ia/xurp-api/internal/domain"
	"github.com/xurp-ia/xurp-api/internal/domain/entity"
	"github.com/xurp-ia/xurp-api/internal/domain/repository"
)

var (
	_ repository.EventRepository = (*EventRepo)(nil)
	_ repository.NoteRepository  = (*NoteRepo)(nil)
)

// EventRepo eventos del calendario del proyecto.
type EventRepo struct {
	q Querier
}

// NewEventRepository construye el adaptador de persistencia para eventos.
func NewEventRepository(q Querier) *EventRepo {
	return &EventRepo{q: q}
}

const eventColumns = `id, project_id, title, description, starts_at, ends_at, all_day, created_by, created_at, updated_at`

func (r *EventRepo) queryList(ctx context.Context, query string, args ...any) ([]*entity.Event, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	defer rows.Close()
	var list []*entity.Event
	for rows.Next() {
		var e entity.Event
		if err := rows.Scan(&e.ID, &e.ProjectID, &e.Title, &e.Description, &e.StartsAt, &e.EndsAt,
			&e.AllDay, &e.CreatedBy, &e.CreatedAt, &e.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		list = append(list, &e)
	}
	return list, rows.Err()
}

func (r *EventRepo) Create(ctx context.Context, e *entity.Event) error {
	_, err := r.q.Exec(ctx, `INSERT INTO events (`+eventColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		e.ID, e.ProjectID, e.Title, e.Description, e.StartsAt, e.EndsAt, e.AllDay, e.CreatedBy, e.CreatedAt, e.UpdatedAt,
	)
	if err != nil {
		if isCheckViolation(err) {
			return domain.ErrInvalidInput
		}
		return fmt.Errorf("insert event: %w", err)
	}
	return nil
}

func (r *EventRepo) GetByID(ctx context.Context, id string) (*entity.Event, error) {
	list, err := r.queryList(ctx, `SELECT `+eventColumns+` FROM events WHERE id = $1`, id)
	if err != nil || len(list) == 0 {
		return nil, err
	}
	return list[0], nil
}

func (r *EventRepo) Update(ctx context.Context, e *entity.Event) error {
	tag, err := r.q.Exec(ctx, `
		UPDATE events SET title = $2, description = $3, starts_at = $4, ends_at = $5, all_day = $6, updated_at = $7
		WHERE id = $1`,
		e.ID, e.Title, e.Description, e.StartsAt, e.EndsAt, e.AllDay, e.UpdatedAt,
	)
	if err != nil {
		if isCheckViolation(err) {
			return domain.ErrInvalidInput
		}
		return fmt.Errorf("update event: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *EventRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM events WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete event: %w", err)
	}
	return nil
}

// ListByProject eventos que se solapan con [from, to).
func (r *EventRepo) ListByProject(ctx context.Context, projectID string, from, to time.Time) ([]*entity.Event, error) {
	return r.queryList(ctx, `
		SELECT `+eventColumns+` FROM events
		WHERE project_id = $1 AND starts_at < $3 AND ends_at >= $2
		ORDER BY starts_at`, projectID, from, to)
}

// NoteRepo notas personales dentro de un proyecto.
type NoteRepo struct {
	q Querier
}

// NewNoteRepository construye el adaptador de persistencia para notas.
func NewNoteRepository(q Querier) *NoteRepo {
	return &NoteRepo{q: q}
}

const noteColumns = `id, project_id, author_id, title, content, pinned, created_at, updated_at`

func (r *NoteRepo) queryList(ctx context.Context, query string, args ...any) ([]*entity.Note, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list notes: %w", err)
	}
	defer rows.Close()
	var list []*entity.Note
	for rows.Next() {
		var n entity.Note
		if err := rows.Scan(&n.ID, &n.ProjectID, &n.AuthorID, &n.Title, &n.Content, &n.Pinned, &n.CreatedAt, &n.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan note: %w", err)
		}
		list = append(list, &n)
	}
	return list, rows.Err()
}

func (r *NoteRepo) Create(ctx context.Context, n *entity.Note) error {
	_, err := r.q.Exec(ctx, `INSERT INTO notes (`+noteColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		n.ID, n.ProjectID, n.AuthorID, n.Title, n.Content, n.Pinned, n.CreatedAt, n.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert note: %w", err)
	}
	return nil
}

func (r *NoteRepo) GetByID(ctx context.Context, id string) (*entity.Note, error) {
	list, err := r.queryList(ctx, `SELECT `+noteColumns+` FROM notes WHERE id = $1`, id)
	if err != nil || len(list) == 0 {
		return nil, err
	}
	return list[0], nil
}

func (r *NoteRepo) Update(ctx context.Context, n *entity.Note) error {
	tag, err := r.q.Exec(ctx, `UPDATE notes SET title = $2, content = $3, pinned = $4, updated_at = $5 WHERE id = $1`,
		n.ID, n.Title, n.Content, n.Pinned, n.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update note: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *NoteRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM notes WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete note: %w", err)
	}
	return nil
}

// ListByAuthor fijadas primero, luego por última edición.
func (r *NoteRepo) ListByAuthor(ctx context.Context, projectID, authorID string) ([]*entity.Note, error) {
	return r.queryList(ctx, `
		SELECT `+noteColumns+` FROM notes
		WHERE project_id = $1 AND author_id = $2
		ORDER BY pinned DESC, updated_at DESC`, projectID, authorID)
}
