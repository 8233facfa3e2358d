package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"devevents/internal/database"
	"devevents/internal/domain"
)

const defaultListLimit = 20

const eventColumns = `id, title, slug, description, overview, image, venue, location, date, time, mode, audience, agenda, organizer, tags, created_at, updated_at`

// eventRow is the storage shape of an event.
type eventRow struct {
	ID          string         `db:"id"`
	Title       string         `db:"title"`
	Slug        string         `db:"slug"`
	Description string         `db:"description"`
	Overview    string         `db:"overview"`
	Image       string         `db:"image"`
	Venue       string         `db:"venue"`
	Location    string         `db:"location"`
	Date        string         `db:"date"`
	Time        string         `db:"time"`
	Mode        string         `db:"mode"`
	Audience    string         `db:"audience"`
	Agenda      pq.StringArray `db:"agenda"`
	Organizer   string         `db:"organizer"`
	Tags        pq.StringArray `db:"tags"`
	CreatedAt   time.Time      `db:"created_at"`
	UpdatedAt   time.Time      `db:"updated_at"`
}

func (r eventRow) toDomain() *domain.Event {
	return &domain.Event{
		ID:          r.ID,
		Title:       r.Title,
		Slug:        r.Slug,
		Description: r.Description,
		Overview:    r.Overview,
		Image:       r.Image,
		Venue:       r.Venue,
		Location:    r.Location,
		Date:        r.Date,
		Time:        r.Time,
		Mode:        r.Mode,
		Audience:    r.Audience,
		Agenda:      []string(r.Agenda),
		Organizer:   r.Organizer,
		Tags:        []string(r.Tags),
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

type eventRepository struct {
	conn database.Acquirer
}

// NewEventRepository returns a domain.EventRepository backed by Postgres.
// Every call acquires the shared handle from conn.
func NewEventRepository(conn database.Acquirer) domain.EventRepository {
	return &eventRepository{conn: conn}
}

// Create inserts e and sets its ID. The slug's uniqueness is decided by the
// events_slug_key constraint, not by a prior lookup.
func (r *eventRepository) Create(ctx context.Context, e *domain.Event) error {
	db, err := r.conn.Acquire(ctx)
	if err != nil {
		return err
	}
	query := `
		INSERT INTO events (title, slug, description, overview, image, venue, location, date, time, mode, audience, agenda, organizer, tags, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		RETURNING id
	`
	err = db.QueryRowContext(ctx, query,
		e.Title, e.Slug, e.Description, e.Overview, e.Image, e.Venue, e.Location,
		e.Date, e.Time, e.Mode, e.Audience, pq.Array(e.Agenda), e.Organizer, pq.Array(e.Tags),
		e.CreatedAt, e.UpdatedAt,
	).Scan(&e.ID)
	return translateEventWriteError(err, e.Slug)
}

func (r *eventRepository) ExistsByID(ctx context.Context, id string) (bool, error) {
	if _, err := uuid.Parse(id); err != nil {
		return false, nil
	}
	db, err := r.conn.Acquire(ctx)
	if err != nil {
		return false, err
	}
	var exists bool
	if err := db.GetContext(ctx, &exists, `SELECT EXISTS(SELECT 1 FROM events WHERE id = $1)`, id); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *eventRepository) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, domain.ErrNotFound
	}
	return r.getOne(ctx, `SELECT `+eventColumns+` FROM events WHERE id = $1`, id)
}

func (r *eventRepository) GetBySlug(ctx context.Context, slug string) (*domain.Event, error) {
	return r.getOne(ctx, `SELECT `+eventColumns+` FROM events WHERE slug = $1`, slug)
}

func (r *eventRepository) getOne(ctx context.Context, query string, arg any) (*domain.Event, error) {
	db, err := r.conn.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	var row eventRow
	if err := db.GetContext(ctx, &row, query, arg); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return row.toDomain(), nil
}

// List returns events newest first.
func (r *eventRepository) List(ctx context.Context, params domain.PaginationParams) ([]*domain.Event, error) {
	db, err := r.conn.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	query := `
		SELECT ` + eventColumns + `
		FROM events
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`
	var rows []eventRow
	if err := db.SelectContext(ctx, &rows, query, params.Limit(defaultListLimit), params.Offset()); err != nil {
		return nil, err
	}
	events := make([]*domain.Event, 0, len(rows))
	for _, row := range rows {
		events = append(events, row.toDomain())
	}
	return events, nil
}

func (r *eventRepository) Count(ctx context.Context) (int, error) {
	db, err := r.conn.Acquire(ctx)
	if err != nil {
		return 0, err
	}
	var n int
	if err := db.GetContext(ctx, &n, `SELECT COUNT(*) FROM events`); err != nil {
		return 0, err
	}
	return n, nil
}

// Update replaces every writable column of the event identified by e.ID.
func (r *eventRepository) Update(ctx context.Context, e *domain.Event) error {
	if _, err := uuid.Parse(e.ID); err != nil {
		return domain.ErrNotFound
	}
	db, err := r.conn.Acquire(ctx)
	if err != nil {
		return err
	}
	query := `
		UPDATE events SET
			title = $1, slug = $2, description = $3, overview = $4, image = $5, venue = $6, location = $7,
			date = $8, time = $9, mode = $10, audience = $11, agenda = $12, organizer = $13, tags = $14,
			updated_at = $15
		WHERE id = $16
	`
	result, err := db.ExecContext(ctx, query,
		e.Title, e.Slug, e.Description, e.Overview, e.Image, e.Venue, e.Location,
		e.Date, e.Time, e.Mode, e.Audience, pq.Array(e.Agenda), e.Organizer, pq.Array(e.Tags),
		e.UpdatedAt, e.ID,
	)
	if err != nil {
		return translateEventWriteError(err, e.Slug)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("error checking rows affected: %w", err)
	}
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete removes an event. Events that still have bookings cannot be deleted.
func (r *eventRepository) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return domain.ErrNotFound
	}
	db, err := r.conn.Acquire(ctx)
	if err != nil {
		return err
	}
	result, err := db.ExecContext(ctx, `DELETE FROM events WHERE id = $1`, id)
	if err != nil {
		if perr, ok := pqError(err); ok && perr.Code == codeForeignKeyViolation {
			return domain.ErrEventHasBookings
		}
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("error checking rows affected: %w", err)
	}
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func translateEventWriteError(err error, slug string) error {
	if err == nil {
		return nil
	}
	if perr, ok := pqError(err); ok && perr.Code == codeUniqueViolation {
		if perr.Constraint == "" || perr.Constraint == constraintEventSlug {
			return fmt.Errorf("%w: %s", domain.ErrDuplicateSlug, slug)
		}
	}
	return err
}
