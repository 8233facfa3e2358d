package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"devevents/internal/database"
	"devevents/internal/domain"
)

type bookingRow struct {
	ID        string    `db:"id"`
	EventID   string    `db:"event_id"`
	Email     string    `db:"email"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

type bookingRepository struct {
	conn database.Acquirer
}

// NewBookingRepository returns a domain.BookingRepository backed by Postgres.
func NewBookingRepository(conn database.Acquirer) domain.BookingRepository {
	return &bookingRepository{conn: conn}
}

// Create inserts b and sets its ID. The (event_id, email) pair is guarded by
// bookings_event_email_key and event_id by a foreign key, so concurrent
// writers are arbitrated by Postgres.
func (r *bookingRepository) Create(ctx context.Context, b *domain.Booking) error {
	db, err := r.conn.Acquire(ctx)
	if err != nil {
		return err
	}
	query := `
		INSERT INTO bookings (event_id, email, created_at, updated_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`
	err = db.QueryRowContext(ctx, query, b.EventID, b.Email, b.CreatedAt, b.UpdatedAt).Scan(&b.ID)
	if err == nil {
		return nil
	}
	if perr, ok := pqError(err); ok {
		switch perr.Code {
		case codeUniqueViolation:
			if perr.Constraint == "" || perr.Constraint == constraintBookingEmail {
				return domain.ErrDuplicateBooking
			}
		case codeForeignKeyViolation, codeInvalidTextRepresent:
			return fmt.Errorf("%w: %s", domain.ErrReferencedEventNotFound, b.EventID)
		}
	}
	return err
}

func (r *bookingRepository) ListByEventID(ctx context.Context, eventID string, params domain.PaginationParams) ([]*domain.Booking, error) {
	if _, err := uuid.Parse(eventID); err != nil {
		return []*domain.Booking{}, nil
	}
	db, err := r.conn.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	query := `
		SELECT id, event_id, email, created_at, updated_at
		FROM bookings
		WHERE event_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`
	var rows []bookingRow
	if err := db.SelectContext(ctx, &rows, query, eventID, params.Limit(defaultListLimit), params.Offset()); err != nil {
		return nil, err
	}
	bookings := make([]*domain.Booking, 0, len(rows))
	for _, row := range rows {
		bookings = append(bookings, &domain.Booking{
			ID:        row.ID,
			EventID:   row.EventID,
			Email:     row.Email,
			CreatedAt: row.CreatedAt,
			UpdatedAt: row.UpdatedAt,
		})
	}
	return bookings, nil
}

func (r *bookingRepository) CountByEventID(ctx context.Context, eventID string) (int, error) {
	if _, err := uuid.Parse(eventID); err != nil {
		return 0, nil
	}
	db, err := r.conn.Acquire(ctx)
	if err != nil {
		return 0, err
	}
	var n int
	if err := db.GetContext(ctx, &n, `SELECT COUNT(*) FROM bookings WHERE event_id = $1`, eventID); err != nil {
		return 0, err
	}
	return n, nil
}
