package postgres

import (
	"errors"

	"github.com/lib/pq"
)

// Postgres SQLSTATE codes translated into domain errors.
const (
	codeUniqueViolation      = "23505"
	codeForeignKeyViolation  = "23503"
	codeInvalidTextRepresent = "22P02"
)

// Constraint names from the events/bookings migration.
const (
	constraintEventSlug    = "events_slug_key"
	constraintBookingEmail = "bookings_event_email_key"
)

// pqError returns the Postgres error wrapped in err, if any.
func pqError(err error) (*pq.Error, bool) {
	var perr *pq.Error
	if errors.As(err, &perr) {
		return perr, true
	}
	return nil, false
}
