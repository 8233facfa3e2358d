package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for the write path. Use errors.Is to check them.
var (
	ErrNotFound                = errors.New("not found")
	ErrMissingField            = errors.New("missing required field")
	ErrInvalidDate             = errors.New("invalid date format")
	ErrInvalidTime             = errors.New("invalid time format (expected HH:mm or h:mm am/pm)")
	ErrInvalidEmail            = errors.New("please provide a valid email address")
	ErrDuplicateSlug           = errors.New("an event with this slug already exists")
	ErrDuplicateBooking        = errors.New("this email has already booked the event")
	ErrReferencedEventNotFound = errors.New("referenced event does not exist")
	ErrConnectionUnavailable   = errors.New("database connection unavailable")

	// ErrEventHasBookings is returned when deleting an event that still has bookings.
	ErrEventHasBookings = errors.New("event has bookings")
)

// FieldError ties a validation failure to the field that caused it.
type FieldError struct {
	Field string
	Err   error
}

func (e *FieldError) Error() string {
	if errors.Is(e.Err, ErrMissingField) {
		return fmt.Sprintf("%s is required", e.Field)
	}
	return fmt.Sprintf("%s: %v", e.Field, e.Err)
}

func (e *FieldError) Unwrap() error { return e.Err }

// MissingField returns a FieldError for a required field that is empty.
func MissingField(name string) error {
	return &FieldError{Field: name, Err: ErrMissingField}
}
