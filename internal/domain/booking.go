package domain

import (
	"context"
	"time"
)

// Booking represents a single attendee's registration for one event.
// swagger:model Booking
type Booking struct {
	ID        string    `json:"id"`
	EventID   string    `json:"eventId"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// NewBooking returns a new Booking. ID is set by the repository on create.
func NewBooking(eventID, email string, createdAt, updatedAt time.Time) *Booking {
	return &Booking{
		EventID:   eventID,
		Email:     email,
		CreatedAt: createdAt,
		UpdatedAt: updatedAt,
	}
}

// BookingRepository defines storage operations for bookings.
type BookingRepository interface {
	Create(ctx context.Context, booking *Booking) error
	ListByEventID(ctx context.Context, eventID string, params PaginationParams) ([]*Booking, error)
	CountByEventID(ctx context.Context, eventID string) (int, error)
}

// BookingValidator gates booking writes on the referenced event's existence.
type BookingValidator interface {
	AssertEventExists(ctx context.Context, eventID string) error
}

// BookingService defines attendee-facing booking operations.
type BookingService interface {
	CreateBooking(ctx context.Context, eventID, email string) (*Booking, error)
	ListBookingsByEvent(ctx context.Context, eventID string, params PaginationParams) ([]*Booking, int, error)
}
