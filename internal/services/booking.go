package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"devevents/internal/domain"
	"devevents/internal/normalize"
)

type bookingValidator struct {
	events domain.EventService
}

// NewBookingValidator returns a BookingValidator backed by the event catalog.
func NewBookingValidator(events domain.EventService) domain.BookingValidator {
	return &bookingValidator{events: events}
}

// AssertEventExists fails with ErrReferencedEventNotFound when eventID is not a
// well-formed id or names no stored event. The bookings foreign key still
// decides races with a concurrent delete.
func (v *bookingValidator) AssertEventExists(ctx context.Context, eventID string) error {
	if _, err := uuid.Parse(eventID); err != nil {
		return fmt.Errorf("%w: %q is not a valid event id", domain.ErrReferencedEventNotFound, eventID)
	}
	ok, err := v.events.EventExists(ctx, eventID)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: %s", domain.ErrReferencedEventNotFound, eventID)
	}
	return nil
}

type bookingService struct {
	bookingRepo    domain.BookingRepository
	validator      domain.BookingValidator
	events         domain.EventService
	emailService   domain.EmailService
	publisher      domain.Publisher
	logger         *slog.Logger
	contextTimeout time.Duration
	now            func() time.Time
}

// NewBookingService returns the attendee-facing BookingService. emailService
// and publisher may be nil, in which case the matching side effect is skipped.
func NewBookingService(bookingRepo domain.BookingRepository,
	validator domain.BookingValidator,
	events domain.EventService,
	emailService domain.EmailService,
	publisher domain.Publisher,
	logger *slog.Logger,
	timeout time.Duration,
) domain.BookingService {
	return &bookingService{
		bookingRepo:    bookingRepo,
		validator:      validator,
		events:         events,
		emailService:   emailService,
		publisher:      publisher,
		logger:         logger,
		contextTimeout: timeout,
		now:            time.Now,
	}
}

// CreateBooking records one booking per (event, email) pair.
func (s *bookingService) CreateBooking(ctx context.Context, eventID, email string) (*domain.Booking, error) {
	email, err := normalize.Email(email)
	if err != nil {
		return nil, err
	}

	writeCtx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if err := s.validator.AssertEventExists(writeCtx, eventID); err != nil {
		return nil, err
	}

	now := s.now().UTC()
	booking := domain.NewBooking(eventID, email, now, now)
	if err := s.bookingRepo.Create(writeCtx, booking); err != nil {
		return nil, repoError("create booking", err)
	}

	publish(ctx, s.publisher, s.logger, domain.RoutingKeyBookingCreated, booking)
	s.sendConfirmation(ctx, booking)
	return booking, nil
}

func (s *bookingService) sendConfirmation(ctx context.Context, booking *domain.Booking) {
	if s.emailService == nil {
		return
	}
	event, err := s.events.GetEventByID(ctx, booking.EventID)
	if err != nil {
		s.logger.WarnContext(ctx, "booking confirmation skipped", "booking_id", booking.ID, "error", err)
		return
	}
	data := &domain.BookingConfirmationEmailData{
		Email:      booking.Email,
		EventTitle: event.Title,
		EventSlug:  event.Slug,
		Date:       event.Date,
		Time:       event.Time,
		Venue:      event.Venue,
		Location:   event.Location,
	}
	if err := s.emailService.SendBookingConfirmation(ctx, data); err != nil {
		s.logger.WarnContext(ctx, "booking confirmation failed", "booking_id", booking.ID, "error", err)
	}
}

func (s *bookingService) ListBookingsByEvent(ctx context.Context, eventID string, params domain.PaginationParams) ([]*domain.Booking, int, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	ok, err := s.events.EventExists(ctx, eventID)
	if err != nil {
		return nil, 0, err
	}
	if !ok {
		return nil, 0, domain.ErrNotFound
	}

	bookings, err := s.bookingRepo.ListByEventID(ctx, eventID, params)
	if err != nil {
		return nil, 0, repoError("list bookings", err)
	}
	if bookings == nil {
		bookings = []*domain.Booking{}
	}
	total, err := s.bookingRepo.CountByEventID(ctx, eventID)
	if err != nil {
		return nil, 0, repoError("count bookings", err)
	}
	return bookings, total, nil
}
