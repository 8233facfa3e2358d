package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"devevents/internal/domain"
	"devevents/internal/normalize"
)

type eventService struct {
	eventRepo      domain.EventRepository
	publisher      domain.Publisher
	logger         *slog.Logger
	contextTimeout time.Duration
	now            func() time.Time
}

// NewEventService returns the catalog's EventService. Candidates are run
// through the normalize pipeline before any storage call is made.
func NewEventService(eventRepo domain.EventRepository,
	publisher domain.Publisher,
	logger *slog.Logger,
	timeout time.Duration,
) domain.EventService {
	return &eventService{
		eventRepo:      eventRepo,
		publisher:      publisher,
		logger:         logger,
		contextTimeout: timeout,
		now:            time.Now,
	}
}

func (s *eventService) CreateEvent(ctx context.Context, fields domain.EventFields) (*domain.Event, error) {
	event, err := normalize.Event(normalize.EventFromFields(fields), true)
	if err != nil {
		return nil, err
	}
	now := s.now().UTC()
	event.CreatedAt = now
	event.UpdatedAt = now

	writeCtx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()
	if err := s.eventRepo.Create(writeCtx, &event); err != nil {
		return nil, repoError("create event", err)
	}

	publish(ctx, s.publisher, s.logger, domain.RoutingKeyEventCreated, &event)
	return &event, nil
}

// UpdateEvent merges fields over the stored event. The slug is only
// regenerated when the title changes.
func (s *eventService) UpdateEvent(ctx context.Context, id string, fields domain.EventFields) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	existing, err := s.eventRepo.GetByID(ctx, id)
	if err != nil {
		return nil, repoError("get event", err)
	}

	candidate := normalize.ApplyFields(*existing, fields)
	candidate.Slug = existing.Slug
	titleChanged := strings.TrimSpace(candidate.Title) != existing.Title

	event, err := normalize.Event(candidate, titleChanged)
	if err != nil {
		return nil, err
	}
	event.ID = existing.ID
	event.CreatedAt = existing.CreatedAt
	event.UpdatedAt = s.now().UTC()

	if err := s.eventRepo.Update(ctx, &event); err != nil {
		return nil, repoError("update event", err)
	}
	return &event, nil
}

func (s *eventService) GetEventByID(ctx context.Context, id string) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.eventRepo.GetByID(ctx, id)
	if err != nil {
		return nil, repoError("get event", err)
	}
	return event, nil
}

func (s *eventService) GetEventBySlug(ctx context.Context, slug string) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.eventRepo.GetBySlug(ctx, strings.ToLower(strings.TrimSpace(slug)))
	if err != nil {
		return nil, repoError("get event", err)
	}
	return event, nil
}

// ListEvents returns one page of events, newest first, and the total count.
func (s *eventService) ListEvents(ctx context.Context, params domain.PaginationParams) ([]*domain.Event, int, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	events, err := s.eventRepo.List(ctx, params)
	if err != nil {
		return nil, 0, repoError("list events", err)
	}
	if events == nil {
		events = []*domain.Event{}
	}
	total, err := s.eventRepo.Count(ctx)
	if err != nil {
		return nil, 0, repoError("count events", err)
	}
	return events, total, nil
}

func (s *eventService) EventExists(ctx context.Context, id string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	ok, err := s.eventRepo.ExistsByID(ctx, id)
	if err != nil {
		return false, repoError("check event", err)
	}
	return ok, nil
}

// DeleteEvent removes an event that has no bookings.
func (s *eventService) DeleteEvent(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if err := s.eventRepo.Delete(ctx, id); err != nil {
		return repoError("delete event", err)
	}
	return nil
}

// rejections are returned to callers as-is; anything else is wrapped with the
// failing operation.
var rejections = []error{
	domain.ErrNotFound,
	domain.ErrDuplicateSlug,
	domain.ErrDuplicateBooking,
	domain.ErrReferencedEventNotFound,
	domain.ErrEventHasBookings,
	domain.ErrConnectionUnavailable,
}

func repoError(op string, err error) error {
	for _, r := range rejections {
		if errors.Is(err, r) {
			return err
		}
	}
	return fmt.Errorf("%s: %w", op, err)
}

// publish announces a committed write. Failures are logged and dropped.
func publish(ctx context.Context, p domain.Publisher, logger *slog.Logger, key string, payload any) {
	if p == nil {
		return
	}
	if err := p.Publish(ctx, key, payload); err != nil {
		logger.WarnContext(ctx, "publish failed", "routing_key", key, "error", err)
	}
}
