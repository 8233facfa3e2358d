package controllers

import (
	"context"
	"io"
	"log/slog"

	"devevents/internal/domain"
)

// testLogger is a no-op logger for controller tests so we don't assert on log output.
var testLogger = slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))

// fakeEventService implements domain.EventService for handler tests.
type fakeEventService struct {
	createResult *domain.Event
	createErr    error
	lastFields   domain.EventFields

	updateErr    error
	lastUpdateID string

	bySlug  map[string]*domain.Event
	listErr error
	events  []*domain.Event

	deleteErr    error
	lastDeleteID string
}

func (f *fakeEventService) CreateEvent(ctx context.Context, fields domain.EventFields) (*domain.Event, error) {
	f.lastFields = fields
	if f.createErr != nil {
		return nil, f.createErr
	}
	return f.createResult, nil
}

func (f *fakeEventService) UpdateEvent(ctx context.Context, id string, fields domain.EventFields) (*domain.Event, error) {
	f.lastUpdateID = id
	f.lastFields = fields
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	return &domain.Event{ID: id, Title: "Updated"}, nil
}

func (f *fakeEventService) GetEventByID(ctx context.Context, id string) (*domain.Event, error) {
	return nil, domain.ErrNotFound
}

func (f *fakeEventService) GetEventBySlug(ctx context.Context, slug string) (*domain.Event, error) {
	if e, ok := f.bySlug[slug]; ok {
		return e, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeEventService) ListEvents(ctx context.Context, params domain.PaginationParams) ([]*domain.Event, int, error) {
	if f.listErr != nil {
		return nil, 0, f.listErr
	}
	return f.events, len(f.events), nil
}

func (f *fakeEventService) EventExists(ctx context.Context, id string) (bool, error) {
	return false, nil
}

func (f *fakeEventService) DeleteEvent(ctx context.Context, id string) error {
	f.lastDeleteID = id
	return f.deleteErr
}

// fakeBookingService implements domain.BookingService for handler tests.
type fakeBookingService struct {
	createErr    error
	lastEventID  string
	lastEmail    string
	listResult   []*domain.Booking
	listErr      error
	lastListPage domain.PaginationParams
}

func (f *fakeBookingService) CreateBooking(ctx context.Context, eventID, email string) (*domain.Booking, error) {
	f.lastEventID, f.lastEmail = eventID, email
	if f.createErr != nil {
		return nil, f.createErr
	}
	return &domain.Booking{ID: "bk-1", EventID: eventID, Email: "user@example.com"}, nil
}

func (f *fakeBookingService) ListBookingsByEvent(ctx context.Context, eventID string, params domain.PaginationParams) ([]*domain.Booking, int, error) {
	f.lastEventID = eventID
	f.lastListPage = params
	if f.listErr != nil {
		return nil, 0, f.listErr
	}
	return f.listResult, len(f.listResult), nil
}

type fakeUploader struct {
	url      string
	err      error
	lastName string
	lastData []byte
}

func (f *fakeUploader) Upload(ctx context.Context, filename string, data []byte) (string, error) {
	f.lastName, f.lastData = filename, data
	if f.err != nil {
		return "", f.err
	}
	return f.url, nil
}

type fakePinger struct{ err error }

func (p fakePinger) Ping(context.Context) error { return p.err }
