package services

import (
	"context"
	"io"
	"log/slog"
	"sort"
	"sync"

	"github.com/google/uuid"

	"devevents/internal/domain"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fakeEventRepo is an in-memory EventRepository that enforces slug uniqueness
// the way the events_slug_key constraint does.
type fakeEventRepo struct {
	mu       sync.Mutex
	byID     map[string]*domain.Event
	bookings *fakeBookingRepo
	err      error // if set, every call returns this error
	creates  int
}

func newFakeEventRepo() *fakeEventRepo {
	return &fakeEventRepo{byID: make(map[string]*domain.Event)}
}

func (f *fakeEventRepo) Create(ctx context.Context, e *domain.Event) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.creates++
	if f.err != nil {
		return f.err
	}
	for _, other := range f.byID {
		if other.Slug == e.Slug {
			return domain.ErrDuplicateSlug
		}
	}
	e.ID = uuid.NewString()
	stored := *e
	f.byID[e.ID] = &stored
	return nil
}

func (f *fakeEventRepo) ExistsByID(ctx context.Context, id string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return false, f.err
	}
	_, ok := f.byID[id]
	return ok, nil
}

func (f *fakeEventRepo) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	if e, ok := f.byID[id]; ok {
		out := *e
		return &out, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeEventRepo) GetBySlug(ctx context.Context, slug string) (*domain.Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, e := range f.byID {
		if e.Slug == slug {
			out := *e
			return &out, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeEventRepo) List(ctx context.Context, params domain.PaginationParams) ([]*domain.Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	var out []*domain.Event
	for _, e := range f.byID {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (f *fakeEventRepo) Count(ctx context.Context) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.byID), nil
}

func (f *fakeEventRepo) Update(ctx context.Context, e *domain.Event) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.byID[e.ID]; !ok {
		return domain.ErrNotFound
	}
	for id, other := range f.byID {
		if id != e.ID && other.Slug == e.Slug {
			return domain.ErrDuplicateSlug
		}
	}
	stored := *e
	f.byID[e.ID] = &stored
	return nil
}

func (f *fakeEventRepo) Delete(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.byID[id]; !ok {
		return domain.ErrNotFound
	}
	if f.bookings != nil && f.bookings.countFor(id) > 0 {
		return domain.ErrEventHasBookings
	}
	delete(f.byID, id)
	return nil
}

// fakeBookingRepo enforces the (event_id, email) uniqueness and the event
// foreign key against events.
type fakeBookingRepo struct {
	mu      sync.Mutex
	events  *fakeEventRepo
	rows    []*domain.Booking
	creates int
}

func newFakeBookingRepo(events *fakeEventRepo) *fakeBookingRepo {
	r := &fakeBookingRepo{events: events}
	events.bookings = r
	return r
}

func (f *fakeBookingRepo) Create(ctx context.Context, b *domain.Booking) error {
	if ok, _ := f.events.ExistsByID(ctx, b.EventID); !ok {
		return domain.ErrReferencedEventNotFound
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.creates++
	for _, other := range f.rows {
		if other.EventID == b.EventID && other.Email == b.Email {
			return domain.ErrDuplicateBooking
		}
	}
	b.ID = uuid.NewString()
	stored := *b
	f.rows = append(f.rows, &stored)
	return nil
}

func (f *fakeBookingRepo) ListByEventID(ctx context.Context, eventID string, params domain.PaginationParams) ([]*domain.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*domain.Booking
	for _, b := range f.rows {
		if b.EventID == eventID {
			out = append(out, b)
		}
	}
	return out, nil
}

func (f *fakeBookingRepo) CountByEventID(ctx context.Context, eventID string) (int, error) {
	return f.countFor(eventID), nil
}

func (f *fakeBookingRepo) countFor(eventID string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, b := range f.rows {
		if b.EventID == eventID {
			n++
		}
	}
	return n
}

func (f *fakeBookingRepo) stored() []*domain.Booking {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]*domain.Booking(nil), f.rows...)
}

type published struct {
	key     string
	payload any
}

type fakePublisher struct {
	mu   sync.Mutex
	sent []published
	err  error
}

func (p *fakePublisher) Publish(ctx context.Context, key string, payload any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.sent = append(p.sent, published{key: key, payload: payload})
	return nil
}

func (p *fakePublisher) keys() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.sent))
	for _, s := range p.sent {
		out = append(out, s.key)
	}
	return out
}

type fakeEmailService struct {
	mu   sync.Mutex
	sent []*domain.BookingConfirmationEmailData
	err  error
}

func (s *fakeEmailService) SendBookingConfirmation(ctx context.Context, data *domain.BookingConfirmationEmailData) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.sent = append(s.sent, data)
	return nil
}

func validFields(title string) domain.EventFields {
	return domain.EventFields{
		"title":       title,
		"description": "Two days of talks",
		"overview":    "Talks and workshops",
		"image":       "https://img.example.com/x.png",
		"venue":       "Hall 4",
		"location":    "Berlin",
		"date":        "2024-10-05",
		"time":        "10:00am",
		"mode":        "offline",
		"audience":    "developers",
		"agenda":      []any{"Keynote", "Workshops"},
		"organizer":   "DevEvents",
		"tags":        []any{"react", "frontend"},
	}
}
