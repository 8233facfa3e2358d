package normalize

import (
	"testing"

	"github.com/stretchr/testify/require"

	"devevents/internal/domain"
)

func validCandidate() domain.Event {
	return domain.Event{
		Title:       "React Conf Europe!",
		Description: "The official React conference in Europe.",
		Overview:    "Two days of talks and workshops.",
		Image:       "https://cdn.example.com/react.png",
		Venue:       "RAI Amsterdam",
		Location:    "Amsterdam, Netherlands",
		Date:        "2024-10-05",
		Time:        "10:00am",
		Mode:        "offline",
		Audience:    "Frontend developers",
		Agenda:      []string{"Keynote", "Server Components deep dive"},
		Organizer:   "React Community",
		Tags:        []string{"react", "frontend"},
	}
}

func TestEvent_CanonicalForm(t *testing.T) {
	got, err := Event(validCandidate(), true)
	require.NoError(t, err)
	require.Equal(t, "react-conf-europe", got.Slug)
	require.Equal(t, "2024-10-05", got.Date)
	require.Equal(t, "10:00", got.Time)
}

func TestEvent_DoesNotModifyCandidate(t *testing.T) {
	in := validCandidate()
	in.Tags = []string{" react ", "react"}
	_, err := Event(in, true)
	require.NoError(t, err)
	require.Equal(t, []string{" react ", "react"}, in.Tags)
	require.Equal(t, "10:00am", in.Time)
}

func TestEvent_TrimsAndDedupesTags(t *testing.T) {
	in := validCandidate()
	in.Title = "  React Conf Europe!  "
	in.Tags = []string{" react ", "frontend", "react"}
	in.Agenda = []string{" Keynote "}

	got, err := Event(in, true)
	require.NoError(t, err)
	require.Equal(t, "React Conf Europe!", got.Title)
	require.Equal(t, []string{"react", "frontend"}, got.Tags)
	require.Equal(t, []string{"Keynote"}, got.Agenda)
}

func TestEvent_SlugRegeneration(t *testing.T) {
	tests := []struct {
		name         string
		slug         string
		titleChanged bool
		want         string
	}{
		{name: "title changed overrides slug", slug: "old-slug", titleChanged: true, want: "react-conf-europe"},
		{name: "unchanged title keeps slug", slug: "old-slug", titleChanged: false, want: "old-slug"},
		{name: "absent slug is derived", slug: "", titleChanged: false, want: "react-conf-europe"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validCandidate()
			in.Slug = tt.slug
			got, err := Event(in, tt.titleChanged)
			require.NoError(t, err)
			require.Equal(t, tt.want, got.Slug)
		})
	}
}

func TestEvent_Rejections(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(e *domain.Event)
		errIs     error
		wantField string
	}{
		{
			name:      "missing agenda",
			mutate:    func(e *domain.Event) { e.Agenda = nil },
			errIs:     domain.ErrMissingField,
			wantField: "agenda",
		},
		{
			name:      "agenda with blank item",
			mutate:    func(e *domain.Event) { e.Agenda = []string{"Keynote", "  "} },
			errIs:     domain.ErrMissingField,
			wantField: "agenda",
		},
		{
			name:      "empty tags",
			mutate:    func(e *domain.Event) { e.Tags = []string{} },
			errIs:     domain.ErrMissingField,
			wantField: "tags",
		},
		{
			name:      "whitespace title",
			mutate:    func(e *domain.Event) { e.Title = "   " },
			errIs:     domain.ErrMissingField,
			wantField: "title",
		},
		{
			name: "first missing field wins",
			mutate: func(e *domain.Event) {
				e.Venue = ""
				e.Organizer = ""
			},
			errIs:     domain.ErrMissingField,
			wantField: "venue",
		},
		{
			name: "required check runs before date parsing",
			mutate: func(e *domain.Event) {
				e.Date = "not a date"
				e.Mode = ""
			},
			errIs:     domain.ErrMissingField,
			wantField: "mode",
		},
		{
			name: "date checked before time",
			mutate: func(e *domain.Event) {
				e.Date = "not a date"
				e.Time = "25:00"
			},
			errIs:     domain.ErrInvalidDate,
			wantField: "date",
		},
		{
			name:      "bad time",
			mutate:    func(e *domain.Event) { e.Time = "25:00" },
			errIs:     domain.ErrInvalidTime,
			wantField: "time",
		},
		{
			name:      "title without slug characters",
			mutate:    func(e *domain.Event) { e.Title = "!!!" },
			errIs:     domain.ErrMissingField,
			wantField: "slug",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validCandidate()
			tt.mutate(&in)
			got, err := Event(in, true)
			require.ErrorIs(t, err, tt.errIs)
			var fe *domain.FieldError
			require.ErrorAs(t, err, &fe)
			require.Equal(t, tt.wantField, fe.Field)
			require.Equal(t, domain.Event{}, got)
		})
	}
}

func TestRequiredFields_MessageNamesField(t *testing.T) {
	in := validCandidate()
	in.Agenda = nil
	err := RequiredFields(in)
	require.EqualError(t, err, "agenda is required")
}
