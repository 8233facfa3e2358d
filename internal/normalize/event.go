package normalize

import (
	"strings"

	"devevents/internal/domain"
)

type requiredField struct {
	name    string
	present func(e domain.Event) bool
}

// requiredFields is checked in order; the first failure is reported.
var requiredFields = []requiredField{
	{"title", func(e domain.Event) bool { return notBlank(e.Title) }},
	{"description", func(e domain.Event) bool { return notBlank(e.Description) }},
	{"overview", func(e domain.Event) bool { return notBlank(e.Overview) }},
	{"image", func(e domain.Event) bool { return notBlank(e.Image) }},
	{"venue", func(e domain.Event) bool { return notBlank(e.Venue) }},
	{"location", func(e domain.Event) bool { return notBlank(e.Location) }},
	{"date", func(e domain.Event) bool { return notBlank(e.Date) }},
	{"time", func(e domain.Event) bool { return notBlank(e.Time) }},
	{"mode", func(e domain.Event) bool { return notBlank(e.Mode) }},
	{"audience", func(e domain.Event) bool { return notBlank(e.Audience) }},
	{"agenda", func(e domain.Event) bool { return allNotBlank(e.Agenda) }},
	{"organizer", func(e domain.Event) bool { return notBlank(e.Organizer) }},
	{"tags", func(e domain.Event) bool { return allNotBlank(e.Tags) }},
}

// RequiredFields reports the first required field of e that is empty after
// trimming. Agenda and tags must be non-empty and hold no blank entries.
func RequiredFields(e domain.Event) error {
	for _, f := range requiredFields {
		if !f.present(e) {
			return domain.MissingField(f.name)
		}
	}
	return nil
}

// Event runs the write-time pipeline over candidate and returns the canonical
// event: required fields, then slug, then date, then time. The slug is
// derived only when titleChanged is set or candidate has none. candidate is
// not modified.
func Event(candidate domain.Event, titleChanged bool) (domain.Event, error) {
	e := trimmed(candidate)
	if err := RequiredFields(e); err != nil {
		return domain.Event{}, err
	}

	if titleChanged || e.Slug == "" {
		e.Slug = Slug(e.Title)
	}
	if e.Slug == "" {
		return domain.Event{}, domain.MissingField("slug")
	}

	date, err := Date(e.Date)
	if err != nil {
		return domain.Event{}, err
	}
	e.Date = date

	t, err := Time(e.Time)
	if err != nil {
		return domain.Event{}, err
	}
	e.Time = t

	return e, nil
}

func trimmed(in domain.Event) domain.Event {
	out := in
	out.Title = strings.TrimSpace(in.Title)
	out.Slug = strings.TrimSpace(in.Slug)
	out.Description = strings.TrimSpace(in.Description)
	out.Overview = strings.TrimSpace(in.Overview)
	out.Image = strings.TrimSpace(in.Image)
	out.Venue = strings.TrimSpace(in.Venue)
	out.Location = strings.TrimSpace(in.Location)
	out.Date = strings.TrimSpace(in.Date)
	out.Time = strings.TrimSpace(in.Time)
	out.Mode = strings.TrimSpace(in.Mode)
	out.Audience = strings.TrimSpace(in.Audience)
	out.Organizer = strings.TrimSpace(in.Organizer)
	out.Agenda = trimAll(in.Agenda)
	out.Tags = dedupe(trimAll(in.Tags))
	return out
}

func trimAll(items []string) []string {
	if items == nil {
		return nil
	}
	out := make([]string, len(items))
	for i, s := range items {
		out[i] = strings.TrimSpace(s)
	}
	return out
}

// dedupe keeps the first occurrence of every entry.
func dedupe(items []string) []string {
	if items == nil {
		return nil
	}
	seen := make(map[string]struct{}, len(items))
	out := make([]string, 0, len(items))
	for _, s := range items {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}

func notBlank(s string) bool {
	return strings.TrimSpace(s) != ""
}

func allNotBlank(items []string) bool {
	if len(items) == 0 {
		return false
	}
	for _, s := range items {
		if !notBlank(s) {
			return false
		}
	}
	return true
}
