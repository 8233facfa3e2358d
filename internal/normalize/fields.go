package normalize

import (
	"encoding/json"
	"fmt"

	"devevents/internal/domain"
)

// EventFromFields builds an event candidate from a raw field mapping.
func EventFromFields(fields domain.EventFields) domain.Event {
	return ApplyFields(domain.Event{}, fields)
}

// ApplyFields returns base with every field present in fields replaced.
// Fields absent from the mapping keep their value from base. Unknown keys are
// ignored, as are system-assigned ones (id, timestamps).
func ApplyFields(base domain.Event, fields domain.EventFields) domain.Event {
	e := base
	set := func(key string, dst *string) {
		if v, ok := fields[key]; ok {
			*dst = stringValue(v)
		}
	}
	set("title", &e.Title)
	set("slug", &e.Slug)
	set("description", &e.Description)
	set("overview", &e.Overview)
	set("image", &e.Image)
	set("venue", &e.Venue)
	set("location", &e.Location)
	set("date", &e.Date)
	set("time", &e.Time)
	set("mode", &e.Mode)
	set("audience", &e.Audience)
	set("organizer", &e.Organizer)
	if v, ok := fields["agenda"]; ok {
		e.Agenda = listValue(v)
	}
	if v, ok := fields["tags"]; ok {
		e.Tags = listValue(v)
	}
	return e
}

func stringValue(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case fmt.Stringer:
		return t.String()
	case []any, map[string]any:
		b, err := json.Marshal(t)
		if err != nil {
			return fmt.Sprint(t)
		}
		return string(b)
	default:
		return fmt.Sprint(t)
	}
}

// listValue accepts a decoded JSON array, a string slice, or a single scalar,
// which becomes a one-element list.
func listValue(v any) []string {
	switch t := v.(type) {
	case nil:
		return nil
	case []string:
		return append([]string(nil), t...)
	case []any:
		out := make([]string, len(t))
		for i, item := range t {
			out[i] = stringValue(item)
		}
		return out
	default:
		return []string{stringValue(t)}
	}
}
