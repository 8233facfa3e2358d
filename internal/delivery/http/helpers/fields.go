package helpers

import (
	"encoding/json"
	"net/url"
	"strings"

	"devevents/internal/domain"
)

// FieldsFromForm converts submitted form values into raw event fields. A value
// whose text is bracket- or brace-delimited is decoded as JSON when it parses,
// and kept as text otherwise. Repeated keys become lists.
func FieldsFromForm(values url.Values) domain.EventFields {
	fields := make(domain.EventFields, len(values))
	for key, vals := range values {
		switch len(vals) {
		case 0:
			continue
		case 1:
			fields[key] = decodeFormValue(vals[0])
		default:
			list := make([]any, 0, len(vals))
			for _, v := range vals {
				list = append(list, v)
			}
			fields[key] = list
		}
	}
	return fields
}

func decodeFormValue(raw string) any {
	s := strings.TrimSpace(raw)
	if len(s) < 2 {
		return raw
	}
	first, last := s[0], s[len(s)-1]
	if (first == '[' && last == ']') || (first == '{' && last == '}') {
		var v any
		if err := json.Unmarshal([]byte(s), &v); err == nil {
			return v
		}
	}
	return raw
}
