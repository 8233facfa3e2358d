package normalize

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"devevents/internal/domain"
)

const isoDate = "2006-01-02"

// dateLayouts lists the date-like inputs accepted by Date, most common first.
var dateLayouts = []string{
	isoDate,
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-1-2",
	"2006/01/02",
	"2006/1/2",
	"01/02/2006",
	"1/2/2006",
	time.RFC1123Z,
	time.RFC1123,
	"January 2, 2006",
	"Jan 2, 2006",
	"January 2 2006",
	"Jan 2 2006",
	"2 January 2006",
	"2 Jan 2006",
	"Mon Jan 2 2006",
}

// Date parses a date-like string and returns it as YYYY-MM-DD using UTC
// calendar fields. Inputs carrying an offset are shifted to UTC first.
func Date(input string) (string, error) {
	s := strings.TrimSpace(input)
	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return t.UTC().Format(isoDate), nil
		}
	}
	return "", &domain.FieldError{Field: "date", Err: domain.ErrInvalidDate}
}

var timePattern = regexp.MustCompile(`^([0-2]?\d):([0-5]\d)\s*([AaPp][Mm])?$`)

// Time normalizes "9:30", "09:30", "9:30 am" or "09:30PM" to 24-hour HH:MM.
func Time(input string) (string, error) {
	m := timePattern.FindStringSubmatch(strings.TrimSpace(input))
	if m == nil {
		return "", &domain.FieldError{Field: "time", Err: domain.ErrInvalidTime}
	}
	hours, _ := strconv.Atoi(m[1])
	minutes, _ := strconv.Atoi(m[2])

	if period := strings.ToLower(m[3]); period != "" {
		if hours == 12 {
			hours = 0
		}
		if period == "pm" {
			hours += 12
		}
	}
	if hours > 23 {
		return "", &domain.FieldError{Field: "time", Err: fmt.Errorf("%w: hour out of range", domain.ErrInvalidTime)}
	}
	return fmt.Sprintf("%02d:%02d", hours, minutes), nil
}
