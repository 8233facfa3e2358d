package normalize

import (
	"regexp"
	"strings"

	"devevents/internal/domain"
)

// emailPattern is an RFC 5322 shaped address check: a permissive local part
// and dot-separated labels of at most 63 characters.
var emailPattern = regexp.MustCompile("^[a-zA-Z0-9.!#$%&'*+/=?^_`{|}~-]+@[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?(?:\\.[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?)*$")

// Email trims and lowercases raw, then checks its syntax.
func Email(raw string) (string, error) {
	email := strings.ToLower(strings.TrimSpace(raw))
	if email == "" {
		return "", domain.MissingField("email")
	}
	if !emailPattern.MatchString(email) {
		return "", &domain.FieldError{Field: "email", Err: domain.ErrInvalidEmail}
	}
	return email, nil
}
