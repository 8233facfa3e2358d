package normalize

import (
	"testing"

	"github.com/stretchr/testify/require"

	"devevents/internal/domain"
)

func TestEmail(t *testing.T) {
	tests := []struct {
		name  string
		raw   string
		want  string
		errIs error
	}{
		{name: "trimmed and lowercased", raw: "  USER@Example.com ", want: "user@example.com"},
		{name: "plus addressing", raw: "dev+events@mail.example.org", want: "dev+events@mail.example.org"},
		{name: "no at sign", raw: "user.example.com", errIs: domain.ErrInvalidEmail},
		{name: "two at signs", raw: "a@b@example.com", errIs: domain.ErrInvalidEmail},
		{name: "label starts with hyphen", raw: "a@-example.com", errIs: domain.ErrInvalidEmail},
		{name: "space inside", raw: "first last@example.com", errIs: domain.ErrInvalidEmail},
		{name: "blank", raw: "   ", errIs: domain.ErrMissingField},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Email(tt.raw)
			if tt.errIs != nil {
				require.ErrorIs(t, err, tt.errIs)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}
