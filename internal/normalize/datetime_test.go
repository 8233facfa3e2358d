package normalize

import (
	"testing"

	"github.com/stretchr/testify/require"

	"devevents/internal/domain"
)

func TestDate(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{name: "iso date", input: "2024-10-05", want: "2024-10-05"},
		{name: "surrounding space", input: "  2024-10-05 ", want: "2024-10-05"},
		{name: "rfc3339 utc", input: "2024-10-05T10:00:00Z", want: "2024-10-05"},
		{name: "rfc3339 offset shifts to utc", input: "2024-10-05T01:30:00+03:00", want: "2024-10-04"},
		{name: "fractional seconds", input: "2024-10-05T23:59:59.999Z", want: "2024-10-05"},
		{name: "local datetime", input: "2024-10-05T18:00", want: "2024-10-05"},
		{name: "slashes", input: "2024/10/05", want: "2024-10-05"},
		{name: "us format", input: "10/05/2024", want: "2024-10-05"},
		{name: "long month", input: "October 5, 2024", want: "2024-10-05"},
		{name: "short month", input: "Oct 5, 2024", want: "2024-10-05"},
		{name: "day first", input: "5 October 2024", want: "2024-10-05"},
		{name: "us format unpadded", input: "10/5/2024", want: "2024-10-05"},
		{name: "us format single digits", input: "1/5/2024", want: "2024-01-05"},
		{name: "iso unpadded", input: "2024-1-5", want: "2024-01-05"},
		{name: "slashes unpadded", input: "2024/1/5", want: "2024-01-05"},
		{name: "short month no comma", input: "Oct 5 2024", want: "2024-10-05"},
		{name: "long month no comma", input: "October 5 2024", want: "2024-10-05"},
		{name: "garbage", input: "next tuesday", wantErr: true},
		{name: "empty", input: "", wantErr: true},
		{name: "impossible day", input: "2024-02-30", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Date(tt.input)
			if tt.wantErr {
				require.ErrorIs(t, err, domain.ErrInvalidDate)
				var fe *domain.FieldError
				require.ErrorAs(t, err, &fe)
				require.Equal(t, "date", fe.Field)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestDate_Idempotent(t *testing.T) {
	inputs := []string{
		"2024-10-05",
		"2024-10-05T01:30:00+03:00",
		"Oct 5, 2024",
		"12/31/1999",
		"2000-02-29T12:00:00Z",
		"10/5/2024",
		"2024-1-5",
		"2024/1/5",
		"Oct 5 2024",
		"January 5 2024",
	}
	for _, in := range inputs {
		once, err := Date(in)
		require.NoError(t, err)
		twice, err := Date(once)
		require.NoError(t, err)
		require.Equal(t, once, twice, "input %q", in)
	}
}

func TestTime(t *testing.T) {
	tests := []struct {
		input   string
		want    string
		wantErr bool
	}{
		{input: "12:00am", want: "00:00"},
		{input: "12:00pm", want: "12:00"},
		{input: "1:05pm", want: "13:05"},
		{input: "09:30", want: "09:30"},
		{input: "9:30", want: "09:30"},
		{input: "10:00am", want: "10:00"},
		{input: "9:30 am", want: "09:30"},
		{input: "09:30PM", want: "21:30"},
		{input: "11:59 Pm", want: "23:59"},
		{input: "0:15", want: "00:15"},
		{input: "23:45", want: "23:45"},
		{input: "24:00", wantErr: true},
		{input: "13:00pm", wantErr: true},
		{input: "9:60", wantErr: true},
		{input: "930", wantErr: true},
		{input: "9:30 noon", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := Time(tt.input)
			if tt.wantErr {
				require.ErrorIs(t, err, domain.ErrInvalidTime)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}
