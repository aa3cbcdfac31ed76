package validation

import (
	"errors"
	"strings"
	"testing"
)

func TestValidateEmail(t *testing.T) {
	tests := []struct {
		email string
		want  error
	}{
		{"ana@example.com", nil},
		{"a@b.c", nil},
		{"a@", ErrEmailInvalid},
		{"@b.c", ErrEmailInvalid},
		{"plainstring", ErrEmailInvalid},
		{"  ana@example.com\n", nil},
		{"a.b+c@sub.example.co", nil},
		{"", ErrEmailRequired},
		{"   ", ErrEmailRequired},
		{"not-an-email", ErrEmailInvalid},
		{"ana@example", ErrEmailInvalid},
		{"ana @example.com", ErrEmailInvalid},
		{"@example.com", ErrEmailInvalid},
		{strings.Repeat("a", 250) + "@b.co", ErrEmailTooLong},
	}

	for _, tt := range tests {
		t.Run(tt.email, func(t *testing.T) {
			err := ValidateEmail(tt.email)
			if !errors.Is(err, tt.want) {
				t.Errorf("ValidateEmail(%q) = %v, want %v", tt.email, err, tt.want)
			}
		})
	}
}
