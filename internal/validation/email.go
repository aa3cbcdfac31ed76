package validation

import (
	"errors"
	"regexp"
	"strings"

	ozzo "github.com/go-ozzo/ozzo-validation/v4"
)

// MaxEmailLength is the longest address the form accepts, in runes.
const MaxEmailLength = 254

// The form accepts anything shaped like x@y.z with no whitespace. Deliverability
// is the mailing-list provider's problem.
var emailPattern = regexp.MustCompile(`^\S+@\S+\.\S+$`)

var (
	ErrEmailRequired = errors.New("email address is required")
	ErrEmailTooLong  = errors.New("email address is too long (max 254 characters)")
	ErrEmailInvalid  = errors.New("invalid email address format")
)

var emailRules = []ozzo.Rule{
	ozzo.Required.ErrorObject(ozzo.NewError("validation_email_required", ErrEmailRequired.Error())),
	ozzo.RuneLength(0, MaxEmailLength).ErrorObject(ozzo.NewError("validation_email_length", ErrEmailTooLong.Error())),
	ozzo.Match(emailPattern).ErrorObject(ozzo.NewError("validation_email_format", ErrEmailInvalid.Error())),
}

// NormalizeEmail trims surrounding whitespace.
func NormalizeEmail(email string) string {
	return strings.TrimSpace(email)
}

// ValidateEmail checks a trimmed email address. The returned error is one of
// ErrEmailRequired, ErrEmailTooLong or ErrEmailInvalid.
func ValidateEmail(email string) error {
	err := ozzo.Validate(NormalizeEmail(email), emailRules...)
	if err == nil {
		return nil
	}

	var verr ozzo.Error
	if errors.As(err, &verr) {
		switch verr.Code() {
		case "validation_email_required":
			return ErrEmailRequired
		case "validation_email_length":
			return ErrEmailTooLong
		}
	}
	return ErrEmailInvalid
}
