package validation

import (
	"errors"
	"regexp"
	"time"
)

var (
	ErrFieldRequired    = errors.New("all fields are required")
	ErrEmailInvalid     = errors.New("email address is not valid")
	ErrPhoneInvalid     = errors.New("phone number is not valid")
	ErrPasswordTooShort = errors.New("password must be at least 8 characters")
	ErrDateInvalid      = errors.New("date must be in YYYY-MM-DD format")
)

var (
	emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phoneRegex = regexp.MustCompile(`^\+?[0-9][0-9 \-()]{5,19}$`)
)

func ValidateEmail(email string) error {
	if email == "" {
		return ErrFieldRequired
	}
	if !emailRegex.MatchString(email) {
		return ErrEmailInvalid
	}
	return nil
}

func ValidatePhone(phone string) error {
	if phone == "" {
		return ErrFieldRequired
	}
	if !phoneRegex.MatchString(phone) {
		return ErrPhoneInvalid
	}
	return nil
}

func ValidatePassword(password string) error {
	if password == "" {
		return ErrFieldRequired
	}
	if len(password) < 8 {
		return ErrPasswordTooShort
	}
	return nil
}

// ValidateDate accepts calendar dates in YYYY-MM-DD form.
func ValidateDate(date string) error {
	if date == "" {
		return ErrFieldRequired
	}
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return ErrDateInvalid
	}
	return nil
}
