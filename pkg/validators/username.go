package validators

import (
	"errors"
	"strings"
	"unicode/utf8"
)

var (
	ErrUsernameTooShort = errors.New("username must be at least 3 characters long")
	ErrUsernameTooLong  = errors.New("username can't be longer than 50 characters")
)

func UsernameValidator(u string) error {
	n := utf8.RuneCountInString(strings.TrimSpace(u))

	if n < 3 {
		return ErrUsernameTooShort
	}

	if n > 50 {
		return ErrUsernameTooLong
	}

	return nil
}
