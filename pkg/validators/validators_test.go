package validators

import (
	"mime/multipart"
	"net/textproto"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEmailValidator(t *testing.T) {
	assert.NoError(t, EmailValidator("spiderman@example.com"))

	assert.ErrorIs(t, EmailValidator(""), ErrEmailEmpty)
	assert.ErrorIs(t, EmailValidator("spiderman"), ErrEmailInvalid)
	assert.ErrorIs(t, EmailValidator("Peter <spiderman@example.com>"), ErrEmailInvalid)
	assert.ErrorIs(t, EmailValidator(strings.Repeat("a", 150)+"@example.com"), ErrEmailTooLong)
}

func TestPasswordValidator(t *testing.T) {
	assert.NoError(t, PasswordValidator("123456"))

	assert.ErrorIs(t, PasswordValidator(""), ErrPasswordEmpty)
	assert.ErrorIs(t, PasswordValidator("12345"), ErrPasswordTooShort)
	assert.ErrorIs(t, PasswordValidator(strings.Repeat("x", 256)), ErrPasswordTooLong)
}

func TestUsernameValidator(t *testing.T) {
	assert.NoError(t, UsernameValidator("spiderman"))

	assert.ErrorIs(t, UsernameValidator("  ab  "), ErrUsernameTooShort)
	assert.ErrorIs(t, UsernameValidator(strings.Repeat("é", 51)), ErrUsernameTooLong)
}

func TestImageValidator(t *testing.T) {
	header := func(size int64, ct string) *multipart.FileHeader {
		return &multipart.FileHeader{
			Size:   size,
			Header: textproto.MIMEHeader{"Content-Type": []string{ct}},
		}
	}

	assert.NoError(t, ImageValidator(header(10, "image/png"), 100))

	assert.ErrorIs(t, ImageValidator(header(0, "image/png"), 100), ErrImageEmpty)
	assert.ErrorIs(t, ImageValidator(header(101, "image/png"), 100), ErrImageTooLarge)
	assert.ErrorIs(t, ImageValidator(header(10, "video/mp4"), 100), ErrImageType)
}
