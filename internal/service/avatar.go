package service

import (
	"bitwise74/contacts-api/internal/model"
	"bytes"
	"context"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/disintegration/imaging"
)

const avatarSize = 250

// AvatarStore puts an encoded avatar somewhere public and returns its URL
type AvatarStore interface {
	PutAvatar(ctx context.Context, key, contentType string, body []byte) (string, error)
}

type AvatarService struct {
	Store  AvatarStore
	Users  *UserService
	Prefix string
}

var unsafeKeyChars = regexp.MustCompile(`[^a-zA-Z0-9@._-]`)

// AvatarKey derives a stable object key from the account email, so a
// new upload replaces the previous one
func AvatarKey(prefix, email string) string {
	key := unsafeKeyChars.ReplaceAllString(strings.ToLower(email), "_") + ".png"
	if prefix == "" {
		return key
	}

	return strings.TrimSuffix(prefix, "/") + "/" + key
}

// Upload crops the image to a square avatar, stores it and saves the new
// URL on the account
func (s *AvatarService) Upload(ctx context.Context, email string, r io.Reader) (*model.User, error) {
	img, err := imaging.Decode(r, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("%w, %w", ErrInvalidImage, err)
	}

	img = imaging.Fill(img, avatarSize, avatarSize, imaging.Center, imaging.Lanczos)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		return nil, fmt.Errorf("failed to encode avatar, %w", err)
	}

	url, err := s.Store.PutAvatar(ctx, AvatarKey(s.Prefix, email), "image/png", buf.Bytes())
	if err != nil {
		return nil, fmt.Errorf("failed to store avatar, %w", err)
	}

	// Same key on every upload, the version busts caches
	url += "?v=" + strconv.FormatInt(time.Now().Unix(), 10)

	return s.Users.SetAvatar(ctx, email, url)
}
