package validators

import (
	"errors"
	"mime/multipart"
	"slices"
)

var (
	ErrImageEmpty    = errors.New("uploaded file is empty")
	ErrImageTooLarge = errors.New("image is too large")
	ErrImageType     = errors.New("only png, jpeg and gif images are accepted")
)

var allowedImageTypes = []string{"image/png", "image/jpeg", "image/jpg", "image/gif"}

// ImageValidator checks an uploaded multipart file before it gets decoded
func ImageValidator(h *multipart.FileHeader, maxSize int64) error {
	if h.Size == 0 {
		return ErrImageEmpty
	}

	if h.Size > maxSize {
		return ErrImageTooLarge
	}

	if !slices.Contains(allowedImageTypes, h.Header.Get("Content-Type")) {
		return ErrImageType
	}

	return nil
}
