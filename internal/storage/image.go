package storage

import (
	"encoding/base64"
	"errors"
	"path"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
)

// ImageDir is the key prefix recipe images are stored under
const ImageDir = "recipes/images"

// AllowImage lists the content types accepted for recipe images
var AllowImage = []string{
	"image/jpeg",
	"image/png",
	"image/gif",
	"image/webp",
}

var (
	ErrEmptyImage       = errors.New("image is empty")
	ErrInvalidEncoding  = errors.New("image is not valid base64")
	ErrUnsupportedImage = errors.New("unsupported image type")
)

// Image is a decoded upload ready to be stored.
type Image struct {
	Data        []byte
	ContentType string
	Extension   string
}

// DecodeBase64Image accepts either a data URI ("data:image/png;base64,...")
// or bare base64 and checks the decoded bytes are an allowed image type.
// The declared media type of a data URI is ignored in favour of the content.
func DecodeBase64Image(encoded string) (*Image, error) {
	encoded = strings.TrimSpace(encoded)
	if strings.HasPrefix(encoded, "data:") {
		if idx := strings.Index(encoded, ";base64,"); idx != -1 {
			encoded = encoded[idx+len(";base64,"):]
		} else {
			return nil, ErrInvalidEncoding
		}
	}
	if encoded == "" {
		return nil, ErrEmptyImage
	}

	data, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, ErrInvalidEncoding
	}
	if len(data) == 0 {
		return nil, ErrEmptyImage
	}

	mtype := mimetype.Detect(data)
	if !mimetype.EqualsAny(mtype.String(), AllowImage...) {
		return nil, ErrUnsupportedImage
	}

	return &Image{
		Data:        data,
		ContentType: mtype.String(),
		Extension:   mtype.Extension(),
	}, nil
}

// NewObjectKey returns a fresh storage key for the image.
func NewObjectKey(img *Image) string {
	return path.Join(ImageDir, uuid.NewString()+img.Extension)
}
