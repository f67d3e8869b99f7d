package storage

import (
	"bytes"
	"fmt"
	"io"

	"github.com/disintegration/imaging"

	"github.com/pkordes/smarttrav/internal/domain"
)

const (
	// MaxImageWidth bounds the width of stored destination images.
	MaxImageWidth = 1200
	jpegQuality   = 85
)

// PrepareImage decodes an uploaded image, shrinks it to at most MaxImageWidth
// pixels wide and re-encodes it as JPEG. Undecodable input is a validation error.
func PrepareImage(r io.Reader) ([]byte, error) {
	img, err := imaging.Decode(r, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("storage.PrepareImage: %v: %w", err, domain.ErrValidation)
	}
	if img.Bounds().Dx() > MaxImageWidth {
		img = imaging.Resize(img, MaxImageWidth, 0, imaging.Lanczos)
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(jpegQuality)); err != nil {
		return nil, fmt.Errorf("storage.PrepareImage: encode: %w", err)
	}
	return buf.Bytes(), nil
}
