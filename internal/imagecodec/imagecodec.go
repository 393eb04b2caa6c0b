// Package imagecodec encodes page strips for embedding in the PDF.
package imagecodec

import (
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"math"
	"strings"
)

// ErrInvalidImageType is returned for an image type other than jpeg or png.
var ErrInvalidImageType = errors.New("invalid image type")

// Image types.
const (
	JPEG = "jpeg"
	PNG  = "png"
)

// DefaultQuality is the JPEG quality used when none is given, on a 0..1 scale.
const DefaultQuality = 0.95

// Codec encodes an image in one format.
type Codec interface {
	Encode(w io.Writer, img image.Image) error
	// PDFType is the image type name understood by the PDF writer.
	PDFType() string
}

// Compile-time interface checks.
var (
	_ Codec = (*jpegCodec)(nil)
	_ Codec = (*pngCodec)(nil)
)

// New returns the codec for typ. quality applies to JPEG only and is
// clamped to 0..1; zero selects DefaultQuality.
func New(typ string, quality float64) (Codec, error) {
	switch strings.ToLower(strings.TrimSpace(typ)) {
	case "", JPEG, "jpg":
		return &jpegCodec{quality: jpegQuality(quality)}, nil
	case PNG:
		return &pngCodec{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidImageType, typ)
	}
}

// jpegQuality maps a 0..1 quality to the 1..100 scale of image/jpeg.
func jpegQuality(q float64) int {
	if q == 0 {
		q = DefaultQuality
	}
	q = math.Max(0, math.Min(1, q))
	return max(1, int(math.Round(q*100)))
}

type jpegCodec struct {
	quality int
}

func (c *jpegCodec) Encode(w io.Writer, img image.Image) error {
	return jpeg.Encode(w, img, &jpeg.Options{Quality: c.quality})
}

func (c *jpegCodec) PDFType() string { return "JPG" }

type pngCodec struct{}

func (c *pngCodec) Encode(w io.Writer, img image.Image) error {
	enc := png.Encoder{CompressionLevel: png.BestSpeed}
	return enc.Encode(w, img)
}

func (c *pngCodec) PDFType() string { return "PNG" }
