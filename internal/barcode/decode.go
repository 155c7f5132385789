// Package barcode decodes product barcodes from photos.
//
// Decoding is best-effort: a photo that yields no barcode is a normal
// outcome and callers fall back to manual entry.
package barcode

import (
	"errors"
	"image"
	"io"

	"github.com/makiuchi-d/gozxing"
	"github.com/makiuchi-d/gozxing/oned"

	"shramba/internal/imaging"
)

// ErrNoBarcode is returned when no supported barcode is found in the image.
var ErrNoBarcode = errors.New("no barcode found in image")

var decodeHints = map[gozxing.DecodeHintType]interface{}{
	gozxing.DecodeHintType_TRY_HARDER: true,
}

// readers covers the formats found on grocery packaging. First match wins.
var readers = []gozxing.Reader{
	oned.NewMultiFormatUPCEANReader(decodeHints),
	oned.NewCode128Reader(),
	oned.NewCode39Reader(),
}

// Decode extracts a barcode string from an image, trying each preprocessing
// variant (original, grayscale, thresholded) until one decodes.
func Decode(img image.Image) (string, error) {
	for _, variant := range imaging.Variants(img) {
		bmp, err := gozxing.NewBinaryBitmapFromImage(variant)
		if err != nil {
			continue
		}
		for _, reader := range readers {
			result, err := reader.Decode(bmp, decodeHints)
			if err == nil {
				return result.GetText(), nil
			}
		}
	}
	return "", ErrNoBarcode
}

// DecodeUpload reads an uploaded photo and extracts a barcode from it.
func DecodeUpload(r io.Reader) (string, error) {
	img, err := imaging.DecodeUpload(r)
	if err != nil {
		return "", err
	}
	return Decode(img)
}
