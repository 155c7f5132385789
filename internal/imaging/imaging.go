// Package imaging prepares uploaded photos for barcode decoding.
package imaging

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"net/http"

	"golang.org/x/image/draw"
)

// MaxDimension is the maximum width or height fed to the decoder.
// Camera photos are downscaled to this before decoding.
const MaxDimension = 1600

// AllowedMIME lists the accepted input MIME types.
var AllowedMIME = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
}

// DecodeUpload reads an uploaded photo, validates the format by sniffing
// bytes, and returns the decoded image, downscaled if oversized.
func DecodeUpload(r io.Reader) (image.Image, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading image data: %w", err)
	}

	// Sniff actual MIME type from bytes (not trusting client headers).
	detected := http.DetectContentType(data)
	if !AllowedMIME[detected] {
		return nil, fmt.Errorf("unsupported image format: %s (only JPEG and PNG accepted)", detected)
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decoding image: %w", err)
	}

	return downscale(img, MaxDimension), nil
}

// Variants returns the preprocessing variants tried during barcode decoding:
// the original image, a grayscale conversion, and a binarized (thresholded)
// version of the grayscale.
func Variants(img image.Image) []image.Image {
	gray := Grayscale(img)
	return []image.Image{img, gray, Threshold(gray)}
}

// Grayscale converts an image to 8-bit grayscale.
func Grayscale(img image.Image) *image.Gray {
	bounds := img.Bounds()
	gray := image.NewGray(bounds)
	draw.Draw(gray, bounds, img, bounds.Min, draw.Src)
	return gray
}

// Threshold binarizes a grayscale image around its mean luminance.
func Threshold(gray *image.Gray) *image.Gray {
	bounds := gray.Bounds()
	if bounds.Empty() {
		return gray
	}

	var sum uint64
	for _, v := range gray.Pix {
		sum += uint64(v)
	}
	mean := uint8(sum / uint64(len(gray.Pix)))

	out := image.NewGray(bounds)
	for i, v := range gray.Pix {
		if v > mean {
			out.Pix[i] = 255
		}
	}
	return out
}

// downscale resizes the image so neither dimension exceeds maxDim.
// Uses high-quality Catmull-Rom interpolation.
// Returns the original image if already within bounds.
func downscale(img image.Image, maxDim int) image.Image {
	bounds := img.Bounds()
	w := bounds.Dx()
	h := bounds.Dy()

	if w <= maxDim && h <= maxDim {
		return img
	}

	// Calculate new dimensions preserving aspect ratio.
	newW, newH := w, h
	if w > h {
		newW = maxDim
		newH = int(float64(h) * float64(maxDim) / float64(w))
	} else {
		newH = maxDim
		newW = int(float64(w) * float64(maxDim) / float64(h))
	}

	if newW < 1 {
		newW = 1
	}
	if newH < 1 {
		newH = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, newW, newH))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)
	return dst
}

func init() {
	// Register decoders (jpeg is registered by default, but be explicit).
	image.RegisterFormat("jpeg", "\xff\xd8", jpeg.Decode, jpeg.DecodeConfig)
	image.RegisterFormat("png", "\x89PNG", png.Decode, png.DecodeConfig)
}
