// Package imageio reads and writes images in formats selected by file extension.
package imageio

import (
	"bufio"
	"errors"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
	_ "golang.org/x/image/webp" // Register WebP decoder.
)

// Format identifies an output encoding.
type Format int

const (
	FormatJPEG Format = iota
	FormatPNG
	FormatTIFF
	FormatBMP
	FormatGIF
)

func (f Format) String() string {
	switch f {
	case FormatPNG:
		return "png"
	case FormatTIFF:
		return "tiff"
	case FormatBMP:
		return "bmp"
	case FormatGIF:
		return "gif"
	default:
		return "jpeg"
	}
}

// ErrUnknownFormat is returned when an image can not be decoded by any registered decoder.
var ErrUnknownFormat = errors.New("unknown image format")

// FormatFromPath picks an encoding by file extension, unknown extensions map to JPEG.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return FormatPNG
	case ".tif", ".tiff":
		return FormatTIFF
	case ".bmp":
		return FormatBMP
	case ".gif":
		return FormatGIF
	default:
		return FormatJPEG
	}
}

// Decode reads an image in any registered format (JPEG, PNG, GIF, TIFF, BMP, WebP).
func Decode(r io.Reader) (image.Image, string, error) {
	img, name, err := image.Decode(bufio.NewReader(r))
	if errors.Is(err, image.ErrFormat) {
		return nil, "", ErrUnknownFormat
	}
	return img, name, err
}

// ReadFile decodes the image stored at path.
func ReadFile(path string) (image.Image, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, _, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", filepath.Base(path), err)
	}
	return img, nil
}

// Encode writes img to w in the given format, quality applies to JPEG only.
func Encode(w io.Writer, img image.Image, format Format, quality int) error {
	switch format {
	case FormatPNG:
		return png.Encode(w, img)
	case FormatTIFF:
		return tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate, Predictor: true})
	case FormatBMP:
		return bmp.Encode(w, img)
	case FormatGIF:
		return gif.Encode(w, img, nil)
	default:
		if quality <= 0 || quality > 100 {
			quality = jpeg.DefaultQuality
		}
		return jpeg.Encode(w, img, &jpeg.Options{Quality: quality})
	}
}

// WriteFile encodes img to path using the format implied by its extension.
func WriteFile(path string, img image.Image, quality int) error {
	f, err := os.Create(filepath.Clean(path))
	if err != nil {
		return err
	}
	if err := Encode(f, img, FormatFromPath(path), quality); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
