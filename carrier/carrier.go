// Package carrier adapts image and audio containers to the flat sample
// buffer the LSB codec works on.
//
// Raster samples are the color channels only; alpha is skipped. Frames
// written by tools that also use the alpha channel of RGBA images place
// bits at different offsets and cannot be read back by this package.
package carrier

import (
	"bytes"
	"errors"
	"io"
	"path/filepath"
	"strings"
)

var ErrUnsupportedFormat = errors.New("unsupported carrier format")

type Format string

const (
	FormatPNG  Format = "png"
	FormatBMP  Format = "bmp"
	FormatTIFF Format = "tiff"
	FormatWAV  Format = "wav"
)

// Metadata describes a carrier's container. The codec never reads it; it
// is carried through unchanged so the container can be rebuilt.
type Metadata struct {
	Format     Format `json:"format"`
	Width      int    `json:"width"`
	Height     int    `json:"height"`
	Layout     string `json:"layout"`
	BitDepth   int    `json:"bit_depth"`
	Channels   int    `json:"channels"`
	SampleRate int    `json:"sample_rate,omitempty"`
}

// Carrier exposes a decoded container as an ordered sample buffer.
// Samples returns the live buffer: changes made to it are written out by
// Encode.
type Carrier interface {
	Samples() []byte
	Metadata() Metadata
	Encode(w io.Writer) error
}

var (
	pngMagic  = []byte{0x89, 'P', 'N', 'G', 0x0d, 0x0a, 0x1a, 0x0a}
	bmpMagic  = []byte{'B', 'M'}
	tiffLE    = []byte{'I', 'I', 0x2a, 0x00}
	tiffBE    = []byte{'M', 'M', 0x00, 0x2a}
	riffMagic = []byte{'R', 'I', 'F', 'F'}
	waveMagic = []byte{'W', 'A', 'V', 'E'}
)

// Sniff identifies the container format from its leading bytes.
func Sniff(data []byte) (Format, error) {
	switch {
	case bytes.HasPrefix(data, pngMagic):
		return FormatPNG, nil
	case bytes.HasPrefix(data, tiffLE), bytes.HasPrefix(data, tiffBE):
		return FormatTIFF, nil
	case bytes.HasPrefix(data, riffMagic) && len(data) >= 12 && bytes.Equal(data[8:12], waveMagic):
		return FormatWAV, nil
	case bytes.HasPrefix(data, bmpMagic):
		return FormatBMP, nil
	}
	return "", ErrUnsupportedFormat
}

// Decode parses data into a Carrier according to its sniffed format.
func Decode(data []byte) (Carrier, error) {
	format, err := Sniff(data)
	if err != nil {
		return nil, err
	}

	switch format {
	case FormatWAV:
		return DecodeWAV(data)
	default:
		return DecodeImage(data, format)
	}
}

var extensions = map[string]Format{
	".png":  FormatPNG,
	".bmp":  FormatBMP,
	".tif":  FormatTIFF,
	".tiff": FormatTIFF,
	".wav":  FormatWAV,
}

// IsSupportedExtension reports whether name has the extension of a
// lossless carrier format.
func IsSupportedExtension(name string) bool {
	_, ok := FormatOf(name)
	return ok
}

// FormatOf returns the carrier format implied by name's extension.
func FormatOf(name string) (Format, bool) {
	format, ok := extensions[strings.ToLower(filepath.Ext(name))]
	return format, ok
}

// Extension returns the canonical file extension of format.
func Extension(format Format) string {
	if format == FormatTIFF {
		return ".tiff"
	}
	return "." + string(format)
}

// ContentType returns the MIME type of format.
func ContentType(format Format) string {
	switch format {
	case FormatPNG:
		return "image/png"
	case FormatBMP:
		return "image/bmp"
	case FormatTIFF:
		return "image/tiff"
	case FormatWAV:
		return "audio/wav"
	}
	return "application/octet-stream"
}
