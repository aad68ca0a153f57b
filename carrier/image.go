package carrier

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"io"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

// rasterLayout describes how color samples sit in an image's Pix slice.
// Alpha is never part of the sample stream: encoders pick the output color
// type from opacity, so touching alpha could change the channel layout of
// the re-decoded image.
type rasterLayout struct {
	name       string
	depth      int
	pixelBytes int
	colorBytes int
}

var (
	layoutGray   = rasterLayout{name: "gray", depth: 8, pixelBytes: 1, colorBytes: 1}
	layoutGray16 = rasterLayout{name: "gray", depth: 16, pixelBytes: 2, colorBytes: 2}
	layoutRGB    = rasterLayout{name: "rgb", depth: 8, pixelBytes: 4, colorBytes: 3}
	layoutRGB16  = rasterLayout{name: "rgb", depth: 16, pixelBytes: 8, colorBytes: 6}
)

// Image is a raster carrier backed by PNG, BMP or TIFF.
type Image struct {
	img     image.Image
	format  Format
	layout  rasterLayout
	samples []byte
}

// DecodeImage decodes a PNG, BMP or TIFF container.
func DecodeImage(data []byte, format Format) (*Image, error) {
	var (
		m   image.Image
		err error
	)

	r := bytes.NewReader(data)
	switch format {
	case FormatPNG:
		m, err = png.Decode(r)
	case FormatBMP:
		m, err = bmp.Decode(r)
	case FormatTIFF:
		m, err = tiff.Decode(r)
	default:
		return nil, fmt.Errorf("%w: %q is not a raster format", ErrUnsupportedFormat, format)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s image: %w", format, err)
	}

	return NewImage(m, format), nil
}

// NewImage wraps m as a carrier that encodes back to format. Images without
// a direct sample layout (paletted, YCbCr, CMYK, translucent premultiplied)
// are converted to non-premultiplied RGBA first.
func NewImage(m image.Image, format Format) *Image {
	m = normalize(m, format)
	im := &Image{
		img:    m,
		format: format,
		layout: layoutOf(m),
	}
	im.samples = im.gather()
	return im
}

func normalize(m image.Image, format Format) image.Image {
	// BMP stores gray as a paletted image and has no 16-bit form, so only
	// 8-bit RGB survives a round trip.
	if format == FormatBMP {
		if src, ok := m.(*image.RGBA); ok && src.Opaque() {
			return m
		}
		return toNRGBA(m)
	}

	switch src := m.(type) {
	case *image.Gray, *image.Gray16, *image.NRGBA, *image.NRGBA64:
		return m
	case *image.RGBA:
		if src.Opaque() {
			return m
		}
	case *image.RGBA64:
		if src.Opaque() {
			return m
		}
		dst := image.NewNRGBA64(src.Bounds())
		draw.Draw(dst, dst.Bounds(), src, src.Bounds().Min, draw.Src)
		return dst
	}
	return toNRGBA(m)
}

func toNRGBA(m image.Image) image.Image {
	if nrgba, ok := m.(*image.NRGBA); ok {
		return nrgba
	}
	dst := image.NewNRGBA(m.Bounds())
	draw.Draw(dst, dst.Bounds(), m, m.Bounds().Min, draw.Src)
	return dst
}

func layoutOf(m image.Image) rasterLayout {
	switch m.(type) {
	case *image.Gray:
		return layoutGray
	case *image.Gray16:
		return layoutGray16
	case *image.RGBA64, *image.NRGBA64:
		return layoutRGB16
	default:
		return layoutRGB
	}
}

func (im *Image) pix() ([]byte, int) {
	switch m := im.img.(type) {
	case *image.Gray:
		return m.Pix, m.Stride
	case *image.Gray16:
		return m.Pix, m.Stride
	case *image.RGBA:
		return m.Pix, m.Stride
	case *image.NRGBA:
		return m.Pix, m.Stride
	case *image.RGBA64:
		return m.Pix, m.Stride
	case *image.NRGBA64:
		return m.Pix, m.Stride
	}
	panic(fmt.Sprintf("carrier: unexpected image type %T", im.img))
}

// gather copies the color samples out of Pix, row by row.
func (im *Image) gather() []byte {
	pix, stride := im.pix()
	size := im.img.Bounds().Size()
	l := im.layout

	samples := make([]byte, 0, size.X*size.Y*l.colorBytes)
	for y := 0; y < size.Y; y++ {
		row := pix[y*stride:]
		for x := 0; x < size.X; x++ {
			off := x * l.pixelBytes
			samples = append(samples, row[off:off+l.colorBytes]...)
		}
	}
	return samples
}

// scatter writes the samples back into Pix.
func (im *Image) scatter() {
	pix, stride := im.pix()
	size := im.img.Bounds().Size()
	l := im.layout

	i := 0
	for y := 0; y < size.Y; y++ {
		row := pix[y*stride:]
		for x := 0; x < size.X; x++ {
			off := x * l.pixelBytes
			i += copy(row[off:off+l.colorBytes], im.samples[i:i+l.colorBytes])
		}
	}
}

func (im *Image) Samples() []byte {
	return im.samples
}

func (im *Image) Metadata() Metadata {
	size := im.img.Bounds().Size()
	return Metadata{
		Format:   im.format,
		Width:    size.X,
		Height:   size.Y,
		Layout:   im.layout.name,
		BitDepth: im.layout.depth,
		Channels: im.layout.colorBytes / (im.layout.depth / 8),
	}
}

// Image returns the underlying image with the current samples applied.
func (im *Image) Image() image.Image {
	im.scatter()
	return im.img
}

// Encode writes the image, samples included, in its original format.
func (im *Image) Encode(w io.Writer) error {
	m := im.Image()

	var err error
	switch im.format {
	case FormatPNG:
		err = png.Encode(w, m)
	case FormatBMP:
		err = bmp.Encode(w, m)
	case FormatTIFF:
		err = tiff.Encode(w, m, &tiff.Options{Compression: tiff.Deflate})
	default:
		return fmt.Errorf("%w: %q is not a raster format", ErrUnsupportedFormat, im.format)
	}
	if err != nil {
		return fmt.Errorf("failed to encode %s image: %w", im.format, err)
	}
	return nil
}
