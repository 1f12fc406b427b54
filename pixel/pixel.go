/*
Package pixel implements the in-memory raster consumed and produced by the
tiffview transforms.

A Buffer holds either RGB pixels with three 8-bit channels, or a single
8-bit intensity per pixel. Single channel buffers declare a bit depth of
either 8 (grayscale) or 1 (binary, every pixel is pure black or pure white).
There is no alpha channel.

Buffers are treated as read-only once a transform has returned them;
transforms always allocate a fresh output buffer.
*/
package pixel

import (
	"errors"
	"fmt"
	"image"
	"image/color"
)

// Mode describes how pixels are stored in a Buffer.
type Mode int

const (
	// RGB stores three 8-bit channels per pixel.
	RGB Mode = iota
	// Gray stores a single 8-bit intensity per pixel.
	Gray
	// Binary stores a single intensity per pixel that is either 0 or 255.
	Binary
)

func (m Mode) String() string {
	switch m {
	case RGB:
		return "rgb"
	case Gray:
		return "gray"
	case Binary:
		return "binary"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

// Channels returns the number of bytes used per pixel.
func (m Mode) Channels() int {
	if m == RGB {
		return 3
	}
	return 1
}

// BitDepth returns the declared bit depth of a single channel.
func (m Mode) BitDepth() int {
	if m == Binary {
		return 1
	}
	return 8
}

var (
	// ErrOutOfBounds is returned when a coordinate lies outside the buffer.
	ErrOutOfBounds = errors.New("pixel: coordinate out of bounds")
	// ErrMode is returned when constructing a buffer with an unknown mode.
	ErrMode = errors.New("pixel: invalid mode")

	errSize = errors.New("pixel: negative dimensions")
)

// Pixel is the value of a single pixel. Single channel buffers return the
// intensity replicated into all three channels.
type Pixel struct {
	R, G, B uint8
}

// Y returns the intensity for a single channel buffer, which is the red
// channel.
func (p Pixel) Y() uint8 {
	return p.R
}

// RGBA implements the color.Color interface.
func (p Pixel) RGBA() (r, g, b, a uint32) {
	r = uint32(p.R)
	r |= r << 8
	g = uint32(p.G)
	g |= g << 8
	b = uint32(p.B)
	b |= b << 8
	return r, g, b, 0xffff
}

// GrayPixel returns a Pixel with all three channels set to y.
func GrayPixel(y uint8) Pixel {
	return Pixel{y, y, y}
}

var (
	// Black is the zero intensity pixel.
	Black = Pixel{}
	// White is the full intensity pixel.
	White = Pixel{0xff, 0xff, 0xff}
)

// Buffer is a rectangular array of pixels with its top-left corner at the
// origin.
type Buffer struct {
	// Pix holds the pixels in row-major order, Mode.Channels() bytes each.
	Pix    []uint8
	Stride int
	Width  int
	Height int
	Mode   Mode
}

// New returns a zero (black) buffer of the given dimensions.
func New(width, height int, mode Mode) (*Buffer, error) {
	switch mode {
	case RGB, Gray, Binary:
	default:
		return nil, ErrMode
	}
	if width < 0 || height < 0 {
		return nil, errSize
	}
	stride := width * mode.Channels()
	return &Buffer{
		Pix:    make([]uint8, stride*height),
		Stride: stride,
		Width:  width,
		Height: height,
		Mode:   mode,
	}, nil
}

// MustNew is like New but panics on error.
func MustNew(width, height int, mode Mode) *Buffer {
	b, err := New(width, height, mode)
	if err != nil {
		panic(err)
	}
	return b
}

// FromImage flattens any image into an RGB buffer. Alpha is discarded by
// taking the non-premultiplied color of each pixel and the bounds are
// rebased so the top-left pixel is at (0, 0).
func FromImage(m image.Image) *Buffer {
	r := m.Bounds()
	b := MustNew(r.Dx(), r.Dy(), RGB)
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			c := color.NRGBAModel.Convert(m.At(x, y)).(color.NRGBA)
			b.SetPixel(x-r.Min.X, y-r.Min.Y, Pixel{c.R, c.G, c.B})
		}
	}
	return b
}

// In reports whether (x, y) lies within the buffer.
func (b *Buffer) In(x, y int) bool {
	return x >= 0 && x < b.Width && y >= 0 && y < b.Height
}

func (b *Buffer) offset(x, y int) int {
	return y*b.Stride + x*b.Mode.Channels()
}

func (b *Buffer) outOfBounds(x, y int) error {
	return fmt.Errorf("%w: (%d, %d) not within %dx%d", ErrOutOfBounds, x, y, b.Width, b.Height)
}

// Get returns the pixel at (x, y).
func (b *Buffer) Get(x, y int) (Pixel, error) {
	if !b.In(x, y) {
		return Pixel{}, b.outOfBounds(x, y)
	}
	return b.PixelAt(x, y), nil
}

// Set stores p at (x, y). Single channel buffers store the red channel, a
// binary buffer stores white for any intensity of 128 or more.
func (b *Buffer) Set(x, y int, p Pixel) error {
	if !b.In(x, y) {
		return b.outOfBounds(x, y)
	}
	b.SetPixel(x, y, p)
	return nil
}

// PixelAt is like Get but panics if (x, y) is out of bounds. It is meant
// for loops that already iterate over the buffer dimensions.
func (b *Buffer) PixelAt(x, y int) Pixel {
	if !b.In(x, y) {
		panic(b.outOfBounds(x, y))
	}
	i := b.offset(x, y)
	if b.Mode == RGB {
		return Pixel{b.Pix[i+0], b.Pix[i+1], b.Pix[i+2]}
	}
	return GrayPixel(b.Pix[i])
}

// SetPixel is like Set but panics if (x, y) is out of bounds.
func (b *Buffer) SetPixel(x, y int, p Pixel) {
	if !b.In(x, y) {
		panic(b.outOfBounds(x, y))
	}
	i := b.offset(x, y)
	switch b.Mode {
	case RGB:
		b.Pix[i+0] = p.R
		b.Pix[i+1] = p.G
		b.Pix[i+2] = p.B
	case Gray:
		b.Pix[i] = p.R
	case Binary:
		if p.R >= 0x80 {
			b.Pix[i] = 0xff
		} else {
			b.Pix[i] = 0x00
		}
	}
}

// ColorModel implements the image.Image interface.
func (b *Buffer) ColorModel() color.Model {
	switch b.Mode {
	case Gray:
		return color.GrayModel
	case Binary:
		return color.Palette{color.Black, color.White}
	default:
		return color.RGBAModel
	}
}

// Bounds implements the image.Image interface.
func (b *Buffer) Bounds() image.Rectangle {
	return image.Rect(0, 0, b.Width, b.Height)
}

// At implements the image.Image interface. Out of bounds coordinates
// return black as the standard library images do.
func (b *Buffer) At(x, y int) color.Color {
	if !b.In(x, y) {
		return Black
	}
	return b.PixelAt(x, y)
}

// Equal reports whether both buffers have the same dimensions, mode and
// pixels.
func (b *Buffer) Equal(o *Buffer) bool {
	if b == nil || o == nil {
		return b == o
	}
	if b.Width != o.Width || b.Height != o.Height || b.Mode != o.Mode {
		return false
	}
	for y := 0; y < b.Height; y++ {
		for x := 0; x < b.Width; x++ {
			if b.PixelAt(x, y) != o.PixelAt(x, y) {
				return false
			}
		}
	}
	return true
}
