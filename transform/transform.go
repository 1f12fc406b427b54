/*
Package transform implements the per-pixel image transformations applied
by the tiffview step sequencer.

Every transform is pure; it reads its input buffer, allocates a new output
buffer of the same dimensions and never modifies the input.
*/
package transform

import (
	"errors"
	"fmt"
	"math"

	"github.com/bodgit/tiffview/pixel"
)

// ErrInvalidArgument is returned when a transform is given a parameter it
// cannot honour.
var ErrInvalidArgument = errors.New("transform: invalid argument")

// Luma weights
const (
	lumaR = 0.299
	lumaG = 0.587
	lumaB = 0.114
)

// Explicit float64 conversions keep the multiply-adds unfused.
func luma(p pixel.Pixel) uint8 {
	y := float64(lumaR*float64(p.R)) + float64(lumaG*float64(p.G))
	y = float64(y) + float64(lumaB*float64(p.B))
	return uint8(y)
}

// Grayscale converts m to a single channel buffer using the standard luma
// weighting, truncating towards zero. A single channel input already holds
// an intensity so it is copied unchanged.
func Grayscale(m *pixel.Buffer) *pixel.Buffer {
	out := pixel.MustNew(m.Width, m.Height, pixel.Gray)
	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			p := m.PixelAt(x, y)
			if m.Mode == pixel.RGB {
				p = pixel.GrayPixel(luma(p))
			}
			out.SetPixel(x, y, p)
		}
	}
	return out
}

func scale(v uint8, factor float64) uint8 {
	n := math.Floor(float64(v) * factor)
	if n > math.MaxUint8 {
		return math.MaxUint8
	}
	return uint8(n)
}

// Brightness multiplies every channel of m by factor, truncating the
// result. Values that would exceed 255 are clamped. The output is always
// RGB.
func Brightness(m *pixel.Buffer, factor float64) (*pixel.Buffer, error) {
	if factor < 0 || math.IsNaN(factor) || math.IsInf(factor, 0) {
		return nil, fmt.Errorf("%w: brightness factor %v", ErrInvalidArgument, factor)
	}

	out := pixel.MustNew(m.Width, m.Height, pixel.RGB)
	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			p := m.PixelAt(x, y)
			out.SetPixel(x, y, pixel.Pixel{
				R: scale(p.R, factor),
				G: scale(p.G, factor),
				B: scale(p.B, factor),
			})
		}
	}
	return out, nil
}

// 2x2 Bayer threshold matrix, indexed [y%2][x%2]
var ditherMatrix = [2][2]uint8{
	{0, 128},
	{192, 64},
}

// OrderedDither reduces a grayscale buffer to a binary one. A pixel becomes
// white when its intensity, read from the red channel, is strictly greater
// than the threshold for its position in the tiled 2x2 matrix.
func OrderedDither(m *pixel.Buffer) *pixel.Buffer {
	out := pixel.MustNew(m.Width, m.Height, pixel.Binary)
	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			if m.PixelAt(x, y).R > ditherMatrix[y%2][x%2] {
				out.SetPixel(x, y, pixel.White)
			} else {
				out.SetPixel(x, y, pixel.Black)
			}
		}
	}
	return out
}

type channelRange struct {
	min, max uint8
}

func (c *channelRange) add(v uint8) {
	if v < c.min {
		c.min = v
	}
	if v > c.max {
		c.max = v
	}
}

// A flat channel has nothing to stretch and is passed through.
func (c channelRange) level(v uint8) uint8 {
	if c.max == c.min {
		return v
	}
	return uint8(255 * (int(v) - int(c.min)) / (int(c.max) - int(c.min)))
}

// AutoLevel stretches each channel of m independently so that its observed
// minimum maps to 0 and its maximum to 255, using truncating integer
// arithmetic. The output is always RGB.
func AutoLevel(m *pixel.Buffer) *pixel.Buffer {
	var r, g, b channelRange
	r.min, g.min, b.min = math.MaxUint8, math.MaxUint8, math.MaxUint8

	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			p := m.PixelAt(x, y)
			r.add(p.R)
			g.add(p.G)
			b.add(p.B)
		}
	}

	out := pixel.MustNew(m.Width, m.Height, pixel.RGB)
	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			p := m.PixelAt(x, y)
			out.SetPixel(x, y, pixel.Pixel{
				R: r.level(p.R),
				G: g.level(p.G),
				B: b.level(p.B),
			})
		}
	}
	return out
}
