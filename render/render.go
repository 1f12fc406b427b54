/*
Package render composes tiffview displays into ordinary images so that a
shell without a windowing toolkit can show them, either as a still side by
side image or as an animated GIF of successive displays.
*/
package render

import (
	"errors"
	"image"
	"image/color"
	"image/draw"
	"image/gif"
	"io"

	"github.com/ericpauley/go-quantize/quantize"
	xdraw "golang.org/x/image/draw"
)

const maxColors = 256

var (
	// Background fills the gap between the two images.
	Background = color.RGBA{0xee, 0xee, 0xee, 0xff}

	errNoFrames = errors.New("render: no frames")
)

func scaleToHeight(m image.Image, height int) image.Image {
	b := m.Bounds()
	if height <= 0 || b.Dy() <= height {
		return m
	}
	width := b.Dx() * height / b.Dy()
	if width < 1 {
		width = 1
	}
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	xdraw.ApproxBiLinear.Scale(dst, dst.Bounds(), m, b, xdraw.Src, nil)
	return dst
}

// SideBySide draws left and right next to each other, separated by gap
// pixels and top aligned. If maxHeight is positive, any image taller than
// it is scaled down preserving its aspect ratio.
func SideBySide(left, right image.Image, gap, maxHeight int) *image.RGBA {
	if gap < 0 {
		gap = 0
	}
	left, right = scaleToHeight(left, maxHeight), scaleToHeight(right, maxHeight)
	lb, rb := left.Bounds(), right.Bounds()

	height := lb.Dy()
	if rb.Dy() > height {
		height = rb.Dy()
	}

	dst := image.NewRGBA(image.Rect(0, 0, lb.Dx()+gap+rb.Dx(), height))
	draw.Draw(dst, dst.Bounds(), image.NewUniform(Background), image.Point{}, draw.Src)
	draw.Draw(dst, image.Rect(0, 0, lb.Dx(), lb.Dy()), left, lb.Min, draw.Src)
	draw.Draw(dst, image.Rect(lb.Dx()+gap, 0, lb.Dx()+gap+rb.Dx(), rb.Dy()), right, rb.Min, draw.Src)

	return dst
}

// EncodeGIF writes frames to w as an animated GIF that loops forever,
// showing each frame for delay hundredths of a second. Each frame gets its
// own palette.
func EncodeGIF(w io.Writer, frames []image.Image, delay int) error {
	if len(frames) == 0 {
		return errNoFrames
	}

	q := quantize.MedianCutQuantizer{}
	g := &gif.GIF{}

	var r image.Rectangle
	for _, m := range frames {
		b := m.Bounds()
		r = r.Union(b)

		pm := image.NewPaletted(b, q.Quantize(make(color.Palette, 0, maxColors), m))
		draw.Draw(pm, b, m, b.Min, draw.Src)

		g.Image = append(g.Image, pm)
		g.Delay = append(g.Delay, delay)
	}
	g.Config = image.Config{
		Width:  r.Max.X,
		Height: r.Max.Y,
	}

	return gif.EncodeAll(w, g)
}
