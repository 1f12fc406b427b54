package pixel

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name       string
		width      int
		height     int
		mode       Mode
		err        error
		wantStride int
		wantPixLen int
	}{
		{"rgb", 4, 3, RGB, nil, 12, 36},
		{"gray", 4, 3, Gray, nil, 4, 12},
		{"binary", 5, 2, Binary, nil, 5, 10},
		{"empty", 0, 0, RGB, nil, 0, 0},
		{"bad mode", 2, 2, Mode(7), ErrMode, 0, 0},
		{"negative", -1, 2, RGB, errSize, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := New(tt.width, tt.height, tt.mode)
			if tt.err != nil {
				assert.Equal(t, tt.err, err)
				assert.Nil(t, b)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantStride, b.Stride)
			assert.Len(t, b.Pix, tt.wantPixLen)
			for _, v := range b.Pix {
				assert.Zero(t, v)
			}
		})
	}
}

func TestModeDepth(t *testing.T) {
	assert.Equal(t, 3, RGB.Channels())
	assert.Equal(t, 1, Gray.Channels())
	assert.Equal(t, 1, Binary.Channels())
	assert.Equal(t, 8, RGB.BitDepth())
	assert.Equal(t, 8, Gray.BitDepth())
	assert.Equal(t, 1, Binary.BitDepth())
	assert.Equal(t, "binary", Binary.String())
	assert.Equal(t, "mode(9)", Mode(9).String())
}

func TestSetGet(t *testing.T) {
	tests := []struct {
		name string
		mode Mode
		in   Pixel
		want Pixel
	}{
		{"rgb", RGB, Pixel{10, 20, 30}, Pixel{10, 20, 30}},
		{"gray keeps red", Gray, Pixel{77, 1, 2}, Pixel{77, 77, 77}},
		{"binary dark", Binary, GrayPixel(127), Black},
		{"binary light", Binary, GrayPixel(128), White},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := MustNew(3, 2, tt.mode)
			require.NoError(t, b.Set(2, 1, tt.in))
			p, err := b.Get(2, 1)
			require.NoError(t, err)
			assert.Equal(t, tt.want, p)

			p, err = b.Get(0, 0)
			require.NoError(t, err)
			assert.Equal(t, Black, p)
		})
	}
}

func TestOutOfBounds(t *testing.T) {
	b := MustNew(2, 2, RGB)

	for _, pt := range []image.Point{{-1, 0}, {0, -1}, {2, 0}, {0, 2}} {
		_, err := b.Get(pt.X, pt.Y)
		assert.ErrorIs(t, err, ErrOutOfBounds)
		assert.ErrorIs(t, b.Set(pt.X, pt.Y, White), ErrOutOfBounds)
		assert.Panics(t, func() { b.PixelAt(pt.X, pt.Y) })
		assert.Panics(t, func() { b.SetPixel(pt.X, pt.Y, White) })
		assert.Equal(t, color.Color(Black), b.At(pt.X, pt.Y))
	}

	for _, v := range b.Pix {
		assert.Zero(t, v)
	}
}

func TestFromImage(t *testing.T) {
	m := image.NewNRGBA(image.Rect(10, 20, 12, 21))
	m.SetNRGBA(10, 20, color.NRGBA{0xff, 0x80, 0x00, 0xff})
	m.SetNRGBA(11, 20, color.NRGBA{0x10, 0x20, 0x30, 0x00})

	b := FromImage(m)
	assert.Equal(t, RGB, b.Mode)
	assert.Equal(t, image.Rect(0, 0, 2, 1), b.Bounds())
	assert.Equal(t, Pixel{0xff, 0x80, 0x00}, b.PixelAt(0, 0))
	assert.Equal(t, Pixel{0x10, 0x20, 0x30}, b.PixelAt(1, 0))
}

func TestImageInterface(t *testing.T) {
	b := MustNew(2, 1, Binary)
	b.SetPixel(1, 0, White)

	var m image.Image = b
	r, g, bl, a := m.At(1, 0).RGBA()
	assert.Equal(t, [4]uint32{0xffff, 0xffff, 0xffff, 0xffff}, [4]uint32{r, g, bl, a})
	assert.Equal(t, color.Color(color.Black), m.ColorModel().Convert(m.At(0, 0)))
	assert.True(t, MustNew(1, 1, Gray).ColorModel() == color.GrayModel)
}

func TestEqual(t *testing.T) {
	a := MustNew(2, 2, RGB)
	b := MustNew(2, 2, RGB)
	assert.True(t, a.Equal(b))

	b.SetPixel(1, 1, Pixel{1, 0, 0})
	assert.False(t, a.Equal(b))
	assert.False(t, a.Equal(MustNew(2, 2, Gray)))
	assert.False(t, a.Equal(nil))
	assert.True(t, (*Buffer)(nil).Equal(nil))
}
