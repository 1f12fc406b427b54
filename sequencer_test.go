package tiffview

import (
	"testing"

	"github.com/bodgit/tiffview/pixel"
	"github.com/bodgit/tiffview/transform"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testImage(t *testing.T) *pixel.Buffer {
	t.Helper()
	m := pixel.MustNew(3, 3, pixel.RGB)
	colors := []pixel.Pixel{
		{R: 255}, {G: 255}, {B: 255},
		{R: 10, G: 200, B: 30}, {R: 90, G: 90, B: 90}, {R: 1, G: 2, B: 3},
		pixel.White, {R: 128, G: 64, B: 32}, {R: 33, G: 66, B: 99},
	}
	for i, c := range colors {
		require.NoError(t, m.Set(i%3, i/3, c))
	}
	return m
}

func brightness(t *testing.T, m *pixel.Buffer, factor float64) *pixel.Buffer {
	t.Helper()
	out, err := transform.Brightness(m, factor)
	require.NoError(t, err)
	return out
}

func assertPair(t *testing.T, want, got Pair) {
	t.Helper()
	assert.True(t, want.Left.Equal(got.Left), "left image differs")
	assert.True(t, want.Right.Equal(got.Right), "right image differs")
}

func TestOpen(t *testing.T) {
	s := State{Step: 2}
	src := testImage(t)

	p, err := Open(&s, src)
	require.NoError(t, err)
	assert.Equal(t, 0, s.Step)
	assert.Same(t, src, s.Source)
	assert.Same(t, src, p.Left)
	assert.True(t, transform.Grayscale(src).Equal(p.Right))

	_, err = Open(&s, nil)
	assert.Equal(t, ErrNoImage, err)
	assert.Same(t, src, s.Source)
}

func TestAdvanceNoImage(t *testing.T) {
	var s State
	_, err := Advance(&s)
	assert.Equal(t, ErrNoImage, err)
	assert.Equal(t, 0, s.Step)
}

func TestAdvanceCycle(t *testing.T) {
	src := testImage(t)
	gray := transform.Grayscale(src)

	want := []Pair{
		{brightness(t, src, 0.5), brightness(t, gray, 0.5)},
		{gray, transform.OrderedDither(gray)},
		{src, transform.AutoLevel(src)},
		{src, gray},
	}

	var s State
	_, err := Open(&s, src)
	require.NoError(t, err)

	for i := 0; i < 2*NumSteps+1; i++ {
		p, err := Advance(&s)
		require.NoError(t, err)
		assert.Equal(t, (i+1)%NumSteps, s.Step)
		assertPair(t, want[i%NumSteps], p)
	}
}

func TestAdvanceScenario(t *testing.T) {
	src := testImage(t)
	orig := append([]uint8(nil), src.Pix...)

	var s State
	p, err := Open(&s, src)
	require.NoError(t, err)
	assertPair(t, Pair{src, transform.Grayscale(src)}, p)

	first, err := Advance(&s)
	require.NoError(t, err)
	assert.Equal(t, 1, s.Step)
	assertPair(t, Pair{brightness(t, src, 0.5), brightness(t, transform.Grayscale(src), 0.5)}, first)

	for i := 0; i < 3; i++ {
		_, err = Advance(&s)
		require.NoError(t, err)
	}
	assert.Equal(t, 0, s.Step)

	again, err := Advance(&s)
	require.NoError(t, err)
	assert.Equal(t, 1, s.Step)
	assertPair(t, first, again)

	assert.Equal(t, orig, src.Pix, "source modified")
}

func TestOpenResets(t *testing.T) {
	var s State
	_, err := Open(&s, testImage(t))
	require.NoError(t, err)
	for i := 0; i < 3; i++ {
		_, err = Advance(&s)
		require.NoError(t, err)
	}
	assert.Equal(t, 3, s.Step)

	next := pixel.MustNew(1, 1, pixel.RGB)
	_, err = Open(&s, next)
	require.NoError(t, err)
	assert.Equal(t, 0, s.Step)

	p, err := Advance(&s)
	require.NoError(t, err)
	assert.Equal(t, 1, p.Left.Width)
}

func TestDisplayInvalidStep(t *testing.T) {
	_, err := display(NumSteps, testImage(t))
	assert.Error(t, err)
}
