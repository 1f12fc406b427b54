/*
Package tiffview is the core of an image viewer that cycles a source image
through a fixed sequence of transformations, producing a pair of images to
be shown side by side.

The display shell, whatever toolkit it uses, only needs a Viewer: Open or
OpenFile bind a new source image and Advance moves to the next display.
*/
package tiffview

import (
	"context"
	"errors"
	"io"
	"log"
	"sync"

	"github.com/bodgit/tiffview/pixel"
)

// Viewer serialises access to a State so a shell may decode images in the
// background and swap them in while the display is being advanced.
type Viewer struct {
	mu      sync.Mutex
	state   State
	history *History
	logger  *log.Logger
}

// New returns a Viewer with no image open. Both history and logger may be
// nil.
func New(history *History, logger *log.Logger) *Viewer {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Viewer{
		history: history,
		logger:  logger,
	}
}

// Step returns the step that the next call to Advance will display.
func (v *Viewer) Step() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.state.Step
}

// Open makes src the current source image and returns the initial display.
func (v *Viewer) Open(src *pixel.Buffer) (Pair, error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	return Open(&v.state, src)
}

// Advance returns the display for the current step and moves to the next.
func (v *Viewer) Advance() (Pair, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	step := v.state.Step
	p, err := Advance(&v.state)
	if err != nil {
		return Pair{}, err
	}
	v.logger.Printf("Advanced from step %d to %d\n", step, v.state.Step)

	return p, nil
}

// OpenFile decodes file off the calling goroutine and, once it is fully
// decoded, makes it the current source image. If ctx is cancelled first
// the current image is left untouched.
func (v *Viewer) OpenFile(ctx context.Context, file string) (Pair, error) {
	srcc, errc := v.decodeWorker(ctx, file)

	src, err := waitForSource(ctx, srcc, errc)
	if err != nil {
		var de *DecodeError
		if errors.As(err, &de) {
			v.logger.Printf("Error reading the image \"%s\": %v\n", file, de.Err)
		}
		return Pair{}, err
	}

	p, err := v.Open(src.Buffer)
	if err != nil {
		return Pair{}, err
	}
	v.logger.Printf("Opened \"%s\" (%s, %dx%d)\n", file, src.Format, src.Buffer.Width, src.Buffer.Height)

	if v.history != nil {
		if err := v.history.Record(src); err != nil {
			v.logger.Printf("Unable to record \"%s\" in history: %v\n", file, err)
		}
	}

	return p, nil
}
