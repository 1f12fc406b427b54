package tiffview

import (
	"errors"
	"fmt"

	"github.com/bodgit/tiffview/pixel"
	"github.com/bodgit/tiffview/transform"
)

// NumSteps is the length of the display cycle.
const NumSteps = 4

const dimFactor = 0.5

// ErrNoImage is returned when advancing before any image has been opened.
var ErrNoImage = errors.New("tiffview: no image open")

// Pair is what the display shows: the left and right images side by side.
type Pair struct {
	Left, Right *pixel.Buffer
}

// State is the whole of the sequencer: the current step and the unmodified
// source image it is applied to.
type State struct {
	Step   int
	Source *pixel.Buffer
}

// Open binds src as the source image, resets the step to zero and returns
// the initial display of the source next to its grayscale version.
func Open(s *State, src *pixel.Buffer) (Pair, error) {
	if src == nil {
		return Pair{}, ErrNoImage
	}
	s.Source = src
	s.Step = 0
	return Pair{src, transform.Grayscale(src)}, nil
}

// Advance computes the display for the current step from the source image
// and then moves on to the next step, wrapping after the last one.
func Advance(s *State) (Pair, error) {
	if s.Source == nil {
		return Pair{}, ErrNoImage
	}

	p, err := display(s.Step, s.Source)
	if err != nil {
		return Pair{}, err
	}
	s.Step = (s.Step + 1) % NumSteps

	return p, nil
}

func display(step int, src *pixel.Buffer) (Pair, error) {
	switch step {
	case 0:
		left, err := transform.Brightness(src, dimFactor)
		if err != nil {
			return Pair{}, err
		}
		right, err := transform.Brightness(transform.Grayscale(src), dimFactor)
		if err != nil {
			return Pair{}, err
		}
		return Pair{left, right}, nil
	case 1:
		gray := transform.Grayscale(src)
		return Pair{gray, transform.OrderedDither(gray)}, nil
	case 2:
		return Pair{src, transform.AutoLevel(src)}, nil
	case 3:
		return Pair{src, transform.Grayscale(src)}, nil
	default:
		return Pair{}, fmt.Errorf("tiffview: invalid step %d", step)
	}
}
