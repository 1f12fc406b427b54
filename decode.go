package tiffview

import (
	"crypto/sha1"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"

	"github.com/bodgit/tiffview/pixel"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// DecodeError is returned when a file cannot be read or decoded.
type DecodeError struct {
	Path string
	Err  error
}

func (e *DecodeError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("tiffview: decode: %v", e.Err)
	}
	return fmt.Sprintf("tiffview: decode %s: %v", e.Path, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// Source is a fully decoded source image.
type Source struct {
	Buffer *pixel.Buffer
	Path   string
	// Format is the name reported by the image package, such as "tiff".
	Format string
	// SHA1 is the upper-case hex digest of the encoded file.
	SHA1 string
}

// Decode reads an image in any registered format from r and returns it as
// an RGB buffer.
func Decode(r io.Reader) (*Source, error) {
	h := sha1.New()
	m, format, err := image.Decode(io.TeeReader(r, h))
	if err != nil {
		return nil, &DecodeError{Err: err}
	}
	// Hash any trailing bytes the decoder didn't need
	if _, err := io.Copy(h, r); err != nil {
		return nil, &DecodeError{Err: err}
	}

	return &Source{
		Buffer: pixel.FromImage(m),
		Format: format,
		SHA1:   fmt.Sprintf("%X", h.Sum(nil)),
	}, nil
}

// DecodeFile is like Decode but reads from the named file.
func DecodeFile(file string) (*Source, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, &DecodeError{Path: file, Err: err}
	}
	defer f.Close()

	src, err := Decode(f)
	if err != nil {
		err.(*DecodeError).Path = file
		return nil, err
	}
	src.Path = file

	return src, nil
}
