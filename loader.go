package tiffview

import "context"

func (v *Viewer) decodeWorker(ctx context.Context, file string) (<-chan *Source, <-chan error) {
	out := make(chan *Source)
	errc := make(chan error, 1)
	go func() {
		defer close(out)
		defer close(errc)

		src, err := DecodeFile(file)
		if err != nil {
			errc <- err
			return
		}

		select {
		case out <- src:
		case <-ctx.Done():
			errc <- ctx.Err()
		}
	}()
	return out, errc
}

// A partially decoded image is never returned; either the worker hands over
// a complete Source or it closes out and reports why on errc.
func waitForSource(ctx context.Context, out <-chan *Source, errc <-chan error) (*Source, error) {
	select {
	case src, ok := <-out:
		if !ok {
			return nil, <-errc
		}
		return src, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}
