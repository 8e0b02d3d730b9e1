// Package location abstracts device geolocation for the feed.
package location

import (
	"context"
	"time"

	"flushfinder-api/apperr"
	"flushfinder-api/model"
)

// AcquisitionTimeout bounds how long a position fix may take before the
// attempt fails instead of hanging.
const AcquisitionTimeout = 5 * time.Second

// Provider yields the device's current position.
type Provider interface {
	CurrentPosition(ctx context.Context) (model.Coordinates, error)
}

// Func adapts a plain function to a Provider.
type Func func(ctx context.Context) (model.Coordinates, error)

func (f Func) CurrentPosition(ctx context.Context) (model.Coordinates, error) {
	return f(ctx)
}

// Current fetches the position with the acquisition timeout applied.
// Failures, including the timeout, come back as an external service
// error; there is no retry.
func Current(ctx context.Context, p Provider) (model.Coordinates, error) {
	ctx, cancel := context.WithTimeout(ctx, AcquisitionTimeout)
	defer cancel()

	type result struct {
		pos model.Coordinates
		err error
	}
	ch := make(chan result, 1)
	go func() {
		pos, err := p.CurrentPosition(ctx)
		ch <- result{pos, err}
	}()

	select {
	case r := <-ch:
		if r.err != nil {
			return model.Coordinates{}, apperr.External("geolocation", r.err)
		}
		return r.pos, nil
	case <-ctx.Done():
		return model.Coordinates{}, apperr.External("geolocation", ctx.Err())
	}
}
