package recorder

import (
	"context"
	"time"
)

// Clock abstracts the blocking waits so tests can run a whole
// performance in milliseconds on a fake.
type Clock interface {
	// Sleep blocks for d or until ctx is canceled, returning ctx's
	// error in the latter case.
	Sleep(ctx context.Context, d time.Duration) error
}

type realClock struct{}

func (realClock) Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// RealClock returns a Clock backed by wall time.
func RealClock() Clock {
	return realClock{}
}
