package clock

import (
	"context"
	"time"

	"github.com/trebuchet-org/katapult/internal/usecase"
)

// System is the wall clock.
type System struct{}

// NewSystem creates the real clock.
func NewSystem() *System {
	return &System{}
}

func (*System) Now() time.Time {
	return time.Now()
}

// Sleep blocks for d or until ctx is done.
func (*System) Sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

var _ usecase.Clock = (*System)(nil)
