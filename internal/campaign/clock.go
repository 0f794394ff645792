package campaign

import (
	"context"
	"math/rand/v2"
	"time"
)

// Clock supplies the current time.
type Clock interface {
	Now() time.Time
}

// Sleeper blocks for d or until ctx is done.
type Sleeper func(ctx context.Context, d time.Duration) error

// Rand supplies uniform values in [0, 1).
type Rand interface {
	Float64() float64
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

type globalRand struct{}

func (globalRand) Float64() float64 { return rand.Float64() }

// SleepContext waits on a timer, returning early with ctx.Err() on cancellation.
func SleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// UntilNextDay returns the time left until local midnight after now.
func UntilNextDay(now time.Time) time.Duration {
	y, m, d := now.Date()
	return time.Date(y, m, d+1, 0, 0, 0, 0, now.Location()).Sub(now)
}

// backoffDelay doubles initial for each attempt after the first, capped at max,
// with +/- jitterFrac applied.
func backoffDelay(initial, max time.Duration, jitterFrac float64, attempt int, rnd Rand) time.Duration {
	sleep := initial
	for i := 1; i < attempt && sleep < max; i++ {
		sleep *= 2
		if sleep > max {
			sleep = max
			break
		}
	}
	if jitterFrac <= 0 || rnd == nil {
		return sleep
	}
	j := 1 + (rnd.Float64()*2-1)*jitterFrac
	return time.Duration(float64(sleep) * j)
}
