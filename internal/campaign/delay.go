package campaign

import "time"

// DelayPolicy computes the pause after a successful send.
type DelayPolicy interface {
	Next(now time.Time, sentToday, dailyLimit int, rnd Rand) time.Duration
}

// BoundedRandom picks a uniform delay in [Min, Max].
type BoundedRandom struct {
	Min time.Duration
	Max time.Duration
}

func (p BoundedRandom) Next(_ time.Time, _, _ int, rnd Rand) time.Duration {
	if p.Max <= p.Min {
		return p.Min
	}
	return p.Min + time.Duration(rnd.Float64()*float64(p.Max-p.Min))
}

// Adaptive spreads the remaining quota over the rest of the day. The target
// delay is randomized by +/-25% and clamped to [Floor, Ceiling].
type Adaptive struct {
	Floor   time.Duration
	Ceiling time.Duration
}

// Fallback band when Floor and Ceiling are unusable.
const (
	adaptiveFallbackFloor   = 30 * time.Second
	adaptiveFallbackCeiling = 120 * time.Second
)

func (p Adaptive) Next(now time.Time, sentToday, dailyLimit int, rnd Rand) time.Duration {
	remainingQuota := dailyLimit - sentToday
	if remainingQuota <= 0 {
		return UntilNextDay(now)
	}

	floor, ceiling := p.Floor, p.Ceiling
	if floor <= 0 || ceiling <= 0 || floor >= ceiling {
		floor, ceiling = adaptiveFallbackFloor, adaptiveFallbackCeiling
	}

	target := UntilNextDay(now) / time.Duration(remainingQuota)
	target = time.Duration(float64(target) * (0.75 + 0.5*rnd.Float64()))

	switch {
	case target < floor:
		return floor
	case target > ceiling:
		return ceiling
	default:
		return target
	}
}
