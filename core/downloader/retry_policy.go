package downloader

import "time"

// RetryPolicy decides whether and how long to wait before another
// attempt at the whole bulk operation. Delays grow exponentially with
// the attempt number and are capped at MaxDelay, so the sequence is
// monotonically non-decreasing.
type RetryPolicy struct {
	// MaxRetries is the number of additional attempts beyond the
	// first.
	MaxRetries int
	BaseDelay  time.Duration
	MaxDelay   time.Duration
}

func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxRetries: 3,
		BaseDelay:  2 * time.Second,
		MaxDelay:   30 * time.Second,
	}
}

// NextDelay returns the backoff before retry number attempt (1-based)
// and whether that retry is allowed at all.
func (p RetryPolicy) NextDelay(attempt int) (time.Duration, bool) {
	if attempt > p.MaxRetries {
		return 0, false
	}

	delay := p.BaseDelay
	if delay <= 0 {
		delay = 500 * time.Millisecond
	}
	if attempt > 1 {
		delay *= time.Duration(1 << uint(attempt-1))
	}
	if p.MaxDelay > 0 && delay > p.MaxDelay {
		delay = p.MaxDelay
	}
	return delay, true
}
