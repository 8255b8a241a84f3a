/*
	Package logsampler provides concurrent-safe log sampling for hot paths
	where logging every event would be prohibitively expensive, such as
	per-eviction tracing inside a conversion cache.
*/
package logsampler

import (
	"sync/atomic"
	"time"
)

// Sampler defines the interface for deciding if a log message should be processed.
type Sampler interface {
	// ShouldLog determines if a log event should be written.
	// The key is a stable identifier for the log site.
	// The err object can be used for more advanced decisions but is optional.
	ShouldLog(key string, err error) bool
}

// RateSampler provides simple, high-performance rate-based sampling: the
// first event of every window passes, then one in every rate events.
type RateSampler struct {
	rate   int64
	window int64
	count  atomic.Int64
	last   atomic.Int64
}

// NewRateSampler creates a new rate sampler.
func NewRateSampler(rate int, window time.Duration) *RateSampler {
	s := &RateSampler{
		rate:   int64(rate),
		window: int64(window),
	}
	s.last.Store(time.Now().UnixNano())
	return s
}

// ShouldLog returns true if this event should be logged based on the rate limit.
func (s *RateSampler) ShouldLog(key string, err error) bool {
	now := time.Now().UnixNano()
	lastReset := s.last.Load()

	if now-lastReset > s.window {
		if s.last.CompareAndSwap(lastReset, now) {
			s.count.Store(0)
		}
	}
	return (s.count.Add(1)-1)%s.rate == 0
}
