package resilience

import "time"

// RetryPolicy bounds how often a failed split request is resent.
type RetryPolicy struct {
	MaxAttempts    int
	InitialBackoff time.Duration
	MaxBackoff     time.Duration
	Multiplier     float64
}

// BreakerPolicy decides when the client stops sending requests to the split
// workers and how it probes them again.
type BreakerPolicy struct {
	Enabled       bool
	MinRequests   uint32
	FailureRatio  float64
	OpenTimeout   time.Duration
	HalfOpenCalls uint32
}

type Config struct {
	Retry   RetryPolicy
	Breaker BreakerPolicy
}

// DefaultConfig is tuned for request/reply calls to the split workers, which
// answer in well under a millisecond when healthy.
func DefaultConfig() Config {
	return Config{
		Retry: RetryPolicy{
			MaxAttempts:    3,
			InitialBackoff: 50 * time.Millisecond,
			MaxBackoff:     200 * time.Millisecond,
			Multiplier:     2,
		},
		Breaker: BreakerPolicy{
			Enabled:       true,
			MinRequests:   10,
			FailureRatio:  0.5,
			OpenTimeout:   15 * time.Second,
			HalfOpenCalls: 2,
		},
	}
}

// backoff returns the wait before attempt n+1, growing geometrically from
// InitialBackoff and capped at MaxBackoff.
func (p RetryPolicy) backoff(attempt int) time.Duration {
	wait := p.InitialBackoff
	for i := 1; i < attempt && wait < p.MaxBackoff; i++ {
		wait = time.Duration(float64(wait) * p.Multiplier)
	}
	return min(wait, p.MaxBackoff)
}

func (p RetryPolicy) orDefaults(def RetryPolicy) RetryPolicy {
	if p.MaxAttempts <= 0 {
		p.MaxAttempts = def.MaxAttempts
	}
	if p.InitialBackoff <= 0 {
		p.InitialBackoff = def.InitialBackoff
	}
	if p.MaxBackoff <= 0 {
		p.MaxBackoff = def.MaxBackoff
	}
	p.MaxBackoff = max(p.MaxBackoff, p.InitialBackoff)
	if p.Multiplier < 1 {
		p.Multiplier = def.Multiplier
	}
	return p
}

func (p BreakerPolicy) orDefaults(def BreakerPolicy) BreakerPolicy {
	if p.MinRequests == 0 {
		p.MinRequests = def.MinRequests
	}
	if p.FailureRatio <= 0 || p.FailureRatio > 1 {
		p.FailureRatio = def.FailureRatio
	}
	if p.OpenTimeout <= 0 {
		p.OpenTimeout = def.OpenTimeout
	}
	if p.HalfOpenCalls == 0 {
		p.HalfOpenCalls = def.HalfOpenCalls
	}
	return p
}

// normalize fills unset numbers from DefaultConfig. Breaker.Enabled is kept
// as given.
func (c Config) normalize() Config {
	def := DefaultConfig()
	return Config{
		Retry:   c.Retry.orDefaults(def.Retry),
		Breaker: c.Breaker.orDefaults(def.Breaker),
	}
}
