package fetch

import (
	"context"
	"math"
	"math/rand/v2"
	"time"

	"github.com/sells-group/prospect-cli/internal/model"
	"github.com/sells-group/prospect-cli/internal/resilience"
)

// Config tunes the fetch layer. Zero values fall back to defaults.
type Config struct {
	// BreakerThreshold is the number of consecutive blocked fetches that
	// trips the session breaker. Default: 2.
	BreakerThreshold int

	// FirstDelay applies before the first URL of a batch. Default: 2s.
	FirstDelay time.Duration

	// BaseDelay applies before every later URL. Default: 3s.
	BaseDelay time.Duration

	// PerPositionDelay is added per batch position past the first, so a
	// batch slows down as it goes. Default: 1500ms.
	PerPositionDelay time.Duration

	// MaxDelay caps the pre-fetch delay. Default: 15s.
	MaxDelay time.Duration

	// MaxBlockBackoff caps the exponential post-block delay. Default: 60s.
	MaxBlockBackoff time.Duration

	// MinContentLen rejects anything shorter outright. Default: 200.
	MinContentLen int

	// LargeContentLen is the length past which content is accepted without
	// an indicator-term check. Default: 2000.
	LargeContentLen int
}

func (c Config) withDefaults() Config {
	if c.BreakerThreshold <= 0 {
		c.BreakerThreshold = 2
	}
	if c.FirstDelay <= 0 {
		c.FirstDelay = 2 * time.Second
	}
	if c.BaseDelay <= 0 {
		c.BaseDelay = 3 * time.Second
	}
	if c.PerPositionDelay <= 0 {
		c.PerPositionDelay = 1500 * time.Millisecond
	}
	if c.MaxDelay <= 0 {
		c.MaxDelay = 15 * time.Second
	}
	if c.MaxBlockBackoff <= 0 {
		c.MaxBlockBackoff = 60 * time.Second
	}
	if c.MinContentLen <= 0 {
		c.MinContentLen = 200
	}
	if c.LargeContentLen <= 0 {
		c.LargeContentLen = 2000
	}
	return c
}

// Session is the mutable state of one discovery batch: the block breaker
// and the pacing policy. It is threaded explicitly through the batch
// loop rather than held ambiently, so concurrent sessions cannot
// interfere.
type Session struct {
	cfg     Config
	breaker *resilience.BlockBreaker

	// delayScale stretches delays for query kinds that target defensive
	// sites (directories, registries).
	delayScale float64

	// sleep is injectable for tests.
	sleep func(ctx context.Context, d time.Duration) error
}

// NewSession creates the per-batch fetch session. Directory-style source
// hints get half again the usual pacing, since those sites rate-limit
// most aggressively.
func NewSession(cfg Config, hint model.SourceHint) *Session {
	cfg = cfg.withDefaults()
	scale := 1.0
	switch hint {
	case model.HintDirectoryProfile, model.HintClinicalRegistry:
		scale = 1.5
	}
	return &Session{
		cfg:        cfg,
		breaker:    resilience.NewBlockBreaker(cfg.BreakerThreshold),
		delayScale: scale,
		sleep:      resilience.SleepContext,
	}
}

// Breaker exposes the session's block breaker.
func (s *Session) Breaker() *resilience.BlockBreaker { return s.breaker }

// preFetchDelay computes the pause before fetching the URL at the given
// batch position: short for the first URL, progressively longer after,
// with ±30% jitter.
func (s *Session) preFetchDelay(position int) time.Duration {
	var d time.Duration
	if position <= 0 {
		d = s.cfg.FirstDelay
	} else {
		d = s.cfg.BaseDelay + time.Duration(position)*s.cfg.PerPositionDelay
	}
	d = time.Duration(float64(d) * s.delayScale)
	if d > s.cfg.MaxDelay {
		d = s.cfg.MaxDelay
	}
	return jitter(d, 0.3)
}

// blockBackoff computes the pause after a blocked classification,
// exponential in the consecutive-block count.
func (s *Session) blockBackoff() time.Duration {
	blocks := s.breaker.ConsecutiveBlocks()
	if blocks < 1 {
		blocks = 1
	}
	d := time.Duration(math.Pow(2, float64(blocks))) * time.Second
	if d > s.cfg.MaxBlockBackoff {
		d = s.cfg.MaxBlockBackoff
	}
	return jitter(d, 0.3)
}

// jitter spreads d by ±frac to avoid a detectable fixed cadence.
func jitter(d time.Duration, frac float64) time.Duration {
	if d <= 0 || frac <= 0 {
		return d
	}
	spread := float64(d) * frac
	out := float64(d) + (rand.Float64()*2-1)*spread
	if out < 0 {
		out = 0
	}
	return time.Duration(out)
}
