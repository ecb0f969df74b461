package resilience

import (
	"sync"

	"go.uber.org/zap"
)

// BlockBreaker halts further fetch attempts after repeated blocked
// classifications. Unlike a classic circuit breaker it never half-opens:
// once tripped it stays tripped for the life of the batch, because
// hammering a site that is actively denying us only escalates its
// defenses. Scope is one discovery session; never share across batches.
type BlockBreaker struct {
	mu                sync.Mutex
	threshold         int
	consecutiveBlocks int
	tripped           bool
}

// NewBlockBreaker creates a breaker that trips after threshold
// consecutive blocked fetches. Threshold defaults to 2.
func NewBlockBreaker(threshold int) *BlockBreaker {
	if threshold <= 0 {
		threshold = 2
	}
	return &BlockBreaker{threshold: threshold}
}

// RecordBlocked increments the consecutive-block counter, tripping the
// breaker at the threshold. Returns true if the breaker is now tripped.
func (b *BlockBreaker) RecordBlocked() bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.consecutiveBlocks++
	if !b.tripped && b.consecutiveBlocks >= b.threshold {
		b.tripped = true
		zap.L().Warn("fetch breaker tripped; downgrading remaining urls",
			zap.Int("consecutive_blocks", b.consecutiveBlocks),
		)
	}
	return b.tripped
}

// RecordSuccess resets the consecutive-block counter. A tripped breaker
// stays tripped.
func (b *BlockBreaker) RecordSuccess() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.consecutiveBlocks = 0
}

// Tripped reports whether fetching has been halted for this session.
func (b *BlockBreaker) Tripped() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.tripped
}

// ConsecutiveBlocks returns the current counter, used to size the
// exponential post-block delay.
func (b *BlockBreaker) ConsecutiveBlocks() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.consecutiveBlocks
}
