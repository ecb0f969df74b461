package fetch

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/sells-group/prospect-cli/internal/model"
)

func TestPreFetchDelay_GrowsWithPosition(t *testing.T) {
	t.Parallel()
	s := NewSession(Config{}, model.HintUnknown)

	// Jitter is ±30%, so compare against the widest bounds.
	first := s.preFetchDelay(0)
	assert.GreaterOrEqual(t, first, time.Duration(float64(2*time.Second)*0.7))
	assert.LessOrEqual(t, first, time.Duration(float64(2*time.Second)*1.3))

	third := s.preFetchDelay(3)
	want := 3*time.Second + 3*1500*time.Millisecond
	assert.GreaterOrEqual(t, third, time.Duration(float64(want)*0.7))
	assert.LessOrEqual(t, third, time.Duration(float64(want)*1.3))
}

func TestPreFetchDelay_CappedAtMax(t *testing.T) {
	t.Parallel()
	s := NewSession(Config{MaxDelay: 5 * time.Second}, model.HintUnknown)

	d := s.preFetchDelay(50)
	assert.LessOrEqual(t, d, time.Duration(float64(5*time.Second)*1.3))
}

func TestNewSession_DirectoryHintStretchesDelays(t *testing.T) {
	t.Parallel()

	plain := NewSession(Config{}, model.HintUnknown)
	directory := NewSession(Config{}, model.HintDirectoryProfile)
	assert.Equal(t, 1.0, plain.delayScale)
	assert.Equal(t, 1.5, directory.delayScale)

	registry := NewSession(Config{}, model.HintClinicalRegistry)
	assert.Equal(t, 1.5, registry.delayScale)
}

func TestBlockBackoff_ExponentialInBlockRun(t *testing.T) {
	t.Parallel()
	s := NewSession(Config{BreakerThreshold: 10}, model.HintUnknown)

	s.breaker.RecordBlocked()
	one := s.blockBackoff()
	assert.GreaterOrEqual(t, one, time.Duration(float64(2*time.Second)*0.7))
	assert.LessOrEqual(t, one, time.Duration(float64(2*time.Second)*1.3))

	s.breaker.RecordBlocked()
	s.breaker.RecordBlocked()
	three := s.blockBackoff()
	assert.GreaterOrEqual(t, three, time.Duration(float64(8*time.Second)*0.7))
	assert.LessOrEqual(t, three, time.Duration(float64(8*time.Second)*1.3))
}

func TestBlockBackoff_Capped(t *testing.T) {
	t.Parallel()
	s := NewSession(Config{BreakerThreshold: 100, MaxBlockBackoff: 4 * time.Second}, model.HintUnknown)

	for i := 0; i < 10; i++ {
		s.breaker.RecordBlocked()
	}
	assert.LessOrEqual(t, s.blockBackoff(), time.Duration(float64(4*time.Second)*1.3))
}
