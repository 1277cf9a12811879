package wallet

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"questchain/models"
)

func TestDetectPresentProvider(t *testing.T) {
	env := NewEnvironment()
	env.Inject(NewInjectedProvider(models.ProviderKeplr, []string{"inj1abc"}, false))

	d := NewDetector(env, 3, time.Millisecond)
	assert.True(t, d.Detect(context.Background(), models.ProviderKeplr))
	assert.False(t, d.Detect(context.Background(), models.ProviderLeap))
}

func TestDetectLateInjection(t *testing.T) {
	env := NewEnvironment()
	go func() {
		time.Sleep(15 * time.Millisecond)
		env.Inject(NewInjectedProvider(models.ProviderMetaMask, []string{"0xabc"}, false))
	}()

	d := NewDetector(env, 50, 5*time.Millisecond)
	assert.True(t, d.Detect(context.Background(), models.ProviderMetaMask))
}

type countingLookup struct{ calls atomic.Int32 }

func (l *countingLookup) Lookup(models.ProviderKind) (Provider, bool) {
	l.calls.Add(1)
	return nil, false
}

func TestDetectGivesUpWithinBudget(t *testing.T) {
	env := &countingLookup{}
	d := NewDetector(env, 4, 20*time.Millisecond)

	start := time.Now()
	assert.False(t, d.Detect(context.Background(), models.ProviderLeap))
	elapsed := time.Since(start)

	assert.EqualValues(t, 4, env.calls.Load())
	// 4 attempts means 3 waits between them.
	assert.GreaterOrEqual(t, elapsed, 60*time.Millisecond)
	assert.Less(t, elapsed, time.Second)
}

func TestDetectDefaultBudget(t *testing.T) {
	env := &countingLookup{}
	d := NewDetector(env, 0, 0)

	assert.False(t, d.Detect(context.Background(), models.ProviderKeplr))
	assert.EqualValues(t, DefaultDetectAttempts, env.calls.Load())
}

func TestDetectCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	d := NewDetector(NewEnvironment(), 100, 50*time.Millisecond)
	start := time.Now()
	assert.False(t, d.Detect(ctx, models.ProviderKeplr))
	assert.Less(t, time.Since(start), time.Second)
}

func TestDetectConcurrentKinds(t *testing.T) {
	env := NewEnvironment()
	env.Inject(NewInjectedProvider(models.ProviderLeap, []string{"inj1leap"}, false))
	d := NewDetector(env, 3, time.Millisecond)

	var wg sync.WaitGroup
	results := make([]bool, len(models.ProviderKinds))
	for i, kind := range models.ProviderKinds {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i] = d.Detect(context.Background(), kind)
		}()
	}
	wg.Wait()

	assert.Equal(t, []bool{false, true, false}, results)
}

func TestRemovedProviderIsNotDetected(t *testing.T) {
	env := NewEnvironment()
	env.Inject(NewInjectedProvider(models.ProviderKeplr, nil, false))
	env.Remove(models.ProviderKeplr)

	_, ok := env.Lookup(models.ProviderKeplr)
	assert.False(t, ok)
}
