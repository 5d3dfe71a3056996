package resilience

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestSingleFlight_Do(t *testing.T) {
	var g SingleFlight
	var loads int32

	const workers = 25
	start := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(workers)

	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			<-start
			val, err, _ := g.Do("teams", func() (any, error) {
				atomic.AddInt32(&loads, 1)
				time.Sleep(20 * time.Millisecond)
				return "payload", nil
			})
			if err != nil {
				t.Errorf("flight failed: %v", err)
			}
			if val != "payload" {
				t.Errorf("unexpected flight value: %v", val)
			}
		}()
	}

	close(start)
	wg.Wait()

	if got := atomic.LoadInt32(&loads); got != 1 {
		t.Fatalf("expected one load for concurrent same-key calls, got %d", got)
	}
}

func TestSingleFlight_DistinctKeysRunIndependently(t *testing.T) {
	var g SingleFlight
	var loads int32

	var wg sync.WaitGroup
	for _, key := range []string{"teams", "sports", "locations"} {
		wg.Add(1)
		go func(key string) {
			defer wg.Done()
			_, _, shared := g.Do(key, func() (any, error) {
				atomic.AddInt32(&loads, 1)
				time.Sleep(10 * time.Millisecond)
				return key, nil
			})
			if shared {
				t.Errorf("key %q should not share a flight", key)
			}
		}(key)
	}
	wg.Wait()

	if got := atomic.LoadInt32(&loads); got != 3 {
		t.Fatalf("expected three independent loads, got %d", got)
	}
}
