package keymutex

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

func TestRunSerializesSameKey(t *testing.T) {
	km := New()

	var mu sync.Mutex
	inCritical := 0
	maxInCritical := 0

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = km.Run(context.Background(), "sector|2025-09-08T23:00:00Z", func() error {
				mu.Lock()
				inCritical++
				if inCritical > maxInCritical {
					maxInCritical = inCritical
				}
				mu.Unlock()

				time.Sleep(time.Millisecond)

				mu.Lock()
				inCritical--
				mu.Unlock()
				return nil
			})
		}()
	}
	wg.Wait()

	if maxInCritical != 1 {
		t.Errorf("expected at most 1 unit in critical section, observed %d", maxInCritical)
	}
}

func TestRunDistinctKeysProceedIndependently(t *testing.T) {
	km := New()

	release := make(chan struct{})
	slowStarted := make(chan struct{})

	go func() {
		_ = km.Run(context.Background(), "slow", func() error {
			close(slowStarted)
			<-release
			return nil
		})
	}()

	<-slowStarted

	done := make(chan struct{})
	go func() {
		_ = km.Run(context.Background(), "fast", func() error { return nil })
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("work for a distinct key was blocked")
	}

	close(release)
}

func TestRunReleasesKeyOnFailure(t *testing.T) {
	km := New()
	wantErr := errors.New("assignment failed")

	if err := km.Run(context.Background(), "k", func() error { return wantErr }); !errors.Is(err, wantErr) {
		t.Fatalf("expected propagated error, got %v", err)
	}

	// The key must be usable again after a failed unit.
	ran := false
	if err := km.Run(context.Background(), "k", func() error { ran = true; return nil }); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ran {
		t.Error("expected follow-up work to run after a failure released the key")
	}
}

func TestRunReclaimsIdleKeys(t *testing.T) {
	km := New()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			key := string(rune('a' + n%3))
			_ = km.Run(context.Background(), key, func() error { return nil })
		}(i)
	}
	wg.Wait()

	if got := km.Len(); got != 0 {
		t.Errorf("expected all idle keys reclaimed, %d remain", got)
	}
}

func TestRunContextCancelledWhileQueued(t *testing.T) {
	km := New()

	release := make(chan struct{})
	started := make(chan struct{})
	go func() {
		_ = km.Run(context.Background(), "k", func() error {
			close(started)
			<-release
			return nil
		})
	}()
	<-started

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() {
		errCh <- km.Run(ctx, "k", func() error {
			t.Error("cancelled unit must not run")
			return nil
		})
	}()

	cancel()
	if err := <-errCh; !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}

	close(release)
}
