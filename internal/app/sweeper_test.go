package app

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/Syedsafwan24/Gradvy-sub002/internal/platform/logger"
)

func TestRunSweeperStopsWithContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	var calls atomic.Int32
	done := make(chan struct{})
	go func() {
		runSweeper(ctx, logger.Nop(), 5*time.Millisecond, func(context.Context) (int64, error) {
			if calls.Add(1) == 2 {
				return 0, errors.New("transient")
			}
			return 1, nil
		})
		close(done)
	}()

	deadline := time.After(2 * time.Second)
	for calls.Load() < 3 {
		select {
		case <-deadline:
			t.Fatalf("sweeper ran %d times, want at least 3", calls.Load())
		case <-time.After(5 * time.Millisecond):
		}
	}
	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatalf("sweeper did not stop after cancel")
	}
}

func TestRunSweeperDisabled(t *testing.T) {
	called := false
	runSweeper(context.Background(), logger.Nop(), 0, func(context.Context) (int64, error) {
		called = true
		return 0, nil
	})
	if called {
		t.Fatalf("disabled sweeper must not sweep")
	}
}

func TestTrackHoldsWaitGroupUntilDone(t *testing.T) {
	a := &App{}
	done := make(chan struct{})
	a.track(done)

	waited := make(chan struct{})
	go func() {
		a.wg.Wait()
		close(waited)
	}()
	select {
	case <-waited:
		t.Fatalf("wait returned before collector finished")
	case <-time.After(20 * time.Millisecond):
	}
	close(done)
	select {
	case <-waited:
	case <-time.After(time.Second):
		t.Fatalf("wait did not return after collector finished")
	}
}
