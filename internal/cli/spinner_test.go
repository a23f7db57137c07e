package cli

import (
	"context"
	"testing"
	"time"
)

func spinnerExited(s *Spinner) bool {
	select {
	case <-s.stopped:
		return true
	default:
		return false
	}
}

func TestSpinnerStop(t *testing.T) {
	s := newSpinner(context.Background(), "Loading...")
	s.Start()
	time.Sleep(100 * time.Millisecond)
	s.Stop()

	if !spinnerExited(s) {
		t.Error("Spinner goroutine should have exited after Stop")
	}
}

func TestSpinnerWithContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	s := newSpinner(ctx, "Loading with context...")
	s.Start()
	cancel()

	select {
	case <-s.stopped:
	case <-time.After(time.Second):
		t.Fatal("Spinner should exit after context cancellation")
	}
	s.Stop()
}

func TestSpinnerStopIsIdempotent(t *testing.T) {
	s := newSpinner(context.Background(), "Stopping twice...")
	s.Start()

	s.Stop()
	s.Stop()
}
