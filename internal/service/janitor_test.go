package service

import (
	"context"
	"testing"
	"time"
)

func TestJanitorService_RunPurgesUntilCanceled(t *testing.T) {
	repo := &mockUsersRepo{}
	svc := NewJanitorService(repo)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		svc.Run(ctx, 5*time.Millisecond)
		close(done)
	}()

	// wait for at least one sweep
	deadline := time.After(2 * time.Second)
	for repo.purgeCalls.Load() == 0 {
		select {
		case <-deadline:
			t.Fatal("janitor never swept")
		case <-time.After(5 * time.Millisecond):
		}
	}

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("janitor did not stop on cancel")
	}
}
