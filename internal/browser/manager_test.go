package browser

import (
	"context"
	"testing"
)

func TestShutdownWithoutConnect(t *testing.T) {
	// Shutdown on a never-connected manager must be a no-op, and the
	// manager must remain usable for a later lazy connection attempt.
	m := NewManager(Config{})
	m.Shutdown()
	m.Shutdown()

	if m.browser != nil || m.lnch != nil {
		t.Error("manager should hold no session after shutdown")
	}
}

func TestSurfaceReleaseIdempotent(t *testing.T) {
	s := &Surface{}
	s.Release()
	s.Release()

	if s.page != nil {
		t.Error("page should be nil after release")
	}
}

func TestSurfaceReleaseClosesOnce(t *testing.T) {
	calls := 0
	s := &Surface{closer: func() error {
		calls++
		return nil
	}}

	s.Release()
	s.Release()

	if calls != 1 {
		t.Errorf("close ran %d times, want 1", calls)
	}
	if s.page != nil || s.closer != nil {
		t.Error("surface should hold nothing after release")
	}
}

func TestSurfaceReleaseWithExpiredRequestContext(t *testing.T) {
	// A timed-out render releases its surface after the request context
	// has expired. The close must not run under that context, or the
	// page stays open in the shared session.
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	closed := false
	s := &Surface{closer: func() error {
		closed = true
		return nil
	}}

	<-ctx.Done()
	s.Release()

	if !closed {
		t.Error("surface page was not closed after request context expiry")
	}
}
