package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"
)

func TestSpinnerDrawsMessage(t *testing.T) {
	var buf bytes.Buffer
	s := newSpinner(context.Background(), &buf, "Computing layout...")
	s.Start()
	time.Sleep(2 * spinnerInterval)
	s.Update("Rendering svg...")
	time.Sleep(2 * spinnerInterval)
	s.Stop()

	out := buf.String()
	if !strings.Contains(out, "Computing layout...") {
		t.Errorf("output missing first message: %q", out)
	}
	if !strings.Contains(out, "Rendering svg...") {
		t.Errorf("output missing updated message: %q", out)
	}
	if !strings.HasSuffix(out, "\r") {
		t.Errorf("line not cleared after Stop: %q", out)
	}
	if s.Cancelled() {
		t.Error("Cancelled() = true after a plain Stop")
	}
}

func TestSpinnerParentCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	var buf bytes.Buffer
	s := newSpinner(ctx, &buf, "Rendering...")
	s.Start()
	cancel()
	s.Stop()

	if !s.Cancelled() {
		t.Error("Cancelled() = false after parent cancellation")
	}
}

func TestSpinnerTimeout(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	var buf bytes.Buffer
	s := newSpinner(ctx, &buf, "Waiting...")
	s.Start()
	time.Sleep(100 * time.Millisecond)

	if !s.Cancelled() {
		t.Error("Cancelled() = false after timeout")
	}
	s.Stop()
}

func TestSpinnerStopIsIdempotent(t *testing.T) {
	var buf bytes.Buffer
	s := newSpinner(context.Background(), &buf, "Stopping...")
	s.Start()
	s.Stop()
	s.Stop()
	s.Fail("Layout failed")
}

func TestSpinnerStopBeforeStart(t *testing.T) {
	var buf bytes.Buffer
	s := newSpinner(context.Background(), &buf, "Never started")

	done := make(chan struct{})
	go func() {
		s.Stop()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Stop() blocked without Start()")
	}
	if buf.Len() != 0 {
		t.Errorf("unstarted spinner wrote %q", buf.String())
	}
}
