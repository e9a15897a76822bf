package output

import (
	"bytes"
	"strings"
	"sync"
	"testing"
	"time"
)

// lockedBuffer guards a bytes.Buffer read by the test while the spinner writes.
type lockedBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *lockedBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *lockedBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestSpinnerStartStop(t *testing.T) {
	var buf lockedBuffer
	sp := NewSpinner(&buf)
	sp.Start("Linting", 0)
	time.Sleep(200 * time.Millisecond)
	sp.Stop()

	out := buf.String()
	if !strings.Contains(out, "Linting") {
		t.Errorf("expected spinner output to contain message, got %q", out)
	}
}

func TestSpinnerCounter(t *testing.T) {
	var buf lockedBuffer
	sp := NewSpinner(&buf)
	sp.Start("Linting", 3)
	sp.Step()
	sp.Step()
	time.Sleep(200 * time.Millisecond)
	sp.Stop()

	if out := buf.String(); !strings.Contains(out, "Linting (2/3)") {
		t.Errorf("expected counter in output, got %q", out)
	}
}

func TestSpinnerStopIdempotent(t *testing.T) {
	var buf lockedBuffer
	sp := NewSpinner(&buf)

	// Stop before Start is a no-op.
	sp.Stop()

	sp.Start("test", 0)
	time.Sleep(100 * time.Millisecond)
	sp.Stop()
	sp.Stop()
	sp.Stop()
}

func TestSpinnerUpdate(t *testing.T) {
	var buf lockedBuffer
	sp := NewSpinner(&buf)
	sp.Start("Phase 1", 0)
	time.Sleep(150 * time.Millisecond)
	sp.Update("Phase 2")
	time.Sleep(150 * time.Millisecond)
	sp.Stop()

	out := buf.String()
	if !strings.Contains(out, "Phase 1") {
		t.Errorf("expected output to contain 'Phase 1', got %q", out)
	}
	if !strings.Contains(out, "Phase 2") {
		t.Errorf("expected output to contain 'Phase 2', got %q", out)
	}
}

func TestSpinnerConcurrentStep(t *testing.T) {
	var buf lockedBuffer
	sp := NewSpinner(&buf)
	sp.Start("start", 10)

	var wg sync.WaitGroup
	for range 10 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			sp.Step()
		}()
	}
	wg.Wait()
	sp.Stop()
}

func TestSpinnerClearsLine(t *testing.T) {
	var buf lockedBuffer
	sp := NewSpinner(&buf)
	sp.Start("working", 0)
	time.Sleep(100 * time.Millisecond)
	sp.Stop()

	if !strings.HasSuffix(buf.String(), "\r") {
		t.Errorf("expected spinner to clear line with \\r at end")
	}
}
