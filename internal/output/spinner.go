package output

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/mattn/go-isatty"
)

var spinnerFrames = []rune("⠋⠙⠹⠸⠼⠴⠦⠧⠇⠏")

// IsTerminal reports whether f is an interactive terminal.
func IsTerminal(f *os.File) bool {
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// Spinner displays an animated braille spinner with a file counter on a
// writer (typically stderr). Step and Update may be called from any goroutine.
type Spinner struct {
	mu      sync.Mutex
	w       io.Writer
	message string
	done    int
	total   int
	stop    chan struct{}
	stopped bool
}

// NewSpinner creates a spinner that writes to w.
func NewSpinner(w io.Writer) *Spinner {
	return &Spinner{w: w}
}

// Start begins the animation. total is the number of steps expected; zero
// hides the counter.
func (s *Spinner) Start(message string, total int) {
	s.mu.Lock()
	s.message = message
	s.total = total
	s.done = 0
	s.stop = make(chan struct{})
	s.stopped = false
	s.mu.Unlock()

	go s.loop()
}

// Update changes the displayed message while the spinner is running.
func (s *Spinner) Update(message string) {
	s.mu.Lock()
	s.message = message
	s.mu.Unlock()
}

// Step records one finished unit of work.
func (s *Spinner) Step() {
	s.mu.Lock()
	s.done++
	s.mu.Unlock()
}

// Stop halts the spinner and clears its line. It is idempotent.
func (s *Spinner) Stop() {
	s.mu.Lock()
	if s.stopped || s.stop == nil {
		s.mu.Unlock()
		return
	}
	s.stopped = true
	s.mu.Unlock()

	close(s.stop)

	s.mu.Lock()
	fmt.Fprintf(s.w, "\r%s\r", strings.Repeat(" ", len(s.text())+4))
	s.mu.Unlock()
}

// text must be called with mu held.
func (s *Spinner) text() string {
	if s.total == 0 {
		return s.message
	}
	return fmt.Sprintf("%s (%d/%d)", s.message, s.done, s.total)
}

func (s *Spinner) loop() {
	tick := time.NewTicker(80 * time.Millisecond)
	defer tick.Stop()

	s.mu.Lock()
	stop := s.stop
	s.mu.Unlock()

	i := 0
	for {
		select {
		case <-stop:
			return
		case <-tick.C:
			s.mu.Lock()
			if s.stopped {
				s.mu.Unlock()
				return
			}
			line := fmt.Sprintf("\r%c %s", spinnerFrames[i%len(spinnerFrames)], s.text())
			// pad to overwrite leftovers from a longer previous message
			fmt.Fprintf(s.w, "%-80s", line)
			s.mu.Unlock()
			i++
		}
	}
}
