package cli

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"
)

// spinnerInterval is the delay between animation frames.
const spinnerInterval = 80 * time.Millisecond

// spinnerFrames is the braille animation cycle drawn while an analysis runs.
var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// Spinner draws an animated progress indicator on stderr while a
// long-running analysis step executes. It stops on Stop or when its
// parent context is cancelled, whichever comes first.
type Spinner struct {
	label   string
	parent  context.Context
	ctx     context.Context
	cancel  context.CancelFunc
	quit    chan struct{}
	stopped chan struct{}
	mu      sync.Mutex
	once    sync.Once
}

func newSpinner(label string) *Spinner {
	return newSpinnerWithContext(context.Background(), label)
}

// newSpinnerWithContext ties the spinner's lifetime to ctx so that Ctrl-C
// clears the line instead of leaving a half-drawn frame behind.
func newSpinnerWithContext(ctx context.Context, label string) *Spinner {
	sctx, cancel := context.WithCancel(ctx)
	return &Spinner{
		label:   label,
		parent:  ctx,
		ctx:     sctx,
		cancel:  cancel,
		quit:    make(chan struct{}),
		stopped: make(chan struct{}),
	}
}

// Start launches the animation goroutine.
func (s *Spinner) Start() {
	go s.run()
}

func (s *Spinner) run() {
	defer close(s.stopped)
	ticker := time.NewTicker(spinnerInterval)
	defer ticker.Stop()

	for frame := 0; ; frame++ {
		select {
		case <-s.ctx.Done():
			s.clearLine()
			return
		case <-s.quit:
			return
		case <-ticker.C:
			glyph := spinnerFrames[frame%len(spinnerFrames)]
			s.mu.Lock()
			fmt.Fprintf(os.Stderr, "\r%s %s", styleIconSpinner.Render(glyph), StyleDim.Render(s.label))
			s.mu.Unlock()
		}
	}
}

// Stop halts the animation, waits for the goroutine to exit, and clears
// the line. Calling Stop more than once is harmless.
func (s *Spinner) Stop() {
	s.cancel()
	s.once.Do(func() { close(s.quit) })
	<-s.stopped
	s.clearLine()
}

// StopWithSuccess stops the spinner and prints msg as a success line.
func (s *Spinner) StopWithSuccess(msg string) {
	s.Stop()
	printSuccess("%s", msg)
}

// StopWithError stops the spinner and prints msg as an error line.
func (s *Spinner) StopWithError(msg string) {
	s.Stop()
	printError("%s", msg)
}

// Cancelled reports whether the parent context ended the spinner, as
// opposed to an explicit Stop.
func (s *Spinner) Cancelled() bool {
	return s.parent.Err() != nil
}

func (s *Spinner) clearLine() {
	s.mu.Lock()
	defer s.mu.Unlock()
	fmt.Fprintf(os.Stderr, "\r%s\r", strings.Repeat(" ", len(s.label)+4))
}
