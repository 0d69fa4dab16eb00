package ui

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// SpinnerState represents the current state of a spinner.
type SpinnerState int

const (
	SpinnerPending SpinnerState = iota
	SpinnerInProgress
	SpinnerSuccess
	SpinnerFailed
)

var spinnerFrames = []string{"⣾", "⣽", "⣻", "⢿", "⡿", "⣟", "⣯", "⣷"}

// Spinner shows an animated label while a one-shot operation (a fetch, a
// render) runs, then replaces it with a final status line. When animate is
// false only the final line is written, which keeps piped output clean.
type Spinner struct {
	mu           sync.Mutex
	w            io.Writer
	label        string
	animate      bool
	state        SpinnerState
	frame        int
	startTime    time.Time
	stopChan     chan struct{}
	doneChan     chan struct{}
	running      bool
	lastRendered string
}

// NewSpinner creates a spinner writing to w.
func NewSpinner(w io.Writer, label string, animate bool) *Spinner {
	return &Spinner{
		w:       w,
		label:   label,
		animate: animate,
		state:   SpinnerPending,
	}
}

// Start begins the spinner animation.
func (s *Spinner) Start() {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return
	}
	s.running = true
	s.state = SpinnerInProgress
	s.startTime = time.Now()
	s.stopChan = make(chan struct{})
	s.doneChan = make(chan struct{})
	s.mu.Unlock()

	if !s.animate {
		close(s.doneChan)
		return
	}
	s.render()
	go s.loop()
}

// Stop halts the animation without changing state.
func (s *Spinner) Stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	s.running = false
	close(s.stopChan)
	s.mu.Unlock()

	<-s.doneChan
}

// Success stops the spinner and marks it as successful.
func (s *Spinner) Success() { s.finish(SpinnerSuccess) }

// Fail stops the spinner and marks it as failed.
func (s *Spinner) Fail() { s.finish(SpinnerFailed) }

func (s *Spinner) finish(state SpinnerState) {
	s.Stop()
	s.mu.Lock()
	s.state = state
	s.mu.Unlock()
	s.renderFinal()
}

// State returns the current spinner state.
func (s *Spinner) State() SpinnerState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// SetLabel updates the spinner's label.
func (s *Spinner) SetLabel(label string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.label = label
}

func (s *Spinner) loop() {
	ticker := time.NewTicker(80 * time.Millisecond)
	defer ticker.Stop()
	defer close(s.doneChan)

	for {
		select {
		case <-s.stopChan:
			return
		case <-ticker.C:
			s.mu.Lock()
			s.frame = (s.frame + 1) % len(spinnerFrames)
			s.mu.Unlock()
			s.render()
		}
	}
}

func (s *Spinner) render() {
	s.mu.Lock()
	defer s.mu.Unlock()

	color := GradientColors[(s.frame/2)%len(GradientColors)]
	line := fmt.Sprintf("\r%s %s...", lipgloss.NewStyle().Foreground(color).Render(spinnerFrames[s.frame]), s.label)
	s.clearLine()
	fmt.Fprint(s.w, line)
	s.lastRendered = line
}

func (s *Spinner) renderFinal() {
	s.mu.Lock()
	defer s.mu.Unlock()

	var symbol string
	var style lipgloss.Style
	switch s.state {
	case SpinnerSuccess:
		symbol, style = SymbolComplete, successStyle
	case SpinnerFailed:
		symbol, style = SymbolFail, failStyle
	default:
		symbol, style = SymbolPending, mutedStyle
	}

	s.clearLine()
	fmt.Fprintf(s.w, "%s %s %s\n", style.Render(symbol), s.label, mutedStyle.Render(formatDuration(time.Since(s.startTime))))
}

func (s *Spinner) clearLine() {
	if s.lastRendered == "" {
		return
	}
	fmt.Fprint(s.w, "\r"+strings.Repeat(" ", len([]rune(s.lastRendered)))+"\r")
	s.lastRendered = ""
}

// formatDuration formats a duration for display (e.g., "0.3s", "1.2s").
func formatDuration(d time.Duration) string {
	secs := d.Seconds()
	if secs < 0.1 {
		return fmt.Sprintf("%.2fs", secs)
	}
	return fmt.Sprintf("%.1fs", secs)
}
