package monitor

import (
	"sync"

	"github.com/rileyhilliard/hwmon/internal/livesync"
)

// Route names the view a session synchronizes.
type Route struct {
	Mode     livesync.Mode
	Hostname string
}

// DashboardRoute is the aggregate view.
func DashboardRoute() Route { return Route{Mode: livesync.ModeAggregate} }

// HostRoute is the detail view for hostname.
func HostRoute(hostname string) Route { return Route{Mode: livesync.ModeDetail, Hostname: hostname} }

// Starter launches a sync session for route that reports into sink.
// The returned stop function must tear the session down and wait for it.
type Starter func(route Route, sink livesync.Sink) (stop func())

// Switcher owns the one running session behind a program. Switching
// stops the current session before the next one starts.
type Switcher struct {
	mu     sync.Mutex
	start  Starter
	sender Sender
	stop   func()
}

// NewSwitcher creates a switcher that launches sessions with start.
func NewSwitcher(start Starter) *Switcher {
	return &Switcher{start: start}
}

// Attach sets where session messages are delivered. Call it before the
// program starts.
func (s *Switcher) Attach(sender Sender) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sender = sender
}

// Switch stops the running session and starts route tagged with session.
func (s *Switcher) Switch(route Route, session int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stop != nil {
		s.stop()
		s.stop = nil
	}
	if s.start == nil || s.sender == nil {
		return
	}
	s.stop = s.start(route, NewSink(s.sender, session))
}

// Stop tears down the running session, if any.
func (s *Switcher) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stop != nil {
		s.stop()
		s.stop = nil
	}
}
