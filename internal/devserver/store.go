package devserver

import (
	"sort"
	"sync"
	"time"

	"github.com/rileyhilliard/hwmon/internal/series"
	"github.com/rileyhilliard/hwmon/internal/telemetry"
)

// hostRecord holds the retained samples for one host.
type hostRecord struct {
	samples    *series.Buffer[telemetry.Sample]
	lastUpdate time.Time
	seq        uint64 // insertion order, breaks lastUpdate ties
}

// Store keeps the most recent samples per host in memory. It holds at most
// maxHosts hosts; adding a new host beyond that evicts the least recently
// updated one. Store is safe for concurrent use.
type Store struct {
	mu         sync.RWMutex
	hosts      map[string]*hostRecord
	maxHosts   int
	maxRecords int
	seq        uint64
	now        func() time.Time
}

// NewStore creates an empty store.
func NewStore(maxHosts, maxRecords int) *Store {
	if maxHosts < 1 {
		maxHosts = DefaultMaxHosts
	}
	if maxRecords < 1 {
		maxRecords = DefaultMaxRecords
	}
	return &Store{
		hosts:      make(map[string]*hostRecord),
		maxHosts:   maxHosts,
		maxRecords: maxRecords,
		now:        time.Now,
	}
}

// Add appends a sample to its host's buffer. It returns the hostname that
// was evicted to make room, if any.
func (s *Store) Add(sample telemetry.Sample) (evicted string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.hosts[sample.Hostname]
	if !ok {
		if len(s.hosts) >= s.maxHosts {
			evicted = s.evictOldest()
		}
		rec = &hostRecord{samples: series.New[telemetry.Sample](s.maxRecords)}
		s.hosts[sample.Hostname] = rec
	}

	s.seq++
	rec.samples.Append(sample)
	rec.lastUpdate = s.now()
	rec.seq = s.seq
	return evicted
}

func (s *Store) evictOldest() string {
	var oldest string
	var oldestRec *hostRecord
	for name, rec := range s.hosts {
		if oldestRec == nil || rec.seq < oldestRec.seq {
			oldest, oldestRec = name, rec
		}
	}
	if oldestRec != nil {
		delete(s.hosts, oldest)
	}
	return oldest
}

// Latest returns the newest sample of every host.
func (s *Store) Latest() map[string]telemetry.Sample {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[string]telemetry.Sample, len(s.hosts))
	for name, rec := range s.hosts {
		if latest, ok := rec.samples.Latest(); ok {
			out[name] = latest
		}
	}
	return out
}

// Host returns up to limit of the host's newest samples, oldest first.
// A limit below 1 returns everything retained.
func (s *Store) Host(hostname string, limit int) (telemetry.HostHistory, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.hosts[hostname]
	if !ok {
		return telemetry.HostHistory{}, false
	}
	samples := rec.samples.Snapshot()
	if limit > 0 && len(samples) > limit {
		samples = samples[len(samples)-limit:]
	}
	return telemetry.HostHistory{Hostname: hostname, HardwareInfo: samples}, true
}

// Hosts returns the full retained history of every host.
func (s *Store) Hosts() map[string]telemetry.HostHistory {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[string]telemetry.HostHistory, len(s.hosts))
	for name, rec := range s.hosts {
		out[name] = telemetry.HostHistory{Hostname: name, HardwareInfo: rec.samples.Snapshot()}
	}
	return out
}

// Hostnames returns the known hostnames, sorted.
func (s *Store) Hostnames() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]string, 0, len(s.hosts))
	for name := range s.hosts {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Prune drops hosts that have not reported within maxAge and returns how
// many were removed.
func (s *Store) Prune(maxAge time.Duration) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := s.now().Add(-maxAge)
	removed := 0
	for name, rec := range s.hosts {
		if rec.lastUpdate.Before(cutoff) {
			delete(s.hosts, name)
			removed++
		}
	}
	return removed
}

// Len returns the number of hosts held.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.hosts)
}
