package grid

import (
	"fmt"
	"sort"
	"sync"
)

// Session holds the mutable offline-line set for one simulation session.
// The simulator itself never reads it; callers take a Snapshot and pass it
// explicitly, so a toggle arriving mid-analysis is never observed halfway
// through a multi-step run.
type Session struct {
	mu      sync.RWMutex
	net     *Network
	offline map[string]struct{}
}

func NewSession(net *Network) *Session {
	return &Session{net: net, offline: make(map[string]struct{})}
}

// Toggle flips a line's offline membership and reports whether the line is
// now offline. Unknown line names are rejected.
func (s *Session) Toggle(lineName string) (bool, error) {
	if !s.net.HasLine(lineName) {
		return false, fmt.Errorf("unknown line %q", lineName)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, off := s.offline[lineName]; off {
		delete(s.offline, lineName)
		return false, nil
	}
	s.offline[lineName] = struct{}{}
	return true, nil
}

// Snapshot returns a copy of the current offline set.
func (s *Session) Snapshot() map[string]struct{} {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]struct{}, len(s.offline))
	for name := range s.offline {
		out[name] = struct{}{}
	}
	return out
}

// OfflineNames returns the offline line names in sorted order.
func (s *Session) OfflineNames() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	names := make([]string, 0, len(s.offline))
	for name := range s.offline {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
