// internal/resolver/session.go
package resolver

import (
	"context"
	"sync"
)

type flight struct {
	cancel context.CancelFunc
}

// sessions implements cancel-and-replace: a new resolution for a session
// cancels the one still running for the same session and feature.
type sessions struct {
	mu       sync.Mutex
	inflight map[string]*flight
}

func newSessions() *sessions {
	return &sessions{inflight: make(map[string]*flight)}
}

// begin registers a resolution and returns its context plus the release
// func the caller must defer. Queries without a session id are never
// replaced.
func (s *sessions) begin(ctx context.Context, feature, sessionID string) (context.Context, func()) {
	if sessionID == "" {
		return ctx, func() {}
	}

	ctx, cancel := context.WithCancel(ctx)
	key := feature + ":" + sessionID
	current := &flight{cancel: cancel}

	s.mu.Lock()
	if previous, ok := s.inflight[key]; ok {
		previous.cancel()
	}
	s.inflight[key] = current
	s.mu.Unlock()

	return ctx, func() {
		s.mu.Lock()
		if s.inflight[key] == current {
			delete(s.inflight, key)
		}
		s.mu.Unlock()
		cancel()
	}
}

func (s *sessions) len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.inflight)
}
