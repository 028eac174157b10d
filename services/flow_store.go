// backend/services/flow_store.go
package services

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var ErrFlowNotFound = errors.New("flow not found or expired")

type flowEntry struct {
	mu       sync.Mutex
	flow     *Flow
	lastSeen time.Time
}

// FlowStore keeps each visitor's flow in memory, keyed by a random id.
// Flows idle for longer than the TTL are dropped; nothing is persisted.
type FlowStore struct {
	mu    sync.Mutex
	flows map[string]*flowEntry
	opts  *FlowOptions
	ttl   time.Duration
}

func NewFlowStore(opts FlowOptions, ttl time.Duration) *FlowStore {
	return &FlowStore{
		flows: make(map[string]*flowEntry),
		opts:  &opts,
		ttl:   ttl,
	}
}

// Create starts a new flow on the login screen and returns its id.
func (s *FlowStore) Create() string {
	now := s.opts.now()
	id := uuid.NewString()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.sweepLocked(now)
	s.flows[id] = &flowEntry{flow: NewFlow(id, s.opts), lastSeen: now}
	return id
}

// With runs fn on the flow with the given id while holding that flow's lock.
func (s *FlowStore) With(id string, fn func(*Flow) error) error {
	now := s.opts.now()

	s.mu.Lock()
	entry, ok := s.flows[id]
	if ok && s.expired(entry, now) {
		delete(s.flows, id)
		ok = false
	}
	s.mu.Unlock()
	if !ok {
		return ErrFlowNotFound
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()
	entry.lastSeen = now
	return fn(entry.flow)
}

// Len is the number of live flows.
func (s *FlowStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.flows)
}

func (s *FlowStore) expired(e *flowEntry, now time.Time) bool {
	if s.ttl <= 0 {
		return false
	}
	// lastSeen is written under e.mu, so read it under the same lock.
	e.mu.Lock()
	defer e.mu.Unlock()
	return now.Sub(e.lastSeen) > s.ttl
}

func (s *FlowStore) sweepLocked(now time.Time) {
	dropped := 0
	for id, e := range s.flows {
		if s.expired(e, now) {
			delete(s.flows, id)
			dropped++
		}
	}
	if dropped > 0 {
		zap.L().Debug("Dropped idle flows", zap.Int("dropped", dropped), zap.Int("live", len(s.flows)))
	}
}
