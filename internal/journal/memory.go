package journal

import (
	"context"
	"errors"
	"sync"

	"spikenet/internal/model"
)

type MemoryStore struct {
	mu          sync.RWMutex
	initialized bool
	events      map[string][]model.MembershipEvent
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Init(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.initialized = true
	s.events = make(map[string][]model.MembershipEvent)
	return nil
}

func (s *MemoryStore) Append(_ context.Context, event model.MembershipEvent) error {
	if err := checkVersion(event.VersionedRecord); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.initialized {
		return errors.New("store is not initialized")
	}
	s.events[event.NetworkUID] = append(s.events[event.NetworkUID], event)
	return nil
}

func (s *MemoryStore) Events(_ context.Context, networkUID string) ([]model.MembershipEvent, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.initialized {
		return nil, false, errors.New("store is not initialized")
	}
	events, ok := s.events[networkUID]
	if !ok {
		return nil, false, nil
	}
	copied := make([]model.MembershipEvent, len(events))
	copy(copied, events)
	return copied, true, nil
}

func (s *MemoryStore) Reset(_ context.Context, networkUID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.initialized {
		return errors.New("store is not initialized")
	}
	delete(s.events, networkUID)
	return nil
}
