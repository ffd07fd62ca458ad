// Package store provides storage backends for Sampark.
//
// This file implements an in-memory store used in tests and local runs.
package store

import (
	"sort"
	"sync"
	"time"

	"github.com/sampark-health/sampark/internal/models"
)

// InMemoryStore keeps profiles and events in process memory. Safe for
// concurrent use.
type InMemoryStore struct {
	mu       sync.RWMutex
	profiles map[string]models.UserProfile
	events   []models.EngagementEvent
}

// NewInMemoryStore creates an empty in-memory store.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{profiles: make(map[string]models.UserProfile)}
}

func (s *InMemoryStore) GetOrCreateProfile(phone string) (*models.UserProfile, error) {
	if phone == "" {
		return nil, models.ErrEmptyIdentity
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if p, ok := s.profiles[phone]; ok {
		cp := p
		return &cp, nil
	}
	now := time.Now()
	p := models.UserProfile{
		Phone:     phone,
		State:     models.StateNew,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.profiles[phone] = p
	cp := p
	return &cp, nil
}

func (s *InMemoryStore) GetProfile(phone string) (*models.UserProfile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.profiles[phone]
	if !ok {
		return nil, nil
	}
	cp := p
	return &cp, nil
}

func (s *InMemoryStore) SaveProfile(p models.UserProfile) error {
	if p.Phone == "" {
		return models.ErrEmptyIdentity
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	p.UpdatedAt = time.Now()
	if existing, ok := s.profiles[p.Phone]; ok {
		p.CreatedAt = existing.CreatedAt
	} else if p.CreatedAt.IsZero() {
		p.CreatedAt = p.UpdatedAt
	}
	s.profiles[p.Phone] = p
	return nil
}

func (s *InMemoryStore) ListProfiles() ([]models.UserProfile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.UserProfile, 0, len(s.profiles))
	for _, p := range s.profiles {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Phone < out[j].Phone })
	return out, nil
}

func (s *InMemoryStore) AddEvent(e models.EngagementEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, e)
	return nil
}

func (s *InMemoryStore) ListEvents(phone string) ([]models.EngagementEvent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.EngagementEvent
	for _, e := range s.events {
		if e.Phone == phone {
			out = append(out, e)
		}
	}
	return out, nil
}

// Close is a no-op for the in-memory store.
func (s *InMemoryStore) Close() error { return nil }
