// Package session keeps live forms between HTTP requests.
package session

import (
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/golang-lru/v2/expirable"

	"knkadmin/internal/core/apperror"
	"knkadmin/internal/domain"
	"knkadmin/internal/ui/form"
)

// Entry is a stored form with what it was opened for.
type Entry struct {
	ID   string
	Type string
	Form *form.Form
	// EditID is the id of the edited record, nil for create forms.
	EditID any
	// Nav records where the form navigated on submit or cancel.
	Nav *domain.PathRecorder
}

// Store holds forms by session id. Evicted and expired forms are unmounted, so
// candidate fetches that finish later are dropped.
type Store struct {
	lru *expirable.LRU[string, *Entry]
}

// NewStore creates a store of at most size forms, each living for ttl.
func NewStore(size int, ttl time.Duration) *Store {
	if size <= 0 {
		size = 1024
	}
	onEvict := func(_ string, e *Entry) {
		e.Form.Unmount()
	}
	return &Store{lru: expirable.NewLRU[string, *Entry](size, onEvict, ttl)}
}

// Put assigns e a new session id and stores it.
func (s *Store) Put(e *Entry) string {
	e.ID = uuid.NewString()
	if e.Nav == nil {
		e.Nav = &domain.PathRecorder{}
	}
	s.lru.Add(e.ID, e)
	return e.ID
}

// Get returns the entry for id.
func (s *Store) Get(id string) (*Entry, error) {
	e, ok := s.lru.Get(id)
	if !ok {
		return nil, apperror.NewNotFound("form", id)
	}
	return e, nil
}

// Remove drops id and unmounts its form.
func (s *Store) Remove(id string) {
	s.lru.Remove(id)
}

// Len returns the number of live forms.
func (s *Store) Len() int {
	return s.lru.Len()
}

// Close unmounts every form.
func (s *Store) Close() {
	s.lru.Purge()
}
