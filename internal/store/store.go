package store

import (
	"errors"
	"sync"

	"github.com/google/uuid"

	"github.com/51348761z/ai-calendar/internal/domain"
)

var ErrNotFound = errors.New("event not found")

// Store holds the live event set in memory. List returns events in
// insertion order, which is also the order they are exported in.
type Store struct {
	mu     sync.RWMutex
	events map[string]domain.Event
	order  []string

	newID func() string
}

func New() *Store {
	return &Store{
		events: map[string]domain.Event{},
		newID:  uuid.NewString,
	}
}

func (s *Store) Create(in domain.EventInput) (domain.Event, error) {
	if err := in.Validate(); err != nil {
		return domain.Event{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.append(in), nil
}

func (s *Store) Get(id string) (domain.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	event, ok := s.events[id]
	if !ok {
		return domain.Event{}, ErrNotFound
	}
	return event, nil
}

func (s *Store) Update(id string, in domain.EventInput) (domain.Event, error) {
	if err := in.Validate(); err != nil {
		return domain.Event{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.events[id]; !ok {
		return domain.Event{}, ErrNotFound
	}
	event := domain.Event{
		ID:          id,
		Title:       in.Title,
		Description: in.Description,
		Start:       in.Start,
		End:         in.End,
		AllDay:      in.AllDay,
	}
	s.events[id] = event
	return event, nil
}

func (s *Store) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.events[id]; !ok {
		return ErrNotFound
	}
	delete(s.events, id)
	for i, existing := range s.order {
		if existing == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

// List returns a snapshot copy; callers may hold it across store mutations.
func (s *Store) List() []domain.Event {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Event, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.events[id])
	}
	return out
}

// Import appends a batch of events, skipping entries that fail validation.
func (s *Store) Import(inputs []domain.EventInput) []domain.Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Event, 0, len(inputs))
	for _, in := range inputs {
		if err := in.Validate(); err != nil {
			continue
		}
		out = append(out, s.append(in))
	}
	return out
}

func (s *Store) append(in domain.EventInput) domain.Event {
	event := domain.Event{
		ID:          s.newID(),
		Title:       in.Title,
		Description: in.Description,
		Start:       in.Start,
		End:         in.End,
		AllDay:      in.AllDay,
	}
	s.events[event.ID] = event
	s.order = append(s.order, event.ID)
	return event
}
