package visualizer

import (
	"sync"

	"visualizer-service/internal/models"
)

// Listener is notified after every dispatched action with the resulting state
// and whether the present snapshot changed. The state is shared by all
// listeners of a dispatch and carries no datasets. Listeners run while the
// store is locked, must not dispatch and must not modify the state.
type Listener func(action Action, state models.State, presentChanged bool)

// Store owns a visualizer state and serializes every change to it.
type Store struct {
	reducer   *Reducer
	state     models.State
	listeners []Listener
	mu        sync.RWMutex
}

// NewStore creates a Store holding the initial state.
func NewStore(reducer *Reducer) *Store {
	return &Store{
		reducer: reducer,
		state:   InitialState(),
	}
}

// Dispatch applies action and returns a copy of the resulting state.
func (s *Store) Dispatch(action Action) models.State {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev := s.state
	s.state = s.reducer.Reduce(prev, action)
	if len(s.listeners) > 0 {
		changed := !equalItems(prev.Present, s.state.Present)
		view := listenerState(s.state)
		for _, l := range s.listeners {
			l(action, view, changed)
		}
	}
	return cloneState(s.state)
}

// listenerState copies state without the loaded datasets.
func listenerState(state models.State) models.State {
	trimmed := state
	trimmed.Datasets = nil
	return cloneState(trimmed)
}

// State returns a copy of the current state.
func (s *Store) State() models.State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneState(s.state)
}

// Card returns a copy of the loaded card with the given id.
func (s *Store) Card(id int) (*models.Card, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	card, ok := s.state.CardByID(id)
	if !ok {
		return nil, false
	}
	c := cloneCard(*card)
	return &c, true
}

// Subscribe registers a listener for subsequent dispatches.
func (s *Store) Subscribe(l Listener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, l)
}
