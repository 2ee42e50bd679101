package session

import "sync"

// Registry scopes state to one browser session id.
type Registry[S any] struct {
	mu     sync.Mutex
	states map[string]S
	create func(id string) S
}

func NewRegistry[S any](create func(id string) S) *Registry[S] {
	return &Registry[S]{
		states: make(map[string]S),
		create: create,
	}
}

// Get returns the state for id, building it on first use.
func (registry *Registry[S]) Get(id string) S {
	registry.mu.Lock()
	defer registry.mu.Unlock()

	if state, ok := registry.states[id]; ok {
		return state
	}
	state := registry.create(id)
	registry.states[id] = state
	return state
}

func (registry *Registry[S]) Drop(id string) {
	registry.mu.Lock()
	defer registry.mu.Unlock()
	delete(registry.states, id)
}

func (registry *Registry[S]) Len() int {
	registry.mu.Lock()
	defer registry.mu.Unlock()
	return len(registry.states)
}
