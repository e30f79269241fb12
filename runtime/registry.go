package runtime

import (
	"sync"
)

// Notifier is woken up whenever a collection it watches changes.
type Notifier interface {
	Notify()
}

type Set map[string]struct{}

type Registry struct {
	mu          sync.RWMutex
	watchers    map[string]Notifier // map subscription -> Notifier
	collections map[string]Set      // map collection to subscriptions
}

func NewRegistry() *Registry {
	return &Registry{
		watchers:    make(map[string]Notifier),
		collections: make(map[string]Set),
	}
}

// NotifiersFor retrieves every live watcher of a collection.
// Returns nil if nobody watches it.
func (r *Registry) NotifiersFor(collection string) []Notifier {
	r.mu.RLock()
	defer r.mu.RUnlock()

	members, ok := r.collections[collection]
	if !ok {
		return nil
	}
	var active []Notifier
	for subscriptionID := range members {
		if n, exists := r.watchers[subscriptionID]; exists {
			active = append(active, n)
		}
	}
	return active
}

// Notify wakes up every watcher of a collection.
func (r *Registry) Notify(collection string) {
	for _, n := range r.NotifiersFor(collection) {
		n.Notify()
	}
}

// Subscribe registers a watcher for a collection.
// If the collection is not yet watched, its entry is initialized on the fly.
func (r *Registry) Subscribe(subscriptionID, collection string, n Notifier) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.watchers[subscriptionID] = n

	if _, ok := r.collections[collection]; !ok {
		r.collections[collection] = make(Set)
	}
	r.collections[collection][subscriptionID] = struct{}{}
}

// Unsubscribe removes a watcher and drops the collection entry once empty.
func (r *Registry) Unsubscribe(subscriptionID, collection string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.watchers, subscriptionID)

	if members, ok := r.collections[collection]; ok {
		delete(members, subscriptionID)

		if len(members) == 0 {
			delete(r.collections, collection)
		}
	}
}

// Len returns the number of live subscriptions.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.watchers)
}
