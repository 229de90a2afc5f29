// Package state holds the client-side view of server data: in-memory item and
// location stores plus a file-backed session. Stores are updated from API
// responses so views stay current without a refetch.
package state

import (
	"sync"

	"github.com/google/uuid"

	"github.com/ghuser/stocktrack/client/warehouse"
)

// ItemStore is a mutex-guarded container of items keyed by id. Mutations
// notify subscribers with a snapshot.
type ItemStore struct {
	mu    sync.RWMutex
	items map[uuid.UUID]warehouse.Item
	order []uuid.UUID // insertion order, newest first
	subs  []chan []warehouse.Item
}

// NewItemStore returns an empty ItemStore.
func NewItemStore() *ItemStore {
	return &ItemStore{items: make(map[uuid.UUID]warehouse.Item)}
}

// Replace swaps the entire contents, e.g. after a list fetch.
func (s *ItemStore) Replace(items []warehouse.Item) {
	s.mu.Lock()
	s.items = make(map[uuid.UUID]warehouse.Item, len(items))
	s.order = s.order[:0]
	for _, item := range items {
		s.items[item.ID] = item
		s.order = append(s.order, item.ID)
	}
	s.mu.Unlock()
	s.notify()
}

// Add inserts a new item at the front (newest first).
func (s *ItemStore) Add(item warehouse.Item) {
	s.mu.Lock()
	if _, exists := s.items[item.ID]; !exists {
		s.order = append([]uuid.UUID{item.ID}, s.order...)
	}
	s.items[item.ID] = item
	s.mu.Unlock()
	s.notify()
}

// Update replaces an existing item in place. Unknown ids are added.
func (s *ItemStore) Update(item warehouse.Item) {
	s.Add(item)
}

// Remove deletes an item by id. Removing an absent id is a no-op.
func (s *ItemStore) Remove(id uuid.UUID) {
	s.mu.Lock()
	if _, exists := s.items[id]; exists {
		delete(s.items, id)
		for i, oid := range s.order {
			if oid == id {
				s.order = append(s.order[:i], s.order[i+1:]...)
				break
			}
		}
	}
	s.mu.Unlock()
	s.notify()
}

// Get returns an item by id.
func (s *ItemStore) Get(id uuid.UUID) (warehouse.Item, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	item, ok := s.items[id]
	return item, ok
}

// List returns a snapshot in store order.
func (s *ItemStore) List() []warehouse.Item {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshotLocked()
}

// Pending returns the items with no location, in store order.
func (s *ItemStore) Pending() []warehouse.Item {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []warehouse.Item
	for _, id := range s.order {
		if item := s.items[id]; item.Location.Unassigned() {
			out = append(out, item)
		}
	}
	return out
}

// Subscribe returns a channel receiving a snapshot after every mutation.
// The channel is buffered by one; a slow consumer drops intermediate
// snapshots rather than blocking mutations.
func (s *ItemStore) Subscribe() <-chan []warehouse.Item {
	ch := make(chan []warehouse.Item, 1)
	s.mu.Lock()
	s.subs = append(s.subs, ch)
	s.mu.Unlock()
	return ch
}

func (s *ItemStore) notify() {
	s.mu.RLock()
	snapshot := s.snapshotLocked()
	subs := s.subs
	s.mu.RUnlock()
	for _, ch := range subs {
		select {
		case ch <- snapshot:
		default:
			// Drop the stale snapshot and queue the fresh one.
			select {
			case <-ch:
			default:
			}
			select {
			case ch <- snapshot:
			default:
			}
		}
	}
}

func (s *ItemStore) snapshotLocked() []warehouse.Item {
	out := make([]warehouse.Item, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.items[id])
	}
	return out
}

// LocationStore is a mutex-guarded container of locations keyed by id.
type LocationStore struct {
	mu        sync.RWMutex
	locations map[uuid.UUID]warehouse.Location
	order     []uuid.UUID
}

// NewLocationStore returns an empty LocationStore.
func NewLocationStore() *LocationStore {
	return &LocationStore{locations: make(map[uuid.UUID]warehouse.Location)}
}

// Replace swaps the entire contents.
func (s *LocationStore) Replace(locs []warehouse.Location) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.locations = make(map[uuid.UUID]warehouse.Location, len(locs))
	s.order = s.order[:0]
	for _, loc := range locs {
		s.locations[loc.ID] = loc
		s.order = append(s.order, loc.ID)
	}
}

// Add inserts a location at the front.
func (s *LocationStore) Add(loc warehouse.Location) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.locations[loc.ID]; !exists {
		s.order = append([]uuid.UUID{loc.ID}, s.order...)
	}
	s.locations[loc.ID] = loc
}

// Remove deletes a location by id.
func (s *LocationStore) Remove(id uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.locations[id]; exists {
		delete(s.locations, id)
		for i, oid := range s.order {
			if oid == id {
				s.order = append(s.order[:i], s.order[i+1:]...)
				break
			}
		}
	}
}

// Get returns a location by id.
func (s *LocationStore) Get(id uuid.UUID) (warehouse.Location, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	loc, ok := s.locations[id]
	return loc, ok
}

// List returns a snapshot in store order.
func (s *LocationStore) List() []warehouse.Location {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]warehouse.Location, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.locations[id])
	}
	return out
}
