package observer

import (
	"sort"
	"sync"
)

// ID identifies an observer within its owning registry. IDs are minted by a
// monotonic counter and are never reused for the registry's lifetime.
type ID int64

// Observer is a (filter, callback, priority) entry stored in a Registry.
// The callback type C is opaque to the registry; it is returned from Find in
// dispatch order and invoked by the caller.
type Observer[K comparable, C any] struct {
	// Callback is the value handed back by Find for matching keys.
	Callback C

	// Filter decides whether the observer matches a key/value pair.
	// A nil filter matches everything.
	Filter func(key K, value any) bool

	// Priority determines dispatch order. Higher values are returned first;
	// ties preserve insertion order.
	Priority int

	// Cacheable marks a filter that depends only on the key, never on the
	// value. Matches for cacheable observers are memoized per key.
	Cacheable bool
}

// entry is a stored observer together with its identity and insertion order.
type entry[K comparable, C any] struct {
	Observer[K, C]
	id  ID
	seq uint64
}

// Registry is a thread-safe store of observers answering "which callbacks
// match this key/value" queries in priority order.
//
// The mutex covers map mutation and the matching scan only. Callbacks
// returned by Find are invoked by the caller strictly after the lock has been
// released, which keeps a callback free to call Add or Remove without
// deadlocking.
type Registry[K comparable, C any] struct {
	mu      sync.Mutex
	nextID  ID
	nextSeq uint64
	entries map[ID]*entry[K, C]
	cache   map[K][]*entry[K, C]
}

// NewRegistry creates an empty registry.
func NewRegistry[K comparable, C any]() *Registry[K, C] {
	return &Registry[K, C]{
		nextID:  1,
		entries: make(map[ID]*entry[K, C]),
		cache:   make(map[K][]*entry[K, C]),
	}
}

// Add stores an observer and returns its freshly minted ID.
func (r *Registry[K, C]) Add(obs Observer[K, C]) ID {
	r.mu.Lock()
	defer r.mu.Unlock()

	id := r.nextID
	r.nextID++
	r.insert(id, obs)
	return id
}

// AddWithID stores an observer under an explicit ID. It returns
// ErrDuplicateID if the ID is already in use. The internal counter is bumped
// past explicit IDs so generated IDs never collide with them.
func (r *Registry[K, C]) AddWithID(id ID, obs Observer[K, C]) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.entries[id]; exists {
		return ErrDuplicateID
	}
	if id >= r.nextID {
		r.nextID = id + 1
	}
	r.insert(id, obs)
	return nil
}

// insert stores the entry and invalidates the match cache.
// Caller must hold r.mu.
func (r *Registry[K, C]) insert(id ID, obs Observer[K, C]) {
	r.entries[id] = &entry[K, C]{
		Observer: obs,
		id:       id,
		seq:      r.nextSeq,
	}
	r.nextSeq++
	if obs.Cacheable {
		r.cache = make(map[K][]*entry[K, C])
	}
}

// Remove deletes the observer with the given ID. Removing an ID that was
// never issued (or already removed) returns ErrUnknownID; this policy is
// fixed so double-removal is always observable to the caller.
func (r *Registry[K, C]) Remove(id ID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, exists := r.entries[id]
	if !exists {
		return ErrUnknownID
	}
	delete(r.entries, id)
	if e.Cacheable {
		r.cache = make(map[K][]*entry[K, C])
	}
	return nil
}

// Find returns the callbacks of every observer matching the key/value pair,
// sorted by priority descending with ties in insertion order.
//
// Matches for cacheable observers are memoized per key; non-cacheable
// observers are re-evaluated on every call. The scan runs under the registry
// mutex, but the returned callbacks are owned by the caller and must be
// invoked only after Find returns.
func (r *Registry[K, C]) Find(key K, value any) []C {
	r.mu.Lock()

	cached, ok := r.cache[key]
	if !ok {
		for _, e := range r.entries {
			if e.Cacheable && r.matches(e, key, value) {
				cached = append(cached, e)
			}
		}
		r.cache[key] = cached
	}

	matched := make([]*entry[K, C], len(cached))
	copy(matched, cached)
	for _, e := range r.entries {
		if !e.Cacheable && r.matches(e, key, value) {
			matched = append(matched, e)
		}
	}
	r.mu.Unlock()

	if len(matched) == 0 {
		return nil
	}
	sort.SliceStable(matched, func(i, j int) bool {
		if matched[i].Priority != matched[j].Priority {
			return matched[i].Priority > matched[j].Priority
		}
		return matched[i].seq < matched[j].seq
	})

	out := make([]C, len(matched))
	for i, e := range matched {
		out[i] = e.Callback
	}
	return out
}

// matches evaluates an entry's filter. Caller must hold r.mu.
func (r *Registry[K, C]) matches(e *entry[K, C], key K, value any) bool {
	if e.Filter == nil {
		return true
	}
	return e.Filter(key, value)
}

// Count returns the number of stored observers.
func (r *Registry[K, C]) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

// Has reports whether an observer with the given ID exists.
func (r *Registry[K, C]) Has(id ID) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, exists := r.entries[id]
	return exists
}
