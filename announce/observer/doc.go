// Package observer provides a generic, thread-safe store of
// (filter, callback, priority) entries.
//
// A Registry answers "which callbacks match this key/value" queries, sorted
// by priority descending with ties broken by insertion order. It is the
// matching substrate under the announce package's subscription dispatch, but
// carries no announcement semantics itself: filters are arbitrary predicates
// over an opaque key and value.
//
// Observers whose filter depends only on the key can be marked Cacheable,
// letting the registry memoize their matches per key so repeated lookups for
// hot keys stay close to a map read.
//
// The registry mutex covers mutation and the matching scan only; callbacks
// are handed back to the caller and invoked after the lock is released, so a
// callback may itself add or remove observers without deadlocking.
package observer
