package announce

import "time"

// Reserved source/destination names.
const (
	// All is the broadcast sentinel. An announcement sent with source or
	// destination All passes every subscriber's explicit filter for that
	// field.
	All = "all"

	// Any is the wildcard sentinel. A subscriber filtering on Any accepts
	// every announcement; an announcement sent with destination Any reaches
	// only subscribers whose destination filter is Any.
	Any = "any"
)

// Message is a single announcement as delivered to a callback. Messages are
// immutable and transient; they are never stored beyond the dispatch call.
//
// An empty Tag means the announcement carries no tag.
type Message struct {
	// Source names the sender, or is one of the All/Any sentinels.
	Source string

	// Destination names the addressee, or is one of the All/Any sentinels.
	Destination string

	// Tag classifies the announcement. Empty means absent.
	Tag string

	// Value is the opaque payload.
	Value any

	// Info carries scheduling metadata for queued deliveries subscribed with
	// WithCallInfo. It is nil for direct deliveries.
	Info *CallInfo
}

// CallInfo is delivery metadata attached to queued callbacks on request.
type CallInfo struct {
	// Scheduled is when the announcement was handed to the scheduler.
	Scheduled time.Time
}

// Callback handles a delivered announcement. A non-nil error aborts the
// remaining dispatch of the triggering Send call and propagates to the
// sender.
type Callback func(msg Message) error

// FilterFunc is an additional subscriber predicate evaluated after the
// source/destination/tag filters. It sees the full announcement including
// the value.
type FilterFunc func(msg Message) bool

// key is the registry lookup key: the filterable part of an announcement.
type key struct {
	src string
	dst string
	tag string
}
