package announce

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/dshills/relay/announce/observer"
	"github.com/dshills/relay/announce/pattern"
	"github.com/dshills/relay/sched"
)

// subscription is a registered callback together with its invocation
// strategy: either the callback itself (direct) or a wrapper that hands a
// deferred call to a scheduler (queued).
type subscription struct {
	invoke func(msg Message) error
}

// Pool routes announcements between sources and destinations.
//
// Any goroutine can send an announcement or subscribe with source,
// destination and tag filters. On Send, the announcement is checked against
// every subscription's filter; matching subscribers are invoked in priority
// order, either inline on the sending goroutine (direct subscriptions) or by
// enqueueing a call on the subscriber's scheduler (queued subscriptions).
type Pool struct {
	log      zerolog.Logger
	registry *observer.Registry[key, *subscription]

	mu         sync.Mutex
	schedulers map[observer.ID]sched.Scheduler

	sent      atomic.Uint64
	delivered atomic.Uint64
	dropped   atomic.Uint64
}

// PoolOption configures a Pool.
type PoolOption func(*Pool)

// WithLogger sets the pool's logger, used for dropped queued deliveries.
// The default logger is a no-op.
func WithLogger(log zerolog.Logger) PoolOption {
	return func(p *Pool) {
		p.log = log
	}
}

// NewPool creates an announcement pool.
func NewPool(opts ...PoolOption) *Pool {
	p := &Pool{
		log:        zerolog.Nop(),
		registry:   observer.NewRegistry[key, *subscription](),
		schedulers: make(map[observer.ID]sched.Scheduler),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// SubscribeDirect registers a callback invoked on the sending goroutine.
// Delivery filters and priority are set through options. If WithScheduler is
// given, delivery goes through the scheduler instead of running inline.
//
// Returns the subscription ID used to unsubscribe later.
func (p *Pool) SubscribeDirect(cb Callback, opts ...SubscribeOption) (observer.ID, error) {
	if cb == nil {
		return 0, ErrNilCallback
	}
	cfg := defaultSubscribeConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	match, err := buildMatcher(cfg)
	if err != nil {
		return 0, fmt.Errorf("subscribe: %w", err)
	}

	sub := &subscription{invoke: cb}
	if cfg.scheduler != nil {
		sub.invoke = p.scheduledInvoke(cb, cfg)
	}

	obs := observer.Observer[key, *subscription]{
		Callback: sub,
		Filter:   match,
		Priority: cfg.priority,
		// The value-inspecting filter is the only part of the predicate that
		// can depend on the payload; without it the match is key-only.
		Cacheable: cfg.filter == nil,
	}

	var id observer.ID
	if cfg.hasID {
		if err := p.registry.AddWithID(cfg.id, obs); err != nil {
			return 0, fmt.Errorf("subscribe: %w", err)
		}
		id = cfg.id
	} else {
		id = p.registry.Add(obs)
	}

	if cfg.scheduler != nil {
		p.mu.Lock()
		p.schedulers[id] = cfg.scheduler
		p.mu.Unlock()
	}
	return id, nil
}

// SubscribeQueued registers a callback delivered on the destination loop's
// goroutine through a bounded queue, rather than on the sending goroutine.
// If more than WithQueueLimit calls for this subscription are already
// pending, new announcements are dropped until a slot frees up.
func (p *Pool) SubscribeQueued(cb Callback, loop *sched.Loop, opts ...SubscribeOption) (observer.ID, error) {
	if cb == nil {
		return 0, ErrNilCallback
	}
	cfg := defaultSubscribeConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	qs := sched.NewQueueScheduler(loop,
		sched.WithQueueLimit(cfg.queueLimit),
		sched.WithInterrupt(cfg.interrupt),
		sched.WithTag(cfg.callTag),
		sched.WithQueueLogger(p.log),
	)
	return p.SubscribeDirect(cb, append(opts, WithScheduler(qs))...)
}

// Unsubscribe removes a subscription. Pending scheduled calls for the
// subscription are cancelled best-effort; a call already dequeued on the
// destination goroutine cannot be retracted. Unsubscribing an unknown ID
// returns observer.ErrUnknownID.
func (p *Pool) Unsubscribe(id observer.ID) error {
	if err := p.registry.Remove(id); err != nil {
		return fmt.Errorf("unsubscribe %d: %w", id, err)
	}
	p.mu.Lock()
	s := p.schedulers[id]
	delete(p.schedulers, id)
	p.mu.Unlock()
	if s != nil {
		s.Clear()
	}
	return nil
}

// Send dispatches an announcement. Matching subscribers fire in priority
// order on the calling goroutine; queued subscribers only enqueue and never
// block the sender. An empty destination defaults to Any; an empty tag means
// the announcement carries no tag.
//
// A direct callback returning an error aborts dispatch of the remaining
// lower-priority subscribers and propagates to the caller.
func (p *Pool) Send(source, destination, tag string, value any) error {
	if destination == "" {
		destination = Any
	}
	p.sent.Add(1)

	subs := p.registry.Find(key{src: source, dst: destination, tag: tag}, value)
	if len(subs) == 0 {
		return nil
	}

	msg := Message{Source: source, Destination: destination, Tag: tag, Value: value}
	for _, sub := range subs {
		if err := sub.invoke(msg); err != nil {
			return fmt.Errorf("send %s to %s: %w", source, destination, err)
		}
		p.delivered.Add(1)
	}
	return nil
}

// Stats contains pool counters.
type Stats struct {
	// Sent is the number of Send calls.
	Sent uint64

	// Delivered is the number of callback invocations and enqueues.
	Delivered uint64

	// Dropped is the number of queued deliveries discarded by backpressure.
	Dropped uint64

	// Subscriptions is the current number of registered subscriptions.
	Subscriptions int
}

// Stats returns current pool counters.
func (p *Pool) Stats() Stats {
	return Stats{
		Sent:          p.sent.Load(),
		Delivered:     p.delivered.Load(),
		Dropped:       p.dropped.Load(),
		Subscriptions: p.registry.Count(),
	}
}

// scheduledInvoke wraps cb so dispatch builds a deferred call and hands it to
// the subscription's scheduler instead of running inline.
func (p *Pool) scheduledInvoke(cb Callback, cfg subscribeConfig) func(Message) error {
	scheduler := cfg.scheduler
	withInfo := cfg.callInfo
	return func(msg Message) error {
		if withInfo {
			msg.Info = &CallInfo{Scheduled: time.Now()}
		}
		call := scheduler.BuildCall(func() (any, error) {
			return nil, cb(msg)
		}, false)
		if !scheduler.Schedule(call) {
			p.dropped.Add(1)
		}
		return nil
	}
}

// buildMatcher compiles a subscription's filters into a single predicate
// over the announcement key and value.
//
// Matching rules, per field:
//   - source/destination: an Any filter (the default) matches everything;
//     an explicit name set matches the All broadcast sentinel or a listed
//     name.
//   - tag: no tag filter matches every tag. With a filter, a tagged
//     announcement must hit the exact set or a compiled pattern. An untagged
//     announcement bypasses the tag filter entirely; broadcast senders rely
//     on this, so tag-filtered subscribers still see untagged announcements.
func buildMatcher(cfg subscribeConfig) (func(k key, value any) bool, error) {
	var tagSet *pattern.Set
	if len(cfg.tags) > 0 {
		var err error
		tagSet, err = pattern.Compile(cfg.tags)
		if err != nil {
			return nil, err
		}
	}
	srcs, srcAny := nameSet(cfg.sources)
	dsts, dstAny := nameSet(cfg.destinations)
	filter := cfg.filter

	return func(k key, value any) bool {
		if tagSet != nil && k.tag != "" && !tagSet.Match(k.tag) {
			return false
		}
		if !srcAny && k.src != All {
			if _, ok := srcs[k.src]; !ok {
				return false
			}
		}
		if !dstAny && k.dst != All {
			if _, ok := dsts[k.dst]; !ok {
				return false
			}
		}
		if filter != nil {
			return filter(Message{Source: k.src, Destination: k.dst, Tag: k.tag, Value: value})
		}
		return true
	}, nil
}

// nameSet converts a filter name list into a lookup set. An empty list or a
// list containing the Any sentinel matches everything.
func nameSet(names []string) (map[string]struct{}, bool) {
	if len(names) == 0 {
		return nil, true
	}
	set := make(map[string]struct{}, len(names))
	matchAll := false
	for _, n := range names {
		if n == Any {
			matchAll = true
		}
		set[n] = struct{}{}
	}
	return set, matchAll
}
