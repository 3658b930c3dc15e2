package announce

import (
	"github.com/dshills/relay/announce/observer"
	"github.com/dshills/relay/sched"
)

// subscribeConfig collects subscription settings.
type subscribeConfig struct {
	sources      []string
	destinations []string
	tags         []string
	filter       FilterFunc
	priority     int
	scheduler    sched.Scheduler
	id           observer.ID
	hasID        bool

	// Queued-subscription settings, used by SubscribeQueued only.
	queueLimit int
	interrupt  bool
	callInfo   bool
	callTag    string
}

// defaultSubscribeConfig returns the default subscription configuration:
// match any source, any destination, any tag, priority 0, queue limit 1,
// interruptible delivery.
func defaultSubscribeConfig() subscribeConfig {
	return subscribeConfig{
		queueLimit: 1,
		interrupt:  true,
	}
}

// SubscribeOption configures a subscription.
type SubscribeOption func(*subscribeConfig)

// WithSources filters the subscription to announcements from the named
// sources. The Any sentinel in the list accepts every source. Default: any.
func WithSources(names ...string) SubscribeOption {
	return func(c *subscribeConfig) {
		c.sources = names
	}
}

// WithDestinations filters the subscription to announcements addressed to
// the named destinations. The Any sentinel in the list accepts every
// destination. Default: any.
func WithDestinations(names ...string) SubscribeOption {
	return func(c *subscribeConfig) {
		c.destinations = names
	}
}

// WithTags filters the subscription to announcements with the given tags.
// Entries may be Unix-shell-style glob patterns ("temp.*"); patterns are
// compiled once at subscribe time. Default: any tag.
func WithTags(tags ...string) SubscribeOption {
	return func(c *subscribeConfig) {
		c.tags = tags
	}
}

// WithFilter adds a predicate over the full announcement, evaluated after
// the source/destination/tag filters. A subscription with a filter cannot be
// match-cached, since the predicate may inspect the value.
func WithFilter(f FilterFunc) SubscribeOption {
	return func(c *subscribeConfig) {
		c.filter = f
	}
}

// WithPriority sets the dispatch priority. Higher-priority subscribers are
// called first; equal priorities fire in subscription order. Default: 0.
func WithPriority(priority int) SubscribeOption {
	return func(c *subscribeConfig) {
		c.priority = priority
	}
}

// WithScheduler defers delivery through the given scheduler instead of
// invoking the callback on the sending goroutine.
func WithScheduler(s sched.Scheduler) SubscribeOption {
	return func(c *subscribeConfig) {
		c.scheduler = s
	}
}

// WithID requests an explicit subscription ID instead of a generated one.
// Subscribing fails with observer.ErrDuplicateID if the ID is taken.
func WithID(id observer.ID) SubscribeOption {
	return func(c *subscribeConfig) {
		c.id = id
		c.hasID = true
	}
}

// WithQueueLimit bounds the number of undelivered queued calls for this
// subscription; further announcements are dropped until a slot frees up.
// Default 1; a value <= 0 removes the bound. Used by SubscribeQueued.
func WithQueueLimit(limit int) SubscribeOption {
	return func(c *subscribeConfig) {
		c.queueLimit = limit
	}
}

// WithInterrupt controls whether queued deliveries may run while the
// destination goroutine is blocked in a wait (true, the default) or only in
// its normal loop iteration. Used by SubscribeQueued.
func WithInterrupt(interrupt bool) SubscribeOption {
	return func(c *subscribeConfig) {
		c.interrupt = interrupt
	}
}

// WithCallInfo attaches delivery metadata (the scheduling timestamp) to
// queued callbacks via Message.Info. Used by SubscribeQueued.
func WithCallInfo() SubscribeOption {
	return func(c *subscribeConfig) {
		c.callInfo = true
	}
}

// WithCallTag labels this subscription's scheduled calls for logging.
// Used by SubscribeQueued.
func WithCallTag(tag string) SubscribeOption {
	return func(c *subscribeConfig) {
		c.callTag = tag
	}
}
