// Package event provides typed, synchronous publish/subscribe topics.
//
// A Topic delivers every published value to its handlers on the caller's
// goroutine, in subscription order. Delivery is re-entrant: a handler may
// publish to the same or another topic, and that nested delivery completes
// before the outer Publish moves on to the next handler. Topics are not
// safe for concurrent use; they belong to a single simulation goroutine.
package event

// Handler receives a published value.
type Handler[T any] func(T)

type entry[T any] struct {
	id uint64
	fn Handler[T]
}

// Topic is a named event channel carrying values of type T.
type Topic[T any] struct {
	name     string
	nextID   uint64
	handlers []entry[T]
}

// NewTopic creates an empty topic.
func NewTopic[T any](name string) *Topic[T] {
	return &Topic[T]{name: name}
}

// Name returns the topic name (e.g. "fastener-changed").
func (t *Topic[T]) Name() string {
	return t.name
}

// Subscribe registers fn and returns a handle that removes it again.
func (t *Topic[T]) Subscribe(fn Handler[T]) *Subscription {
	t.nextID++
	id := t.nextID
	t.handlers = append(t.handlers, entry[T]{id: id, fn: fn})
	return &Subscription{cancel: func() { t.remove(id) }}
}

// Publish delivers v to a snapshot of the current handlers. Handlers
// removed during delivery are skipped; handlers added during delivery
// only see later publishes.
func (t *Topic[T]) Publish(v T) {
	if len(t.handlers) == 0 {
		return
	}
	snapshot := make([]entry[T], len(t.handlers))
	copy(snapshot, t.handlers)
	for _, e := range snapshot {
		if !t.has(e.id) {
			continue
		}
		e.fn(v)
	}
}

// Len returns the number of live subscriptions.
func (t *Topic[T]) Len() int {
	return len(t.handlers)
}

func (t *Topic[T]) has(id uint64) bool {
	for _, e := range t.handlers {
		if e.id == id {
			return true
		}
	}
	return false
}

func (t *Topic[T]) remove(id uint64) {
	for i, e := range t.handlers {
		if e.id == id {
			t.handlers = append(t.handlers[:i], t.handlers[i+1:]...)
			return
		}
	}
}

// Subscription is a handle to a registered handler.
type Subscription struct {
	cancel func()
}

// Unsubscribe removes the handler. Calling it more than once is a no-op.
func (s *Subscription) Unsubscribe() {
	if s == nil || s.cancel == nil {
		return
	}
	s.cancel()
	s.cancel = nil
}

// Group collects subscriptions so an owner can release them together.
type Group struct {
	subs []*Subscription
}

// Add appends s to the group.
func (g *Group) Add(s *Subscription) {
	g.subs = append(g.subs, s)
}

// Len returns the number of held subscriptions.
func (g *Group) Len() int {
	return len(g.subs)
}

// Close unsubscribes everything in the group.
func (g *Group) Close() {
	for _, s := range g.subs {
		s.Unsubscribe()
	}
	g.subs = nil
}
