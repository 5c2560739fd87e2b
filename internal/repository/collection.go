package repository

import (
	"sync"
	"time"

	"github.com/blizon/ops-dashboard/internal/domain"
)

// ChangeListener receives the completion signal of every successful mutation.
// Listeners run synchronously after the collection lock has been released.
type ChangeListener interface {
	OnChange(event domain.ChangeEvent)
}

// ChangeListenerFunc adapts a plain function to ChangeListener
type ChangeListenerFunc func(event domain.ChangeEvent)

func (f ChangeListenerFunc) OnChange(event domain.ChangeEvent) { f(event) }

// Collection is one keyed entity collection. Items are kept newest first:
// an upsert of an unknown id prepends, an upsert of a known id replaces the
// record in place.
type Collection[ID ~string, T any] struct {
	mu        sync.RWMutex
	kind      domain.EntityKind
	items     []T
	idOf      func(T) ID
	labelOf   func(T) string
	clone     func(T) T
	listeners []ChangeListener
	now       func() time.Time
}

func newCollection[ID ~string, T any](
	kind domain.EntityKind,
	seed []T,
	idOf func(T) ID,
	labelOf func(T) string,
	clone func(T) T,
) *Collection[ID, T] {
	items := make([]T, 0, len(seed))
	for _, item := range seed {
		items = append(items, clone(item))
	}
	return &Collection[ID, T]{
		kind:    kind,
		items:   items,
		idOf:    idOf,
		labelOf: labelOf,
		clone:   clone,
		now:     time.Now,
	}
}

// Kind returns the entity kind stored in this collection
func (c *Collection[ID, T]) Kind() domain.EntityKind {
	return c.kind
}

// Subscribe registers a listener for future change events
func (c *Collection[ID, T]) Subscribe(listener ChangeListener) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.listeners = append(c.listeners, listener)
}

// Upsert replaces the item with the same id in place, or prepends it
func (c *Collection[ID, T]) Upsert(item T) domain.ChangeEvent {
	item = c.clone(item)
	id := c.idOf(item)

	c.mu.Lock()
	op := domain.ChangeCreated
	if i := c.indexOf(id); i >= 0 {
		c.items[i] = item
		op = domain.ChangeUpdated
	} else {
		c.items = append([]T{item}, c.items...)
	}
	listeners := c.listenersLocked()
	c.mu.Unlock()

	event := domain.ChangeEvent{
		Kind:  c.kind,
		Op:    op,
		ID:    string(id),
		Label: c.labelOf(item),
		At:    c.now(),
	}
	notify(listeners, event)
	return event
}

// Remove deletes the item with the given id. Removing an absent id is a
// no-op and reports false.
func (c *Collection[ID, T]) Remove(id ID) (domain.ChangeEvent, bool) {
	c.mu.Lock()
	i := c.indexOf(id)
	if i < 0 {
		c.mu.Unlock()
		return domain.ChangeEvent{}, false
	}
	removed := c.items[i]
	c.items = append(c.items[:i:i], c.items[i+1:]...)
	listeners := c.listenersLocked()
	c.mu.Unlock()

	event := domain.ChangeEvent{
		Kind:  c.kind,
		Op:    domain.ChangeRemoved,
		ID:    string(id),
		Label: c.labelOf(removed),
		At:    c.now(),
	}
	notify(listeners, event)
	return event, true
}

// List returns a copy of the collection in store order
func (c *Collection[ID, T]) List() []T {
	return c.Filter(nil)
}

// Filter returns copies of the items matching keep, in store order.
// A nil predicate keeps everything.
func (c *Collection[ID, T]) Filter(keep func(T) bool) []T {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]T, 0, len(c.items))
	for _, item := range c.items {
		if keep == nil || keep(item) {
			out = append(out, c.clone(item))
		}
	}
	return out
}

// Find looks up an item by id
func (c *Collection[ID, T]) Find(id ID) (T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if i := c.indexOf(id); i >= 0 {
		return c.clone(c.items[i]), true
	}
	var zero T
	return zero, false
}

// Count returns the number of stored items
func (c *Collection[ID, T]) Count() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

func (c *Collection[ID, T]) indexOf(id ID) int {
	for i := range c.items {
		if c.idOf(c.items[i]) == id {
			return i
		}
	}
	return -1
}

func (c *Collection[ID, T]) listenersLocked() []ChangeListener {
	if len(c.listeners) == 0 {
		return nil
	}
	out := make([]ChangeListener, len(c.listeners))
	copy(out, c.listeners)
	return out
}

func notify(listeners []ChangeListener, event domain.ChangeEvent) {
	for _, l := range listeners {
		l.OnChange(event)
	}
}
