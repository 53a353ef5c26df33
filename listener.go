package provision

import (
	"reflect"
	"sync"
	"sync/atomic"
)

// Matcher selects the bindings a listener is interested in.
type Matcher func(b Binding) bool

// ProvisionListener is notified after the instance of a matched binding has been constructed.
// It is never called for a binding whose own construction failed, nor when any of the
// binding's dependencies failed to resolve. A returned error aborts the resolution and
// is passed to the caller unchanged.
type ProvisionListener interface {
	OnProvision(inv *ProvisionInvocation) error
}

// ListenerFunc adapts an ordinary function to ProvisionListener.
type ListenerFunc func(inv *ProvisionInvocation) error

func (f ListenerFunc) OnProvision(inv *ProvisionInvocation) error {
	return f(inv)
}

type listenerEntry struct {
	matcher  Matcher
	listener ProvisionListener
}

// ProvisionInvocation is the handle passed to a listener for one construction event.
// It must not be retained: once the listener returns, Provision reports ErrInvocationSpent.
type ProvisionInvocation struct {
	binding  Binding
	instance any
	spent    atomic.Bool
}

func (inv *ProvisionInvocation) Binding() Binding { return inv.binding }

func (inv *ProvisionInvocation) Key() Key { return inv.binding.key }

// Provision returns the fully constructed instance.
func (inv *ProvisionInvocation) Provision() (any, error) {
	if inv.spent.Load() {
		return nil, ErrInvocationSpent
	}
	return inv.instance, nil
}

// Any matches every binding.
func Any() Matcher {
	return func(Binding) bool { return true }
}

// KeyIs matches the binding registered under key.
func KeyIs(key Key) Matcher {
	key = key.normalize()
	return func(b Binding) bool { return b.key == key }
}

// TypeIs matches bindings whose key type is exactly T, whatever their name.
func TypeIs[T any]() Matcher {
	t := reflect.TypeOf((*T)(nil)).Elem()
	return func(b Binding) bool { return b.key.Type == t }
}

// Implements matches bindings whose key type, or a pointer to it, implements the interface I.
// Non-interface type arguments never match.
func Implements[I any]() Matcher {
	iface := reflect.TypeOf((*I)(nil)).Elem()
	if iface.Kind() != reflect.Interface {
		return func(Binding) bool { return false }
	}
	return func(b Binding) bool {
		t := b.key.Type
		if t.Implements(iface) {
			return true
		}
		return t.Kind() != reflect.Pointer && t.Kind() != reflect.Interface && reflect.PointerTo(t).Implements(iface)
	}
}

func Not(m Matcher) Matcher {
	return func(b Binding) bool { return !m(b) }
}

func And(ms ...Matcher) Matcher {
	return func(b Binding) bool {
		for _, m := range ms {
			if !m(b) {
				return false
			}
		}
		return true
	}
}

func Or(ms ...Matcher) Matcher {
	return func(b Binding) bool {
		for _, m := range ms {
			if m(b) {
				return true
			}
		}
		return false
	}
}

// Recorder is a ProvisionListener that remembers the keys it was notified about, in order.
// It is safe for concurrent use.
type Recorder struct {
	mu   sync.Mutex
	keys []Key
}

func (r *Recorder) OnProvision(inv *ProvisionInvocation) error {
	r.mu.Lock()
	r.keys = append(r.keys, inv.Key())
	r.mu.Unlock()
	return nil
}

// Keys returns a snapshot of the recorded keys.
func (r *Recorder) Keys() []Key {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Key, len(r.keys))
	copy(out, r.keys)
	return out
}

// Count returns how many provisions were recorded.
func (r *Recorder) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.keys)
}
