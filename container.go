package provision

import (
	"errors"
	"fmt"
	"log/slog"
	"reflect"
	"sync"
	"sync/atomic"
)

type Container struct {
	buildLock sync.Mutex
	// Protects access to bindings, order and listeners during registration/build.
	regMu sync.RWMutex
	// Indicates whether the container has been built/finalized.
	built atomic.Bool

	// bindings maps every registered key to its binding. This is the source of truth.
	bindings map[Key]Binding
	// order records keys in registration order for Bindings and Validate.
	order []Key

	// listeners are consulted in registration order after every successful construction.
	listeners []listenerEntry

	literals LiteralProvider
	logger   *slog.Logger
}

func New(opts ...Option) *Container {
	c := &Container{
		bindings: make(map[Key]Binding),
		logger:   discardLogger(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Register binds key to a constructor. The constructor must be a function taking one argument
// per dependency key, in the same order, and returning (T) or (T, error) with T assignable to
// key.Type. Dependencies are resolved depth-first, left to right, before the constructor runs.
//
//	c.Register(provision.KeyOf[*Service](), NewService, provision.KeyOf[*Repo](), provision.NamedKey[string]("dsn"))
func (c *Container) Register(key Key, constructor any, deps ...Key) error {
	if key.Type == nil {
		return ErrKeyTypeIsNil
	}
	key = key.normalize()

	b, err := newConstructorBinding(key, constructor, deps)
	if err != nil {
		return err
	}
	return c.addBinding(b)
}

// RegisterInstance binds key to a fixed value. The value is returned as-is on every resolution and is
// never reported to provision listeners, since the container does not construct it.
func (c *Container) RegisterInstance(key Key, instance any) error {
	if key.Type == nil {
		return ErrKeyTypeIsNil
	}
	key = key.normalize()

	b, err := newInstanceBinding(key, instance)
	if err != nil {
		return err
	}
	return c.addBinding(b)
}

func (c *Container) addBinding(b Binding) error {
	c.regMu.Lock()
	defer c.regMu.Unlock()

	if c.built.Load() {
		return ErrRegistrationClosed
	}
	if _, exists := c.bindings[b.key]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateBinding, b.key)
	}
	c.bindings[b.key] = b
	c.order = append(c.order, b.key)

	c.logger.Debug("binding registered", slog.String("key", b.key.String()), slog.String("kind", b.kind.String()))
	return nil
}

// RegisterListener adds a provision listener for every binding selected by matcher.
// Listeners run in registration order.
func (c *Container) RegisterListener(matcher Matcher, listener ProvisionListener) error {
	if matcher == nil {
		return ErrMatcherIsNil
	}
	if listener == nil {
		return ErrListenerIsNil
	}

	c.regMu.Lock()
	defer c.regMu.Unlock()

	if c.built.Load() {
		return ErrRegistrationClosed
	}
	c.listeners = append(c.listeners, listenerEntry{matcher: matcher, listener: listener})

	c.logger.Debug("listener registered", slog.Int("position", len(c.listeners)))
	return nil
}

// Build closes registration. After Build the binding and listener tables are read-only, which
// makes concurrent resolution safe.
//
// If the container has already been built, this method is a no-op.
func (c *Container) Build() error {
	c.buildLock.Lock()
	defer c.buildLock.Unlock()

	if c.built.Load() {
		return nil
	}

	c.regMu.Lock()
	c.built.Store(true)
	c.regMu.Unlock()
	return nil
}

// Validate reports every dependency key that has neither a binding nor a literal, without
// constructing anything. The result joins one MissingBindingError per missing key.
func (c *Container) Validate() error {
	c.regMu.RLock()
	defer c.regMu.RUnlock()

	var errs []error
	seen := make(map[Key]bool)
	for _, key := range c.order {
		for _, dep := range c.bindings[key].dependencies {
			if seen[dep] {
				continue
			}
			seen[dep] = true
			if _, ok := c.bindings[dep]; ok {
				continue
			}
			if _, found, err := c.literalFor(dep); err != nil {
				errs = append(errs, &ConstructionError{Key: dep, Cause: err})
			} else if !found {
				errs = append(errs, &MissingBindingError{Key: dep})
			}
		}
	}
	return errors.Join(errs...)
}

// Bindings returns a snapshot of all bindings in registration order.
func (c *Container) Bindings() []Binding {
	c.regMu.RLock()
	defer c.regMu.RUnlock()

	out := make([]Binding, 0, len(c.order))
	for _, key := range c.order {
		out = append(out, c.bindings[key])
	}
	return out
}

// Resolve returns a new instance for key or panics if it cannot be resolved.
// Prefer ResolveSafe in production code to handle errors gracefully.
func (c *Container) Resolve(key Key) any {
	v, err := c.ResolveSafe(key)
	if err != nil {
		panic(err)
	}
	return v
}

// ResolveSafe constructs the value for key and its transitive dependencies.
// It builds the container first if needed.
//
// The returned error is a *MissingBindingError when some key on the path has no binding, a
// *ConstructionError when a constructor failed, or whatever a provision listener returned.
// Errors from dependencies are returned unchanged. No listener runs for a key whose
// construction, or whose dependency's resolution, failed.
func (c *Container) ResolveSafe(key Key) (any, error) {
	if key.Type == nil {
		return nil, ErrKeyTypeIsNil
	}
	if !c.built.Load() {
		if err := c.Build(); err != nil {
			return nil, err
		}
	}

	v, err := c.resolve(key.normalize(), make([]Key, 0, 8))
	if err != nil {
		c.logger.Debug("provision failed", slog.String("key", key.String()), slog.Any("error", err))
		return nil, err
	}
	return v, nil
}

// ResolveAs resolves key and casts the result to T.
func ResolveAs[T any](c *Container, key Key) (T, error) {
	var zero T
	v, err := c.ResolveSafe(key)
	if err != nil {
		return zero, err
	}
	if v == nil {
		return zero, nil
	}
	x, ok := v.(T)
	if !ok {
		return zero, fmt.Errorf("value for %s is %v, not of requested type %v", key, reflect.TypeOf(v), reflect.TypeOf((*T)(nil)).Elem())
	}
	return x, nil
}

// Get resolves the unnamed key for T.
//
//	svc, err := provision.Get[*Service](c)
func Get[T any](c *Container) (T, error) {
	return ResolveAs[T](c, KeyOf[T]())
}

// GetNamed resolves the key for T qualified by name.
func GetNamed[T any](c *Container, name string) (T, error) {
	return ResolveAs[T](c, NamedKey[T](name))
}
