package provision

import (
	"fmt"
	"log/slog"
	"strings"
)

// resolve walks the dependency graph depth-first. path holds the keys currently being
// constructed and only guards against unbounded recursion on a cyclic graph.
//
// Tables are only read here; Build has closed registration before the first call.
func (c *Container) resolve(key Key, path []Key) (any, error) {
	c.regMu.RLock()
	b, ok := c.bindings[key]
	c.regMu.RUnlock()

	if !ok {
		v, found, err := c.literalFor(key)
		if err != nil {
			return nil, &ConstructionError{Key: key, Cause: err}
		}
		if !found {
			return nil, &MissingBindingError{Key: key}
		}
		return v, nil
	}

	if b.kind == InstanceBinding {
		return b.instance, nil
	}

	for _, k := range path {
		if k == key {
			return nil, &ConstructionError{Key: key, Cause: fmt.Errorf("%w: %s", ErrDependencyCycle, joinPath(path, key))}
		}
	}
	path = append(path, key)

	args := make([]any, len(b.dependencies))
	for i, dep := range b.dependencies {
		v, err := c.resolve(dep, path)
		if err != nil {
			// Unchanged: the caller sees the failure of the node that actually broke.
			return nil, err
		}
		args[i] = v
	}

	instance, cause := b.construct(args)
	if cause != nil {
		return nil, &ConstructionError{Key: key, Cause: cause}
	}

	if err := c.notify(b, instance); err != nil {
		return nil, err
	}
	return instance, nil
}

// notify runs every matching listener, in registration order, for a successfully constructed instance.
// The first listener error is returned as-is and the remaining listeners are skipped.
func (c *Container) notify(b Binding, instance any) error {
	c.logger.Debug("instance provisioned", slog.String("key", b.key.String()))

	c.regMu.RLock()
	listeners := c.listeners
	c.regMu.RUnlock()

	for _, entry := range listeners {
		if !entry.matcher(b) {
			continue
		}
		inv := &ProvisionInvocation{binding: b, instance: instance}
		err := entry.listener.OnProvision(inv)
		inv.spent.Store(true)
		if err != nil {
			return err
		}
	}
	return nil
}

func joinPath(path []Key, last Key) string {
	parts := make([]string, 0, len(path)+1)
	for _, k := range path {
		parts = append(parts, k.String())
	}
	parts = append(parts, last.String())
	return strings.Join(parts, pathSep)
}
