package provision

import (
	"fmt"
)

// PostConstructor is an optional interface a constructed value may implement to run
// a lifecycle hook immediately after it, and all of its dependencies, were built.
//
// The hook is driven by PostConstructListener, so it only runs for values produced by
// a constructor binding and only when that construction succeeded. If PostConstruct
// returns an error, resolution fails with that error.
//
// Note: This interface is intentionally free of references to container types so it can
// be implemented by values in other packages without import cycles.
type PostConstructor interface {
	PostConstruct() error
}

// PostConstructListener calls PostConstruct on provisioned instances that implement PostConstructor.
// Instances that do not implement it are ignored.
func PostConstructListener() ProvisionListener {
	return ListenerFunc(func(inv *ProvisionInvocation) error {
		instance, err := inv.Provision()
		if err != nil {
			return err
		}
		hook, ok := instance.(PostConstructor)
		if !ok {
			return nil
		}
		if err = hook.PostConstruct(); err != nil {
			return fmt.Errorf("post-construct hook for %s failed: %w", inv.Key(), err)
		}
		return nil
	})
}

// RegisterPostConstruct registers PostConstructListener for every binding whose type implements PostConstructor.
func (c *Container) RegisterPostConstruct() error {
	return c.RegisterListener(Implements[PostConstructor](), PostConstructListener())
}
