package provision

import (
	"fmt"
	"reflect"
)

var errorType = reflect.TypeOf((*error)(nil)).Elem()

// Binding describes how the container produces the value for a key.
// Bindings are created at registration time and never change afterwards.
type Binding struct {
	key          Key
	kind         BindingKind
	dependencies []Key
	constructor  reflect.Value
	instance     any
}

// Key returns the key the binding was registered under.
func (b Binding) Key() Key { return b.key }

// Kind reports whether the binding is constructed or a fixed instance.
func (b Binding) Kind() BindingKind { return b.kind }

// Dependencies returns a copy of the dependency keys in declaration order.
func (b Binding) Dependencies() []Key {
	out := make([]Key, len(b.dependencies))
	copy(out, b.dependencies)
	return out
}

func (b Binding) String() string {
	return fmt.Sprintf("%s binding for %s", b.kind, b.key)
}

// newConstructorBinding checks that constructor is a func accepting one argument per dependency key
// and returning (T) or (T, error), with T assignable to key.Type.
func newConstructorBinding(key Key, constructor any, deps []Key) (Binding, error) {
	if constructor == nil {
		return Binding{}, fmt.Errorf("%w: constructor for %s is nil", ErrInvalidConstructor, key)
	}
	fn := reflect.ValueOf(constructor)
	fnType := fn.Type()
	if fnType.Kind() != reflect.Func {
		return Binding{}, fmt.Errorf("%w: constructor for %s must be a function, got %v", ErrInvalidConstructor, key, fnType)
	}
	if fnType.IsVariadic() {
		return Binding{}, fmt.Errorf("%w: constructor for %s must not be variadic", ErrInvalidConstructor, key)
	}

	switch fnType.NumOut() {
	case 1:
	case 2:
		if fnType.Out(1) != errorType {
			return Binding{}, fmt.Errorf("%w: second return value of constructor for %s must be error, got %v", ErrInvalidConstructor, key, fnType.Out(1))
		}
	default:
		return Binding{}, fmt.Errorf("%w: constructor for %s must return (T) or (T, error)", ErrInvalidConstructor, key)
	}
	if !fnType.Out(0).AssignableTo(key.Type) {
		return Binding{}, fmt.Errorf("%w: constructor returns %v, not assignable to %s", ErrInvalidConstructor, fnType.Out(0), key)
	}

	if fnType.NumIn() != len(deps) {
		return Binding{}, fmt.Errorf("%w: constructor for %s takes %d arguments, %d dependency keys declared", ErrInvalidConstructor, key, fnType.NumIn(), len(deps))
	}
	normalized := make([]Key, len(deps))
	for i, dep := range deps {
		if dep.Type == nil {
			return Binding{}, fmt.Errorf("%w: dependency %d of %s", ErrKeyTypeIsNil, i, key)
		}
		if !dep.Type.AssignableTo(fnType.In(i)) {
			return Binding{}, fmt.Errorf("%w: dependency %s is not assignable to argument %d (%v) of constructor for %s", ErrInvalidConstructor, dep, i, fnType.In(i), key)
		}
		normalized[i] = dep.normalize()
	}

	return Binding{
		key:          key,
		kind:         ConstructorBinding,
		dependencies: normalized,
		constructor:  fn,
	}, nil
}

func newInstanceBinding(key Key, instance any) (Binding, error) {
	if instance == nil {
		return Binding{}, ErrInstanceIsNil
	}
	if t := reflect.TypeOf(instance); !t.AssignableTo(key.Type) {
		return Binding{}, fmt.Errorf("instance of type %v is not assignable to %s", t, key)
	}
	return Binding{key: key, kind: InstanceBinding, instance: asKeyType(key, reflect.ValueOf(instance))}, nil
}

// construct calls the constructor with already-resolved arguments. A returned error or a
// panic is reported as the cause; the caller wraps it in a ConstructionError.
func (b Binding) construct(args []any) (instance any, cause error) {
	defer func() {
		if rec := recover(); rec != nil {
			instance = nil
			cause = fmt.Errorf("%w: %v", ErrConstructorPanic, rec)
		}
	}()

	fnType := b.constructor.Type()
	in := make([]reflect.Value, len(args))
	for i, arg := range args {
		if arg == nil {
			in[i] = reflect.Zero(fnType.In(i))
			continue
		}
		in[i] = reflect.ValueOf(arg)
	}

	out := b.constructor.Call(in)
	if len(out) == 2 && !out[1].IsNil() {
		return nil, out[1].Interface().(error)
	}
	return asKeyType(b.key, out[0]), nil
}

// asKeyType stores v with the key's own dynamic type, so an unnamed []string bound under
// `type tags []string` comes back out as tags. Interface keys keep the concrete value.
func asKeyType(key Key, v reflect.Value) any {
	if key.Type.Kind() != reflect.Interface && v.Type() != key.Type {
		v = v.Convert(key.Type)
	}
	return v.Interface()
}
