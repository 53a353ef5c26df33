package provision

import (
	"fmt"
	"reflect"
	"strings"
)

// LiteralProvider is a hook consulted when a named string dependency has no binding.
// - name: the key name of the missing dependency (lower case)
// - targetType: the type expected for that dependency (always a string kind)
// Returns:
// - value: the literal value to use for injection
// - found: whether a value is available
// - err: any error occurred while sourcing the value (e.g., parsing, I/O)
type LiteralProvider func(name string, targetType reflect.Type) (value any, found bool, err error)

// MapLiterals serves literals from a fixed map. Map keys are matched case-insensitively.
func MapLiterals(values map[string]string) LiteralProvider {
	items := make(map[string]string, len(values))
	for k, v := range values {
		items[strings.ToLower(k)] = v
	}
	return func(name string, _ reflect.Type) (any, bool, error) {
		v, ok := items[name]
		if !ok {
			return nil, false, nil
		}
		return v, true, nil
	}
}

// literalFor asks the container's literal provider for key. Only named string keys qualify.
func (c *Container) literalFor(key Key) (value any, found bool, err error) {
	if c.literals == nil || key.Name == emptyString || key.Type.Kind() != reflect.String {
		return nil, false, nil
	}
	v, found, err := c.literals(key.Name, key.Type)
	if err != nil || !found {
		return nil, false, err
	}
	rv := reflect.ValueOf(v)
	if !rv.IsValid() {
		return nil, false, nil
	}
	if rv.Kind() != reflect.String {
		return nil, false, fmt.Errorf("literal provider returned %v for %s, want a string", rv.Type(), key)
	}
	// Convert to the key's concrete string type, e.g. a named `type Path string`.
	if rv.Type() != key.Type {
		v = rv.Convert(key.Type).Interface()
	}
	return v, true, nil
}
