package provision

import (
	"fmt"
	"reflect"
	"strings"
)

// Key identifies a binding: a type, optionally qualified by a name.
// Names are case-insensitive and stored in lower case.
type Key struct {
	Type reflect.Type
	Name string
}

// KeyOf returns the unnamed key for T.
func KeyOf[T any]() Key {
	return Key{Type: reflect.TypeOf((*T)(nil)).Elem()}
}

// NamedKey returns the key for T qualified by name, e.g. NamedKey[string]("xyz").
func NamedKey[T any](name string) Key {
	return Key{Type: reflect.TypeOf((*T)(nil)).Elem(), Name: strings.ToLower(name)}
}

func (k Key) normalize() Key {
	k.Name = strings.ToLower(k.Name)
	return k
}

func (k Key) String() string {
	if k.Name == emptyString {
		return fmt.Sprintf("%v", k.Type)
	}
	return fmt.Sprintf("%q:%v", k.Name, k.Type)
}
