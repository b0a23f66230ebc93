// Package route provides type-erased routes and the registry that maps route
// types to view builders, navigation styles and serialisation adapters.
//
// A route is any comparable application value that identifies a destination.
// Routes of different Go types can share one navigation stack by erasing them
// to Any, which carries a stable type identifier next to the value:
//
//	type Settings struct{ Section string }
//
//	reg := route.NewRegistry()
//	route.RegisterMain(reg, func(s Settings) route.View { return settingsScreen(s) })
//
//	a := route.Wrap(Settings{Section: "audio"})
//	data, _ := reg.Marshal(a)
//	back, _ := reg.Unmarshal(data) // back == a
package route

import (
	"fmt"
	"reflect"
)

// Any is a route value with its concrete type erased. Two Any values are
// equal (==) iff they wrap the same type identifier and equal values.
// The zero Any wraps nothing and is only equal to itself.
type Any struct {
	typeID string
	value  any
}

// Wrap erases a route value. The type identifier is taken from the dynamic
// type of v so interface-typed variables still erase to their concrete type.
// Wrap panics if that dynamic type is not comparable, such as a slice held
// in an any. A comparable struct with interface fields holding such values
// still panics on comparison, as it would with ==.
func Wrap[R comparable](v R) Any {
	t := reflect.TypeOf(v)
	if t == nil {
		t = reflect.TypeFor[R]()
	} else if !t.Comparable() {
		panic(fmt.Sprintf("route: cannot wrap value of non-comparable type %s", t))
	}
	return Any{typeID: typeID(t), value: v}
}

// Erase returns v unchanged when it already is an Any, otherwise it wraps it.
func Erase[R comparable](v R) Any {
	if a, ok := any(v).(Any); ok {
		return a
	}
	return Wrap(v)
}

// TypeIDOf returns the stable, fully-qualified identifier for R.
func TypeIDOf[R any]() string {
	return typeID(reflect.TypeFor[R]())
}

func typeID(t reflect.Type) string {
	if t.PkgPath() != "" && t.Name() != "" {
		return t.PkgPath() + "." + t.Name()
	}
	return t.String()
}

// TypeID returns the identifier of the wrapped value's type.
func (a Any) TypeID() string { return a.typeID }

// Value returns the wrapped value.
func (a Any) Value() any { return a.value }

// IsZero reports whether a wraps nothing.
func (a Any) IsZero() bool { return a.typeID == "" && a.value == nil }

// Equal reports whether a and b wrap the same type and equal values.
func (a Any) Equal(b Any) bool { return a == b }

func (a Any) String() string {
	return fmt.Sprintf("%s(%v)", a.typeID, a.value)
}

// As unwraps a into R.
func As[R comparable](a Any) (R, bool) {
	v, ok := a.value.(R)
	return v, ok
}
