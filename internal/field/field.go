// Package field models record fields as plain values: a named
// getter/setter pair that can be passed around, compared by name, and
// turned into an ordering. No reflection or dynamic member lookup is
// involved; a field is just two functions and a label.
package field

import (
	"cmp"

	"sortkit/internal/descriptor"
)

// Field is a first-class accessor for one field of T.
type Field[T, V any] struct {
	// Name identifies the field; two Fields are considered the same
	// field when their names match.
	Name string
	Get  func(T) V
	Set  func(*T, V)
}

// Of constructs a Field from a name and a getter/setter pair. Set may be
// nil for read-only fields.
func Of[T, V any](name string, get func(T) V, set func(*T, V)) Field[T, V] {
	return Field[T, V]{Name: name, Get: get, Set: set}
}

// Equal reports whether f and other address the same field.
func (f Field[T, V]) Equal(other Field[T, V]) bool {
	return f.Name == other.Name
}

// Update returns a copy of rec with the field set to v.
func (f Field[T, V]) Update(rec T, v V) T {
	f.Set(&rec, v)
	return rec
}

// Ascending returns a descriptor ordering records by the field's natural
// order.
func Ascending[T any, V cmp.Ordered](f Field[T, V]) descriptor.Descriptor[T] {
	return descriptor.By(f.Get)
}

// Descending returns a descriptor ordering records by the field's
// natural order, reversed.
func Descending[T any, V cmp.Ordered](f Field[T, V]) descriptor.Descriptor[T] {
	return descriptor.Reverse(descriptor.By(f.Get))
}
