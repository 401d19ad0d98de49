// Package descriptor builds and composes ordering predicates.
//
// A Descriptor is the comparison half of a sort: a pure function that
// reports whether one element must come before another. Descriptors are
// built from a field extractor plus a less-than relation, and several
// descriptors compose into a single lexicographic ordering that is fed
// to a stable sort.
package descriptor

import (
	"cmp"
	"sort"
)

// Descriptor reports whether a must sort before b.
//
// A Descriptor must be pure and total: a consistent boolean for every
// pair, no mutation of its inputs. The less-than relation behind it must
// be a strict weak ordering; nothing here validates that, and a relation
// that is not one produces an unspecified (but non-crashing) sort order.
type Descriptor[T any] func(a, b T) bool

// ByLess returns a Descriptor that extracts a value from each record and
// compares the two extractions with less.
func ByLess[T, V any](extract func(T) V, less func(V, V) bool) Descriptor[T] {
	return func(a, b T) bool {
		return less(extract(a), extract(b))
	}
}

// By returns a Descriptor for value types with a natural total order,
// comparing extractions with the built-in < relation.
func By[T any, V cmp.Ordered](extract func(T) V) Descriptor[T] {
	return func(a, b T) bool {
		return extract(a) < extract(b)
	}
}

// Combine folds descriptors into one lexicographic ordering: the first
// descriptor that distinguishes the pair, in either direction, decides.
// A pair no descriptor distinguishes compares as equal (false both ways),
// so a stable sort keeps its input order.
//
// Combine() with no arguments is the constant-false predicate; Combine
// of a single descriptor behaves identically to that descriptor.
//
// Each descriptor is probed twice, forward and reverse, to separate
// "a before b", "b before a", and "tie" using only a boolean less-than.
func Combine[T any](descs ...Descriptor[T]) Descriptor[T] {
	return func(a, b T) bool {
		for _, d := range descs {
			if d(a, b) {
				return true
			}
			if d(b, a) {
				return false
			}
		}
		return false
	}
}

// Reverse returns a Descriptor imposing the opposite ordering by
// swapping the arguments. Ties remain ties.
func Reverse[T any](d Descriptor[T]) Descriptor[T] {
	return func(a, b T) bool {
		return d(b, a)
	}
}

// Sort stably sorts items in place by d. Elements d treats as equal keep
// their relative input order.
func Sort[T any](items []T, d Descriptor[T]) {
	sort.SliceStable(items, func(i, j int) bool {
		return d(items[i], items[j])
	})
}

// Sorted returns a stably sorted copy of items; the input is not
// modified.
func Sorted[T any](items []T, d Descriptor[T]) []T {
	out := make([]T, len(items))
	copy(out, items)
	Sort(out, d)
	return out
}
