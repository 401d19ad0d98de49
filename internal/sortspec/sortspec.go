// Package sortspec parses sort-key expressions like "last,first,-year"
// and turns them into a single lexicographic descriptor over dynamic
// records.
package sortspec

import (
	"strings"

	"sortkit/internal/descriptor"
	"sortkit/internal/errors"
	"sortkit/internal/record"
)

// Key is one sort key: a field name and a direction.
type Key struct {
	Field      string
	Descending bool
}

// Options adjust how field values compare.
type Options struct {
	// NullsLast places null (missing) values after all present values.
	// Null placement is absolute: a descending key reverses only the
	// comparison of present values, never where nulls go.
	NullsLast bool
	// CaseInsensitive folds string values before comparing.
	CaseInsensitive bool
}

// Parse splits a comma-separated sort-key expression into keys. Each key
// is a field name with an optional leading "+" (ascending, the default)
// or "-" (descending). An empty expression or empty key name is an
// INVALID_SORT_KEY error.
func Parse(expr string) ([]Key, error) {
	if strings.TrimSpace(expr) == "" {
		return nil, errors.New(errors.InvalidSortKey, "empty sort expression")
	}

	parts := strings.Split(expr, ",")
	keys := make([]Key, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)

		var desc bool
		switch {
		case strings.HasPrefix(part, "-"):
			desc = true
			part = part[1:]
		case strings.HasPrefix(part, "+"):
			part = part[1:]
		}

		if part == "" {
			return nil, errors.New(errors.InvalidSortKey, "empty field name in %q", expr)
		}
		if strings.HasPrefix(part, "+") || strings.HasPrefix(part, "-") {
			return nil, errors.New(errors.InvalidSortKey, "malformed key %q", part)
		}

		keys = append(keys, Key{Field: part, Descending: desc})
	}
	return keys, nil
}

// Descriptor builds one descriptor per key and combines them in key
// order. Zero keys yield the order-preserving constant-false predicate.
func Descriptor(keys []Key, opts Options) descriptor.Descriptor[record.Record] {
	descs := make([]descriptor.Descriptor[record.Record], 0, len(keys))
	for _, k := range keys {
		descs = append(descs, keyDescriptor(k, opts))
	}
	return descriptor.Combine(descs...)
}

// Validate checks that every key names a field present in at least one
// record. An empty dataset validates trivially: sorting nothing is a
// valid no-op whatever the keys.
func Validate(keys []Key, rs []record.Record) error {
	if len(rs) == 0 {
		return nil
	}
	for _, k := range keys {
		if !record.HasField(rs, k.Field) {
			return errors.New(errors.UnknownField, "no record has field %q", k.Field)
		}
	}
	return nil
}

func keyDescriptor(k Key, opts Options) descriptor.Descriptor[record.Record] {
	extract := record.Extractor(k.Field)

	values := descriptor.ByLess(extract, func(a, b record.Value) bool {
		if opts.CaseInsensitive {
			a, b = a.FoldCase(), b.FoldCase()
		}
		return record.Less(a, b)
	})
	if k.Descending {
		values = descriptor.Reverse(values)
	}

	// Nulls are placed before the direction flip is consulted: two nulls
	// stay tied, and a null goes first (or last, with NullsLast) whether
	// the key is ascending or descending.
	return func(a, b record.Record) bool {
		va, vb := extract(a), extract(b)
		switch {
		case va.IsNull() && vb.IsNull():
			return false
		case va.IsNull():
			return !opts.NullsLast
		case vb.IsNull():
			return opts.NullsLast
		}
		return values(a, b)
	}
}
