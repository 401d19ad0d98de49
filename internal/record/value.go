// Package record models the dynamic records the CLI sorts: flat
// field/value maps decoded from JSON, YAML, TOML, or CSV, with a total
// deterministic ordering over values of any kind.
package record

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"
	"time"

	"sortkit/internal/errors"
)

// Kind classifies a Value.
type Kind int

const (
	// KindNull is the absent or explicit-null value
	KindNull Kind = iota
	// KindBool is a boolean
	KindBool
	// KindInt is a 64-bit signed integer
	KindInt
	// KindFloat is a 64-bit float
	KindFloat
	// KindString is a string
	KindString
	// KindTime is a timestamp
	KindTime
)

// kindRank orders values of different kinds so mixed columns still sort
// deterministically: null < bool < number < string < time. Int and Float
// share a rank and compare numerically.
func kindRank(k Kind) int {
	switch k {
	case KindNull:
		return 0
	case KindBool:
		return 1
	case KindInt, KindFloat:
		return 2
	case KindString:
		return 3
	case KindTime:
		return 4
	default:
		return 5
	}
}

// Value is one record field: a small tagged union over the scalar kinds
// the dataset decoders produce. Values are immutable.
type Value struct {
	kind Kind
	b    bool
	i    int64
	f    float64
	s    string
	t    time.Time
}

// Null returns the null Value.
func Null() Value { return Value{kind: KindNull} }

// Bool returns a boolean Value.
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// Int returns an integer Value.
func Int(i int64) Value { return Value{kind: KindInt, i: i} }

// Float returns a float Value.
func Float(f float64) Value { return Value{kind: KindFloat, f: f} }

// String returns a string Value.
func String(s string) Value { return Value{kind: KindString, s: s} }

// Time returns a timestamp Value.
func Time(t time.Time) Value { return Value{kind: KindTime, t: t} }

// FromAny converts a decoded scalar into a Value. It accepts the types
// the json, yaml, and toml decoders produce for flat documents.
func FromAny(v interface{}) (Value, error) {
	switch x := v.(type) {
	case nil:
		return Null(), nil
	case bool:
		return Bool(x), nil
	case int:
		return Int(int64(x)), nil
	case int64:
		return Int(x), nil
	case uint64:
		if x > math.MaxInt64 {
			return Value{}, errors.New(errors.DecodeFailed, "integer %d overflows int64", x)
		}
		return Int(int64(x)), nil
	case float32:
		return Float(float64(x)), nil
	case float64:
		return Float(x), nil
	case string:
		return String(x), nil
	case time.Time:
		return Time(x), nil
	case json.Number:
		if i, err := x.Int64(); err == nil {
			return Int(i), nil
		}
		f, err := x.Float64()
		if err != nil {
			return Value{}, errors.Wrap(errors.DecodeFailed, err, "number %q", x.String())
		}
		return Float(f), nil
	default:
		return Value{}, errors.New(errors.DecodeFailed, "unsupported field type %T", v)
	}
}

// Kind returns the value's kind.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether the value is null.
func (v Value) IsNull() bool { return v.kind == KindNull }

// Any returns the value as a plain Go scalar for re-encoding.
func (v Value) Any() interface{} {
	switch v.kind {
	case KindNull:
		return nil
	case KindBool:
		return v.b
	case KindInt:
		return v.i
	case KindFloat:
		return v.f
	case KindString:
		return v.s
	case KindTime:
		return v.t
	default:
		return nil
	}
}

// String renders the value for human output.
func (v Value) String() string {
	switch v.kind {
	case KindNull:
		return ""
	case KindTime:
		return v.t.Format(time.RFC3339)
	default:
		return fmt.Sprintf("%v", v.Any())
	}
}

// FoldCase returns the value with string content lowercased; other
// kinds are returned unchanged.
func (v Value) FoldCase() Value {
	if v.kind == KindString {
		return String(strings.ToLower(v.s))
	}
	return v
}

func (v Value) numeric() float64 {
	if v.kind == KindInt {
		return float64(v.i)
	}
	return v.f
}

// Compare orders two values: -1 if a sorts before b, 0 on ties, 1
// otherwise. Values of different kinds order by kind rank, except that
// Int and Float compare numerically with each other.
func Compare(a, b Value) int {
	ra, rb := kindRank(a.kind), kindRank(b.kind)
	if ra != rb {
		if ra < rb {
			return -1
		}
		return 1
	}

	switch a.kind {
	case KindNull:
		return 0
	case KindBool:
		switch {
		case a.b == b.b:
			return 0
		case !a.b:
			return -1
		default:
			return 1
		}
	case KindInt, KindFloat:
		if a.kind == KindInt && b.kind == KindInt {
			switch {
			case a.i == b.i:
				return 0
			case a.i < b.i:
				return -1
			default:
				return 1
			}
		}
		af, bf := a.numeric(), b.numeric()
		switch {
		case af == bf:
			return 0
		case af < bf:
			return -1
		default:
			return 1
		}
	case KindString:
		return strings.Compare(a.s, b.s)
	case KindTime:
		switch {
		case a.t.Equal(b.t):
			return 0
		case a.t.Before(b.t):
			return -1
		default:
			return 1
		}
	default:
		return 0
	}
}

// Less reports whether a sorts before b under the natural order.
func Less(a, b Value) bool {
	return Compare(a, b) < 0
}
