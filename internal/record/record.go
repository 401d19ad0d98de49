package record

import "sort"

// Record is one flat row: field names mapped to scalar values.
type Record map[string]Value

// Get returns the named field, or the null Value when absent.
func (r Record) Get(name string) Value {
	if v, ok := r[name]; ok {
		return v
	}
	return Null()
}

// Has reports whether the record carries the named field (null counts).
func (r Record) Has(name string) bool {
	_, ok := r[name]
	return ok
}

// FromMap converts a decoded field map into a Record.
func FromMap(m map[string]interface{}) (Record, error) {
	rec := make(Record, len(m))
	for k, raw := range m {
		v, err := FromAny(raw)
		if err != nil {
			return nil, err
		}
		rec[k] = v
	}
	return rec, nil
}

// ToMap converts the record back to plain scalars for encoding.
func (r Record) ToMap() map[string]interface{} {
	m := make(map[string]interface{}, len(r))
	for k, v := range r {
		m[k] = v.Any()
	}
	return m
}

// Extractor returns a field extractor for the named field. Records
// missing the field extract as null.
func Extractor(name string) func(Record) Value {
	return func(r Record) Value {
		return r.Get(name)
	}
}

// Fields returns the sorted union of field names across records.
func Fields(rs []Record) []string {
	seen := map[string]bool{}
	for _, r := range rs {
		for k := range r {
			seen[k] = true
		}
	}
	names := make([]string, 0, len(seen))
	for k := range seen {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// HasField reports whether any record carries the named field.
func HasField(rs []Record, name string) bool {
	for _, r := range rs {
		if r.Has(name) {
			return true
		}
	}
	return false
}
