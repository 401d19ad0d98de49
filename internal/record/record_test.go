package record

import (
	"reflect"
	"testing"
)

func TestFromMap(t *testing.T) {
	rec, err := FromMap(map[string]interface{}{
		"name": "Vaca",
		"year": int64(1995),
		"note": nil,
	})
	if err != nil {
		t.Fatalf("FromMap() error = %v", err)
	}

	if got := rec.Get("name"); got.String() != "Vaca" {
		t.Errorf("name = %q, want Vaca", got.String())
	}
	if got := rec.Get("year"); Compare(got, Int(1995)) != 0 {
		t.Errorf("year = %v, want 1995", got)
	}
	if !rec.Get("note").IsNull() {
		t.Error("note should be null")
	}
}

func TestGetMissing(t *testing.T) {
	rec := Record{"a": Int(1)}
	if !rec.Get("b").IsNull() {
		t.Error("missing field should extract as null")
	}
	if rec.Has("b") {
		t.Error("Has should be false for a missing field")
	}
	if !rec.Has("a") {
		t.Error("Has should be true for a present field")
	}
}

func TestExtractor(t *testing.T) {
	byYear := Extractor("year")
	rec := Record{"year": Int(1980)}
	if got := byYear(rec); Compare(got, Int(1980)) != 0 {
		t.Errorf("extractor = %v, want 1980", got)
	}
	if got := byYear(Record{}); !got.IsNull() {
		t.Errorf("extractor on empty record = %v, want null", got)
	}
}

func TestFields(t *testing.T) {
	rs := []Record{
		{"b": Int(1), "a": Int(2)},
		{"c": Int(3), "a": Int(4)},
	}
	got := Fields(rs)
	want := []string{"a", "b", "c"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Fields = %v, want %v", got, want)
	}
}

func TestHasField(t *testing.T) {
	rs := []Record{{"a": Int(1)}, {"b": Int(2)}}
	if !HasField(rs, "b") {
		t.Error("HasField(b) should be true")
	}
	if HasField(rs, "z") {
		t.Error("HasField(z) should be false")
	}
}

func TestToMapRoundTrip(t *testing.T) {
	rec := Record{"name": String("Carax"), "year": Int(1999)}
	m := rec.ToMap()
	back, err := FromMap(m)
	if err != nil {
		t.Fatalf("FromMap(ToMap()) error = %v", err)
	}
	if Compare(back.Get("year"), rec.Get("year")) != 0 {
		t.Errorf("round trip changed year: %v", back.Get("year"))
	}
}
