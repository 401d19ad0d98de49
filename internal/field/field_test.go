package field

import (
	"testing"

	"sortkit/internal/descriptor"
)

type city struct {
	Name string
	Pop  int
}

var (
	cityName = Of("name",
		func(c city) string { return c.Name },
		func(c *city, v string) { c.Name = v },
	)
	cityPop = Of("pop",
		func(c city) int { return c.Pop },
		func(c *city, v int) { c.Pop = v },
	)
)

func TestEqual(t *testing.T) {
	other := Of("name", func(c city) string { return c.Name }, nil)
	if !cityName.Equal(other) {
		t.Error("fields with the same name should be equal")
	}
	if cityName.Equal(Of[city, string]("title", nil, nil)) {
		t.Error("fields with different names should not be equal")
	}
}

func TestGetSet(t *testing.T) {
	c := city{Name: "Lima", Pop: 10}

	if got := cityName.Get(c); got != "Lima" {
		t.Errorf("Get = %q, want %q", got, "Lima")
	}

	updated := cityPop.Update(c, 11)
	if updated.Pop != 11 {
		t.Errorf("updated.Pop = %d, want 11", updated.Pop)
	}
	if c.Pop != 10 {
		t.Errorf("original mutated: Pop = %d, want 10", c.Pop)
	}
}

func TestOrdering(t *testing.T) {
	cities := []city{
		{Name: "Quito", Pop: 2},
		{Name: "Lima", Pop: 10},
		{Name: "Bogota", Pop: 8},
	}

	t.Run("ascending by name", func(t *testing.T) {
		got := descriptor.Sorted(cities, Ascending(cityName))
		if got[0].Name != "Bogota" || got[2].Name != "Quito" {
			t.Errorf("ascending by name = %v", got)
		}
	})

	t.Run("descending by pop", func(t *testing.T) {
		got := descriptor.Sorted(cities, Descending(cityPop))
		if got[0].Pop != 10 || got[2].Pop != 2 {
			t.Errorf("descending by pop = %v", got)
		}
	})

	t.Run("combined", func(t *testing.T) {
		tied := []city{
			{Name: "Quito", Pop: 5},
			{Name: "Lima", Pop: 5},
		}
		got := descriptor.Sorted(tied, descriptor.Combine(
			Ascending(cityPop),
			Ascending(cityName),
		))
		if got[0].Name != "Lima" {
			t.Errorf("tie not broken by name: %v", got)
		}
	})
}
