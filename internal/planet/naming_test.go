package planet

import "testing"

func TestAssignNames(t *testing.T) {
	parent := func(id int) *int { return &id }
	objects := []CelestialObject{
		{ObjectID: 0, Class: ClassRockyPlanet},
		{ObjectID: 1, Class: ClassAsteroid},
		{ObjectID: 2, Class: ClassGasGiant},
		{ObjectID: 3, Class: ClassRockyMoon, IsMoon: true, ParentObjectID: parent(0)},
		{ObjectID: 4, Class: ClassIcyMoon, IsMoon: true, ParentObjectID: parent(2)},
		{ObjectID: 5, Class: ClassRockyMoon, IsMoon: true, ParentObjectID: parent(2)},
	}

	assignNames("Vega", objects)

	want := []string{"Vega I", "Vega Asteroid", "Vega III", "Vega I-a", "Vega III-a", "Vega III-b"}
	for i, o := range objects {
		if o.Name != want[i] {
			t.Errorf("object %d named %q, want %q", i, o.Name, want[i])
		}
	}
}

func TestPrimarySuffix(t *testing.T) {
	tests := map[int]string{0: "I", 3: "IV", 9: "X", 10: "11", 14: "15"}
	for index, want := range tests {
		if got := primarySuffix(index); got != want {
			t.Errorf("primarySuffix(%d) = %q, want %q", index, got, want)
		}
	}
}

func TestMoonCountTable(t *testing.T) {
	tests := []struct {
		class ClassCode
		total int
		max   int
	}{
		{ClassRockyPlanet, 100, 1},
		{ClassIcePlanet, 100, 1},
		{ClassGasGiant, 100, 3},
	}
	for _, tt := range tests {
		table := moonCountTable(tt.class)
		if table.Total() != tt.total {
			t.Errorf("%s: total weight %d, want %d", tt.class, table.Total(), tt.total)
		}
		if last := table[len(table)-1].Value; last != tt.max {
			t.Errorf("%s: largest moon count %d, want %d", tt.class, last, tt.max)
		}
	}
	if CanHostMoons(ClassAsteroid) || CanHostMoons(ClassRockyMoon) {
		t.Error("asteroids and moons must not host moons")
	}
}
