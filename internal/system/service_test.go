package system

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"universe-builder/internal/catalog"
	"universe-builder/internal/planet"
	"universe-builder/internal/shared/errors"
)

type fakeUniverse struct {
	fingerprint string
	stars       map[int]catalog.StarRecord
	params      planet.Params
}

func (u *fakeUniverse) Fingerprint() string         { return u.fingerprint }
func (u *fakeUniverse) PlanetParams() planet.Params { return u.params }

func (u *fakeUniverse) Star(id int) (catalog.StarRecord, bool) {
	s, ok := u.stars[id]
	return s, ok
}

type fakeProvider struct {
	u   Universe
	err error
}

func (p *fakeProvider) Current() (Universe, error) { return p.u, p.err }

type countingCache struct {
	Cache
	gets, hits, sets int
}

func (c *countingCache) Get(ctx context.Context, key string) ([]planet.CelestialObject, bool, error) {
	objects, hit, err := c.Cache.Get(ctx, key)
	c.gets++
	if hit {
		c.hits++
	}
	return objects, hit, err
}

func (c *countingCache) Set(ctx context.Context, key string, objects []planet.CelestialObject) error {
	c.sets++
	return c.Cache.Set(ctx, key, objects)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testUniverse(fingerprint string) *fakeUniverse {
	return &fakeUniverse{
		fingerprint: fingerprint,
		stars: map[int]catalog.StarRecord{
			0: {ID: 0, Name: "Sol", Spect: "G2V"},
			7: {ID: 7, Name: "Tau Ceti", Spect: "G8V", DistanceLY: 11.9},
		},
		params: planet.Params{GlobalSeed: 3, MaxPrimaries: 5},
	}
}

func TestObjectsForSystemCaches(t *testing.T) {
	ctx := context.Background()
	u := testUniverse("abc")
	cache := &countingCache{Cache: NewMemoryCache(time.Minute, time.Minute)}
	svc := NewService(&fakeProvider{u: u}, cache, discardLogger())

	first, err := svc.ObjectsForSystem(ctx, 7)
	if err != nil {
		t.Fatalf("ObjectsForSystem: %v", err)
	}
	second, err := svc.ObjectsForSystem(ctx, 7)
	if err != nil {
		t.Fatalf("ObjectsForSystem: %v", err)
	}

	if cache.sets != 1 || cache.hits != 1 {
		t.Errorf("sets=%d hits=%d, want 1 and 1", cache.sets, cache.hits)
	}
	want := planet.Generate(u.stars[7], u.params)
	if len(first) != len(want) || len(second) != len(want) {
		t.Fatalf("got %d and %d objects, want %d", len(first), len(second), len(want))
	}
	for i := range want {
		if first[i].Name != want[i].Name || second[i].Habitability != want[i].Habitability {
			t.Errorf("object %d differs from direct generation", i)
		}
	}
}

func TestFingerprintChangeMissesCache(t *testing.T) {
	ctx := context.Background()
	cache := &countingCache{Cache: NewMemoryCache(time.Minute, time.Minute)}
	provider := &fakeProvider{u: testUniverse("one")}
	svc := NewService(provider, cache, discardLogger())

	if _, err := svc.ObjectsForSystem(ctx, 0); err != nil {
		t.Fatal(err)
	}
	provider.u = testUniverse("two")
	if _, err := svc.ObjectsForSystem(ctx, 0); err != nil {
		t.Fatal(err)
	}
	if cache.hits != 0 || cache.sets != 2 {
		t.Errorf("hits=%d sets=%d, want 0 and 2", cache.hits, cache.sets)
	}
}

func TestObjectsForUnknownSystem(t *testing.T) {
	svc := NewService(&fakeProvider{u: testUniverse("x")}, NewMemoryCache(time.Minute, time.Minute), discardLogger())

	_, err := svc.ObjectsForSystem(context.Background(), 99)
	if errors.GetType(err) != errors.ErrorTypeNotFound {
		t.Errorf("error type = %v, want not_found", errors.GetType(err))
	}
}

func TestProviderErrorPropagates(t *testing.T) {
	want := errors.NotFound("no universe has been built")
	svc := NewService(&fakeProvider{err: want}, NewMemoryCache(time.Minute, time.Minute), discardLogger())

	if _, err := svc.GetSystem(context.Background(), 0); err != want {
		t.Errorf("err = %v, want %v", err, want)
	}
}

func TestGetSystemSummary(t *testing.T) {
	svc := NewService(&fakeProvider{u: testUniverse("x")}, NewMemoryCache(time.Minute, time.Minute), discardLogger())

	view, err := svc.GetSystem(context.Background(), 0)
	if err != nil {
		t.Fatal(err)
	}
	if view.Star.Name != "Sol" || len(view.Objects) != 4 {
		t.Fatalf("view = %+v", view)
	}
	s := view.Summary
	if s.Primaries != 3 || s.Moons != 1 {
		t.Errorf("primaries=%d moons=%d, want 3 and 1", s.Primaries, s.Moons)
	}
	if s.ByClass[planet.ClassRockyPlanet] != 2 || s.ByClass[planet.ClassAsteroid] != 1 || s.ByClass[planet.ClassRockyMoon] != 1 {
		t.Errorf("by class = %v", s.ByClass)
	}
}
