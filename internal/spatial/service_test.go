package spatial

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"universe-builder/internal/catalog"
	"universe-builder/internal/shared/errors"
)

type fixedSource struct {
	cat   *catalog.Catalog
	scale float64
	err   error
}

func (f fixedSource) CurrentCatalog() (*catalog.Catalog, float64, error) {
	return f.cat, f.scale, f.err
}

func testCatalog() *catalog.Catalog {
	return &catalog.Catalog{Stars: []catalog.StarRecord{
		{ID: 0, Name: "Sol", GridX: 50, GridY: 50},
		{ID: 1, GridX: 53, GridY: 54},
		{ID: 2, GridX: 50, GridY: 53},
		{ID: 3, GridX: 47, GridY: 50},
		{ID: 4, GridX: 90, GridY: 10},
	}}
}

func newTestService(src CatalogSource) *Service {
	return NewService(src, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestNeighbors(t *testing.T) {
	s := newTestService(fixedSource{cat: testCatalog(), scale: 0.5})

	got, err := s.Neighbors(context.Background(), 0, 5)
	if err != nil {
		t.Fatal(err)
	}

	wantIDs := []int{2, 3, 1}
	if len(got) != len(wantIDs) {
		t.Fatalf("got %d neighbors, want %d", len(got), len(wantIDs))
	}
	for i, id := range wantIDs {
		if got[i].Star.ID != id {
			t.Errorf("neighbor %d = star %d, want %d", i, got[i].Star.ID, id)
		}
	}
	if got[2].GridDistance != 5 || got[2].MapDistanceLY != 2.5 {
		t.Errorf("farthest neighbor = %+v", got[2])
	}
}

func TestNeighborsErrors(t *testing.T) {
	tests := []struct {
		name   string
		src    fixedSource
		id     int
		radius float64
		want   errors.ErrorType
	}{
		{"zero radius", fixedSource{cat: testCatalog()}, 0, 0, errors.ErrorTypeValidation},
		{"radius too large", fixedSource{cat: testCatalog()}, 0, 1000, errors.ErrorTypeValidation},
		{"unknown star", fixedSource{cat: testCatalog()}, 9, 3, errors.ErrorTypeNotFound},
		{"no universe", fixedSource{err: errors.NotFound("no universe has been built")}, 0, 3, errors.ErrorTypeNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := newTestService(tt.src).Neighbors(context.Background(), tt.id, tt.radius)
			if got := errors.GetType(err); got != tt.want {
				t.Errorf("error type = %v, want %v (%v)", got, tt.want, err)
			}
		})
	}
}

func TestInRegion(t *testing.T) {
	s := newTestService(fixedSource{cat: testCatalog(), scale: 1})

	tests := []struct {
		name   string
		region Region
		want   []int
	}{
		{"around home", Region{X0: 47, Y0: 50, X1: 50, Y1: 53}, []int{0, 2, 3}},
		{"reversed corners", Region{X0: 95, Y0: 15, X1: 85, Y1: 5}, []int{4}},
		{"empty", Region{X0: 0, Y0: 0, X1: 10, Y1: 10}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := s.InRegion(context.Background(), tt.region)
			if err != nil {
				t.Fatal(err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("got %d stars, want %d", len(got), len(tt.want))
			}
			for i, id := range tt.want {
				if got[i].ID != id {
					t.Errorf("star %d = %d, want %d", i, got[i].ID, id)
				}
			}
		})
	}
}
