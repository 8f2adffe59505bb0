package planet

import (
	"context"
	"testing"

	"universe-builder/internal/shared/config"
	"universe-builder/internal/shared/database"
	"universe-builder/internal/shared/errors"
)

func openTestDB(t *testing.T) *database.DB {
	t.Helper()
	ctx := context.Background()
	db, err := database.Connect(ctx, config.DatabaseConfig{Driver: "sqlite", Path: ":memory:"}, discardLogger())
	if err != nil {
		t.Fatalf("Connect: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	if err := db.RunMigrations(ctx); err != nil {
		t.Fatalf("RunMigrations: %v", err)
	}
	return db
}

func TestRepositoryBatchRoundTrip(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	repo := NewRepository(db, discardLogger())
	svc := NewService(repo, 2, discardLogger())

	objects := Generate(testStar(0), Params{})
	rows := make([]ObjectRow, len(objects))
	for i, o := range objects {
		rows[i] = ObjectRow{CelestialObject: o}
	}
	rows[3].ArtifactFlag = true
	rows[3].ArtifactType = "RUI"

	err := db.WithTx(ctx, func(tx *database.Tx) error {
		return svc.SaveObjects(ctx, tx, 1, rows)
	})
	if err != nil {
		t.Fatalf("SaveObjects: %v", err)
	}

	got, err := svc.GetBySystemID(ctx, 1, 0)
	if err != nil {
		t.Fatalf("GetBySystemID: %v", err)
	}
	if len(got) != len(rows) {
		t.Fatalf("read %d rows, want %d", len(got), len(rows))
	}
	for i := range got {
		g, w := got[i], rows[i]
		if (g.ParentObjectID == nil) != (w.ParentObjectID == nil) {
			t.Fatalf("row %d parent mismatch: %v vs %v", i, g.ParentObjectID, w.ParentObjectID)
		}
		if g.ParentObjectID != nil && *g.ParentObjectID != *w.ParentObjectID {
			t.Errorf("row %d parent = %d, want %d", i, *g.ParentObjectID, *w.ParentObjectID)
		}
		g.ParentObjectID, w.ParentObjectID = nil, nil
		if g != w {
			t.Errorf("row %d:\n got %+v\nwant %+v", i, g, w)
		}
	}
}

func TestRepositoryEmptyBatch(t *testing.T) {
	db := openTestDB(t)
	repo := NewRepository(db, discardLogger())
	if err := repo.CreateObjectsBatch(context.Background(), nil, 1, nil); err != nil {
		t.Fatalf("empty batch: %v", err)
	}
}

func TestRepositoryRejectsUnknownStoredClass(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	repo := NewRepository(db, discardLogger())

	objects := Generate(testStar(0), Params{})
	rows := make([]ObjectRow, len(objects))
	for i, o := range objects {
		rows[i] = ObjectRow{CelestialObject: o}
	}
	err := db.WithTx(ctx, func(tx *database.Tx) error {
		return repo.CreateObjectsBatch(ctx, tx, 1, rows)
	})
	if err != nil {
		t.Fatalf("CreateObjectsBatch: %v", err)
	}

	if _, err := db.ExecContext(ctx, db.Rebind(`UPDATE system_objects SET class = 'XX' WHERE object_id = $1`), 2); err != nil {
		t.Fatal(err)
	}

	_, err = repo.GetObjectsBySystemID(ctx, 1, 0)
	if errors.GetType(err) != errors.ErrorTypeData {
		t.Errorf("GetObjectsBySystemID error = %v, want data error", err)
	}
}
