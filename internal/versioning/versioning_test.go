package versioning_test

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"

	"assessment-backend/internal/apperr"
	"assessment-backend/internal/database"
	"assessment-backend/internal/models"
	"assessment-backend/internal/versioning"

	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.OpenSQLite(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

var assessments = versioning.New[models.Assessment]("assessment", "type_id")

func createType(t *testing.T, db *gorm.DB, name string) models.AssessmentType {
	t.Helper()
	typ := models.AssessmentType{Name: name}
	if err := db.Create(&typ).Error; err != nil {
		t.Fatalf("create type: %v", err)
	}
	return typ
}

func createVersion(t *testing.T, db *gorm.DB, typeID uint, title string) *models.Assessment {
	t.Helper()
	a := &models.Assessment{Title: title, TypeID: typeID}
	err := db.Transaction(func(tx *gorm.DB) error {
		return assessments.CreateNext(tx, a)
	})
	if err != nil {
		t.Fatalf("create version %q: %v", title, err)
	}
	return a
}

func activeIDs(t *testing.T, db *gorm.DB, typeID uint) []uint {
	t.Helper()
	var ids []uint
	if err := db.Model(&models.Assessment{}).
		Where("type_id = ? AND is_active = ?", typeID, true).
		Pluck("id", &ids).Error; err != nil {
		t.Fatalf("read active ids: %v", err)
	}
	return ids
}

func TestCreateNextNumbersVersionsWithoutGaps(t *testing.T) {
	db := setupTestDB(t)
	typ := createType(t, db, "Safety")
	other := createType(t, db, "Compliance")

	for i := 1; i <= 4; i++ {
		a := createVersion(t, db, typ.ID, "v")
		if a.Version != i {
			t.Fatalf("version %d: got %d", i, a.Version)
		}
		if a.IsActive {
			t.Fatalf("version %d created active", i)
		}
	}

	if a := createVersion(t, db, other.ID, "first"); a.Version != 1 {
		t.Fatalf("versions are counted per scope, got %d for a new scope", a.Version)
	}

	versions, err := assessments.Versions(context.Background(), db, typ.ID)
	if err != nil {
		t.Fatalf("Versions: %v", err)
	}
	if len(versions) != 4 {
		t.Fatalf("expected 4 versions, got %d", len(versions))
	}
	for i, v := range versions {
		if want := 4 - i; v.Version != want {
			t.Fatalf("versions[%d]: expected version %d, got %d", i, want, v.Version)
		}
	}
}

func TestCreateNextLeavesActiveSiblingAlone(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	typ := createType(t, db, "Safety")

	v1 := createVersion(t, db, typ.ID, "Q1")
	if _, err := assessments.Activate(ctx, db, v1.ID); err != nil {
		t.Fatalf("activate: %v", err)
	}
	createVersion(t, db, typ.ID, "Q2")

	ids := activeIDs(t, db, typ.ID)
	if len(ids) != 1 || ids[0] != v1.ID {
		t.Fatalf("expected only v1 active, got %v", ids)
	}
}

func TestActivateSwitchesActiveVersion(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	typ := createType(t, db, "Safety")
	v1 := createVersion(t, db, typ.ID, "Q1")
	v2 := createVersion(t, db, typ.ID, "Q2")

	got, err := assessments.Activate(ctx, db, v1.ID)
	if err != nil {
		t.Fatalf("activate v1: %v", err)
	}
	if !got.IsActive || got.ID != v1.ID {
		t.Fatalf("unexpected activated row: %+v", got)
	}

	if _, err := assessments.Activate(ctx, db, v2.ID); err != nil {
		t.Fatalf("activate v2: %v", err)
	}
	ids := activeIDs(t, db, typ.ID)
	if len(ids) != 1 || ids[0] != v2.ID {
		t.Fatalf("expected only v2 active, got %v", ids)
	}

	active, err := assessments.Active(ctx, db, typ.ID)
	if err != nil {
		t.Fatalf("Active: %v", err)
	}
	if active == nil || active.ID != v2.ID {
		t.Fatalf("Active returned %+v, expected v2", active)
	}
}

func TestActivateIsIdempotent(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	typ := createType(t, db, "Safety")
	v1 := createVersion(t, db, typ.ID, "Q1")
	createVersion(t, db, typ.ID, "Q2")

	for i := 0; i < 3; i++ {
		if _, err := assessments.Activate(ctx, db, v1.ID); err != nil {
			t.Fatalf("activate #%d: %v", i+1, err)
		}
	}
	ids := activeIDs(t, db, typ.ID)
	if len(ids) != 1 || ids[0] != v1.ID {
		t.Fatalf("expected only v1 active, got %v", ids)
	}
}

func TestActivateMissingRowChangesNothing(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	typ := createType(t, db, "Safety")
	v1 := createVersion(t, db, typ.ID, "Q1")
	if _, err := assessments.Activate(ctx, db, v1.ID); err != nil {
		t.Fatalf("activate: %v", err)
	}

	_, err := assessments.Activate(ctx, db, 9999)
	if !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	ids := activeIDs(t, db, typ.ID)
	if len(ids) != 1 || ids[0] != v1.ID {
		t.Fatalf("flags changed after failed activation: %v", ids)
	}
}

func TestActiveReturnsNilWhenNoneActive(t *testing.T) {
	db := setupTestDB(t)
	typ := createType(t, db, "Safety")
	createVersion(t, db, typ.ID, "Q1")

	active, err := assessments.Active(context.Background(), db, typ.ID)
	if err != nil {
		t.Fatalf("Active: %v", err)
	}
	if active != nil {
		t.Fatalf("expected no active version, got %+v", active)
	}
}

func TestConcurrentActivationsLeaveOneActive(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	typ := createType(t, db, "Safety")

	var versions []*models.Assessment
	for i := 0; i < 5; i++ {
		versions = append(versions, createVersion(t, db, typ.ID, "v"))
	}

	var wg sync.WaitGroup
	errs := make(chan error, len(versions)*4)
	for round := 0; round < 4; round++ {
		for _, v := range versions {
			wg.Add(1)
			go func(id uint) {
				defer wg.Done()
				if _, err := assessments.Activate(ctx, db, id); err != nil {
					errs <- err
				}
			}(v.ID)
		}
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		if !errors.Is(err, apperr.ErrConflict) {
			t.Fatalf("unexpected activation error: %v", err)
		}
	}
	if ids := activeIDs(t, db, typ.ID); len(ids) != 1 {
		t.Fatalf("expected exactly one active version, got %v", ids)
	}
}

func TestPartialIndexRejectsSecondActiveRow(t *testing.T) {
	db := setupTestDB(t)
	typ := createType(t, db, "Safety")
	v1 := createVersion(t, db, typ.ID, "Q1")
	v2 := createVersion(t, db, typ.ID, "Q2")

	if err := db.Model(&models.Assessment{}).Where("id = ?", v1.ID).Update("is_active", true).Error; err != nil {
		t.Fatalf("set v1 active: %v", err)
	}
	err := db.Model(&models.Assessment{}).Where("id = ?", v2.ID).Update("is_active", true).Error
	if err == nil {
		t.Fatal("expected the store to reject a second active version")
	}
	if !errors.Is(apperr.Translate(err, "assessment"), apperr.ErrConflict) {
		t.Fatalf("expected a conflict, got %v", err)
	}
}
