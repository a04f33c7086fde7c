package services

import (
	"context"
	"errors"
	"testing"

	"assessment-backend/internal/apperr"
	"assessment-backend/internal/dto"
	"assessment-backend/internal/models"
)

func TestAssessmentCreateAssignsVersionsPerType(t *testing.T) {
	env := newTestEnv(t)
	safety := env.mustType(t, "Safety")
	hr := env.mustType(t, "HR")

	a1 := env.mustAssessment(t, "Q1", safety.ID)
	a2 := env.mustAssessment(t, "Q2", safety.ID)
	b1 := env.mustAssessment(t, "Onboarding", hr.ID)

	if a1.Version != 1 || a2.Version != 2 || b1.Version != 1 {
		t.Fatalf("unexpected versions: %d %d %d", a1.Version, a2.Version, b1.Version)
	}
	if a1.IsActive || a2.IsActive || b1.IsActive {
		t.Fatal("new versions must start inactive")
	}
	if a1.Type == nil || a1.Type.Name != "Safety" {
		t.Fatalf("expected type to be loaded, got %+v", a1.Type)
	}
}

func TestAssessmentCreateUnknownType(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.assessments.Create(context.Background(), dto.AssessmentCreate{Title: "Q1", TypeID: 42})
	if !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestAssessmentUpdateRejectsIsActive(t *testing.T) {
	env := newTestEnv(t)
	typ := env.mustType(t, "Safety")
	a := env.mustAssessment(t, "Q1", typ.ID)

	active := true
	_, err := env.assessments.Update(context.Background(), a.ID, dto.AssessmentUpdate{IsActive: &active})
	if !errors.Is(err, apperr.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}

	got, err := env.assessments.Get(context.Background(), a.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.IsActive {
		t.Fatal("assessment became active through update")
	}
}

func TestAssessmentUpdateTitle(t *testing.T) {
	env := newTestEnv(t)
	typ := env.mustType(t, "Safety")
	a := env.mustAssessment(t, "Q1", typ.ID)

	title := "Q1 revised"
	got, err := env.assessments.Update(context.Background(), a.ID, dto.AssessmentUpdate{Title: &title})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if got.Title != title || got.Version != a.Version {
		t.Fatalf("unexpected update result: %+v", got)
	}
}

func TestAssessmentActivateAndActive(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	typ := env.mustType(t, "Safety")
	a1 := env.mustAssessment(t, "Q1", typ.ID)
	a2 := env.mustAssessment(t, "Q2", typ.ID)

	active, err := env.assessments.Active(ctx, typ.ID)
	if err != nil || active != nil {
		t.Fatalf("expected no active assessment, got %+v, %v", active, err)
	}

	if _, err := env.assessments.Activate(ctx, a1.ID); err != nil {
		t.Fatalf("activate a1: %v", err)
	}
	if _, err := env.assessments.Activate(ctx, a2.ID); err != nil {
		t.Fatalf("activate a2: %v", err)
	}

	active, err = env.assessments.Active(ctx, typ.ID)
	if err != nil {
		t.Fatalf("Active: %v", err)
	}
	if active == nil || active.ID != a2.ID {
		t.Fatalf("expected a2 active, got %+v", active)
	}
	if n := count(t, env.db, &models.Assessment{}, "type_id = ? AND is_active = ?", typ.ID, true); n != 1 {
		t.Fatalf("expected one active assessment, got %d", n)
	}

	if _, err := env.assessments.Active(ctx, 999); !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unknown type, got %v", err)
	}
}

func TestAssessmentTypeDeleteReferenced(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	typ := env.mustType(t, "Safety")
	env.mustAssessment(t, "Q1", typ.ID)

	if err := env.types.Delete(ctx, typ.ID); !errors.Is(err, apperr.ErrReferenced) {
		t.Fatalf("expected ErrReferenced, got %v", err)
	}
	if _, err := env.types.Get(ctx, typ.ID); err != nil {
		t.Fatalf("type should still exist: %v", err)
	}
}

func TestAssessmentTypeDuplicateName(t *testing.T) {
	env := newTestEnv(t)
	env.mustType(t, "Safety")
	_, err := env.types.Create(context.Background(), dto.AssessmentTypeCreate{Name: "Safety"})
	if !errors.Is(err, apperr.ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
}

func TestAssessmentDeleteMissing(t *testing.T) {
	env := newTestEnv(t)
	if err := env.assessments.Delete(context.Background(), 77); !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestListPagination(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	for _, name := range []string{"A", "B", "C", "D", "E"} {
		env.mustType(t, name)
	}

	page, err := env.types.List(ctx, Page{Skip: 1, Limit: 2})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(page) != 2 || page[0].Name != "B" || page[1].Name != "C" {
		t.Fatalf("unexpected page: %+v", page)
	}

	all, err := env.types.List(ctx, Page{})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(all) != 5 {
		t.Fatalf("expected default limit to return all 5 rows, got %d", len(all))
	}
}
