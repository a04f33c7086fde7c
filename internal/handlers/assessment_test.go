package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"assessment-backend/internal/database"
	"assessment-backend/internal/dto"
	"assessment-backend/internal/services"
	"assessment-backend/internal/ws"

	"github.com/gin-gonic/gin"
)

type recordingPublisher struct {
	events []ws.ActivationEvent
}

func (p *recordingPublisher) PublishActivation(event ws.ActivationEvent) {
	p.events = append(p.events, event)
}

func TestActivateAssessmentPublishesEvent(t *testing.T) {
	db, err := database.OpenSQLite(filepath.Join(t.TempDir(), "handlers.db"))
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

	ctx := context.Background()
	typ, err := services.NewAssessmentTypeService(db).Create(ctx, dto.AssessmentTypeCreate{Name: "Safety"})
	if err != nil {
		t.Fatalf("create type: %v", err)
	}
	svc := services.NewAssessmentService(db)
	if _, err := svc.Create(ctx, dto.AssessmentCreate{Title: "Q1", TypeID: typ.ID}); err != nil {
		t.Fatalf("create v1: %v", err)
	}
	v2, err := svc.Create(ctx, dto.AssessmentCreate{Title: "Q1", TypeID: typ.ID})
	if err != nil {
		t.Fatalf("create v2: %v", err)
	}

	events := &recordingPublisher{}
	h := NewAssessmentHandler(svc, events)
	r := gin.New()
	r.POST("/assessments/:id/activate", h.ActivateAssessment)
	r.GET("/assessment-types/:id/active-assessment", h.GetActiveAssessment)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/assessment-types/1/active-assessment", nil))
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 before activation, got %d", w.Code)
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/assessments/999/activate", nil))
	if w.Code != http.StatusNotFound || len(events.events) != 0 {
		t.Fatalf("expected 404 and no event for a missing assessment, got %d and %d events", w.Code, len(events.events))
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/assessments/2/activate", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	want := ws.ActivationEvent{Kind: "assessment", ID: v2.ID, ScopeID: typ.ID, Version: 2}
	if len(events.events) != 1 || events.events[0] != want {
		t.Fatalf("expected event %+v, got %+v", want, events.events)
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/assessment-types/1/active-assessment", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected the active assessment, got %d", w.Code)
	}
}
