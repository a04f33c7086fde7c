package services

import (
	"context"
	"errors"
	"testing"

	"assessment-backend/internal/apperr"
	"assessment-backend/internal/dto"
	"assessment-backend/internal/models"
)

func TestOptionScoreBound(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	q := env.mustQuestion(t, "Where is the fire exit?", 5)
	set := env.mustOptionSet(t, q.ID)

	_, err := env.options.Create(ctx, dto.OptionCreate{OptionSetID: set.ID, Text: "too high", Score: 6})
	if !errors.Is(err, apperr.ErrValidation) {
		t.Fatalf("expected ErrValidation for score above max, got %v", err)
	}
	if n := count(t, env.db, &models.Option{}, "option_set_id = ?", set.ID); n != 0 {
		t.Fatalf("rejected option was persisted (%d rows)", n)
	}

	opt, err := env.options.Create(ctx, dto.OptionCreate{OptionSetID: set.ID, Text: "exact", Score: 5})
	if err != nil {
		t.Fatalf("score equal to max_score should be accepted: %v", err)
	}
	if opt.Score != 5 {
		t.Fatalf("unexpected score %d", opt.Score)
	}
}

func TestOptionNegativeScore(t *testing.T) {
	env := newTestEnv(t)
	q := env.mustQuestion(t, "q", 5)
	set := env.mustOptionSet(t, q.ID)

	_, err := env.options.Create(context.Background(), dto.OptionCreate{OptionSetID: set.ID, Text: "neg", Score: -1})
	if !errors.Is(err, apperr.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestOptionUpdateScoreBound(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	q := env.mustQuestion(t, "q", 3)
	set := env.mustOptionSet(t, q.ID, 1)
	opt := set.Options[0]

	high := 4
	if _, err := env.options.Update(ctx, opt.ID, dto.OptionUpdate{Score: &high}); !errors.Is(err, apperr.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
	got, err := env.options.Get(ctx, opt.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Score != 1 {
		t.Fatalf("score changed by rejected update: %d", got.Score)
	}

	ok := 3
	if _, err := env.options.Update(ctx, opt.ID, dto.OptionUpdate{Score: &ok}); err != nil {
		t.Fatalf("Update: %v", err)
	}
}

func TestOptionCreateUnknownSet(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.options.Create(context.Background(), dto.OptionCreate{OptionSetID: 9, Text: "x", Score: 0})
	if !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestOptionSetCreateRejectsWholeSetOnBadScore(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	q := env.mustQuestion(t, "q", 2)

	_, err := env.optionSets.Create(ctx, dto.OptionSetCreate{
		QuestionID: q.ID,
		Options: []dto.OptionInput{
			{Text: "ok", Score: 2},
			{Text: "too high", Score: 3},
		},
	})
	if !errors.Is(err, apperr.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
	if n := count(t, env.db, &models.OptionSet{}, "question_id = ?", q.ID); n != 0 {
		t.Fatalf("option set persisted despite rejection (%d rows)", n)
	}
}

func TestOptionSetVersionsAndActivation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	q := env.mustQuestion(t, "q", 5)
	s1 := env.mustOptionSet(t, q.ID, 0, 5)
	s2 := env.mustOptionSet(t, q.ID, 1, 2, 3)

	if s1.Version != 1 || s2.Version != 2 {
		t.Fatalf("unexpected versions %d, %d", s1.Version, s2.Version)
	}
	if len(s2.Options) != 3 {
		t.Fatalf("expected 3 options, got %d", len(s2.Options))
	}

	if _, err := env.optionSets.Activate(ctx, s2.ID); err != nil {
		t.Fatalf("Activate: %v", err)
	}
	active, err := env.optionSets.Active(ctx, q.ID)
	if err != nil {
		t.Fatalf("Active: %v", err)
	}
	if active == nil || active.ID != s2.ID || len(active.Options) != 3 {
		t.Fatalf("unexpected active option set %+v", active)
	}

	sets, err := env.optionSets.ListByQuestion(ctx, q.ID)
	if err != nil {
		t.Fatalf("ListByQuestion: %v", err)
	}
	if len(sets) != 2 || sets[0].ID != s2.ID {
		t.Fatalf("expected newest first, got %+v", sets)
	}
}

func TestOptionSetDeleteBlockedByOptions(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	q := env.mustQuestion(t, "q", 5)
	set := env.mustOptionSet(t, q.ID, 1)

	if err := env.optionSets.Delete(ctx, set.ID); !errors.Is(err, apperr.ErrReferenced) {
		t.Fatalf("expected ErrReferenced, got %v", err)
	}
	if err := env.options.Delete(ctx, set.Options[0].ID); err != nil {
		t.Fatalf("delete option: %v", err)
	}
	if err := env.optionSets.Delete(ctx, set.ID); err != nil {
		t.Fatalf("delete empty option set: %v", err)
	}
}

func TestQuestionMaxScoreCannotDropBelowOptions(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	q := env.mustQuestion(t, "q", 5)
	env.mustOptionSet(t, q.ID, 4)

	lower := 3
	if _, err := env.questions.Update(ctx, q.ID, dto.QuestionUpdate{MaxScore: &lower}); !errors.Is(err, apperr.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}

	same := 4
	got, err := env.questions.Update(ctx, q.ID, dto.QuestionUpdate{MaxScore: &same})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if got.MaxScore != 4 {
		t.Fatalf("unexpected max_score %d", got.MaxScore)
	}
}

func TestQuestionDeleteReferenced(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	q := env.mustQuestion(t, "q", 5)
	env.mustOptionSet(t, q.ID)

	if err := env.questions.Delete(ctx, q.ID); !errors.Is(err, apperr.ErrReferenced) {
		t.Fatalf("expected ErrReferenced, got %v", err)
	}
}

func TestQuestionSetQuestionsRequireOptionSet(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	typ := env.mustType(t, "Safety")
	a := env.mustAssessment(t, "Q1", typ.ID)
	q1 := env.mustQuestion(t, "first", 5)
	q2 := env.mustQuestion(t, "second", 5)
	q3 := env.mustQuestion(t, "third", 5)
	env.mustOptionSet(t, q1.ID, 1)
	env.mustOptionSet(t, q3.ID, 1)
	qs := env.mustQuestionSet(t, a.ID, q3.ID, q1.ID, q2.ID, q3.ID)

	if len(qs.Questions) != 3 {
		t.Fatalf("duplicate ids should be linked once, got %d questions", len(qs.Questions))
	}

	got, err := env.questions.ListByQuestionSet(ctx, qs.ID)
	if err != nil {
		t.Fatalf("ListByQuestionSet: %v", err)
	}
	if len(got) != 2 || got[0].ID != q3.ID || got[1].ID != q1.ID {
		t.Fatalf("expected [q3 q1] in link order, got %+v", got)
	}

	if _, err := env.questions.ListByQuestionSet(ctx, 999); !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestQuestionSetCreateUnknownQuestion(t *testing.T) {
	env := newTestEnv(t)
	typ := env.mustType(t, "Safety")
	a := env.mustAssessment(t, "Q1", typ.ID)

	_, err := env.questionSets.Create(context.Background(), dto.QuestionSetCreate{AssessmentID: a.ID, QuestionIDs: []uint{404}})
	if !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if n := count(t, env.db, &models.QuestionSet{}, "assessment_id = ?", a.ID); n != 0 {
		t.Fatalf("question set persisted despite rejection (%d rows)", n)
	}
}
