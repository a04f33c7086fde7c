package services

import (
	"context"
	"errors"
	"testing"

	"assessment-backend/internal/apperr"
	"assessment-backend/internal/dto"
	"assessment-backend/internal/models"
)

type submissionFixture struct {
	user     *models.User
	qs       *models.QuestionSet
	q1, q2   *models.Question
	set1     *models.OptionSet
	set2     *models.OptionSet
	otherSet *models.OptionSet
}

func newSubmissionFixture(t *testing.T, env *testEnv) submissionFixture {
	t.Helper()
	typ := env.mustType(t, "Safety")
	group := env.mustGroup(t, "Warehouse", typ.ID)
	user := env.mustUser(t, "jdoe", group.ID)
	a := env.mustAssessment(t, "Q1", typ.ID)
	q1 := env.mustQuestion(t, "first", 5)
	q2 := env.mustQuestion(t, "second", 3)
	outside := env.mustQuestion(t, "not in set", 2)
	return submissionFixture{
		user:     user,
		qs:       env.mustQuestionSet(t, a.ID, q1.ID, q2.ID),
		q1:       q1,
		q2:       q2,
		set1:     env.mustOptionSet(t, q1.ID, 0, 5),
		set2:     env.mustOptionSet(t, q2.ID, 1, 3),
		otherSet: env.mustOptionSet(t, outside.ID, 2),
	}
}

func TestSubmissionScoresResponses(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	f := newSubmissionFixture(t, env)

	sub, err := env.submissions.Create(ctx, dto.SubmissionCreate{
		UserID:        f.user.ID,
		QuestionSetID: f.qs.ID,
		Responses: []dto.ResponseInput{
			{QuestionID: f.q1.ID, OptionID: f.set1.Options[1].ID},
			{QuestionID: f.q2.ID, OptionID: f.set2.Options[0].ID},
		},
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if sub.TotalScore != 6 {
		t.Fatalf("expected total 6, got %d", sub.TotalScore)
	}
	if len(sub.Responses) != 2 || sub.Responses[0].Option == nil {
		t.Fatalf("expected responses with options loaded, got %+v", sub.Responses)
	}

	maxScore, err := env.submissions.MaxScore(ctx, f.qs.ID)
	if err != nil {
		t.Fatalf("MaxScore: %v", err)
	}
	if maxScore != 8 {
		t.Fatalf("expected max score 8, got %d", maxScore)
	}
}

func TestSubmissionDuplicateThenQuestionSetDeleteCascades(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	f := newSubmissionFixture(t, env)
	in := dto.SubmissionCreate{
		UserID:        f.user.ID,
		QuestionSetID: f.qs.ID,
		Responses:     []dto.ResponseInput{{QuestionID: f.q1.ID, OptionID: f.set1.Options[0].ID}},
	}

	first, err := env.submissions.Create(ctx, in)
	if err != nil {
		t.Fatalf("first submission: %v", err)
	}
	if _, err := env.submissions.Create(ctx, in); !errors.Is(err, apperr.ErrConflict) {
		t.Fatalf("expected ErrConflict for second submission, got %v", err)
	}
	if n := count(t, env.db, &models.Submission{}, "question_set_id = ?", f.qs.ID); n != 1 {
		t.Fatalf("expected one surviving submission, got %d", n)
	}

	if err := env.questionSets.Delete(ctx, f.qs.ID); err != nil {
		t.Fatalf("delete question set: %v", err)
	}
	if n := count(t, env.db, &models.Submission{}, "id = ?", first.ID); n != 0 {
		t.Fatal("submission survived question set delete")
	}
	if n := count(t, env.db, &models.Response{}, "submission_id = ?", first.ID); n != 0 {
		t.Fatal("responses survived question set delete")
	}
	if n := count(t, env.db, &models.QuestionSetQuestion{}, "question_set_id = ?", f.qs.ID); n != 0 {
		t.Fatal("question links survived question set delete")
	}
	if n := count(t, env.db, &models.Question{}, "id = ?", f.q1.ID); n != 1 {
		t.Fatal("question set delete removed a question")
	}
}

func TestSubmissionRejectsForeignOption(t *testing.T) {
	env := newTestEnv(t)
	f := newSubmissionFixture(t, env)

	_, err := env.submissions.Create(context.Background(), dto.SubmissionCreate{
		UserID:        f.user.ID,
		QuestionSetID: f.qs.ID,
		Responses:     []dto.ResponseInput{{QuestionID: f.q1.ID, OptionID: f.set2.Options[0].ID}},
	})
	if !errors.Is(err, apperr.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
	if n := count(t, env.db, &models.Submission{}, "user_id = ?", f.user.ID); n != 0 {
		t.Fatal("rejected submission was persisted")
	}
}

func TestSubmissionRejectsQuestionOutsideSet(t *testing.T) {
	env := newTestEnv(t)
	f := newSubmissionFixture(t, env)

	_, err := env.submissions.Create(context.Background(), dto.SubmissionCreate{
		UserID:        f.user.ID,
		QuestionSetID: f.qs.ID,
		Responses:     []dto.ResponseInput{{QuestionID: f.otherSet.QuestionID, OptionID: f.otherSet.Options[0].ID}},
	})
	if !errors.Is(err, apperr.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestSubmissionRejectsRepeatedQuestion(t *testing.T) {
	env := newTestEnv(t)
	f := newSubmissionFixture(t, env)

	_, err := env.submissions.Create(context.Background(), dto.SubmissionCreate{
		UserID:        f.user.ID,
		QuestionSetID: f.qs.ID,
		Responses: []dto.ResponseInput{
			{QuestionID: f.q1.ID, OptionID: f.set1.Options[0].ID},
			{QuestionID: f.q1.ID, OptionID: f.set1.Options[1].ID},
		},
	})
	if !errors.Is(err, apperr.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestSubmissionUnknownReferences(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	f := newSubmissionFixture(t, env)

	cases := map[string]dto.SubmissionCreate{
		"user":         {UserID: 999, QuestionSetID: f.qs.ID},
		"question set": {UserID: f.user.ID, QuestionSetID: 999},
		"option": {
			UserID:        f.user.ID,
			QuestionSetID: f.qs.ID,
			Responses:     []dto.ResponseInput{{QuestionID: f.q1.ID, OptionID: 999}},
		},
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := env.submissions.Create(ctx, in); !errors.Is(err, apperr.ErrNotFound) {
				t.Fatalf("expected ErrNotFound, got %v", err)
			}
		})
	}
}

func TestUserDeleteCascadesSubmissions(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	f := newSubmissionFixture(t, env)

	sub, err := env.submissions.Create(ctx, dto.SubmissionCreate{
		UserID:        f.user.ID,
		QuestionSetID: f.qs.ID,
		Responses:     []dto.ResponseInput{{QuestionID: f.q2.ID, OptionID: f.set2.Options[1].ID}},
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if err := env.options.Delete(ctx, f.set2.Options[1].ID); !errors.Is(err, apperr.ErrReferenced) {
		t.Fatalf("expected chosen option delete to be blocked, got %v", err)
	}

	if err := env.users.Delete(ctx, f.user.ID); err != nil {
		t.Fatalf("delete user: %v", err)
	}
	if n := count(t, env.db, &models.Submission{}, "id = ?", sub.ID); n != 0 {
		t.Fatal("submission survived user delete")
	}
	if n := count(t, env.db, &models.Response{}, "submission_id = ?", sub.ID); n != 0 {
		t.Fatal("responses survived user delete")
	}
}

func TestSubmissionResultsRanking(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	f := newSubmissionFixture(t, env)
	second := env.mustUser(t, "asmith", f.user.GroupID)

	for _, in := range []dto.SubmissionCreate{
		{UserID: f.user.ID, QuestionSetID: f.qs.ID, Responses: []dto.ResponseInput{{QuestionID: f.q1.ID, OptionID: f.set1.Options[0].ID}}},
		{UserID: second.ID, QuestionSetID: f.qs.ID, Responses: []dto.ResponseInput{{QuestionID: f.q1.ID, OptionID: f.set1.Options[1].ID}}},
	} {
		if _, err := env.submissions.Create(ctx, in); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}

	results, err := env.submissions.Results(ctx, f.qs.ID)
	if err != nil {
		t.Fatalf("Results: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	top := results[0]
	if top.Rank != 1 || top.Username != "asmith" || top.TotalScore != 5 || top.MaxScore != 8 {
		t.Fatalf("unexpected top result %+v", top)
	}
	if top.Percent != 62.5 {
		t.Fatalf("expected 62.5%%, got %v", top.Percent)
	}
	if results[1].Username != "jdoe" || results[1].Rank != 2 {
		t.Fatalf("unexpected second result %+v", results[1])
	}
}
