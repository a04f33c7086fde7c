package services

import (
	"context"
	"path/filepath"
	"testing"

	"assessment-backend/internal/database"
	"assessment-backend/internal/dto"
	"assessment-backend/internal/models"

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

type testEnv struct {
	db           *gorm.DB
	types        *AssessmentTypeService
	groups       *UserGroupService
	users        *UserService
	assessments  *AssessmentService
	questions    *QuestionService
	questionSets *QuestionSetService
	optionSets   *OptionSetService
	options      *OptionService
	submissions  *SubmissionService
	delivery     *DeliveryService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db := setupTestDB(t)
	scoring := NewScoringService()
	env := &testEnv{
		db:           db,
		types:        NewAssessmentTypeService(db),
		groups:       NewUserGroupService(db),
		users:        NewUserService(db),
		assessments:  NewAssessmentService(db),
		questions:    NewQuestionService(db),
		questionSets: NewQuestionSetService(db),
		optionSets:   NewOptionSetService(db),
		options:      NewOptionService(db),
		submissions:  NewSubmissionService(db, scoring),
	}
	env.delivery = NewDeliveryService(env.users, env.groups, env.assessments, env.questionSets, env.optionSets, scoring)
	return env
}

func (e *testEnv) mustType(t *testing.T, name string) *models.AssessmentType {
	t.Helper()
	typ, err := e.types.Create(context.Background(), dto.AssessmentTypeCreate{Name: name})
	if err != nil {
		t.Fatalf("create type %q: %v", name, err)
	}
	return typ
}

func (e *testEnv) mustGroup(t *testing.T, name string, typeID uint) *models.UserGroup {
	t.Helper()
	g, err := e.groups.Create(context.Background(), dto.UserGroupCreate{Name: name, AssessmentTypeID: typeID})
	if err != nil {
		t.Fatalf("create group %q: %v", name, err)
	}
	return g
}

func (e *testEnv) mustUser(t *testing.T, username string, groupID uint) *models.User {
	t.Helper()
	u, err := e.users.Create(context.Background(), dto.UserCreate{
		Username: username,
		Email:    username + "@example.com",
		Password: "password123",
		GroupID:  groupID,
	})
	if err != nil {
		t.Fatalf("create user %q: %v", username, err)
	}
	return u
}

func (e *testEnv) mustAssessment(t *testing.T, title string, typeID uint) *models.Assessment {
	t.Helper()
	a, err := e.assessments.Create(context.Background(), dto.AssessmentCreate{Title: title, TypeID: typeID})
	if err != nil {
		t.Fatalf("create assessment %q: %v", title, err)
	}
	return a
}

func (e *testEnv) mustQuestion(t *testing.T, text string, maxScore int) *models.Question {
	t.Helper()
	q, err := e.questions.Create(context.Background(), dto.QuestionCreate{Text: text, MaxScore: maxScore})
	if err != nil {
		t.Fatalf("create question %q: %v", text, err)
	}
	return q
}

func (e *testEnv) mustQuestionSet(t *testing.T, assessmentID uint, questionIDs ...uint) *models.QuestionSet {
	t.Helper()
	qs, err := e.questionSets.Create(context.Background(), dto.QuestionSetCreate{
		AssessmentID: assessmentID,
		QuestionIDs:  questionIDs,
	})
	if err != nil {
		t.Fatalf("create question set: %v", err)
	}
	return qs
}

func (e *testEnv) mustOptionSet(t *testing.T, questionID uint, scores ...int) *models.OptionSet {
	t.Helper()
	in := dto.OptionSetCreate{QuestionID: questionID}
	for _, s := range scores {
		in.Options = append(in.Options, dto.OptionInput{Text: "option", Score: s})
	}
	set, err := e.optionSets.Create(context.Background(), in)
	if err != nil {
		t.Fatalf("create option set: %v", err)
	}
	return set
}

func count(t *testing.T, db *gorm.DB, model any, where string, args ...any) int64 {
	t.Helper()
	var n int64
	if err := db.Model(model).Where(where, args...).Count(&n).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	return n
}
