package database

import (
	"fmt"
	"log"
	"time"

	"assessment-backend/internal/models"

	"gorm.io/gorm"
)

// SchemaMigration records an applied migration step.
type SchemaMigration struct {
	Version   int       `gorm:"primaryKey;autoIncrement:false"`
	Name      string    `gorm:"size:200;not null"`
	AppliedAt time.Time `gorm:"not null"`
}

type migration struct {
	version int
	name    string
	up      func(tx *gorm.DB) error
}

// Steps are append-only. Never edit or renumber one that has shipped.
var migrations = []migration{
	{1, "create assessment tables", createTables},
	{2, "single active version per scope", createActiveVersionIndexes},
	{3, "backfill submission scores", backfillSubmissionScores},
}

// Migrate applies every step not yet recorded in schema_migrations, in order,
// each in its own transaction.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&SchemaMigration{}); err != nil {
		return fmt.Errorf("create schema_migrations: %w", err)
	}

	var applied []int
	if err := db.Model(&SchemaMigration{}).Pluck("version", &applied).Error; err != nil {
		return fmt.Errorf("read schema_migrations: %w", err)
	}
	done := make(map[int]bool, len(applied))
	for _, v := range applied {
		done[v] = true
	}

	for _, m := range migrations {
		if done[m.version] {
			continue
		}
		err := db.Transaction(func(tx *gorm.DB) error {
			if err := m.up(tx); err != nil {
				return err
			}
			return tx.Create(&SchemaMigration{
				Version:   m.version,
				Name:      m.name,
				AppliedAt: time.Now(),
			}).Error
		})
		if err != nil {
			return fmt.Errorf("migration %d (%s): %w", m.version, m.name, err)
		}
		log.Printf("database: applied migration %d %q", m.version, m.name)
	}
	return nil
}

func createTables(tx *gorm.DB) error {
	return tx.AutoMigrate(
		&models.AssessmentType{},
		&models.UserGroup{},
		&models.User{},
		&models.Assessment{},
		&models.Question{},
		&models.QuestionSet{},
		&models.QuestionSetQuestion{},
		&models.OptionSet{},
		&models.Option{},
		&models.Submission{},
		&models.Response{},
	)
}

// A transaction that loses an activation race fails on these indexes instead
// of leaving two active rows behind.
func createActiveVersionIndexes(tx *gorm.DB) error {
	stmts := []string{
		"CREATE UNIQUE INDEX IF NOT EXISTS idx_assessments_one_active ON assessments (type_id) WHERE is_active",
		"CREATE UNIQUE INDEX IF NOT EXISTS idx_question_sets_one_active ON question_sets (assessment_id) WHERE is_active",
		"CREATE UNIQUE INDEX IF NOT EXISTS idx_option_sets_one_active ON option_sets (question_id) WHERE is_active",
	}
	for _, stmt := range stmts {
		if err := tx.Exec(stmt).Error; err != nil {
			return err
		}
	}
	return nil
}

func backfillSubmissionScores(tx *gorm.DB) error {
	return tx.Exec(`UPDATE submissions SET total_score = (
		SELECT COALESCE(SUM(options.score), 0)
		FROM responses JOIN options ON options.id = responses.option_id
		WHERE responses.submission_id = submissions.id
	)`).Error
}
