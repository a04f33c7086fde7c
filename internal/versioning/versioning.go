// Package versioning keeps numbered versions of a row type grouped by a parent
// scope, with at most one version per scope marked active.
//
// Assessments are versioned per assessment type, question sets per assessment
// and option sets per question. Each of those models implements Versioned and
// gets a Scope naming its scope column.
package versioning

import (
	"context"
	"errors"
	"fmt"

	"assessment-backend/internal/apperr"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Versioned is implemented by the pointer type of every versioned model.
type Versioned interface {
	ScopeKey() uint
	SetVersion(v int)
	SetActive(flag bool)
}

type Row[T any] interface {
	*T
	Versioned
}

// Scope runs versioning for rows of T. Column is the scope key column and must
// be a trusted identifier, never user input. The table needs integer columns
// version and is_active.
type Scope[T any, P Row[T]] struct {
	Name   string
	Column string
}

func New[T any, P Row[T]](name, column string) Scope[T, P] {
	return Scope[T, P]{Name: name, Column: column}
}

// NextVersion returns max(version)+1 for the scope, or 1 for an empty scope.
func (s Scope[T, P]) NextVersion(tx *gorm.DB, scopeID uint) (int, error) {
	var maxVersion int
	err := tx.Model(P(new(T))).
		Where(s.Column+" = ?", scopeID).
		Select("COALESCE(MAX(version), 0)").
		Scan(&maxVersion).Error
	if err != nil {
		return 0, fmt.Errorf("read latest %s version: %w", s.Name, err)
	}
	return maxVersion + 1, nil
}

// CreateNext inserts row as the next version of its scope. The new row is
// always inactive and siblings are left untouched. Associations on row are not
// saved; callers insert children themselves inside the same transaction.
func (s Scope[T, P]) CreateNext(tx *gorm.DB, row P) error {
	version, err := s.NextVersion(tx, row.ScopeKey())
	if err != nil {
		return err
	}
	row.SetVersion(version)
	row.SetActive(false)

	if err := tx.Omit(clause.Associations).Create(row).Error; err != nil {
		if err = apperr.Translate(err, s.Name); errors.Is(err, apperr.ErrConflict) {
			return apperr.Conflict("%s version %d was created concurrently, retry the request", s.Name, version)
		}
		return err
	}
	return nil
}

// Activate makes the row with the given id the only active version of its
// scope. Activating the active version again changes nothing. A competing
// activation that commits first makes this one fail with apperr.ErrConflict;
// the caller may re-issue it.
func (s Scope[T, P]) Activate(ctx context.Context, db *gorm.DB, id uint) (P, error) {
	row := P(new(T))
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(row, id).Error; err != nil {
			return apperr.Translate(err, s.Name)
		}
		scopeID := row.ScopeKey()

		if err := s.lockScope(tx, scopeID); err != nil {
			return err
		}

		if err := tx.Model(P(new(T))).
			Where(s.Column+" = ? AND is_active = ? AND id <> ?", scopeID, true, id).
			Update("is_active", false).Error; err != nil {
			return apperr.Translate(err, s.Name)
		}
		if err := tx.Model(P(new(T))).
			Where("id = ?", id).
			Update("is_active", true).Error; err != nil {
			return apperr.Translate(err, s.Name)
		}
		row.SetActive(true)
		return nil
	})
	if err != nil {
		if errors.Is(err, apperr.ErrConflict) {
			return nil, apperr.Conflict("another %s was activated concurrently, retry the request", s.Name)
		}
		return nil, err
	}
	return row, nil
}

// Active returns the active version of the scope, or nil when none has been
// activated yet.
func (s Scope[T, P]) Active(ctx context.Context, db *gorm.DB, scopeID uint, preloads ...string) (P, error) {
	row := P(new(T))
	q := db.WithContext(ctx).Where(s.Column+" = ? AND is_active = ?", scopeID, true)
	for _, p := range preloads {
		q = q.Preload(p)
	}
	if err := q.First(row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return row, nil
}

// Versions lists every version of the scope, newest first.
func (s Scope[T, P]) Versions(ctx context.Context, db *gorm.DB, scopeID uint, preloads ...string) ([]T, error) {
	var rows []T
	q := db.WithContext(ctx).Where(s.Column+" = ?", scopeID).Order("version DESC")
	for _, p := range preloads {
		q = q.Preload(p)
	}
	if err := q.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// lockScope takes row locks on every version in the scope so concurrent
// activations of the same scope run one after another. SQLite already
// serializes writers and has no FOR UPDATE.
func (s Scope[T, P]) lockScope(tx *gorm.DB, scopeID uint) error {
	if tx.Dialector.Name() == "sqlite" {
		return nil
	}
	var ids []uint
	err := tx.Model(P(new(T))).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where(s.Column+" = ?", scopeID).
		Pluck("id", &ids).Error
	if err != nil {
		return fmt.Errorf("lock %s versions: %w", s.Name, err)
	}
	return nil
}
