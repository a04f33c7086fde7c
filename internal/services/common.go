package services

import (
	"errors"

	"assessment-backend/internal/apperr"

	"gorm.io/gorm"
)

const (
	DefaultLimit = 100
	MaxLimit     = 500
)

// Page is a skip/limit window over a list.
type Page struct {
	Skip  int
	Limit int
}

func paginate(p Page) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		limit := p.Limit
		if limit <= 0 {
			limit = DefaultLimit
		}
		if limit > MaxLimit {
			limit = MaxLimit
		}
		skip := p.Skip
		if skip < 0 {
			skip = 0
		}
		return db.Offset(skip).Limit(limit)
	}
}

// mustExist returns apperr.NotFound(what) unless a row of model with the given id exists.
func mustExist(tx *gorm.DB, model any, id uint, what string) error {
	var count int64
	if err := tx.Model(model).Where("id = ?", id).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return apperr.NotFound(what)
	}
	return nil
}

// deleteByID deletes one row and reports NotFound when nothing matched.
func deleteByID(tx *gorm.DB, model any, id uint, what string) error {
	result := tx.Delete(model, id)
	if result.Error != nil {
		return apperr.Translate(result.Error, what)
	}
	if result.RowsAffected == 0 {
		return apperr.NotFound(what)
	}
	return nil
}

func isNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
