package services

import (
	"context"
	"errors"
	"strings"

	"assessment-backend/internal/apperr"
	"assessment-backend/internal/dto"
	"assessment-backend/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type UserService struct {
	db *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db}
}

func (s *UserService) Create(ctx context.Context, in dto.UserCreate) (*models.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	var userID uint
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := mustExist(tx, &models.UserGroup{}, in.GroupID, "user group"); err != nil {
			return err
		}
		user := models.User{
			Username:       in.Username,
			Email:          strings.ToLower(in.Email),
			FullName:       in.FullName,
			HashedPassword: string(hash),
			GroupID:        in.GroupID,
		}
		if err := tx.Create(&user).Error; err != nil {
			if err = apperr.Translate(err, "user"); errors.Is(err, apperr.ErrConflict) {
				return apperr.Conflict("username or email already taken")
			}
			return err
		}
		userID = user.ID
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.Get(ctx, userID)
}

func (s *UserService) Get(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Preload("Group").First(&user, id).Error; err != nil {
		return nil, apperr.Translate(err, "user")
	}
	return &user, nil
}

func (s *UserService) List(ctx context.Context, groupID uint, page Page) ([]models.User, error) {
	q := s.db.WithContext(ctx).Preload("Group")
	if groupID != 0 {
		q = q.Where("group_id = ?", groupID)
	}
	var users []models.User
	err := q.Scopes(paginate(page)).Order("id ASC").Find(&users).Error
	return users, err
}

func (s *UserService) Update(ctx context.Context, id uint, in dto.UserUpdate) (*models.User, error) {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.First(&user, id).Error; err != nil {
			return apperr.Translate(err, "user")
		}

		if in.Email != nil {
			user.Email = strings.ToLower(*in.Email)
		}
		if in.FullName != nil {
			user.FullName = *in.FullName
		}
		if in.GroupID != nil {
			if err := mustExist(tx, &models.UserGroup{}, *in.GroupID, "user group"); err != nil {
				return err
			}
			user.GroupID = *in.GroupID
		}
		if in.Password != nil {
			if len(*in.Password) < 6 {
				return apperr.Validation("password must be at least 6 characters")
			}
			hash, err := bcrypt.GenerateFromPassword([]byte(*in.Password), bcrypt.DefaultCost)
			if err != nil {
				return err
			}
			user.HashedPassword = string(hash)
		}

		if err := tx.Omit("Group").Save(&user).Error; err != nil {
			return apperr.Translate(err, "user")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.Get(ctx, id)
}

// Delete removes the user together with their submissions and responses.
func (s *UserService) Delete(ctx context.Context, id uint) error {
	return deleteByID(s.db.WithContext(ctx), &models.User{}, id, "user")
}

// Authenticate returns the user when username and password match.
func (s *UserService) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Preload("Group").Where("username = ?", username).First(&user).Error; err != nil {
		if isNotFound(err) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return &user, nil
}
