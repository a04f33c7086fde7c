package services

import (
	"context"
	"errors"
	"time"

	"assessment-backend/internal/dto"
	"assessment-backend/internal/models"

	"github.com/golang-jwt/jwt/v5"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

type AuthService struct {
	users     *UserService
	jwtSecret []byte
	tokenTTL  time.Duration
}

func NewAuthService(users *UserService, jwtSecret string) *AuthService {
	return &AuthService{users: users, jwtSecret: []byte(jwtSecret), tokenTTL: 24 * time.Hour}
}

// Register creates a user in an existing group and returns a token for them.
func (s *AuthService) Register(ctx context.Context, in dto.UserCreate) (string, *models.User, error) {
	user, err := s.users.Create(ctx, in)
	if err != nil {
		return "", nil, err
	}
	token, err := s.GenerateToken(user.ID)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

func (s *AuthService) Login(ctx context.Context, username, password string) (string, *models.User, error) {
	user, err := s.users.Authenticate(ctx, username, password)
	if err != nil {
		return "", nil, err
	}
	token, err := s.GenerateToken(user.ID)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

func (s *AuthService) GenerateToken(userID uint) (string, error) {
	claims := jwt.MapClaims{
		"user_id": userID,
		"exp":     time.Now().Add(s.tokenTTL).Unix(),
		"iat":     time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.jwtSecret)
}

func (s *AuthService) ValidateToken(tokenString string) (uint, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.jwtSecret, nil
	})
	if err != nil || !token.Valid {
		return 0, errors.New("invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, errors.New("invalid claims")
	}

	userIDFloat, ok := claims["user_id"].(float64)
	if !ok || userIDFloat <= 0 {
		return 0, errors.New("invalid user_id in token")
	}

	return uint(userIDFloat), nil
}
