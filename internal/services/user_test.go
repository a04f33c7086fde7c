package services

import (
	"context"
	"errors"
	"testing"

	"assessment-backend/internal/apperr"
	"assessment-backend/internal/dto"
)

func TestUserCreateHashesPassword(t *testing.T) {
	env := newTestEnv(t)
	typ := env.mustType(t, "Safety")
	group := env.mustGroup(t, "Warehouse", typ.ID)

	u, err := env.users.Create(context.Background(), dto.UserCreate{
		Username: "jdoe",
		Email:    "JDoe@Example.com",
		Password: "password123",
		GroupID:  group.ID,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if u.HashedPassword == "" || u.HashedPassword == "password123" {
		t.Fatal("password was not hashed")
	}
	if u.Email != "jdoe@example.com" {
		t.Fatalf("expected lowercased email, got %q", u.Email)
	}
	if u.Group == nil || u.Group.ID != group.ID {
		t.Fatalf("expected group loaded, got %+v", u.Group)
	}
}

func TestUserCreateDuplicate(t *testing.T) {
	env := newTestEnv(t)
	typ := env.mustType(t, "Safety")
	group := env.mustGroup(t, "Warehouse", typ.ID)
	env.mustUser(t, "jdoe", group.ID)

	_, err := env.users.Create(context.Background(), dto.UserCreate{
		Username: "jdoe",
		Email:    "other@example.com",
		Password: "password123",
		GroupID:  group.ID,
	})
	if !errors.Is(err, apperr.ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
}

func TestUserCreateUnknownGroup(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.users.Create(context.Background(), dto.UserCreate{
		Username: "jdoe",
		Email:    "jdoe@example.com",
		Password: "password123",
		GroupID:  5,
	})
	if !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestUserGroupDeleteReferenced(t *testing.T) {
	env := newTestEnv(t)
	typ := env.mustType(t, "Safety")
	group := env.mustGroup(t, "Warehouse", typ.ID)
	env.mustUser(t, "jdoe", group.ID)

	if err := env.groups.Delete(context.Background(), group.ID); !errors.Is(err, apperr.ErrReferenced) {
		t.Fatalf("expected ErrReferenced, got %v", err)
	}
}

func TestUserUpdateAndAuthenticate(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	typ := env.mustType(t, "Safety")
	group := env.mustGroup(t, "Warehouse", typ.ID)
	other := env.mustGroup(t, "Office", typ.ID)
	u := env.mustUser(t, "jdoe", group.ID)

	password := "new-secret"
	fullName := "Jane Doe"
	updated, err := env.users.Update(ctx, u.ID, dto.UserUpdate{Password: &password, FullName: &fullName, GroupID: &other.ID})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.FullName != fullName || updated.GroupID != other.ID {
		t.Fatalf("unexpected update result %+v", updated)
	}

	if _, err := env.users.Authenticate(ctx, "jdoe", "password123"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("old password should fail, got %v", err)
	}
	if _, err := env.users.Authenticate(ctx, "jdoe", password); err != nil {
		t.Fatalf("new password should work: %v", err)
	}
	if _, err := env.users.Authenticate(ctx, "nobody", password); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("unknown user should fail, got %v", err)
	}

	short := "abc"
	if _, err := env.users.Update(ctx, u.ID, dto.UserUpdate{Password: &short}); !errors.Is(err, apperr.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestAuthServiceTokens(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	typ := env.mustType(t, "Safety")
	group := env.mustGroup(t, "Warehouse", typ.ID)
	auth := NewAuthService(env.users, "test-secret")

	token, user, err := auth.Register(ctx, dto.UserCreate{
		Username: "jdoe",
		Email:    "jdoe@example.com",
		Password: "password123",
		GroupID:  group.ID,
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	id, err := auth.ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken: %v", err)
	}
	if id != user.ID {
		t.Fatalf("token carries user %d, expected %d", id, user.ID)
	}

	if _, _, err := auth.Login(ctx, "jdoe", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}

	other := NewAuthService(env.users, "other-secret")
	if _, err := other.ValidateToken(token); err == nil {
		t.Fatal("token signed with another secret must be rejected")
	}
}
