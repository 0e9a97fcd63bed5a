package auth

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/nileshkumaryadav1/smart-campus-service-hub/internal/model"
)

type fakeUserStore struct {
	byID    map[string]model.User
	byEmail map[string]model.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{
		byID:    map[string]model.User{},
		byEmail: map[string]model.User{},
	}
}

func (f *fakeUserStore) GetUserByEmail(_ context.Context, email string) (model.User, error) {
	user, ok := f.byEmail[email]
	if !ok {
		return model.User{}, model.ErrNotFound
	}
	return user, nil
}

func (f *fakeUserStore) GetUserByID(_ context.Context, id string) (model.User, error) {
	user, ok := f.byID[id]
	if !ok {
		return model.User{}, model.ErrNotFound
	}
	return user, nil
}

func (f *fakeUserStore) CreateUser(_ context.Context, user model.User) error {
	if _, ok := f.byEmail[user.Email]; ok {
		return model.ErrDuplicateEmail
	}
	f.byID[user.ID] = user
	f.byEmail[user.Email] = user
	return nil
}

func TestCreateAndFind(t *testing.T) {
	creds := NewCredentials(newFakeUserStore())
	ctx := context.Background()

	profile, err := creds.Create(ctx, "A", "  A@X.com ", "secret")
	if err != nil {
		t.Fatalf("create error: %v", err)
	}
	if profile.Email != "a@x.com" {
		t.Fatalf("expected normalized email, got %s", profile.Email)
	}
	if profile.Role != model.RoleStudent {
		t.Fatalf("expected student role, got %s", profile.Role)
	}

	found, err := creds.FindByIdentity(ctx, profile.ID)
	if err != nil {
		t.Fatalf("find error: %v", err)
	}
	if found.Name != "A" {
		t.Fatalf("unexpected profile: %+v", found)
	}
}

func TestDuplicateEmail(t *testing.T) {
	creds := NewCredentials(newFakeUserStore())
	ctx := context.Background()

	if _, err := creds.Create(ctx, "A", "a@x.com", "secret"); err != nil {
		t.Fatalf("create error: %v", err)
	}
	if _, err := creds.Create(ctx, "B", "A@X.COM", "other"); !errors.Is(err, ErrDuplicateEmail) {
		t.Fatalf("expected ErrDuplicateEmail, got %v", err)
	}
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	creds := NewCredentials(newFakeUserStore())
	ctx := context.Background()

	if _, err := creds.Create(ctx, "A", "a@x.com", "secret"); err != nil {
		t.Fatalf("create error: %v", err)
	}

	_, wrongPassword := creds.FindByEmailAndPassword(ctx, "a@x.com", "nope")
	_, unknownEmail := creds.FindByEmailAndPassword(ctx, "nobody@x.com", "secret")
	if !errors.Is(wrongPassword, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for wrong password, got %v", wrongPassword)
	}
	if !errors.Is(unknownEmail, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for unknown email, got %v", unknownEmail)
	}
	if wrongPassword != unknownEmail {
		t.Fatalf("expected the identical failure kind for both paths")
	}

	profile, err := creds.FindByEmailAndPassword(ctx, " A@X.com ", "secret")
	if err != nil {
		t.Fatalf("login error: %v", err)
	}
	if profile.Email != "a@x.com" {
		t.Fatalf("unexpected profile: %+v", profile)
	}
}

func TestProfileNeverCarriesHash(t *testing.T) {
	creds := NewCredentials(newFakeUserStore())
	profile, err := creds.Create(context.Background(), "A", "a@x.com", "secret")
	if err != nil {
		t.Fatalf("create error: %v", err)
	}

	raw, err := json.Marshal(profile)
	if err != nil {
		t.Fatalf("marshal error: %v", err)
	}
	lowered := strings.ToLower(string(raw))
	if strings.Contains(lowered, "password") || strings.Contains(lowered, "hash") {
		t.Fatalf("profile serialization leaks secret material: %s", raw)
	}
}
