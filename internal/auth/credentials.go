package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/nileshkumaryadav1/smart-campus-service-hub/internal/crypto"
	"github.com/nileshkumaryadav1/smart-campus-service-hub/internal/model"
)

var (
	// ErrInvalidCredentials covers both an unknown email and a wrong
	// password so a login response cannot be used to enumerate accounts.
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrDuplicateEmail     = errors.New("email already registered")
	ErrUserNotFound       = errors.New("user not found")
)

// Profile is the outward projection of a user record. It deliberately has no
// password-hash field; the hash never leaves this package.
type Profile struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

// UserStore is the slice of the persistence layer the credential adapter
// needs. The pgx repository implements it; tests use an in-memory fake.
type UserStore interface {
	GetUserByEmail(ctx context.Context, email string) (model.User, error)
	GetUserByID(ctx context.Context, id string) (model.User, error)
	CreateUser(ctx context.Context, user model.User) error
}

type Credentials struct {
	users UserStore
}

func NewCredentials(users UserStore) *Credentials {
	return &Credentials{users: users}
}

// dummyHash is compared against when no account matches the email, so the
// two ErrInvalidCredentials paths cost roughly the same.
var dummyHash, _ = crypto.HashPassword("enumeration-resistance")

func (c *Credentials) FindByIdentity(ctx context.Context, id string) (Profile, error) {
	user, err := c.users.GetUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return Profile{}, ErrUserNotFound
		}
		return Profile{}, err
	}
	return toProfile(user), nil
}

func (c *Credentials) FindByEmailAndPassword(ctx context.Context, email, password string) (Profile, error) {
	email = NormalizeEmail(email)
	user, err := c.users.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			_ = crypto.CheckPassword(dummyHash, password)
			return Profile{}, ErrInvalidCredentials
		}
		return Profile{}, err
	}
	if err := crypto.CheckPassword(user.PasswordHash, password); err != nil {
		return Profile{}, ErrInvalidCredentials
	}
	return toProfile(user), nil
}

// Create registers a new account. Registration always produces a student;
// privileged roles are granted out of band.
func (c *Credentials) Create(ctx context.Context, name, email, password string) (Profile, error) {
	hash, err := crypto.HashPassword(password)
	if err != nil {
		return Profile{}, err
	}
	now := time.Now().UTC()
	user := model.User{
		ID:           uuid.NewString(),
		Name:         strings.TrimSpace(name),
		Email:        NormalizeEmail(email),
		PasswordHash: hash,
		Role:         model.RoleStudent,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := c.users.CreateUser(ctx, user); err != nil {
		if errors.Is(err, model.ErrDuplicateEmail) {
			return Profile{}, ErrDuplicateEmail
		}
		return Profile{}, err
	}
	return toProfile(user), nil
}

func NormalizeEmail(email string) string {
	return strings.TrimSpace(strings.ToLower(email))
}

func toProfile(user model.User) Profile {
	return Profile{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		Role:      user.Role,
		CreatedAt: user.CreatedAt,
	}
}
