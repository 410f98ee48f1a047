package user

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/MrJamesThe3rd/rkap/internal/validation"
)

const bcryptCost = 12

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=user
type Repository interface {
	CreateUser(ctx context.Context, u *User) error
	GetUser(ctx context.Context, id int64) (*User, error)
	GetUserByEmail(ctx context.Context, email string) (*User, error)
	ListUsers(ctx context.Context) ([]User, error)
	UpdateRole(ctx context.Context, id int64, role Role) error
	DeleteUser(ctx context.Context, id int64) error
}

type Service struct {
	repo Repository
	cost int
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, cost: bcryptCost}
}

// WithCost overrides the bcrypt cost, mainly so tests stay fast.
func (s *Service) WithCost(cost int) *Service {
	s.cost = cost
	return s
}

type CreateParams struct {
	FullName  string `json:"fullName" validate:"required,max=255"`
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=8,max=72"`
	Role      Role   `json:"role" validate:"omitempty,oneof=admin assistant_admin member"`
	AvatarURL string `json:"avatarUrl"`
}

func (s *Service) Create(ctx context.Context, params CreateParams) (*User, error) {
	params.FullName = strings.TrimSpace(params.FullName)
	params.Email = strings.ToLower(strings.TrimSpace(params.Email))

	if err := validation.Struct(params); err != nil {
		return nil, err
	}

	if params.Role == "" {
		params.Role = RoleMember
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(params.Password), s.cost)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	u := &User{
		FullName:     params.FullName,
		Email:        params.Email,
		PasswordHash: string(hash),
		Role:         params.Role,
		AvatarURL:    strings.TrimSpace(params.AvatarURL),
	}

	if err := s.repo.CreateUser(ctx, u); err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "user created", "id", u.ID, "email", u.Email, "role", u.Role)

	return u, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*User, error) {
	return s.repo.GetUser(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]User, error) {
	return s.repo.ListUsers(ctx)
}

func (s *Service) UpdateRole(ctx context.Context, id int64, role Role) (*User, error) {
	if !role.Valid() {
		return nil, validation.Field("role", "must be one of: admin assistant_admin member")
	}

	if err := s.repo.UpdateRole(ctx, id, role); err != nil {
		return nil, err
	}

	return s.repo.GetUser(ctx, id)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.DeleteUser(ctx, id)
}

// Authenticate returns the user matching the credentials. Unknown email and
// wrong password both yield ErrInvalidCredentials.
func (s *Service) Authenticate(ctx context.Context, email, password string) (*User, error) {
	u, err := s.repo.GetUserByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrInvalidCredentials
		}

		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		slog.WarnContext(ctx, "failed login", "email", u.Email)
		return nil, ErrInvalidCredentials
	}

	return u, nil
}
