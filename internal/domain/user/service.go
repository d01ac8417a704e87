package user

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// guestPassword is the shared credential for auto-created guest accounts.
const guestPassword = "guest_password"

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Register(ctx context.Context, username, password string, email *string) (*User, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, fmt.Errorf("username and password are required")
	}

	taken, err := s.repo.UsernameExists(ctx, username)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrUsernameTaken
	}

	if email != nil && *email != "" {
		used, err := s.repo.EmailExists(ctx, *email)
		if err != nil {
			return nil, err
		}
		if used {
			return nil, ErrEmailTaken
		}
	}

	hash, err := hashPassword(password)
	if err != nil {
		return nil, err
	}

	account := User{
		Username:     username,
		PasswordHash: hash,
		Role:         RoleUser,
		Email:        email,
	}
	if err := s.repo.Create(ctx, &account); err != nil {
		return nil, err
	}
	return &account, nil
}

func (s *Service) Authenticate(ctx context.Context, username, password string) (*User, error) {
	account, err := s.repo.GetByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if err == ErrUserNotFound {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}
	return account, nil
}

// GuestLogin finds or creates the guest account tied to the caller's address.
func (s *Service) GuestLogin(ctx context.Context, remoteAddr string) (*User, error) {
	username := "guest_" + strings.TrimSpace(remoteAddr)

	account, err := s.repo.GetByUsername(ctx, username)
	if err == nil {
		return account, nil
	}
	if err != ErrUserNotFound {
		return nil, err
	}

	hash, err := hashPassword(guestPassword)
	if err != nil {
		return nil, err
	}

	guest := User{
		Username:     username,
		PasswordHash: hash,
		Role:         RoleGuest,
	}
	if err := s.repo.Create(ctx, &guest); err != nil {
		return nil, err
	}
	return &guest, nil
}

func (s *Service) GetByID(ctx context.Context, id uint) (*User, error) {
	return s.repo.GetByID(ctx, id)
}

// GetRole reports the role of the given user, for authorization checks.
func (s *Service) GetRole(ctx context.Context, id uint) (string, error) {
	account, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return "", err
	}
	return account.Role, nil
}

// EnsureAdmin creates the initial admin account when no admin exists yet.
func (s *Service) EnsureAdmin(ctx context.Context, username, password string) error {
	exists, err := s.repo.HasRole(ctx, RoleAdmin)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	hash, err := hashPassword(password)
	if err != nil {
		return err
	}

	email := "admin@qd-calendar.com"
	admin := User{
		Username:     username,
		PasswordHash: hash,
		Role:         RoleAdmin,
		Email:        &email,
	}
	return s.repo.Create(ctx, &admin)
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}
