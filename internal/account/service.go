package account

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// Repository persists accounts. CreateAccount returns ErrExists when the
// username is taken, GetAccount returns ErrNotFound when it is unknown.
//
//go:generate mockgen -source=service.go -destination=repository_mock.go -package=account
type Repository interface {
	CreateAccount(ctx context.Context, acc *Account) error
	GetAccount(ctx context.Context, username string) (*Account, error)
	ListAccounts(ctx context.Context) ([]*Account, error)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

const minPasswordLen = 6

type RegisterParams struct {
	Username     string
	Password     string
	BusinessName string
	BusinessType BusinessType
}

func (s *Service) Register(ctx context.Context, p RegisterParams) (*Account, error) {
	username := strings.TrimSpace(p.Username)
	if username == "" {
		return nil, fmt.Errorf("username is required")
	}

	if len(p.Password) < minPasswordLen {
		return nil, fmt.Errorf("password must be at least %d characters", minPasswordLen)
	}

	if _, err := ParseBusinessType(string(p.BusinessType)); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(p.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	acc := &Account{
		Username:     username,
		PasswordHash: string(hash),
		Role:         RoleUser,
		BusinessName: strings.TrimSpace(p.BusinessName),
		BusinessType: p.BusinessType,
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.repo.CreateAccount(ctx, acc); err != nil {
		return nil, fmt.Errorf("creating account: %w", err)
	}

	return acc, nil
}

// Login verifies the credentials and returns the account. Unknown usernames
// and wrong passwords are indistinguishable to the caller.
func (s *Service) Login(ctx context.Context, username, password string) (*Account, error) {
	acc, err := s.repo.GetAccount(ctx, strings.TrimSpace(username))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrInvalidCredentials
		}

		return nil, fmt.Errorf("loading account: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(acc.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return acc, nil
}

func (s *Service) Get(ctx context.Context, username string) (*Account, error) {
	return s.repo.GetAccount(ctx, username)
}

func (s *Service) List(ctx context.Context) ([]*Account, error) {
	return s.repo.ListAccounts(ctx)
}

// EnsureAdmin creates the admin account on first start. An existing account
// with the same username is left untouched.
func (s *Service) EnsureAdmin(ctx context.Context, username, password string) error {
	if _, err := s.repo.GetAccount(ctx, username); err == nil {
		return nil
	} else if !errors.Is(err, ErrNotFound) {
		return fmt.Errorf("checking admin account: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hashing admin password: %w", err)
	}

	acc := &Account{
		Username:     username,
		PasswordHash: string(hash),
		Role:         RoleAdmin,
		BusinessName: "Administration",
		BusinessType: BusinessServices,
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.repo.CreateAccount(ctx, acc); err != nil {
		if errors.Is(err, ErrExists) {
			return nil
		}

		return fmt.Errorf("creating admin account: %w", err)
	}

	slog.Info("admin account created", "username", username)

	return nil
}
