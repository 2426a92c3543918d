package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/DavideLicci/MindGarden/internal/auth"
	"github.com/DavideLicci/MindGarden/internal/model"
	"github.com/DavideLicci/MindGarden/internal/store"
)

// TokenIssuer signs session tokens.
type TokenIssuer interface {
	Issue(u *model.User) (string, error)
}

// UserService handles registration and login.
type UserService struct {
	store  store.Store
	tokens TokenIssuer
}

func NewUserService(s store.Store, tokens TokenIssuer) *UserService {
	return &UserService{store: s, tokens: tokens}
}

// Register creates the account with its garden and settings and returns a session token.
func (s *UserService) Register(ctx context.Context, email, password string) (string, *model.User, error) {
	hash, err := auth.HashPassword(password)
	if err != nil {
		return "", nil, err
	}
	u, err := s.store.Users().Register(ctx, normalizeEmail(email), hash)
	if err != nil {
		if errors.Is(err, model.ErrConflict) {
			return "", nil, fmt.Errorf("%w: email already registered", model.ErrConflict)
		}
		return "", nil, fmt.Errorf("register: %w", err)
	}
	token, err := s.tokens.Issue(u)
	if err != nil {
		return "", nil, err
	}
	return token, u, nil
}

// Login checks the credentials. Unknown emails and wrong passwords look the same.
func (s *UserService) Login(ctx context.Context, email, password string) (string, error) {
	u, err := s.store.Users().GetByEmail(ctx, normalizeEmail(email))
	if errors.Is(err, model.ErrNotFound) {
		return "", fmt.Errorf("%w: invalid credentials", model.ErrUnauthorized)
	}
	if err != nil {
		return "", fmt.Errorf("login: %w", err)
	}
	ok, err := auth.CheckPassword(u.PasswordHash, password)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", fmt.Errorf("%w: invalid credentials", model.ErrUnauthorized)
	}
	return s.tokens.Issue(u)
}

func (s *UserService) Get(ctx context.Context, userID int64) (*model.User, error) {
	return s.store.Users().Get(ctx, userID)
}

func normalizeEmail(e string) string { return strings.ToLower(strings.TrimSpace(e)) }
