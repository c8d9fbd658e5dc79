package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"portfolio/internal/apperr"
	"portfolio/internal/models"
	"portfolio/internal/repositories"
	"portfolio/internal/utils"
)

var errBadCredentials = fmt.Errorf("%w: invalid username or password", apperr.ErrUnauthorized)

type LoginResult struct {
	Token     string        `json:"token"`
	ExpiresAt time.Time     `json:"expires_at"`
	Admin     *models.Admin `json:"user"`
}

type AuthService interface {
	Login(ctx context.Context, username, password string) (*LoginResult, error)
	VerifyToken(token string) (*utils.Claims, error)
	// EnsureAdmin creates the admin or resets its password hash.
	EnsureAdmin(ctx context.Context, username, passwordHash string) (*models.Admin, error)
	CreateAdmin(ctx context.Context, username, password string) (*models.Admin, error)
}

type authService struct {
	admins repositories.AdminRepository
	tokens *utils.TokenManager
}

func NewAuthService(admins repositories.AdminRepository, tokens *utils.TokenManager) AuthService {
	return &authService{admins: admins, tokens: tokens}
}

func HashPassword(password string) (string, error) {
	if len(password) < 8 {
		return "", apperr.Validation("password must be at least 8 characters")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

func (s *authService) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	admin, err := s.admins.GetByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return nil, errBadCredentials
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(password)); err != nil {
		return nil, errBadCredentials
	}
	token, exp, err := s.tokens.Issue(admin.ID, admin.Username)
	if err != nil {
		return nil, err
	}
	return &LoginResult{Token: token, ExpiresAt: exp, Admin: admin}, nil
}

func (s *authService) VerifyToken(token string) (*utils.Claims, error) {
	return s.tokens.Verify(token)
}

func (s *authService) EnsureAdmin(ctx context.Context, username, passwordHash string) (*models.Admin, error) {
	username = strings.TrimSpace(username)
	if username == "" || passwordHash == "" {
		return nil, apperr.Validation("admin username and password hash are required")
	}
	if _, err := bcrypt.Cost([]byte(passwordHash)); err != nil {
		return nil, apperr.Validation("admin password hash is not a bcrypt hash")
	}
	admin, err := s.admins.Upsert(ctx, username, passwordHash)
	if err != nil {
		return nil, fmt.Errorf("ensure admin %q: %w", username, err)
	}
	log.Printf("[auth][ensure-admin] admin %q ready (id=%d)", admin.Username, admin.ID)
	return admin, nil
}

func (s *authService) CreateAdmin(ctx context.Context, username, password string) (*models.Admin, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, apperr.Validation("username is required")
	}
	hash, err := HashPassword(password)
	if err != nil {
		return nil, err
	}
	admin := &models.Admin{Username: username, PasswordHash: hash}
	if err := s.admins.Create(ctx, admin); err != nil {
		return nil, err
	}
	return admin, nil
}
