package service

import (
	"context"
	"errors"
	"net/http"

	"golang.org/x/crypto/bcrypt"

	"smartbooking/internal/db"
	apperrors "smartbooking/internal/errors"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

type AdminAuthService interface {
	Login(ctx context.Context, email, password string) (string, error)
	CreateAdmin(ctx context.Context, email, password string) error
}

type AdminAccounts interface {
	GetByEmail(ctx context.Context, email string) (*db.Admin, error)
	CreateNewUser(ctx context.Context, email, password string) error
}

type TokenIssuer interface {
	Issue(adminID int, email string, accessLevel int) (string, error)
}

type adminAuthService struct {
	repo   AdminAccounts
	tokens TokenIssuer
}

func NewAdminAuthService(repo AdminAccounts, tokens TokenIssuer) AdminAuthService {
	return &adminAuthService{repo: repo, tokens: tokens}
}

func (s *adminAuthService) Login(ctx context.Context, email, password string) (string, error) {
	admin, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return "", err
	}
	if admin == nil {
		return "", apperrors.Wrap(http.StatusUnauthorized, "Invalid credentials", ErrInvalidCredentials)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(password)); err != nil {
		return "", apperrors.Wrap(http.StatusUnauthorized, "Invalid credentials", ErrInvalidCredentials)
	}
	return s.tokens.Issue(admin.ID, admin.Email, admin.AccessLevel)
}

func (s *adminAuthService) CreateAdmin(ctx context.Context, email, password string) error {
	if email == "" || password == "" {
		return apperrors.ErrBadRequest("email and password cannot be empty")
	}
	return s.repo.CreateNewUser(ctx, email, password)
}
