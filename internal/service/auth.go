package service

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/iliyamo/cinema-seat-booking/internal/model"
	"github.com/iliyamo/cinema-seat-booking/internal/pkg/errs"
	"github.com/iliyamo/cinema-seat-booking/internal/repository"
	"github.com/iliyamo/cinema-seat-booking/internal/utils"
)

const (
	minUsernameLen = 3
	minPasswordLen = 6
)

var (
	ErrUsernameTooShort   = errs.New("username must be at least 3 characters")
	ErrPasswordTooShort   = errs.New("password must be at least 6 characters")
	ErrInvalidCredentials = errs.New("invalid username or password")
)

// AuthService registers and authenticates accounts.  It returns users;
// callers decide how to carry the identity (token, flag) and pass it
// explicitly to booking calls.
type AuthService struct {
	users      UserStore
	bcryptCost int
}

func NewAuthService(users UserStore, bcryptCost int) *AuthService {
	return &AuthService{users: users, bcryptCost: bcryptCost}
}

// Register creates a customer account.  A taken username surfaces as
// repository.ErrUsernameTaken.
func (s *AuthService) Register(ctx context.Context, username, password string) (*model.User, error) {
	username = strings.TrimSpace(username)
	if utf8.RuneCountInString(username) < minUsernameLen {
		return nil, ErrUsernameTooShort
	}
	if utf8.RuneCountInString(password) < minPasswordLen {
		return nil, ErrPasswordTooShort
	}
	if len(password) > utils.MaxPasswordBytes {
		return nil, utils.ErrPasswordTooLong
	}
	hash, err := utils.HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, errs.Wrap(err, "hash password")
	}
	id, err := s.users.Create(ctx, username, hash, model.RoleCustomer)
	if err != nil {
		return nil, err
	}
	return &model.User{ID: id, Username: username, PasswordHash: hash, Role: model.RoleCustomer}, nil
}

// Login verifies a username and password.  Unknown users and wrong
// passwords both yield ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, username, password string) (*model.User, error) {
	u, err := s.users.GetByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !utils.VerifyPassword(u.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}
	return u, nil
}

// User returns the account with the given id.
func (s *AuthService) User(ctx context.Context, id uint64) (*model.User, error) {
	return s.users.GetByID(ctx, id)
}
