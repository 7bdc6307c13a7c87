package services

import (
	"errors"
	"fmt"
	"strings"

	"quill/app/auth"
	"quill/app/models"
	"quill/app/repositories"
)

var (
	ErrUserExists        = errors.New("user already exists")
	ErrUnknownEmail      = errors.New("unknown email")
	ErrIncorrectPassword = errors.New("incorrect password")
)

// UserService handles registration, login and the administrator rule
type UserService struct {
	userRepo repositories.UserRepository
}

// NewUserService creates a new UserService
func NewUserService(userRepo repositories.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// Register creates a user with a hashed password. It fails with ErrUserExists when
// the email is already registered.
func (s *UserService) Register(form *models.RegisterForm) (*models.User, error) {
	form.Email = normalizeEmail(form.Email)
	if err := form.Validate(); err != nil {
		return nil, err
	}

	if _, err := s.userRepo.GetByEmail(form.Email); err == nil {
		return nil, ErrUserExists
	} else if !errors.Is(err, repositories.ErrNotFound) {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	hash, err := auth.HashPassword(form.Password)
	if err != nil {
		return nil, err
	}
	user := &models.User{
		Email:    form.Email,
		Password: hash,
		Name:     strings.TrimSpace(form.Name),
	}
	if err := s.userRepo.Create(user); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return nil, ErrUserExists
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return user, nil
}

// Authenticate checks credentials and returns the matching user.
func (s *UserService) Authenticate(form *models.LoginForm) (*models.User, error) {
	form.Email = normalizeEmail(form.Email)
	if err := form.Validate(); err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByEmail(form.Email)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, ErrUnknownEmail
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	if !auth.CheckPassword(form.Password, user.Password) {
		return nil, ErrIncorrectPassword
	}
	return user, nil
}

// GetUser retrieves a user by ID
func (s *UserService) GetUser(id uint) (*models.User, error) {
	return s.userRepo.GetByID(id)
}

// IsAdmin reports whether user is the first account ever registered.
func (s *UserService) IsAdmin(user *models.User) (bool, error) {
	if user == nil {
		return false, nil
	}
	first, err := s.userRepo.First()
	if errors.Is(err, repositories.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to look up administrator: %w", err)
	}
	return first.ID == user.ID, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
