package services

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"golang.org/x/crypto/bcrypt"

	"github.com/Bimsaraimalka/bixlayclothing-v1-sub000/internal/model"
	"github.com/Bimsaraimalka/bixlayclothing-v1-sub000/internal/repository"
)

const (
	MinPasswordLen = 8
)

var (
	emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
)

type AuthService struct {
	Users    *repository.AuthRepository
	Customer *repository.CustomerRepository // for auto-create
}

func NewAuthService(u *repository.AuthRepository, cr *repository.CustomerRepository) *AuthService {
	return &AuthService{Users: u, Customer: cr}
}

func (s *AuthService) validateEmail(email string) error {
	if email == "" {
		return errors.New("email is required")
	}
	if !emailRegex.MatchString(email) {
		return errors.New("invalid email format")
	}
	return nil
}

func (s *AuthService) validatePassword(pw string) error {
	if len(pw) < MinPasswordLen {
		return fmt.Errorf("password too short: must be at least %d characters", MinPasswordLen)
	}
	return nil
}

// Register creates a user with role "user" AND creates the customer row.
func (s *AuthService) Register(ctx context.Context, email, password string) (int64, error) {
	if err := s.validateEmail(email); err != nil {
		return 0, err
	}
	if err := s.validatePassword(password); err != nil {
		return 0, err
	}
	exists, err := s.Users.EmailExists(ctx, email)
	if err != nil {
		return 0, err
	}
	if exists {
		return 0, errors.New("email already registered")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return 0, err
	}
	authID, err := s.Users.CreateUser(ctx, email, string(hash), "user")
	if err != nil {
		return 0, err
	}
	if _, err := s.Customer.Create(ctx, authID, email); err != nil {
		return authID, err
	}
	return authID, nil
}

// Login checks the stored credentials and returns the auth row on success.
func (s *AuthService) Login(ctx context.Context, email, password string) (*model.Auth, error) {
	u, err := s.Users.GetByEmail(ctx, email)
	if err != nil {
		return nil, errors.New("invalid email or password")
	}
	if u.DeletedAt != nil {
		return nil, errors.New("account disabled")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, errors.New("invalid email or password")
	}
	return u, nil
}

func (s *AuthService) GetCustomer(ctx context.Context, authID int64) (*model.Customer, error) {
	return s.Customer.GetByAuthID(ctx, authID)
}

// UpdateProfile writes the shipping details onto the caller's customer row.
// Nil fields are left untouched.
func (s *AuthService) UpdateProfile(ctx context.Context, authID int64, fullname, address, city, postalCode, phone *string) (*model.Customer, error) {
	c, err := s.Customer.GetByAuthID(ctx, authID)
	if err != nil {
		return nil, err
	}
	if err := s.Customer.Update(ctx, c.CustomerID, fullname, address, city, postalCode, phone); err != nil {
		return nil, err
	}
	return s.Customer.GetByAuthID(ctx, authID)
}
