// Package auth owns user registration and credential verification.
package auth

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/penmark/penmark/internal/database"
	"github.com/penmark/penmark/internal/validation"
)

var (
	// ErrNoSuchUser is returned when no account exists for an email.
	ErrNoSuchUser = errors.New("no account with that email")
	// ErrBadPassword is returned when the password doesn't match the stored hash.
	ErrBadPassword = errors.New("wrong password")
)

// SignupForm carries the raw signup fields as submitted.
type SignupForm struct {
	Username        string
	Email           string
	Password        string
	PasswordConfirm string
}

// Service verifies credentials and registers users.
type Service struct {
	db database.DB
}

func NewService(db database.DB) *Service {
	return &Service{db: db}
}

// Signup validates the form, hashes the password and persists the user.
// It returns validation.Errors with every violated rule, or
// database.ErrDuplicateEmail if the email is already registered.
// The raw password is never stored or logged.
func (s *Service) Signup(ctx context.Context, form SignupForm) (uint, error) {
	var verr validation.Errors
	verr.Require(form.Username, "username is required")
	verr.Require(form.Email, "email is required")
	verr.Require(form.Password, "password is required")
	if form.Password != form.PasswordConfirm {
		verr.Add("password confirmation does not match")
	}
	if err := verr.OrNil(); err != nil {
		return 0, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(form.Password), bcrypt.DefaultCost)
	if err != nil {
		return 0, fmt.Errorf("failed to hash password: %w", err)
	}

	user := database.User{
		Username:     form.Username,
		Email:        form.Email,
		PasswordHash: string(hash),
	}
	if err := s.db.CreateUser(ctx, &user); err != nil {
		return 0, err
	}
	return user.ID, nil
}

// Login looks up the account by email and verifies the password.
// It returns ErrNoSuchUser or ErrBadPassword on failure; callers facing
// end users should collapse both into one generic message.
func (s *Service) Login(ctx context.Context, email, password string) (Identity, error) {
	user, err := s.db.GetUserByEmail(ctx, email)
	if errors.Is(err, database.ErrNotFound) {
		return Identity{}, ErrNoSuchUser
	}
	if err != nil {
		return Identity{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return Identity{}, ErrBadPassword
	}

	return Identity{UserID: user.ID, Username: user.Username}, nil
}

// Users returns all registered users.
func (s *Service) Users(ctx context.Context) ([]database.User, error) {
	return s.db.GetAllUsers(ctx)
}
