package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"polygon-service/internal/auth"
	"polygon-service/internal/model"
	"polygon-service/internal/repository"
	"polygon-service/internal/utils"
)

// UserStore is the persistence surface the user service needs.
// *repository.UserRepository satisfies it.
type UserStore interface {
	Insert(ctx context.Context, user *model.UserAccount) error
	FindByEmail(ctx context.Context, email string) (*model.UserAccount, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*model.UserAccount, error)
	FindAll(ctx context.Context) ([]model.UserAccount, error)
}

type UserService struct {
	users  UserStore
	issuer *auth.Issuer
}

func NewUserService(users UserStore, issuer *auth.Issuer) *UserService {
	return &UserService{users: users, issuer: issuer}
}

type SignUpInput struct {
	Name        string
	Email       string
	Password    string
	DateOfBirth string
}

// SignUp registers an account with the password stored only as a
// bcrypt hash. Duplicate emails are rejected; the unique index in the
// users collection closes the race two concurrent signups would
// otherwise win together.
func (s *UserService) SignUp(ctx context.Context, input SignUpInput) (*model.UserProfile, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	email := utils.NormalizeEmail(input.Email)
	if email == "" {
		return nil, fmt.Errorf("%w: email is required", ErrInvalidInput)
	}
	if input.Password == "" {
		return nil, fmt.Errorf("%w: password is required", ErrInvalidInput)
	}

	var dateOfBirth *time.Time
	if strings.TrimSpace(input.DateOfBirth) != "" {
		parsed, err := parseDate(input.DateOfBirth)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		dateOfBirth = &parsed
	}

	if _, err := s.users.FindByEmail(ctx, email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	hash, err := auth.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.UserAccount{
		Name:         input.Name,
		Email:        email,
		PasswordHash: hash,
		DateOfBirth:  dateOfBirth,
		IsAdmin:      false,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.users.Insert(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}

	profile := user.Profile()
	return &profile, nil
}

// SignIn verifies the credentials and mints a time-limited bearer
// token. An unknown email and a wrong password produce the same error
// so account existence is not revealed.
func (s *UserService) SignIn(ctx context.Context, email, password string) (string, error) {
	email = utils.NormalizeEmail(email)
	if email == "" || password == "" {
		return "", ErrInvalidCredentials
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", err
	}

	if !auth.CheckPassword(user.PasswordHash, password) {
		return "", ErrInvalidCredentials
	}

	token, err := s.issuer.Issue(user.ID.Hex())
	if err != nil {
		return "", err
	}
	return token, nil
}

func (s *UserService) GetByEmail(ctx context.Context, email string) (*model.UserProfile, error) {
	user, err := s.users.FindByEmail(ctx, utils.NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("user %w", ErrNotFound)
		}
		return nil, err
	}
	profile := user.Profile()
	return &profile, nil
}

func (s *UserService) GetByID(ctx context.Context, id string) (*model.UserProfile, error) {
	objectID, err := parseObjectID(id)
	if err != nil {
		return nil, err
	}
	user, err := s.users.FindByID(ctx, objectID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("user %w", ErrNotFound)
		}
		return nil, err
	}
	profile := user.Profile()
	return &profile, nil
}

// List returns every account. Password hashes never serialize: the
// model excludes them from JSON.
func (s *UserService) List(ctx context.Context) ([]model.UserAccount, error) {
	return s.users.FindAll(ctx)
}
