package service

import (
	"context"
	"errors"
	"fmt"

	"fnp-marketplace/logger"
	"fnp-marketplace/models"
	"fnp-marketplace/repository"
	"fnp-marketplace/utils"
)

// UserService manages application users for the admin dashboard
type UserService struct {
	repository repository.UserRepositoryInterface
}

// NewUserService creates a new UserService
func NewUserService(repo repository.UserRepositoryInterface) *UserService {
	return &UserService{repository: repo}
}

// List returns one page of users and the total match count
func (s *UserService) List(ctx context.Context, filter models.UserFilter, page utils.Page) ([]*models.User, int, error) {
	return s.repository.List(ctx, filter, page)
}

// Get returns one user
func (s *UserService) Get(ctx context.Context, id string) (*models.User, error) {
	return s.repository.GetByID(ctx, id)
}

// Create validates in, hashes the password and stores the user
func (s *UserService) Create(ctx context.Context, in models.UserInput) (*models.User, error) {
	if err := in.Validate(true); err != nil {
		return nil, err
	}
	hash, err := HashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{PasswordHash: hash}
	apply(user, in)
	if err := s.repository.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Update replaces the profile of user id. An empty password keeps the current one.
func (s *UserService) Update(ctx context.Context, id string, in models.UserInput) (*models.User, error) {
	if err := in.Validate(false); err != nil {
		return nil, err
	}
	user, err := s.repository.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Password != "" {
		if user.PasswordHash, err = HashPassword(in.Password); err != nil {
			return nil, err
		}
	}
	apply(user, in)
	if err := s.repository.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Delete removes a user
func (s *UserService) Delete(ctx context.Context, id string) error {
	return s.repository.Delete(ctx, id)
}

// EnsureAdmin creates the bootstrap administrator when no user has its email yet
func (s *UserService) EnsureAdmin(ctx context.Context, email, password string) error {
	if email == "" || password == "" {
		return nil
	}
	_, err := s.repository.GetByEmail(ctx, email)
	if err == nil {
		return nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return fmt.Errorf("failed to look up admin: %w", err)
	}

	_, err = s.Create(ctx, models.UserInput{
		Name:            "Administrator",
		Email:           email,
		Password:        password,
		Role:            string(models.RoleAdmin),
		Specializations: []string{"administration"},
	})
	if err != nil {
		return fmt.Errorf("failed to create admin: %w", err)
	}
	logger.Log.Infof("✓ Bootstrap admin %s created", email)
	return nil
}

func apply(user *models.User, in models.UserInput) {
	user.Name = in.Name
	user.Email = in.Email
	user.Phone = in.Phone
	user.Role = models.Role(in.Role)
	user.Specialization = in.Specialization
	user.MainActivity = in.MainActivity
	user.Specializations = in.Specializations
	if in.Banned != nil {
		user.Banned = *in.Banned
	}
}
