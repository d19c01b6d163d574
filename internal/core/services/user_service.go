package services

import (
	"context"
	"errors"

	"coopfund/internal/adapters/persistence/repositories"
	"coopfund/internal/core/domain"
	"coopfund/internal/pkg/password"
)

// UserService handles user profile management
type UserService struct {
	userRepo repositories.UserRepository
}

// NewUserService creates a new user service
func NewUserService(userRepo repositories.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// UpdateProfileInput represents update profile input (for self)
type UpdateProfileInput struct {
	FullName *string `json:"fullName,omitempty"`
	Email    *string `json:"email,omitempty" validate:"omitempty,email"`
	Avatar   *string `json:"avatar,omitempty"`
}

// ChangePasswordInput represents change password input
type ChangePasswordInput struct {
	OldPassword string `json:"oldPassword" validate:"required"`
	NewPassword string `json:"newPassword" validate:"required,min=8"`
}

// GetByID gets a user by ID
func (s *UserService) GetByID(ctx context.Context, id uint) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// List lists all users
func (s *UserService) List(ctx context.Context) ([]*domain.User, error) {
	return s.userRepo.List(ctx)
}

// UpdateProfile updates a user's own profile
func (s *UserService) UpdateProfile(ctx context.Context, userID uint, input *UpdateProfileInput) (*domain.User, error) {
	user, err := s.userRepo.Update(ctx, userID, &domain.UserPatch{
		FullName: input.FullName,
		Email:    input.Email,
		Avatar:   input.Avatar,
	})
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// ChangePassword changes a user's password after verifying the old one
func (s *UserService) ChangePassword(ctx context.Context, userID uint, input *ChangePasswordInput) error {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrUserNotFound
		}
		return err
	}

	if !password.Verify(input.OldPassword, user.Password) {
		return domain.ErrInvalidCredentials
	}
	if !password.ValidatePassword(input.NewPassword) {
		return domain.ErrInvalidPassword
	}

	hashedPassword, err := password.Hash(input.NewPassword)
	if err != nil {
		return err
	}

	_, err = s.userRepo.Update(ctx, userID, &domain.UserPatch{Password: &hashedPassword})
	return err
}
