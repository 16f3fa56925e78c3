package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/SAP-F-2025/feedback-service/internal/models"
	"github.com/SAP-F-2025/feedback-service/internal/repositories"
	"github.com/SAP-F-2025/feedback-service/internal/validator"
)

type profileService struct {
	repo      repositories.Repository
	logger    *slog.Logger
	validator *validator.Validator
}

func NewProfileService(repo repositories.Repository, logger *slog.Logger, v *validator.Validator) ProfileService {
	return &profileService{repo: repo, logger: logger, validator: v}
}

func (s *profileService) Get(ctx context.Context, caller *models.User) (*models.User, error) {
	if caller == nil {
		return nil, ErrUnauthorized
	}

	user, err := s.repo.User().GetByID(ctx, caller.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	return user, nil
}

func (s *profileService) Update(ctx context.Context, caller *models.User, req *UpdateProfileRequest) (*models.User, error) {
	if caller == nil {
		return nil, ErrUnauthorized
	}

	if errs := s.validator.Validate(req); errs != nil {
		return nil, fmt.Errorf("%w: %s", ErrValidationFailed, errs.Error())
	}

	user, err := s.repo.User().GetByID(ctx, caller.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}

	// Missing fields keep the stored value. Email is immutable here.
	if req.Name != "" {
		user.Name = strings.TrimSpace(req.Name)
	}
	if req.Phone != "" {
		user.Phone = strings.TrimSpace(req.Phone)
	}
	if req.Address != "" {
		user.Address = strings.TrimSpace(req.Address)
	}
	if req.ProfilePicture != "" {
		user.ProfilePicture = strings.TrimSpace(req.ProfilePicture)
	}
	if req.DateOfBirth != "" {
		parsed, err := time.Parse("2006-01-02", req.DateOfBirth)
		if err != nil {
			return nil, fmt.Errorf("%w: dateOfBirth must be a date in YYYY-MM-DD format", ErrValidationFailed)
		}
		dob := datatypes.Date(parsed)
		user.DateOfBirth = &dob
	}

	if err := s.repo.User().Update(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}

	s.logger.Info("Profile updated", "user_id", user.ID)

	return user, nil
}

func (s *profileService) ChangePassword(ctx context.Context, caller *models.User, req *ChangePasswordRequest) error {
	if caller == nil {
		return ErrUnauthorized
	}

	if errs := s.validator.Validate(req); errs != nil {
		return fmt.Errorf("%w: %s", ErrValidationFailed, errs.Error())
	}

	user, err := s.repo.User().GetByID(ctx, caller.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to get profile: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.CurrentPassword)); err != nil {
		return ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	user.PasswordHash = string(hash)
	if err := s.repo.User().Update(ctx, user); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	s.logger.Info("Password changed", "user_id", user.ID)

	return nil
}
