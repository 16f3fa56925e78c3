package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/SAP-F-2025/feedback-service/internal/auth"
	"github.com/SAP-F-2025/feedback-service/internal/events"
	"github.com/SAP-F-2025/feedback-service/internal/models"
	"github.com/SAP-F-2025/feedback-service/internal/repositories"
	"github.com/SAP-F-2025/feedback-service/internal/validator"
)

type authService struct {
	repo       repositories.Repository
	tokenMaker *auth.JWTMaker
	publisher  events.EventPublisher
	logger     *slog.Logger
	validator  *validator.Validator
}

func NewAuthService(
	repo repositories.Repository,
	tokenMaker *auth.JWTMaker,
	publisher events.EventPublisher,
	logger *slog.Logger,
	v *validator.Validator,
) AuthService {
	return &authService{
		repo:       repo,
		tokenMaker: tokenMaker,
		publisher:  publisher,
		logger:     logger,
		validator:  v,
	}
}

func (s *authService) Register(ctx context.Context, req *RegisterRequest) (*AuthResponse, error) {
	if errs := s.validator.Validate(req); errs != nil {
		return nil, fmt.Errorf("%w: %s", ErrValidationFailed, errs.Error())
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	if _, err := s.repo.User().GetByEmail(ctx, email); err == nil {
		return nil, ErrDuplicateEmail
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check existing account: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Name:         strings.TrimSpace(req.Name),
		Email:        email,
		PasswordHash: string(hash),
		Role:         models.RoleStudent,
	}

	if err := s.repo.User().Create(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateEmail
		}
		return nil, fmt.Errorf("failed to create account: %w", err)
	}

	token, err := s.tokenMaker.CreateToken(user)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	event := events.NewEvent(events.EventUserRegistered, events.UserEvent{
		UserID: user.ID,
		Email:  user.Email,
	})
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Warn("Failed to publish user registered event", "error", err, "user_id", user.ID)
	}

	s.logger.Info("User registered", "user_id", user.ID, "email", user.Email)

	return &AuthResponse{Token: token, User: user}, nil
}

func (s *authService) Login(ctx context.Context, req *LoginRequest) (*AuthResponse, error) {
	if errs := s.validator.Validate(req); errs != nil {
		return nil, fmt.Errorf("%w: %s", ErrValidationFailed, errs.Error())
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	user, err := s.repo.User().GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to look up account: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	if user.IsBlocked {
		return nil, ErrAccountBlocked
	}

	token, err := s.tokenMaker.CreateToken(user)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	s.logger.Info("User logged in", "user_id", user.ID, "role", user.Role)

	return &AuthResponse{Token: token, User: user}, nil
}

func (s *authService) VerifyToken(ctx context.Context, token string) (*models.User, error) {
	claims, err := s.tokenMaker.VerifyToken(token)
	if err != nil {
		return nil, ErrUnauthorized
	}

	user, err := s.repo.User().GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUnauthorized
		}
		return nil, fmt.Errorf("failed to load token subject: %w", err)
	}

	// Blocked accounts lose access immediately, even with a live token.
	if user.IsBlocked {
		return nil, ErrUnauthorized
	}

	return user, nil
}
