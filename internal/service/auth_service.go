package service

import (
	"context"
	"time"

	"budgethub/internal/dto"
	"budgethub/internal/models"
	"budgethub/pkg/auth"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type UserRepo interface {
	Create(ctx context.Context, user *models.User) error
	GetByEmail(ctx context.Context, email string) (*models.User, error)
}

type AuthService struct {
	userRepo UserRepo
	logger   *zap.Logger
}

func NewAuthService(userRepo UserRepo, logger *zap.Logger) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		logger:   logger,
	}
}

func (s *AuthService) Register(ctx context.Context, req *dto.RegisterRequest) error {
	if req.Email == "" || req.Password == "" {
		return validationErrorf("Email and password are required")
	}

	// Check if user exists
	existingUser, _ := s.userRepo.GetByEmail(ctx, req.Email)
	if existingUser != nil {
		return ErrUserExists
	}

	hashedPassword, err := auth.HashPassword(req.Password)
	if err != nil {
		return err
	}

	now := time.Now()
	user := &models.User{
		ID:        uuid.New(),
		Email:     req.Email,
		Password:  hashedPassword,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		// Races past the pre-check land on the unique index.
		if isUniqueViolation(err) {
			return ErrUserExists
		}
		return err
	}

	return nil
}

// Login validates credentials and returns the user so the handler can bind a
// session. Unknown email and wrong password fail identically.
func (s *AuthService) Login(ctx context.Context, req *dto.LoginRequest) (*models.User, error) {
	user, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	if !auth.CheckPasswordHash(req.Password, user.Password) {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}
