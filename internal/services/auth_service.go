package services

import (
	"context"
	"strings"

	"workshop-backend/internal/apperrors"
	"workshop-backend/internal/auth"
	"workshop-backend/internal/models"
	"workshop-backend/internal/repositories"
)

type AuthService struct {
	UserRepo   *repositories.UserRepository
	JWTManager *auth.JWTManager
}

func NewAuthService(userRepo *repositories.UserRepository, jwtManager *auth.JWTManager) *AuthService {
	return &AuthService{UserRepo: userRepo, JWTManager: jwtManager}
}

func (s *AuthService) Login(ctx context.Context, req *models.LoginRequest) (*models.AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || req.Password == "" {
		return nil, apperrors.Validation("email and password are required")
	}

	user, err := s.UserRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if !user.IsActive {
		return nil, apperrors.Validation("account is deactivated")
	}
	if !auth.VerifyPassword(user.PasswordHash, req.Password) {
		return nil, apperrors.Validation("invalid email or password")
	}

	token, err := s.JWTManager.GenerateToken(user)
	if err != nil {
		return nil, err
	}

	return &models.AuthResponse{Token: token, User: user}, nil
}

func (s *AuthService) ChangePassword(ctx context.Context, userID int, req *models.ChangePasswordRequest) error {
	if len(req.NewPassword) < 8 {
		return apperrors.Validation("new password must be at least 8 characters")
	}

	user, err := s.UserRepo.Get(ctx, userID)
	if err != nil {
		return err
	}
	if !auth.VerifyPassword(user.PasswordHash, req.CurrentPassword) {
		return apperrors.Validation("current password is incorrect")
	}

	hash, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		return err
	}
	user.PasswordHash = hash
	return s.UserRepo.Update(ctx, user)
}
