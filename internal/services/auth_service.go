package services

import (
	"context"
	"strings"

	"cvbuilder_backend/internal/auth"
	"cvbuilder_backend/internal/logger"
	"cvbuilder_backend/internal/models"
	"cvbuilder_backend/internal/repositories"
	"cvbuilder_backend/internal/services/dto"
	"cvbuilder_backend/pkg/apperrors"

	"gorm.io/gorm"
)

type AuthService interface {
	Register(ctx context.Context, db *gorm.DB, req *dto.RegisterRequest) (*dto.AuthResponse, error)
	Login(ctx context.Context, db *gorm.DB, req *dto.LoginRequest) (*dto.AuthResponse, error)
	Me(ctx context.Context, db *gorm.DB, userID string) (*dto.MeResponse, error)
	UpdateProfile(ctx context.Context, db *gorm.DB, userID string, req *dto.UpdateProfileRequest) (*dto.UserResponse, error)
	ChangePassword(ctx context.Context, db *gorm.DB, userID string, req *dto.ChangePasswordRequest) error
	// Logout отзывает токен до конца срока его действия; недействительный токен игнорируется
	Logout(ctx context.Context, token string) error
}

type AuthServiceImpl struct {
	userRepo  repositories.UserRepository
	tokens    *auth.TokenManager
	blacklist auth.TokenBlacklist
	features  dto.Features
}

func NewAuthService(
	userRepo repositories.UserRepository,
	tokens *auth.TokenManager,
	blacklist auth.TokenBlacklist,
	features dto.Features,
) AuthService {
	return &AuthServiceImpl{
		userRepo:  userRepo,
		tokens:    tokens,
		blacklist: blacklist,
		features:  features,
	}
}

// Register - регистрация нового пользователя с ролью USER
func (s *AuthServiceImpl) Register(ctx context.Context, db *gorm.DB, req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	user := &models.User{
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		PasswordHash: hash,
		Role:         models.UserRoleUser,
		FirstName:    strings.TrimSpace(req.FirstName),
		LastName:     strings.TrimSpace(req.LastName),
	}
	if err := s.userRepo.Create(db, user); err != nil {
		return nil, mapUserError(err)
	}

	logger.CtxInfo(ctx, "user registered", "user_id", user.ID)
	return s.issue(user, "Registration successful")
}

// Login - проверка email и пароля, выдача токена
func (s *AuthServiceImpl) Login(ctx context.Context, db *gorm.DB, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	user, err := s.userRepo.FindByEmail(db, req.Email)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, apperrors.DatabaseError(err)
	}

	if !auth.CheckPasswordHash(req.Password, user.PasswordHash) {
		logger.CtxWarn(ctx, "login failed", "user_id", user.ID)
		return nil, apperrors.ErrInvalidCredentials
	}

	return s.issue(user, "Login successful")
}

func (s *AuthServiceImpl) issue(user *models.User, message string) (*dto.AuthResponse, error) {
	token, err := s.tokens.GenerateToken(user.ID, user.Email, user.Role)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return &dto.AuthResponse{
		Message: message,
		Token:   token,
		User:    dto.NewUserResponse(user),
	}, nil
}

func (s *AuthServiceImpl) Me(ctx context.Context, db *gorm.DB, userID string) (*dto.MeResponse, error) {
	user, err := s.userRepo.FindByID(db, userID)
	if err != nil {
		return nil, mapUserError(err)
	}
	return &dto.MeResponse{
		User:     dto.NewUserResponse(user),
		Features: s.features,
	}, nil
}

func (s *AuthServiceImpl) UpdateProfile(ctx context.Context, db *gorm.DB, userID string, req *dto.UpdateProfileRequest) (*dto.UserResponse, error) {
	fields := map[string]interface{}{}
	if req.FirstName != nil {
		fields["first_name"] = strings.TrimSpace(*req.FirstName)
	}
	if req.LastName != nil {
		fields["last_name"] = strings.TrimSpace(*req.LastName)
	}
	if req.PhoneNumber != nil {
		fields["phone_number"] = strings.TrimSpace(*req.PhoneNumber)
	}

	if len(fields) > 0 {
		if err := s.userRepo.UpdateFields(db, userID, fields); err != nil {
			return nil, mapUserError(err)
		}
	}

	user, err := s.userRepo.FindByID(db, userID)
	if err != nil {
		return nil, mapUserError(err)
	}
	return dto.NewUserResponse(user), nil
}

// ChangePassword - смена пароля; текущий пароль обязателен
func (s *AuthServiceImpl) ChangePassword(ctx context.Context, db *gorm.DB, userID string, req *dto.ChangePasswordRequest) error {
	user, err := s.userRepo.FindByID(db, userID)
	if err != nil {
		return mapUserError(err)
	}
	if !auth.CheckPasswordHash(req.CurrentPassword, user.PasswordHash) {
		return apperrors.ErrWrongPassword
	}

	hash, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		return apperrors.InternalError(err)
	}
	if err := s.userRepo.UpdateFields(db, userID, map[string]interface{}{"password_hash": hash}); err != nil {
		return mapUserError(err)
	}

	logger.CtxInfo(ctx, "password changed", "user_id", userID)
	return nil
}

func (s *AuthServiceImpl) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	claims, err := s.tokens.ParseToken(token)
	if err != nil {
		return nil
	}
	if err := auth.RevokeClaims(ctx, s.blacklist, claims); err != nil {
		return apperrors.ExternalServiceError(err, "auth", "Failed to revoke session")
	}
	logger.CtxInfo(ctx, "session revoked", "userID", claims.UserID)
	return nil
}
