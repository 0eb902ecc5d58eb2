package services

import (
	"context"
	"net/http"

	"catalog-service/models"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// IUserRepository is the user storage surface the auth service needs.
type IUserRepository interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, id uint) (*models.User, error)
	Create(ctx context.Context, user *models.User) error
}

// ITokenIssuer issues signed access tokens.
type ITokenIssuer interface {
	Generate(userID uint, email string) (string, error)
}

// AuthService handles registration and credential verification.
type AuthService struct {
	users  IUserRepository
	tokens ITokenIssuer
	logger *zap.Logger
}

// NewAuthService creates a new AuthService.
func NewAuthService(users IUserRepository, tokens ITokenIssuer, logger *zap.Logger) *AuthService {
	return &AuthService{users: users, tokens: tokens, logger: logger}
}

// Login verifies credentials and issues a bearer token. Unknown email and
// wrong password report the same message.
func (s *AuthService) Login(ctx context.Context, email, password string) (*models.LoginResponse, *ServiceError) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if err != gorm.ErrRecordNotFound {
			s.logger.Error("User lookup failed", zap.Error(err))
		}
		return nil, &ServiceError{StatusCode: http.StatusUnauthorized, Message: "Invalid credentials"}
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, &ServiceError{StatusCode: http.StatusUnauthorized, Message: "Invalid credentials"}
	}

	token, err := s.tokens.Generate(user.ID, user.Email)
	if err != nil {
		s.logger.Error("Token generation failed", zap.Error(err))
		return nil, &ServiceError{StatusCode: http.StatusInternalServerError, Message: "Failed to generate token"}
	}

	return &models.LoginResponse{
		AccessToken: token,
		User:        models.UserSummary{ID: user.ID, Email: user.Email},
	}, nil
}

// Register creates an account after an email existence check.
func (s *AuthService) Register(ctx context.Context, email, password string) (*models.RegisterResponse, *ServiceError) {
	_, err := s.users.FindByEmail(ctx, email)
	if err == nil {
		return nil, &ServiceError{StatusCode: http.StatusConflict, Message: "User already exists"}
	}
	if err != gorm.ErrRecordNotFound {
		s.logger.Error("User lookup failed", zap.Error(err))
		return nil, &ServiceError{StatusCode: http.StatusInternalServerError, Message: "Failed to load user"}
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Error("Password hashing failed", zap.Error(err))
		return nil, &ServiceError{StatusCode: http.StatusInternalServerError, Message: "Failed to hash password"}
	}

	user := &models.User{Email: email, Password: string(hashed)}
	if err := s.users.Create(ctx, user); err != nil {
		s.logger.Error("User create failed", zap.Error(err))
		return nil, &ServiceError{StatusCode: http.StatusInternalServerError, Message: "Failed to create account"}
	}

	return &models.RegisterResponse{
		Message: "User registered successfully",
		User: models.UserPayload{
			ID:        user.ID,
			Email:     user.Email,
			CreatedAt: user.CreatedAt,
			UpdatedAt: user.UpdatedAt,
		},
	}, nil
}

// Profile loads the account behind an authenticated request.
func (s *AuthService) Profile(ctx context.Context, userID uint) (*models.UserPayload, *ServiceError) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, &ServiceError{StatusCode: http.StatusNotFound, Message: "User not found"}
		}
		s.logger.Error("User lookup failed", zap.Uint("id", userID), zap.Error(err))
		return nil, &ServiceError{StatusCode: http.StatusInternalServerError, Message: "Failed to load user"}
	}

	return &models.UserPayload{
		ID:        user.ID,
		Email:     user.Email,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}, nil
}
