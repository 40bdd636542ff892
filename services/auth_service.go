package services

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"tienda-backend/models"
	"tienda-backend/repository"
)

const tokenTTL = 24 * time.Hour

// RegisterRequest is the public signup payload. Role defaults to client.
type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Role     string `json:"role" binding:"omitempty,oneof=client admin"`
}

// LoginRequest is the credential payload.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// UserUpdate carries the mutable fields of a user. Empty fields are left
// unchanged; a non-empty password is re-hashed.
type UserUpdate struct {
	Name     string `json:"name"`
	Email    string `json:"email" binding:"omitempty,email"`
	Password string `json:"password"`
}

// AuthService handles registration, login and user management.
type AuthService struct {
	userRepo repository.UserRepository
	secret   []byte
	logger   *zap.Logger
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo repository.UserRepository, secret []byte, logger *zap.Logger) *AuthService {
	return &AuthService{userRepo: userRepo, secret: secret, logger: logger}
}

// Register creates a user with a hashed password. Clients get their cart in
// the same transaction. Duplicate emails are rejected.
func (s *AuthService) Register(ctx context.Context, req *RegisterRequest) (*models.User, *ServiceError) {
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Error("Failed to hash password", zap.Error(err))
		return nil, internal("Failed to create user")
	}

	role := req.Role
	if role == "" {
		role = models.RoleClient
	}

	user := &models.User{
		Name:     req.Name,
		Email:    req.Email,
		Password: string(hash),
		Role:     role,
	}

	createErr := error(nil)
	if role == models.RoleClient {
		createErr = s.userRepo.CreateWithCart(ctx, user)
	} else {
		createErr = s.userRepo.Create(ctx, user)
	}
	if createErr != nil {
		if errors.Is(createErr, gorm.ErrDuplicatedKey) {
			return nil, conflict("Email already registered")
		}
		s.logger.Error("Failed to create user", zap.Error(createErr))
		return nil, internal("Failed to create user")
	}

	return user, nil
}

// Login verifies credentials and issues a signed token carrying the user's
// id and role, valid for 24 hours.
func (s *AuthService) Login(ctx context.Context, req *LoginRequest) (string, *models.User, *ServiceError) {
	user, err := s.userRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil, unauthorized("Invalid email or password")
		}
		s.logger.Error("Failed to fetch user", zap.Error(err))
		return "", nil, internal("Login failed")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return "", nil, unauthorized("Invalid email or password")
	}

	claims := jwt.MapClaims{
		"user_id": user.ID.String(),
		"role":    user.Role,
		"exp":     time.Now().Add(tokenTTL).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		s.logger.Error("Failed to sign token", zap.Error(err))
		return "", nil, internal("Login failed")
	}

	return token, user, nil
}

// GetUser fetches one user.
func (s *AuthService) GetUser(ctx context.Context, id uuid.UUID) (*models.User, *ServiceError) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("User not found")
		}
		s.logger.Error("Failed to fetch user", zap.Error(err))
		return nil, internal("Failed to fetch user")
	}
	return user, nil
}

// ListUsers returns every user (admin listing).
func (s *AuthService) ListUsers(ctx context.Context) ([]models.User, *ServiceError) {
	users, err := s.userRepo.FindAll(ctx)
	if err != nil {
		s.logger.Error("Failed to list users", zap.Error(err))
		return nil, internal("Failed to fetch users")
	}
	return users, nil
}

// UpdateUser applies the non-empty fields of upd.
func (s *AuthService) UpdateUser(ctx context.Context, id uuid.UUID, upd UserUpdate) (*models.User, *ServiceError) {
	user, svcErr := s.GetUser(ctx, id)
	if svcErr != nil {
		return nil, svcErr
	}

	if upd.Name != "" {
		user.Name = upd.Name
	}
	if upd.Email != "" {
		user.Email = upd.Email
	}
	if upd.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(upd.Password), bcrypt.DefaultCost)
		if err != nil {
			s.logger.Error("Failed to hash password", zap.Error(err))
			return nil, internal("Failed to update user")
		}
		user.Password = string(hash)
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, conflict("Email already registered")
		}
		s.logger.Error("Failed to update user", zap.Error(err))
		return nil, internal("Failed to update user")
	}
	return user, nil
}

// DeleteUser removes a user.
func (s *AuthService) DeleteUser(ctx context.Context, id uuid.UUID) *ServiceError {
	if err := s.userRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFound("User not found")
		}
		s.logger.Error("Failed to delete user", zap.Error(err))
		return internal("Failed to delete user")
	}
	return nil
}
