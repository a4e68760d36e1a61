package services

import (
	"context"
	"errors"
	"net/http"
	"time"

	"art-gallery-service/middleware"
	"art-gallery-service/models"
	repositories "art-gallery-service/repository"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	accessTokenTTL  = 24 * time.Hour
	refreshTokenTTL = 7 * 24 * time.Hour
)

type RegisterRequest struct {
	Username  string `json:"username" binding:"required"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Password  string `json:"password" binding:"required,min=8"`
}

type TokenPair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

// AuthService issues and refreshes the bearer tokens consumed by the auth
// middleware.
type AuthService struct {
	userRepo repositories.UserRepository
	secret   []byte
	logger   *zap.Logger
}

func NewAuthService(userRepo repositories.UserRepository, secret []byte, logger *zap.Logger) *AuthService {
	return &AuthService{userRepo: userRepo, secret: secret, logger: logger}
}

func (s *AuthService) Register(ctx context.Context, req *RegisterRequest) (*models.User, *ServiceError) {
	if _, err := s.userRepo.FindByUsername(ctx, req.Username); err == nil {
		return nil, &ServiceError{StatusCode: http.StatusBadRequest, Message: "Username already taken"}
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("Failed to check username", zap.Error(err))
		return nil, &ServiceError{StatusCode: http.StatusInternalServerError, Message: "Failed to register"}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Error("Failed to hash password", zap.Error(err))
		return nil, &ServiceError{StatusCode: http.StatusInternalServerError, Message: "Failed to register"}
	}

	user := &models.User{
		Username:     req.Username,
		Email:        req.Email,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		PasswordHash: string(hash),
		Role:         models.RoleUser,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		s.logger.Error("Failed to create user", zap.Error(err))
		return nil, &ServiceError{StatusCode: http.StatusInternalServerError, Message: "Failed to register"}
	}
	return user, nil
}

func (s *AuthService) Login(ctx context.Context, username, password string) (*TokenPair, *ServiceError) {
	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &ServiceError{StatusCode: http.StatusUnauthorized, Message: "Invalid credentials"}
		}
		s.logger.Error("Failed to look up user", zap.Error(err))
		return nil, &ServiceError{StatusCode: http.StatusInternalServerError, Message: "Failed to log in"}
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, &ServiceError{StatusCode: http.StatusUnauthorized, Message: "Invalid credentials"}
	}

	return s.issuePair(user)
}

// Refresh exchanges a valid refresh token for a new pair.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*TokenPair, *ServiceError) {
	claims, err := middleware.ParseToken(s.secret, refreshToken, "refresh")
	if err != nil {
		return nil, &ServiceError{StatusCode: http.StatusUnauthorized, Message: "Invalid or expired token"}
	}

	userID, _ := claims["user_id"].(string)
	user, svcErr := s.findByIDString(ctx, userID)
	if svcErr != nil {
		return nil, svcErr
	}
	return s.issuePair(user)
}

func (s *AuthService) findByIDString(ctx context.Context, id string) (*models.User, *ServiceError) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, &ServiceError{StatusCode: http.StatusUnauthorized, Message: "Invalid token"}
	}
	user, err := s.userRepo.FindByID(ctx, uid)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &ServiceError{StatusCode: http.StatusUnauthorized, Message: "Invalid token"}
		}
		s.logger.Error("Failed to look up user", zap.Error(err))
		return nil, &ServiceError{StatusCode: http.StatusInternalServerError, Message: "Failed to refresh token"}
	}
	return user, nil
}

func (s *AuthService) issuePair(user *models.User) (*TokenPair, *ServiceError) {
	access, err := s.sign(user, "access", accessTokenTTL)
	if err != nil {
		s.logger.Error("Failed to sign access token", zap.Error(err))
		return nil, &ServiceError{StatusCode: http.StatusInternalServerError, Message: "Failed to issue token"}
	}
	refresh, err := s.sign(user, "refresh", refreshTokenTTL)
	if err != nil {
		s.logger.Error("Failed to sign refresh token", zap.Error(err))
		return nil, &ServiceError{StatusCode: http.StatusInternalServerError, Message: "Failed to issue token"}
	}
	return &TokenPair{Access: access, Refresh: refresh}, nil
}

func (s *AuthService) sign(user *models.User, typ string, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"user_id":  user.ID.String(),
		"username": user.Username,
		"role":     user.Role,
		"typ":      typ,
		"exp":      time.Now().Add(ttl).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}
