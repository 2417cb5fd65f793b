package service

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/yourusername/loveapp-api/internal/domain/entity"
	"github.com/yourusername/loveapp-api/internal/domain/repository"
	apperrors "github.com/yourusername/loveapp-api/internal/pkg/errors"
	"github.com/yourusername/loveapp-api/pkg/auth"
)

// AuthService предоставляет методы для регистрации и входа пользователей
type AuthService struct {
	userRepo   repository.UserRepository
	jwtService *auth.JWTService
}

// NewAuthService создает новый сервис аутентификации и возвращает ошибку при проблемах
func NewAuthService(userRepo repository.UserRepository, jwtService *auth.JWTService) (*AuthService, error) {
	if userRepo == nil {
		return nil, fmt.Errorf("UserRepository is required for AuthService")
	}
	if jwtService == nil {
		return nil, fmt.Errorf("JWTService is required for AuthService")
	}

	return &AuthService{
		userRepo:   userRepo,
		jwtService: jwtService,
	}, nil
}

// TokenResponse — выпущенный bearer-токен
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
}

// RegisterUser регистрирует нового пользователя
func (s *AuthService) RegisterUser(email, username, password, gender string) (*entity.User, error) {
	email = normalizeEmail(email)
	username = strings.TrimSpace(username)
	gender = strings.TrimSpace(gender)

	if username == "" {
		return nil, fmt.Errorf("%w: username is required", apperrors.ErrValidation)
	}
	if !isValidGender(gender) {
		return nil, fmt.Errorf("%w: invalid gender", apperrors.ErrValidation)
	}

	// Проверяем, существует ли пользователь с таким email
	_, err := s.userRepo.GetByEmail(email)
	if err == nil {
		return nil, fmt.Errorf("%w: email already registered", apperrors.ErrConflict)
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to check email existence: %w", err)
	}

	user := &entity.User{
		Email:    email,
		Username: username,
		Password: password, // хешируется хуком BeforeSave
		Gender:   gender,
	}

	if err := s.userRepo.Create(user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	log.Printf("[AuthService] Пользователь ID=%d (%s) зарегистрирован", user.ID, user.Email)
	return user, nil
}

// LoginUser проверяет учетные данные и выпускает bearer-токен
func (s *AuthService) LoginUser(email, password string) (*TokenResponse, *entity.User, error) {
	email = normalizeEmail(email)

	user, err := s.userRepo.GetByEmail(email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			// Не раскрываем, существует ли email
			return nil, nil, fmt.Errorf("%w: invalid email or password", apperrors.ErrUnauthorized)
		}
		return nil, nil, fmt.Errorf("failed to load user: %w", err)
	}

	if !user.CheckPassword(password) {
		return nil, nil, fmt.Errorf("%w: invalid email or password", apperrors.ErrUnauthorized)
	}

	token, err := s.jwtService.GenerateToken(user.ID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to generate token: %w", err)
	}

	return &TokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
		ExpiresIn:   s.jwtService.ExpirySeconds(),
	}, user, nil
}

// GetUserByID возвращает пользователя по ID
func (s *AuthService) GetUserByID(id uint) (*entity.User, error) {
	return s.userRepo.GetByID(id)
}

// normalizeEmail приводит email к каноничному виду
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func isValidGender(gender string) bool {
	switch gender {
	case "male", "female":
		return true
	}
	return false
}
