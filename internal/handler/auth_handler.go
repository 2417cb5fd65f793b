package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/loveapp-api/internal/handler/dto"
	"github.com/yourusername/loveapp-api/internal/middleware"
	apperrors "github.com/yourusername/loveapp-api/internal/pkg/errors"
	"github.com/yourusername/loveapp-api/internal/service"
)

// AuthHandler обрабатывает запросы, связанные с аутентификацией и профилем
type AuthHandler struct {
	authService  *service.AuthService
	mediaService *service.MediaService
}

// NewAuthHandler создает новый обработчик аутентификации
func NewAuthHandler(authService *service.AuthService, mediaService *service.MediaService) *AuthHandler {
	return &AuthHandler{
		authService:  authService,
		mediaService: mediaService,
	}
}

// Структуры запросов

// RegisterRequest представляет запрос на регистрацию
type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Username string `json:"username" binding:"required,min=2,max=100"`
	Password string `json:"password" binding:"required,min=6,max=50"`
	Gender   string `json:"gender" binding:"required,oneof=male female"`
}

// LoginRequest представляет запрос на вход.
// Поле называется username, но несет email — так сложился клиентский контракт.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Register обрабатывает запрос на регистрацию
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "error_type": "validation_error"})
		return
	}

	user, err := h.authService.RegisterUser(req.Email, req.Username, req.Password, req.Gender)
	if err != nil {
		// Повторный email отдаем как 400, как и остальные ошибки регистрации
		if errors.Is(err, apperrors.ErrConflict) || errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "error_type": "validation_error"})
			return
		}
		handleServiceError(c, err)
		return
	}

	log.Printf("[AuthHandler] Пользователь ID=%d (%s) успешно зарегистрирован", user.ID, user.Email)
	c.JSON(http.StatusOK, dto.NewUserResponse(user))
}

// Login обрабатывает запрос на вход и возвращает bearer-токен
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "error_type": "validation_error"})
		return
	}

	token, user, err := h.authService.LoginUser(req.Username, req.Password)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	log.Printf("[AuthHandler] Пользователь ID=%d вошел в систему", user.ID)
	c.JSON(http.StatusOK, token)
}

// Profile возвращает профиль текущего пользователя
func (h *AuthHandler) Profile(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized", "error_type": "token_missing"})
		return
	}

	c.JSON(http.StatusOK, dto.NewUserResponse(user))
}

// UploadAvatar принимает multipart-форму с полем file и сохраняет аватар
func (h *AuthHandler) UploadAvatar(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized", "error_type": "token_missing"})
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file is required", "error_type": "validation_error"})
		return
	}

	avatarURL, err := h.mediaService.SaveAvatar(user.ID, fileHeader)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"avatar_url": avatarURL})
}
