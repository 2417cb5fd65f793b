package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/loveapp-api/internal/middleware"
	"github.com/yourusername/loveapp-api/internal/service"
)

// MessageHandler обрабатывает запросы к доске сообщений пары
type MessageHandler struct {
	messageService *service.MessageService
}

// NewMessageHandler создает новый обработчик сообщений
func NewMessageHandler(messageService *service.MessageService) *MessageHandler {
	return &MessageHandler{messageService: messageService}
}

// SendMessageRequest представляет запрос на публикацию сообщения
type SendMessageRequest struct {
	Message     string `json:"message" binding:"required"`
	IsAnonymous bool   `json:"is_anonymous"`
}

// Send публикует сообщение на доске пары
func (h *MessageHandler) Send(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized", "error_type": "token_missing"})
		return
	}

	var req SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "error_type": "validation_error"})
		return
	}

	message, err := h.messageService.Send(user, req.Message, req.IsAnonymous)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Сообщение отправлено", "message_id": message.ID})
}

// List возвращает последние сообщения пары, новые первыми
func (h *MessageHandler) List(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized", "error_type": "token_missing"})
		return
	}

	messages, err := h.messageService.List(user)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"messages": messages})
}
