package handler

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/loveapp-api/internal/domain/entity"
	"github.com/yourusername/loveapp-api/internal/handler/dto"
	"github.com/yourusername/loveapp-api/internal/middleware"
	"github.com/yourusername/loveapp-api/internal/service"
)

// CoupleHandler обрабатывает запросы, связанные с парами
type CoupleHandler struct {
	coupleService *service.CoupleService
}

// NewCoupleHandler создает новый обработчик пар
func NewCoupleHandler(coupleService *service.CoupleService) *CoupleHandler {
	return &CoupleHandler{coupleService: coupleService}
}

// CreateCoupleRequest представляет запрос на создание пары
type CreateCoupleRequest struct {
	CoupleName string `json:"couple_name" binding:"omitempty,max=100"`
}

// JoinCoupleRequest представляет запрос на присоединение к паре
type JoinCoupleRequest struct {
	CoupleCode string `json:"couple_code" binding:"required"`
}

// Create создает новую пару и возвращает код приглашения
func (h *CoupleHandler) Create(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized", "error_type": "token_missing"})
		return
	}

	var req CreateCoupleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "error_type": "validation_error"})
		return
	}

	couple, err := h.coupleService.CreateCouple(user, req.CoupleName)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	log.Printf("[CoupleHandler] Пара ID=%d создана, код %s", couple.ID, couple.CoupleCode)
	c.JSON(http.StatusOK, dto.NewCoupleResponse(couple, []entity.User{*user}))
}

// Join присоединяет текущего пользователя к паре по коду
func (h *CoupleHandler) Join(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized", "error_type": "token_missing"})
		return
	}

	var req JoinCoupleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "error_type": "validation_error"})
		return
	}

	if _, err := h.coupleService.JoinCouple(user, req.CoupleCode); err != nil {
		handleServiceError(c, err)
		return
	}

	h.My(c)
}

// My возвращает пару текущего пользователя со списком участников
func (h *CoupleHandler) My(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized", "error_type": "token_missing"})
		return
	}

	couple, members, err := h.coupleService.GetMyCouple(user)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewCoupleResponse(couple, members))
}

// Stats возвращает сводную статистику пары
func (h *CoupleHandler) Stats(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized", "error_type": "token_missing"})
		return
	}

	stats, err := h.coupleService.GetStats(user)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}
