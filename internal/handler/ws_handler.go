package handler

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	gorillaws "github.com/gorilla/websocket"

	"github.com/yourusername/loveapp-api/internal/domain/repository"
	"github.com/yourusername/loveapp-api/internal/websocket"
	"github.com/yourusername/loveapp-api/pkg/auth"
)

// WSHandler обрабатывает WebSocket-подключения к ленте событий пары
type WSHandler struct {
	hub        *websocket.Hub
	jwtService *auth.JWTService
	userRepo   repository.UserRepository
}

// NewWSHandler создает новый обработчик WebSocket
func NewWSHandler(hub *websocket.Hub, jwtService *auth.JWTService, userRepo repository.UserRepository) *WSHandler {
	return &WSHandler{
		hub:        hub,
		jwtService: jwtService,
		userRepo:   userRepo,
	}
}

var upgrader = gorillaws.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// Доступ ограничен токеном, а не Origin: без валидного JWT
		// соединение не апгрейдится
		return true
	},
}

// Connect аутентифицирует пользователя по токену из query-параметра
// и подключает его к ленте событий своей пары.
// Браузерный WebSocket API не умеет ставить заголовок Authorization.
func (h *WSHandler) Connect(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Token is required", "error_type": "token_missing"})
		return
	}

	claims, err := h.jwtService.ParseToken(token)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token", "error_type": "token_invalid"})
		return
	}

	user, err := h.userRepo.GetByID(claims.UserID)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token", "error_type": "token_invalid"})
		return
	}

	if !user.HasCouple() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "User has no couple", "error_type": "validation_error"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("[WSHandler] Ошибка апгрейда соединения для пользователя ID=%d: %v", user.ID, err)
		return
	}

	client := websocket.NewClient(h.hub, conn, user.ID, *user.CoupleID)
	client.Start()

	log.Printf("[WSHandler] Пользователь ID=%d подключился к ленте пары ID=%d", user.ID, *user.CoupleID)
}
