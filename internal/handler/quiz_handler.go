package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/loveapp-api/internal/domain/entity"
	"github.com/yourusername/loveapp-api/internal/handler/dto"
	"github.com/yourusername/loveapp-api/internal/middleware"
	"github.com/yourusername/loveapp-api/internal/service"
)

// QuizHandler обрабатывает запросы, связанные с тестами и результатами
type QuizHandler struct {
	quizService *service.QuizService
}

// NewQuizHandler создает новый обработчик тестов
func NewQuizHandler(quizService *service.QuizService) *QuizHandler {
	return &QuizHandler{quizService: quizService}
}

// StartTestRequest представляет запрос на старт теста из каталога
type StartTestRequest struct {
	Title string `json:"title" binding:"required"`
}


// Available возвращает каталог доступных тестов
func (h *QuizHandler) Available(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"tests": h.quizService.ListAvailable()})
}

// Start создает экземпляр теста для пары текущего пользователя
func (h *QuizHandler) Start(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized", "error_type": "token_missing"})
		return
	}

	var req StartTestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "error_type": "validation_error"})
		return
	}

	test, err := h.quizService.StartTest(user, req.Title)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.StartTestResponse{
		TestID:    test.ID,
		Title:     test.Title,
		Questions: test.Questions,
	})
}

// Submit сохраняет ответы текущего пользователя по тесту
func (h *QuizHandler) Submit(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized", "error_type": "token_missing"})
		return
	}

	testID := c.MustGet("testID").(uint)

	// Тело запроса — JSON-массив ответов
	var answers []entity.Answer
	if err := c.ShouldBindJSON(&answers); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "error_type": "validation_error"})
		return
	}

	resp, err := h.quizService.SubmitTest(user, testID, answers)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Results возвращает личные и общие результаты текущего пользователя
func (h *QuizHandler) Results(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized", "error_type": "token_missing"})
		return
	}

	resp, err := h.quizService.GetResults(user)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
