package dto

import (
	"time"

	"github.com/yourusername/loveapp-api/internal/domain/entity"
)

// StartTestResponse — ответ на старт теста: экземпляр и его вопросы
type StartTestResponse struct {
	TestID    uint              `json:"test_id"`
	Title     string            `json:"title"`
	Questions []entity.Question `json:"questions"`
}

// SubmitTestResponse — личный итог после отправки ответов
type SubmitTestResponse struct {
	Score          int    `json:"score"`
	Interpretation string `json:"interpretation"`
	Message        string `json:"message"`
}

// PersonalResultDTO — личный результат, дополненный названием теста
type PersonalResultDTO struct {
	TestTitle      string    `json:"test_title"`
	Score          int       `json:"score"`
	Interpretation string    `json:"interpretation"`
	CompletedAt    time.Time `json:"completed_at"`
}

// SharedResultDTO — общий результат пары, дополненный названием теста
type SharedResultDTO struct {
	TestTitle               string                `json:"test_title"`
	CombinedScore           int                   `json:"combined_score"`
	CompatibilityPercentage int                   `json:"compatibility_percentage"`
	Insights                entity.SharedInsights `json:"insights"`
	CreatedAt               time.Time             `json:"created_at"`
}

// TestResultsResponse — все результаты пользователя: личные и общие
type TestResultsResponse struct {
	Personal []PersonalResultDTO `json:"personal"`
	Shared   []SharedResultDTO   `json:"shared"`
}
