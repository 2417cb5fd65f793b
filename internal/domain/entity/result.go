package entity

import (
	"time"
)

// TestResult представляет личный результат пользователя по экземпляру теста.
// Пара (user_id, test_id) уникальна: повторная отправка ответов отклоняется.
type TestResult struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	UserID         uint      `gorm:"not null;index;uniqueIndex:idx_user_test" json:"user_id"`
	TestID         uint      `gorm:"not null;index;uniqueIndex:idx_user_test" json:"test_id"`
	Answers        []Answer  `gorm:"type:jsonb;not null;serializer:json" json:"answers"`
	Score          int       `gorm:"not null;default:0" json:"score"`
	Interpretation string    `gorm:"type:text" json:"interpretation"`
	CompletedAt    time.Time `gorm:"not null" json:"completed_at"`
}

// TableName определяет имя таблицы для GORM
func (TestResult) TableName() string {
	return "test_results"
}

// Сравнительные флаги в общем результате пары
const (
	ComparisonComplementary = "complementary"
	ComparisonDivergent     = "divergent"
)

// SharedInsights — структурированные выводы общего результата
type SharedInsights struct {
	User1Score int    `json:"user1_score"`
	User2Score int    `json:"user2_score"`
	Comparison string `json:"comparison"`
}

// SharedTestResult представляет общий результат пары по экземпляру теста.
// Создается ровно один раз, когда у обоих партнеров есть личный результат;
// уникальность (couple_id, test_id) гарантируется базой данных.
type SharedTestResult struct {
	ID                      uint           `gorm:"primaryKey" json:"id"`
	CoupleID                uint           `gorm:"not null;index;uniqueIndex:idx_couple_test" json:"couple_id"`
	TestID                  uint           `gorm:"not null;uniqueIndex:idx_couple_test" json:"test_id"`
	CombinedScore           int            `gorm:"not null" json:"combined_score"`
	CompatibilityPercentage int            `gorm:"not null" json:"compatibility_percentage"`
	Insights                SharedInsights `gorm:"type:jsonb;not null;serializer:json" json:"insights"`
	CreatedAt               time.Time      `json:"created_at"`
}

// TableName определяет имя таблицы для GORM
func (SharedTestResult) TableName() string {
	return "shared_test_results"
}
