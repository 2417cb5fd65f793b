package entity

import (
	"time"
)

// Test представляет экземпляр теста, начатый для конкретной пары.
// Набор вопросов фиксируется из каталога на момент старта.
type Test struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	Title       string     `gorm:"size:200;not null" json:"title"`
	Description string     `gorm:"type:text" json:"description"`
	Category    string     `gorm:"size:50;not null" json:"category"` // "love", "compatibility", "future"
	Questions   []Question `gorm:"type:jsonb;not null;serializer:json" json:"questions"`
	CoupleID    uint       `gorm:"not null;index" json:"couple_id"`
	CreatedBy   uint       `gorm:"not null" json:"created_by"`
	CreatedAt   time.Time  `json:"created_at"`
}

// TableName определяет имя таблицы для GORM
func (Test) TableName() string {
	return "tests"
}
