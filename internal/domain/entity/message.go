package entity

import (
	"time"
)

// AnonymousAuthorName подставляется вместо имени автора анонимного сообщения
const AnonymousAuthorName = "Аноним"

// MessagesPageLimit — максимум сообщений в одной выдаче
const MessagesPageLimit = 50

// LoveMessage представляет сообщение на доске пары (append-only)
type LoveMessage struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UserID      uint      `gorm:"not null;index" json:"user_id"`
	CoupleID    uint      `gorm:"not null;index" json:"couple_id"`
	Message     string    `gorm:"type:text;not null" json:"message"`
	IsAnonymous bool      `gorm:"not null;default:false" json:"is_anonymous"`
	CreatedAt   time.Time `json:"created_at"`
}

// TableName определяет имя таблицы для GORM
func (LoveMessage) TableName() string {
	return "love_messages"
}
