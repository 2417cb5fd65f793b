package repository

import (
	"github.com/yourusername/loveapp-api/internal/domain/entity"
)

// MessageRepository определяет методы для работы с сообщениями пары
type MessageRepository interface {
	Create(message *entity.LoveMessage) error
	// ListByCouple возвращает не более limit последних сообщений пары, новые первыми
	ListByCouple(coupleID uint, limit int) ([]entity.LoveMessage, error)
	CountByCouple(coupleID uint) (int64, error)
}
