package postgres

import (
	"gorm.io/gorm"

	"github.com/yourusername/loveapp-api/internal/domain/entity"
)

// MessageRepo реализует repository.MessageRepository
type MessageRepo struct {
	db *gorm.DB
}

// NewMessageRepo создает новый репозиторий сообщений
func NewMessageRepo(db *gorm.DB) *MessageRepo {
	return &MessageRepo{db: db}
}

// Create сохраняет новое сообщение пары
func (r *MessageRepo) Create(message *entity.LoveMessage) error {
	return r.db.Create(message).Error
}

// ListByCouple возвращает не более limit последних сообщений пары, новые первыми
func (r *MessageRepo) ListByCouple(coupleID uint, limit int) ([]entity.LoveMessage, error) {
	var messages []entity.LoveMessage
	err := r.db.Where("couple_id = ?", coupleID).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&messages).Error
	return messages, err
}

// CountByCouple возвращает общее число сообщений пары
func (r *MessageRepo) CountByCouple(coupleID uint) (int64, error) {
	var count int64
	err := r.db.Model(&entity.LoveMessage{}).Where("couple_id = ?", coupleID).Count(&count).Error
	return count, err
}
