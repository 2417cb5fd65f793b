package repository

import (
	"github.com/yourusername/loveapp-api/internal/domain/entity"
)

// UserRepository определяет методы для работы с пользователями
type UserRepository interface {
	Create(user *entity.User) error
	GetByID(id uint) (*entity.User, error)
	GetByEmail(email string) (*entity.User, error)
	// UpdateAvatar записывает путь к загруженному аватару пользователя
	UpdateAvatar(userID uint, avatarURL string) error
	// AttachToCouple привязывает пользователя к паре
	AttachToCouple(userID uint, coupleID uint) error
	// GetByCouple возвращает всех участников пары (0, 1 или 2 записи)
	GetByCouple(coupleID uint) ([]entity.User, error)
	// CountByCouple возвращает число участников пары
	CountByCouple(coupleID uint) (int64, error)
	// GetPartner возвращает второго участника пары или ErrNotFound, если партнера еще нет
	GetPartner(coupleID uint, excludeUserID uint) (*entity.User, error)
}
