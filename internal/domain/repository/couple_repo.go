package repository

import (
	"github.com/yourusername/loveapp-api/internal/domain/entity"
)

// CoupleRepository определяет методы для работы с парами
type CoupleRepository interface {
	Create(couple *entity.Couple) error
	GetByID(id uint) (*entity.Couple, error)
	// GetByCode ищет пару по коду приглашения
	GetByCode(code string) (*entity.Couple, error)
}
