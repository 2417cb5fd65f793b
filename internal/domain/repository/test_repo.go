package repository

import (
	"github.com/yourusername/loveapp-api/internal/domain/entity"
)

// TestRepository определяет методы для работы с экземплярами тестов
type TestRepository interface {
	Create(test *entity.Test) error
	GetByID(id uint) (*entity.Test, error)
	// GetByIDs возвращает экземпляры тестов по списку идентификаторов
	GetByIDs(ids []uint) ([]entity.Test, error)
}
