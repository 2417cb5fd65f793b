package postgres

import (
	"errors"

	"gorm.io/gorm"

	"github.com/yourusername/loveapp-api/internal/domain/entity"
	apperrors "github.com/yourusername/loveapp-api/internal/pkg/errors"
)

// TestRepo реализует repository.TestRepository
type TestRepo struct {
	db *gorm.DB
}

// NewTestRepo создает новый репозиторий экземпляров тестов
func NewTestRepo(db *gorm.DB) *TestRepo {
	return &TestRepo{db: db}
}

// Create создает новый экземпляр теста
func (r *TestRepo) Create(test *entity.Test) error {
	return r.db.Create(test).Error
}

// GetByID возвращает экземпляр теста по ID
func (r *TestRepo) GetByID(id uint) (*entity.Test, error) {
	var test entity.Test
	err := r.db.First(&test, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &test, nil
}

// GetByIDs возвращает экземпляры тестов по списку идентификаторов
func (r *TestRepo) GetByIDs(ids []uint) ([]entity.Test, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var tests []entity.Test
	err := r.db.Where("id IN ?", ids).Find(&tests).Error
	return tests, err
}
