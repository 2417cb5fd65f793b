package postgres

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/yourusername/loveapp-api/internal/domain/entity"
	apperrors "github.com/yourusername/loveapp-api/internal/pkg/errors"
)

// ResultRepo реализует repository.ResultRepository
type ResultRepo struct {
	db *gorm.DB
}

// NewResultRepo создает новый репозиторий результатов
func NewResultRepo(db *gorm.DB) *ResultRepo {
	return &ResultRepo{db: db}
}

// SaveResult сохраняет личный результат пользователя.
// Уникальный индекс (user_id, test_id) превращает повторную отправку в ErrConflict.
func (r *ResultRepo) SaveResult(result *entity.TestResult) error {
	err := r.db.Create(result).Error
	if isUniqueViolation(err) {
		return fmt.Errorf("%w: test already submitted by this user", apperrors.ErrConflict)
	}
	return err
}

// GetResult возвращает личный результат пользователя по тесту
func (r *ResultRepo) GetResult(userID uint, testID uint) (*entity.TestResult, error) {
	var result entity.TestResult
	err := r.db.Where("user_id = ? AND test_id = ?", userID, testID).First(&result).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &result, nil
}

// GetUserResults возвращает все личные результаты пользователя, свежие первыми
func (r *ResultRepo) GetUserResults(userID uint) ([]entity.TestResult, error) {
	var results []entity.TestResult
	err := r.db.Where("user_id = ?", userID).Order("completed_at DESC").Find(&results).Error
	return results, err
}

// CountUserResults возвращает число пройденных пользователем тестов
func (r *ResultRepo) CountUserResults(userID uint) (int64, error) {
	var count int64
	err := r.db.Model(&entity.TestResult{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}

// SaveSharedResult сохраняет общий результат пары.
// Уникальный индекс (couple_id, test_id) гарантирует не более одного общего
// результата на тест даже при одновременной отправке обоими партнерами.
func (r *ResultRepo) SaveSharedResult(result *entity.SharedTestResult) error {
	err := r.db.Create(result).Error
	if isUniqueViolation(err) {
		return fmt.Errorf("%w: shared result already computed", apperrors.ErrConflict)
	}
	return err
}

// GetSharedResults возвращает все общие результаты пары, свежие первыми
func (r *ResultRepo) GetSharedResults(coupleID uint) ([]entity.SharedTestResult, error) {
	var results []entity.SharedTestResult
	err := r.db.Where("couple_id = ?", coupleID).Order("created_at DESC").Find(&results).Error
	return results, err
}
