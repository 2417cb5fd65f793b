package repository

import (
	"github.com/yourusername/loveapp-api/internal/domain/entity"
)

// ResultRepository определяет методы для работы с личными и общими результатами
type ResultRepository interface {
	// SaveResult сохраняет личный результат; возвращает ErrConflict,
	// если пользователь уже отправлял ответы по этому тесту
	SaveResult(result *entity.TestResult) error
	// GetResult возвращает личный результат пользователя по тесту
	GetResult(userID uint, testID uint) (*entity.TestResult, error)
	// GetUserResults возвращает все личные результаты пользователя
	GetUserResults(userID uint) ([]entity.TestResult, error)
	// CountUserResults возвращает число пройденных пользователем тестов
	CountUserResults(userID uint) (int64, error)

	// SaveSharedResult сохраняет общий результат пары; возвращает ErrConflict,
	// если общий результат по этому тесту уже существует
	SaveSharedResult(result *entity.SharedTestResult) error
	// GetSharedResults возвращает все общие результаты пары
	GetSharedResults(coupleID uint) ([]entity.SharedTestResult, error)
}
