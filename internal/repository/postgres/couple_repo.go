package postgres

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/yourusername/loveapp-api/internal/domain/entity"
	apperrors "github.com/yourusername/loveapp-api/internal/pkg/errors"
)

// CoupleRepo реализует repository.CoupleRepository
type CoupleRepo struct {
	db *gorm.DB
}

// NewCoupleRepo создает новый репозиторий пар
func NewCoupleRepo(db *gorm.DB) *CoupleRepo {
	return &CoupleRepo{db: db}
}

// Create создает новую пару. Код приглашения уникален;
// при коллизии возвращается ErrConflict, и вызывающая сторона генерирует новый код.
func (r *CoupleRepo) Create(couple *entity.Couple) error {
	err := r.db.Create(couple).Error
	if isUniqueViolation(err) {
		return fmt.Errorf("%w: couple code already taken", apperrors.ErrConflict)
	}
	return err
}

// GetByID возвращает пару по ID
func (r *CoupleRepo) GetByID(id uint) (*entity.Couple, error) {
	var couple entity.Couple
	err := r.db.First(&couple, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &couple, nil
}

// GetByCode ищет пару по коду приглашения
func (r *CoupleRepo) GetByCode(code string) (*entity.Couple, error) {
	var couple entity.Couple
	err := r.db.Where("couple_code = ?", code).First(&couple).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &couple, nil
}
