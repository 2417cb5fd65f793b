package postgres

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/yourusername/loveapp-api/internal/domain/entity"
	apperrors "github.com/yourusername/loveapp-api/internal/pkg/errors"
)

// UserRepo реализует repository.UserRepository
type UserRepo struct {
	db *gorm.DB
}

// NewUserRepo создает новый репозиторий пользователей
func NewUserRepo(db *gorm.DB) *UserRepo {
	return &UserRepo{db: db}
}

// Create создает нового пользователя
func (r *UserRepo) Create(user *entity.User) error {
	err := r.db.Create(user).Error
	if isUniqueViolation(err) {
		return fmt.Errorf("%w: email already registered", apperrors.ErrConflict)
	}
	return err
}

// GetByID возвращает пользователя по ID
func (r *UserRepo) GetByID(id uint) (*entity.User, error) {
	var user entity.User
	err := r.db.First(&user, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// GetByEmail возвращает пользователя по email
func (r *UserRepo) GetByEmail(email string) (*entity.User, error) {
	var user entity.User
	err := r.db.Where("email = ?", email).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// UpdateAvatar записывает путь к загруженному аватару пользователя
func (r *UserRepo) UpdateAvatar(userID uint, avatarURL string) error {
	return r.db.Model(&entity.User{}).
		Where("id = ?", userID).
		Updates(map[string]interface{}{"avatar_url": avatarURL, "updated_at": time.Now()}).
		Error
}

// AttachToCouple привязывает пользователя к паре
func (r *UserRepo) AttachToCouple(userID uint, coupleID uint) error {
	return r.db.Model(&entity.User{}).
		Where("id = ?", userID).
		Updates(map[string]interface{}{"couple_id": coupleID, "updated_at": time.Now()}).
		Error
}

// GetByCouple возвращает всех участников пары
func (r *UserRepo) GetByCouple(coupleID uint) ([]entity.User, error) {
	var users []entity.User
	err := r.db.Where("couple_id = ?", coupleID).Order("id").Find(&users).Error
	return users, err
}

// CountByCouple возвращает число участников пары
func (r *UserRepo) CountByCouple(coupleID uint) (int64, error) {
	var count int64
	err := r.db.Model(&entity.User{}).Where("couple_id = ?", coupleID).Count(&count).Error
	return count, err
}

// GetPartner возвращает второго участника пары
func (r *UserRepo) GetPartner(coupleID uint, excludeUserID uint) (*entity.User, error) {
	var user entity.User
	err := r.db.Where("couple_id = ? AND id <> ?", coupleID, excludeUserID).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}
