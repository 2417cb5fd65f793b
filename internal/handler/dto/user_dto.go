package dto

import (
	"time"

	"github.com/yourusername/loveapp-api/internal/domain/entity"
)

// UserResponse — публичный профиль пользователя
type UserResponse struct {
	ID        uint      `json:"id"`
	Email     string    `json:"email"`
	Username  string    `json:"username"`
	Gender    string    `json:"gender"`
	AvatarURL string    `json:"avatar_url"`
	CoupleID  *uint     `json:"couple_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// NewUserResponse строит публичный профиль из сущности
func NewUserResponse(user *entity.User) UserResponse {
	return UserResponse{
		ID:        user.ID,
		Email:     user.Email,
		Username:  user.Username,
		Gender:    user.Gender,
		AvatarURL: user.AvatarURL,
		CoupleID:  user.CoupleID,
		CreatedAt: user.CreatedAt,
	}
}

// PartnerInfo — краткий профиль участника пары
type PartnerInfo struct {
	ID        uint   `json:"id"`
	Username  string `json:"username"`
	Gender    string `json:"gender"`
	AvatarURL string `json:"avatar_url"`
}
