package entity

import (
	"time"
)

// DefaultRelationshipName используется, когда пара создана без названия
const DefaultRelationshipName = "Наша пара"

// MaxCoupleMembers — максимальное число участников пары
const MaxCoupleMembers = 2

// Couple представляет пару из двух пользователей, связанных кодом приглашения
type Couple struct {
	ID               uint      `gorm:"primaryKey" json:"id"`
	CoupleCode       string    `gorm:"size:10;not null;uniqueIndex" json:"couple_code"`
	RelationshipName string    `gorm:"size:100;not null" json:"relationship_name"`
	AvatarURL        string    `gorm:"size:500;not null;default:''" json:"avatar_url"`
	IsActive         bool      `gorm:"not null;default:true" json:"is_active"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// TableName определяет имя таблицы для GORM
func (Couple) TableName() string {
	return "couples"
}
