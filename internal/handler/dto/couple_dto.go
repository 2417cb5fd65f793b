package dto

import (
	"time"

	"github.com/yourusername/loveapp-api/internal/domain/entity"
)

// CoupleResponse — пара с профилями всех участников
type CoupleResponse struct {
	ID               uint          `json:"id"`
	CoupleCode       string        `json:"couple_code"`
	RelationshipName string        `json:"relationship_name"`
	AvatarURL        string        `json:"avatar_url"`
	CreatedAt        time.Time     `json:"created_at"`
	Partners         []PartnerInfo `json:"partners"`
}

// NewCoupleResponse строит ответ из пары и списка ее участников
func NewCoupleResponse(couple *entity.Couple, members []entity.User) CoupleResponse {
	partners := make([]PartnerInfo, 0, len(members))
	for _, member := range members {
		partners = append(partners, PartnerInfo{
			ID:        member.ID,
			Username:  member.Username,
			Gender:    member.Gender,
			AvatarURL: member.AvatarURL,
		})
	}

	return CoupleResponse{
		ID:               couple.ID,
		CoupleCode:       couple.CoupleCode,
		RelationshipName: couple.RelationshipName,
		AvatarURL:        couple.AvatarURL,
		CreatedAt:        couple.CreatedAt,
		Partners:         partners,
	}
}

// CoupleStatsResponse — сводная статистика пары для дашборда
type CoupleStatsResponse struct {
	TestCount        int64      `json:"test_count"`
	AvgCompatibility float64    `json:"avg_compatibility"`
	MessageCount     int64      `json:"message_count"`
	PartnerName      string     `json:"partner_name"`
	TogetherSince    *time.Time `json:"together_since"`
}
