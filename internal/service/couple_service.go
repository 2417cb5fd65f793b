package service

import (
	"errors"
	"fmt"
	"log"
	"math"
	"strings"

	"github.com/google/uuid"

	"github.com/yourusername/loveapp-api/internal/domain/entity"
	"github.com/yourusername/loveapp-api/internal/domain/repository"
	"github.com/yourusername/loveapp-api/internal/handler/dto"
	apperrors "github.com/yourusername/loveapp-api/internal/pkg/errors"
)

// Число попыток подобрать свободный код приглашения
const coupleCodeAttempts = 5

// CoupleService управляет созданием пар, присоединением по коду и статистикой
type CoupleService struct {
	coupleRepo  repository.CoupleRepository
	userRepo    repository.UserRepository
	resultRepo  repository.ResultRepository
	messageRepo repository.MessageRepository
}

// NewCoupleService создает новый сервис пар
func NewCoupleService(
	coupleRepo repository.CoupleRepository,
	userRepo repository.UserRepository,
	resultRepo repository.ResultRepository,
	messageRepo repository.MessageRepository,
) (*CoupleService, error) {
	if coupleRepo == nil || userRepo == nil || resultRepo == nil || messageRepo == nil {
		return nil, fmt.Errorf("all repositories are required for CoupleService")
	}

	return &CoupleService{
		coupleRepo:  coupleRepo,
		userRepo:    userRepo,
		resultRepo:  resultRepo,
		messageRepo: messageRepo,
	}, nil
}

// CreateCouple создает новую пару и привязывает к ней создателя
func (s *CoupleService) CreateCouple(user *entity.User, relationshipName string) (*entity.Couple, error) {
	if user.HasCouple() {
		return nil, fmt.Errorf("%w: user already has a couple", apperrors.ErrValidation)
	}

	relationshipName = strings.TrimSpace(relationshipName)
	if relationshipName == "" {
		relationshipName = entity.DefaultRelationshipName
	}

	couple := &entity.Couple{
		RelationshipName: relationshipName,
		IsActive:         true,
	}

	// Код генерируется случайно, коллизия крайне маловероятна,
	// но уникальный индекс ее все равно поймает — пробуем еще раз
	var err error
	for attempt := 0; attempt < coupleCodeAttempts; attempt++ {
		couple.CoupleCode = generateCoupleCode()
		err = s.coupleRepo.Create(couple)
		if err == nil {
			break
		}
		if !errors.Is(err, apperrors.ErrConflict) {
			return nil, fmt.Errorf("failed to create couple: %w", err)
		}
		log.Printf("[CoupleService] Коллизия кода пары %s, попытка %d", couple.CoupleCode, attempt+1)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create couple: %w", err)
	}

	if err := s.userRepo.AttachToCouple(user.ID, couple.ID); err != nil {
		return nil, fmt.Errorf("failed to attach user to couple: %w", err)
	}
	user.CoupleID = &couple.ID

	log.Printf("[CoupleService] Пара ID=%d создана пользователем ID=%d, код %s", couple.ID, user.ID, couple.CoupleCode)
	return couple, nil
}

// JoinCouple присоединяет пользователя к существующей паре по коду приглашения
func (s *CoupleService) JoinCouple(user *entity.User, code string) (*entity.Couple, error) {
	if user.HasCouple() {
		return nil, fmt.Errorf("%w: user already has a couple", apperrors.ErrValidation)
	}

	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return nil, fmt.Errorf("%w: couple code is required", apperrors.ErrValidation)
	}

	couple, err := s.coupleRepo.GetByCode(code)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: couple code not found", apperrors.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to find couple by code: %w", err)
	}

	memberCount, err := s.userRepo.CountByCouple(couple.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to count couple members: %w", err)
	}
	if memberCount >= entity.MaxCoupleMembers {
		return nil, fmt.Errorf("%w: couple is already full", apperrors.ErrValidation)
	}

	if err := s.userRepo.AttachToCouple(user.ID, couple.ID); err != nil {
		return nil, fmt.Errorf("failed to attach user to couple: %w", err)
	}
	user.CoupleID = &couple.ID

	log.Printf("[CoupleService] Пользователь ID=%d присоединился к паре ID=%d", user.ID, couple.ID)
	return couple, nil
}

// GetMyCouple возвращает пару пользователя вместе со списком участников
func (s *CoupleService) GetMyCouple(user *entity.User) (*entity.Couple, []entity.User, error) {
	if !user.HasCouple() {
		return nil, nil, fmt.Errorf("%w: user has no couple", apperrors.ErrNotFound)
	}

	couple, err := s.coupleRepo.GetByID(*user.CoupleID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load couple: %w", err)
	}

	members, err := s.userRepo.GetByCouple(couple.ID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load couple members: %w", err)
	}

	return couple, members, nil
}

// GetStats собирает сводную статистику пары для дашборда
func (s *CoupleService) GetStats(user *entity.User) (*dto.CoupleStatsResponse, error) {
	if !user.HasCouple() {
		return nil, fmt.Errorf("%w: user has no couple", apperrors.ErrValidation)
	}
	coupleID := *user.CoupleID

	couple, err := s.coupleRepo.GetByID(coupleID)
	if err != nil {
		return nil, fmt.Errorf("failed to load couple: %w", err)
	}

	testCount, err := s.resultRepo.CountUserResults(user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to count test results: %w", err)
	}

	shared, err := s.resultRepo.GetSharedResults(coupleID)
	if err != nil {
		return nil, fmt.Errorf("failed to load shared results: %w", err)
	}
	avgCompatibility := 0.0
	if len(shared) > 0 {
		sum := 0
		for _, r := range shared {
			sum += r.CompatibilityPercentage
		}
		avgCompatibility = math.Round(float64(sum)/float64(len(shared))*10) / 10
	}

	messageCount, err := s.messageRepo.CountByCouple(coupleID)
	if err != nil {
		return nil, fmt.Errorf("failed to count messages: %w", err)
	}

	partnerName := "Ожидание партнера"
	partner, err := s.userRepo.GetPartner(coupleID, user.ID)
	if err == nil {
		partnerName = partner.Username
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to load partner: %w", err)
	}

	togetherSince := couple.CreatedAt
	return &dto.CoupleStatsResponse{
		TestCount:        testCount,
		AvgCompatibility: avgCompatibility,
		MessageCount:     messageCount,
		PartnerName:      partnerName,
		TogetherSince:    &togetherSince,
	}, nil
}

// generateCoupleCode возвращает 8-символьный код приглашения в верхнем регистре
func generateCoupleCode() string {
	return strings.ToUpper(uuid.New().String()[:8])
}
