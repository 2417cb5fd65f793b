package service

import (
	"errors"
	"fmt"
	"log"
	"math"
	"time"

	"github.com/yourusername/loveapp-api/internal/catalog"
	"github.com/yourusername/loveapp-api/internal/domain/entity"
	"github.com/yourusername/loveapp-api/internal/domain/repository"
	"github.com/yourusername/loveapp-api/internal/handler/dto"
	apperrors "github.com/yourusername/loveapp-api/internal/pkg/errors"
	ws "github.com/yourusername/loveapp-api/internal/websocket"
)

// Пороговые интерпретации личного балла
const (
	interpretationLow    = "Есть над чем поработать"
	interpretationMedium = "Хороший результат"
	interpretationHigh   = "Отличная совместимость!"
)

// Максимальный суммарный балл пары, принимаемый за 100% совместимости
const maxCombinedScore = 8.0

// Если баллы партнеров отличаются не больше чем на это значение,
// пара считается взаимодополняющей
const complementaryScoreGap = 2

// QuizService управляет каталогом тестов, их прохождением и результатами
type QuizService struct {
	catalog    *catalog.Catalog
	testRepo   repository.TestRepository
	resultRepo repository.ResultRepository
	userRepo   repository.UserRepository
	notifier   CoupleNotifier
}

// NewQuizService создает новый сервис тестов
func NewQuizService(
	cat *catalog.Catalog,
	testRepo repository.TestRepository,
	resultRepo repository.ResultRepository,
	userRepo repository.UserRepository,
	notifier CoupleNotifier,
) (*QuizService, error) {
	if cat == nil {
		return nil, fmt.Errorf("catalog is required for QuizService")
	}
	if testRepo == nil || resultRepo == nil || userRepo == nil {
		return nil, fmt.Errorf("all repositories are required for QuizService")
	}

	return &QuizService{
		catalog:    cat,
		testRepo:   testRepo,
		resultRepo: resultRepo,
		userRepo:   userRepo,
		notifier:   notifier,
	}, nil
}

// ListAvailable возвращает определения тестов из каталога
func (s *QuizService) ListAvailable() []catalog.TestDefinition {
	return s.catalog.All()
}

// StartTest создает экземпляр теста для пары пользователя
func (s *QuizService) StartTest(user *entity.User, title string) (*entity.Test, error) {
	if !user.HasCouple() {
		return nil, fmt.Errorf("%w: user has no couple", apperrors.ErrValidation)
	}

	def, ok := s.catalog.FindByTitle(title)
	if !ok {
		return nil, fmt.Errorf("%w: test %q not found in catalog", apperrors.ErrNotFound, title)
	}

	test := &entity.Test{
		Title:       def.Title,
		Description: def.Description,
		Category:    def.Category,
		Questions:   def.Questions,
		CoupleID:    *user.CoupleID,
		CreatedBy:   user.ID,
	}

	if err := s.testRepo.Create(test); err != nil {
		return nil, fmt.Errorf("failed to create test instance: %w", err)
	}

	log.Printf("[QuizService] Тест ID=%d (%s) начат для пары ID=%d", test.ID, test.Title, test.CoupleID)
	return test, nil
}

// SubmitTest сохраняет ответы пользователя, считает личный балл и,
// если оба партнера уже ответили, формирует общий результат пары
func (s *QuizService) SubmitTest(user *entity.User, testID uint, answers []entity.Answer) (*dto.SubmitTestResponse, error) {
	test, err := s.testRepo.GetByID(testID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: test not found", apperrors.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to load test: %w", err)
	}

	if !user.HasCouple() || *user.CoupleID != test.CoupleID {
		return nil, fmt.Errorf("%w: test belongs to another couple", apperrors.ErrForbidden)
	}

	score := 0
	for _, answer := range answers {
		score += answer.AnswerValue.Points()
	}
	interpretation := interpretScore(score)

	result := &entity.TestResult{
		UserID:         user.ID,
		TestID:         test.ID,
		Answers:        answers,
		Score:          score,
		Interpretation: interpretation,
		CompletedAt:    time.Now(),
	}
	if err := s.resultRepo.SaveResult(result); err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			return nil, fmt.Errorf("%w: test already submitted", apperrors.ErrConflict)
		}
		return nil, fmt.Errorf("failed to save test result: %w", err)
	}

	if err := s.maybeCreateSharedResult(user, test, result); err != nil {
		// Личный результат уже сохранен, не роняем запрос
		log.Printf("[QuizService] Не удалось сформировать общий результат теста ID=%d: %v", test.ID, err)
	}

	return &dto.SubmitTestResponse{
		Score:          score,
		Interpretation: interpretation,
		Message:        "Результат сохранен. Ожидайте результаты партнера.",
	}, nil
}

// maybeCreateSharedResult формирует общий результат пары, когда есть оба личных.
// Гонку одновременных отправок разрешает уникальный индекс базы: повторная
// вставка дает ErrConflict и просто игнорируется.
func (s *QuizService) maybeCreateSharedResult(user *entity.User, test *entity.Test, own *entity.TestResult) error {
	partner, err := s.userRepo.GetPartner(test.CoupleID, user.ID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil
		}
		return fmt.Errorf("failed to load partner: %w", err)
	}

	partnerResult, err := s.resultRepo.GetResult(partner.ID, test.ID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil
		}
		return fmt.Errorf("failed to load partner result: %w", err)
	}

	combined := float64(own.Score+partnerResult.Score) / 2
	percentage := int(math.Round(combined / maxCombinedScore * 100))
	if percentage > 100 {
		percentage = 100
	}

	comparison := entity.ComparisonDivergent
	if absInt(own.Score-partnerResult.Score) <= complementaryScoreGap {
		comparison = entity.ComparisonComplementary
	}

	shared := &entity.SharedTestResult{
		CoupleID:                test.CoupleID,
		TestID:                  test.ID,
		CombinedScore:           int(combined),
		CompatibilityPercentage: percentage,
		Insights: entity.SharedInsights{
			User1Score: own.Score,
			User2Score: partnerResult.Score,
			Comparison: comparison,
		},
	}
	if err := s.resultRepo.SaveSharedResult(shared); err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			log.Printf("[QuizService] Общий результат теста ID=%d пары ID=%d уже существует", test.ID, test.CoupleID)
			return nil
		}
		return fmt.Errorf("failed to save shared result: %w", err)
	}

	log.Printf("[QuizService] Общий результат теста ID=%d пары ID=%d: совместимость %d%%",
		test.ID, test.CoupleID, percentage)

	if s.notifier != nil {
		s.notifier.NotifyCouple(test.CoupleID, ws.Event{
			"type":          ws.EventSharedResultReady,
			"test_id":       test.ID,
			"test_title":    test.Title,
			"compatibility": percentage,
		})
	}
	return nil
}

// GetResults возвращает личные результаты пользователя и общие результаты его пары
func (s *QuizService) GetResults(user *entity.User) (*dto.TestResultsResponse, error) {
	personal, err := s.resultRepo.GetUserResults(user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load user results: %w", err)
	}

	var shared []entity.SharedTestResult
	if user.HasCouple() {
		shared, err = s.resultRepo.GetSharedResults(*user.CoupleID)
		if err != nil {
			return nil, fmt.Errorf("failed to load shared results: %w", err)
		}
	}

	titles, err := s.testTitles(personal, shared)
	if err != nil {
		return nil, err
	}

	resp := &dto.TestResultsResponse{
		Personal: make([]dto.PersonalResultDTO, 0, len(personal)),
		Shared:   make([]dto.SharedResultDTO, 0, len(shared)),
	}
	for _, r := range personal {
		resp.Personal = append(resp.Personal, dto.PersonalResultDTO{
			TestTitle:      titles[r.TestID],
			Score:          r.Score,
			Interpretation: r.Interpretation,
			CompletedAt:    r.CompletedAt,
		})
	}
	for _, r := range shared {
		resp.Shared = append(resp.Shared, dto.SharedResultDTO{
			TestTitle:               titles[r.TestID],
			CombinedScore:           r.CombinedScore,
			CompatibilityPercentage: r.CompatibilityPercentage,
			Insights:                r.Insights,
			CreatedAt:               r.CreatedAt,
		})
	}
	return resp, nil
}

// testTitles загружает названия тестов одним запросом по всем результатам
func (s *QuizService) testTitles(personal []entity.TestResult, shared []entity.SharedTestResult) (map[uint]string, error) {
	seen := make(map[uint]bool)
	ids := make([]uint, 0, len(personal)+len(shared))
	for _, r := range personal {
		if !seen[r.TestID] {
			seen[r.TestID] = true
			ids = append(ids, r.TestID)
		}
	}
	for _, r := range shared {
		if !seen[r.TestID] {
			seen[r.TestID] = true
			ids = append(ids, r.TestID)
		}
	}

	titles := make(map[uint]string, len(ids))
	if len(ids) == 0 {
		return titles, nil
	}

	tests, err := s.testRepo.GetByIDs(ids)
	if err != nil {
		return nil, fmt.Errorf("failed to load tests: %w", err)
	}
	for _, t := range tests {
		titles[t.ID] = t.Title
	}
	return titles, nil
}

// interpretScore переводит личный балл в текстовую интерпретацию
func interpretScore(score int) string {
	switch {
	case score < 3:
		return interpretationLow
	case score < 6:
		return interpretationMedium
	default:
		return interpretationHigh
	}
}

func absInt(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
