package service

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/loveapp-api/internal/domain/entity"
	apperrors "github.com/yourusername/loveapp-api/internal/pkg/errors"
)

// ============================================================================
// Моки для CoupleService
// ============================================================================

// MockCoupleRepoForCoupleService реализует repository.CoupleRepository
type MockCoupleRepoForCoupleService struct {
	mock.Mock
}

func (m *MockCoupleRepoForCoupleService) Create(couple *entity.Couple) error {
	args := m.Called(couple)
	return args.Error(0)
}

func (m *MockCoupleRepoForCoupleService) GetByID(id uint) (*entity.Couple, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Couple), args.Error(1)
}

func (m *MockCoupleRepoForCoupleService) GetByCode(code string) (*entity.Couple, error) {
	args := m.Called(code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Couple), args.Error(1)
}

// MockUserRepoForCoupleService реализует repository.UserRepository
type MockUserRepoForCoupleService struct {
	mock.Mock
}

func (m *MockUserRepoForCoupleService) Create(user *entity.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepoForCoupleService) GetByID(id uint) (*entity.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockUserRepoForCoupleService) GetByEmail(email string) (*entity.User, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockUserRepoForCoupleService) UpdateAvatar(userID uint, avatarURL string) error {
	args := m.Called(userID, avatarURL)
	return args.Error(0)
}

func (m *MockUserRepoForCoupleService) AttachToCouple(userID uint, coupleID uint) error {
	args := m.Called(userID, coupleID)
	return args.Error(0)
}

func (m *MockUserRepoForCoupleService) GetByCouple(coupleID uint) ([]entity.User, error) {
	args := m.Called(coupleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.User), args.Error(1)
}

func (m *MockUserRepoForCoupleService) CountByCouple(coupleID uint) (int64, error) {
	args := m.Called(coupleID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockUserRepoForCoupleService) GetPartner(coupleID uint, excludeUserID uint) (*entity.User, error) {
	args := m.Called(coupleID, excludeUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

// MockResultRepoForCoupleService реализует repository.ResultRepository
type MockResultRepoForCoupleService struct {
	mock.Mock
}

func (m *MockResultRepoForCoupleService) SaveResult(result *entity.TestResult) error {
	args := m.Called(result)
	return args.Error(0)
}

func (m *MockResultRepoForCoupleService) GetResult(userID uint, testID uint) (*entity.TestResult, error) {
	args := m.Called(userID, testID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.TestResult), args.Error(1)
}

func (m *MockResultRepoForCoupleService) GetUserResults(userID uint) ([]entity.TestResult, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.TestResult), args.Error(1)
}

func (m *MockResultRepoForCoupleService) CountUserResults(userID uint) (int64, error) {
	args := m.Called(userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockResultRepoForCoupleService) SaveSharedResult(result *entity.SharedTestResult) error {
	args := m.Called(result)
	return args.Error(0)
}

func (m *MockResultRepoForCoupleService) GetSharedResults(coupleID uint) ([]entity.SharedTestResult, error) {
	args := m.Called(coupleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.SharedTestResult), args.Error(1)
}

// MockMessageRepoForCoupleService реализует repository.MessageRepository
type MockMessageRepoForCoupleService struct {
	mock.Mock
}

func (m *MockMessageRepoForCoupleService) Create(message *entity.LoveMessage) error {
	args := m.Called(message)
	return args.Error(0)
}

func (m *MockMessageRepoForCoupleService) ListByCouple(coupleID uint, limit int) ([]entity.LoveMessage, error) {
	args := m.Called(coupleID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.LoveMessage), args.Error(1)
}

func (m *MockMessageRepoForCoupleService) CountByCouple(coupleID uint) (int64, error) {
	args := m.Called(coupleID)
	return args.Get(0).(int64), args.Error(1)
}

type coupleServiceMocks struct {
	coupleRepo  *MockCoupleRepoForCoupleService
	userRepo    *MockUserRepoForCoupleService
	resultRepo  *MockResultRepoForCoupleService
	messageRepo *MockMessageRepoForCoupleService
}

func createTestCoupleService(t *testing.T) (*CoupleService, coupleServiceMocks) {
	t.Helper()

	mocks := coupleServiceMocks{
		coupleRepo:  new(MockCoupleRepoForCoupleService),
		userRepo:    new(MockUserRepoForCoupleService),
		resultRepo:  new(MockResultRepoForCoupleService),
		messageRepo: new(MockMessageRepoForCoupleService),
	}

	coupleService, err := NewCoupleService(mocks.coupleRepo, mocks.userRepo, mocks.resultRepo, mocks.messageRepo)
	require.NoError(t, err)
	return coupleService, mocks
}

func coupleIDPtr(id uint) *uint {
	return &id
}

// ============================================================================
// Тесты для CoupleService
// ============================================================================

func TestCoupleService_CreateCouple_Success(t *testing.T) {
	// Arrange
	coupleService, mocks := createTestCoupleService(t)

	mocks.coupleRepo.On("Create", mock.AnythingOfType("*entity.Couple")).Run(func(args mock.Arguments) {
		args.Get(0).(*entity.Couple).ID = 10
	}).Return(nil)
	mocks.userRepo.On("AttachToCouple", uint(1), uint(10)).Return(nil)

	user := &entity.User{ID: 1, Username: "Анна"}

	// Act
	couple, err := coupleService.CreateCouple(user, "")

	// Assert
	require.NoError(t, err, "Создание пары должно быть успешным")
	assert.Equal(t, entity.DefaultRelationshipName, couple.RelationshipName, "Пустое название заменяется умолчанием")
	assert.Len(t, couple.CoupleCode, 8, "Код приглашения должен быть из 8 символов")
	assert.Equal(t, strings.ToUpper(couple.CoupleCode), couple.CoupleCode, "Код должен быть в верхнем регистре")
	require.NotNil(t, user.CoupleID)
	assert.Equal(t, uint(10), *user.CoupleID, "Создатель привязывается к паре")
	mocks.coupleRepo.AssertExpectations(t)
	mocks.userRepo.AssertExpectations(t)
}

func TestCoupleService_CreateCouple_AlreadyPaired(t *testing.T) {
	// Arrange
	coupleService, mocks := createTestCoupleService(t)
	user := &entity.User{ID: 1, CoupleID: coupleIDPtr(5)}

	// Act
	couple, err := coupleService.CreateCouple(user, "Мы")

	// Assert
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrValidation, "Пользователь в паре не может создать вторую")
	assert.Nil(t, couple)
	mocks.coupleRepo.AssertNotCalled(t, "Create", mock.Anything)
}

func TestCoupleService_CreateCouple_CodeCollisionRetried(t *testing.T) {
	// Тест: коллизия кода приглашения приводит к повторной генерации
	coupleService, mocks := createTestCoupleService(t)

	mocks.coupleRepo.On("Create", mock.AnythingOfType("*entity.Couple")).Return(apperrors.ErrConflict).Once()
	mocks.coupleRepo.On("Create", mock.AnythingOfType("*entity.Couple")).Run(func(args mock.Arguments) {
		args.Get(0).(*entity.Couple).ID = 11
	}).Return(nil).Once()
	mocks.userRepo.On("AttachToCouple", uint(1), uint(11)).Return(nil)

	user := &entity.User{ID: 1}

	// Act
	couple, err := coupleService.CreateCouple(user, "Мы")

	// Assert
	require.NoError(t, err, "Вторая попытка должна пройти")
	assert.Equal(t, uint(11), couple.ID)
	mocks.coupleRepo.AssertExpectations(t)
}

func TestCoupleService_JoinCouple_Success(t *testing.T) {
	// Arrange
	coupleService, mocks := createTestCoupleService(t)

	couple := &entity.Couple{ID: 10, CoupleCode: "AB12CD34"}
	mocks.coupleRepo.On("GetByCode", "AB12CD34").Return(couple, nil)
	mocks.userRepo.On("CountByCouple", uint(10)).Return(int64(1), nil)
	mocks.userRepo.On("AttachToCouple", uint(2), uint(10)).Return(nil)

	user := &entity.User{ID: 2, Username: "Иван"}

	// Act: код нормализуется к верхнему регистру
	joined, err := coupleService.JoinCouple(user, "  ab12cd34 ")

	// Assert
	require.NoError(t, err, "Присоединение по коду должно быть успешным")
	assert.Equal(t, uint(10), joined.ID)
	require.NotNil(t, user.CoupleID)
	assert.Equal(t, uint(10), *user.CoupleID)
	mocks.userRepo.AssertExpectations(t)
}

func TestCoupleService_JoinCouple_UnknownCode(t *testing.T) {
	// Arrange
	coupleService, mocks := createTestCoupleService(t)
	mocks.coupleRepo.On("GetByCode", "NOPE0000").Return(nil, apperrors.ErrNotFound)

	user := &entity.User{ID: 2}

	// Act
	couple, err := coupleService.JoinCouple(user, "NOPE0000")

	// Assert
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrNotFound, "Неизвестный код должен давать ErrNotFound")
	assert.Nil(t, couple)
}

func TestCoupleService_JoinCouple_CoupleFull(t *testing.T) {
	// Arrange
	coupleService, mocks := createTestCoupleService(t)

	couple := &entity.Couple{ID: 10, CoupleCode: "AB12CD34"}
	mocks.coupleRepo.On("GetByCode", "AB12CD34").Return(couple, nil)
	mocks.userRepo.On("CountByCouple", uint(10)).Return(int64(2), nil)

	user := &entity.User{ID: 3}

	// Act
	_, err := coupleService.JoinCouple(user, "AB12CD34")

	// Assert
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrValidation, "В полную пару присоединиться нельзя")
	mocks.userRepo.AssertNotCalled(t, "AttachToCouple", mock.Anything, mock.Anything)
}

func TestCoupleService_GetMyCouple_NotPaired(t *testing.T) {
	// Arrange
	coupleService, _ := createTestCoupleService(t)
	user := &entity.User{ID: 1}

	// Act
	couple, members, err := coupleService.GetMyCouple(user)

	// Assert
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.Nil(t, couple)
	assert.Nil(t, members)
}

func TestCoupleService_GetStats_Success(t *testing.T) {
	// Arrange
	coupleService, mocks := createTestCoupleService(t)

	createdAt := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	couple := &entity.Couple{ID: 10, CreatedAt: createdAt}
	mocks.coupleRepo.On("GetByID", uint(10)).Return(couple, nil)
	mocks.resultRepo.On("CountUserResults", uint(1)).Return(int64(3), nil)
	mocks.resultRepo.On("GetSharedResults", uint(10)).Return([]entity.SharedTestResult{
		{CompatibilityPercentage: 75},
		{CompatibilityPercentage: 50},
	}, nil)
	mocks.messageRepo.On("CountByCouple", uint(10)).Return(int64(12), nil)
	mocks.userRepo.On("GetPartner", uint(10), uint(1)).Return(&entity.User{ID: 2, Username: "Иван"}, nil)

	user := &entity.User{ID: 1, CoupleID: coupleIDPtr(10)}

	// Act
	stats, err := coupleService.GetStats(user)

	// Assert
	require.NoError(t, err, "Сбор статистики должен быть успешным")
	assert.Equal(t, int64(3), stats.TestCount)
	assert.Equal(t, 62.5, stats.AvgCompatibility, "Средняя совместимость округляется до десятых")
	assert.Equal(t, int64(12), stats.MessageCount)
	assert.Equal(t, "Иван", stats.PartnerName)
	require.NotNil(t, stats.TogetherSince)
	assert.Equal(t, createdAt, *stats.TogetherSince)
}

func TestCoupleService_GetStats_NoPartnerYet(t *testing.T) {
	// Тест: пока партнер не присоединился, подставляется заглушка
	coupleService, mocks := createTestCoupleService(t)

	couple := &entity.Couple{ID: 10}
	mocks.coupleRepo.On("GetByID", uint(10)).Return(couple, nil)
	mocks.resultRepo.On("CountUserResults", uint(1)).Return(int64(0), nil)
	mocks.resultRepo.On("GetSharedResults", uint(10)).Return([]entity.SharedTestResult{}, nil)
	mocks.messageRepo.On("CountByCouple", uint(10)).Return(int64(0), nil)
	mocks.userRepo.On("GetPartner", uint(10), uint(1)).Return(nil, apperrors.ErrNotFound)

	user := &entity.User{ID: 1, CoupleID: coupleIDPtr(10)}

	// Act
	stats, err := coupleService.GetStats(user)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "Ожидание партнера", stats.PartnerName)
	assert.Equal(t, 0.0, stats.AvgCompatibility, "Без общих результатов средняя совместимость равна нулю")
}

func TestCoupleService_GetStats_NotPaired(t *testing.T) {
	// Arrange
	coupleService, _ := createTestCoupleService(t)
	user := &entity.User{ID: 1}

	// Act
	stats, err := coupleService.GetStats(user)

	// Assert
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
	assert.Nil(t, stats)
}
