package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/loveapp-api/internal/domain/entity"
	apperrors "github.com/yourusername/loveapp-api/internal/pkg/errors"
	ws "github.com/yourusername/loveapp-api/internal/websocket"
)

// ============================================================================
// Моки для MessageService
// ============================================================================

// MockMessageRepoForMessageService реализует repository.MessageRepository
type MockMessageRepoForMessageService struct {
	mock.Mock
}

func (m *MockMessageRepoForMessageService) Create(message *entity.LoveMessage) error {
	args := m.Called(message)
	return args.Error(0)
}

func (m *MockMessageRepoForMessageService) ListByCouple(coupleID uint, limit int) ([]entity.LoveMessage, error) {
	args := m.Called(coupleID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.LoveMessage), args.Error(1)
}

func (m *MockMessageRepoForMessageService) CountByCouple(coupleID uint) (int64, error) {
	args := m.Called(coupleID)
	return args.Get(0).(int64), args.Error(1)
}

// MockUserRepoForMessageService реализует repository.UserRepository
type MockUserRepoForMessageService struct {
	mock.Mock
}

func (m *MockUserRepoForMessageService) Create(user *entity.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepoForMessageService) GetByID(id uint) (*entity.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockUserRepoForMessageService) GetByEmail(email string) (*entity.User, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockUserRepoForMessageService) UpdateAvatar(userID uint, avatarURL string) error {
	args := m.Called(userID, avatarURL)
	return args.Error(0)
}

func (m *MockUserRepoForMessageService) AttachToCouple(userID uint, coupleID uint) error {
	args := m.Called(userID, coupleID)
	return args.Error(0)
}

func (m *MockUserRepoForMessageService) GetByCouple(coupleID uint) ([]entity.User, error) {
	args := m.Called(coupleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.User), args.Error(1)
}

func (m *MockUserRepoForMessageService) CountByCouple(coupleID uint) (int64, error) {
	args := m.Called(coupleID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockUserRepoForMessageService) GetPartner(coupleID uint, excludeUserID uint) (*entity.User, error) {
	args := m.Called(coupleID, excludeUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

// MockNotifierForMessageService реализует CoupleNotifier
type MockNotifierForMessageService struct {
	mock.Mock
}

func (m *MockNotifierForMessageService) NotifyCouple(coupleID uint, event ws.Event) {
	m.Called(coupleID, event)
}

func createTestMessageService(t *testing.T) (*MessageService, *MockMessageRepoForMessageService, *MockUserRepoForMessageService, *MockNotifierForMessageService) {
	t.Helper()

	messageRepo := new(MockMessageRepoForMessageService)
	userRepo := new(MockUserRepoForMessageService)
	notifier := new(MockNotifierForMessageService)

	messageService, err := NewMessageService(messageRepo, userRepo, notifier)
	require.NoError(t, err)
	return messageService, messageRepo, userRepo, notifier
}

// ============================================================================
// Тесты для MessageService
// ============================================================================

func TestMessageService_Send_Success(t *testing.T) {
	// Arrange
	messageService, messageRepo, _, notifier := createTestMessageService(t)

	messageRepo.On("Create", mock.AnythingOfType("*entity.LoveMessage")).Run(func(args mock.Arguments) {
		args.Get(0).(*entity.LoveMessage).ID = 100
	}).Return(nil)
	notifier.On("NotifyCouple", uint(10), mock.AnythingOfType("websocket.Event")).Return()

	user := pairedUser(1, 10)

	// Act: пробелы по краям обрезаются
	message, err := messageService.Send(user, "  Люблю тебя!  ", false)

	// Assert
	require.NoError(t, err, "Публикация сообщения должна быть успешной")
	assert.Equal(t, "Люблю тебя!", message.Message)
	assert.Equal(t, uint(10), message.CoupleID)
	assert.False(t, message.IsAnonymous)
	notifier.AssertExpectations(t)
}

func TestMessageService_Send_EmptyText(t *testing.T) {
	// Arrange
	messageService, messageRepo, _, _ := createTestMessageService(t)
	user := pairedUser(1, 10)

	// Act
	message, err := messageService.Send(user, "   ", false)

	// Assert
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrValidation, "Пустое сообщение должно давать ErrValidation")
	assert.Nil(t, message)
	messageRepo.AssertNotCalled(t, "Create", mock.Anything)
}

func TestMessageService_Send_NotPaired(t *testing.T) {
	// Arrange
	messageService, messageRepo, _, _ := createTestMessageService(t)
	user := &entity.User{ID: 1}

	// Act
	message, err := messageService.Send(user, "Привет", false)

	// Assert
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrValidation, "Без пары публиковать нельзя")
	assert.Nil(t, message)
	messageRepo.AssertNotCalled(t, "Create", mock.Anything)
}

func TestMessageService_List_AnonymousAndOwnership(t *testing.T) {
	// Arrange
	messageService, messageRepo, userRepo, _ := createTestMessageService(t)

	messageRepo.On("ListByCouple", uint(10), entity.MessagesPageLimit).Return([]entity.LoveMessage{
		{ID: 3, UserID: 2, CoupleID: 10, Message: "Секрет", IsAnonymous: true},
		{ID: 2, UserID: 1, CoupleID: 10, Message: "Мое"},
		{ID: 1, UserID: 2, CoupleID: 10, Message: "Твое"},
	}, nil)
	userRepo.On("GetByCouple", uint(10)).Return([]entity.User{
		{ID: 1, Username: "Анна"},
		{ID: 2, Username: "Иван"},
	}, nil)

	user := pairedUser(1, 10)

	// Act
	messages, err := messageService.List(user)

	// Assert
	require.NoError(t, err)
	require.Len(t, messages, 3)
	assert.Equal(t, entity.AnonymousAuthorName, messages[0].Username, "Аноним скрывает автора")
	assert.False(t, messages[0].IsYours)
	assert.Equal(t, "Анна", messages[1].Username)
	assert.True(t, messages[1].IsYours, "Свое сообщение помечается is_yours")
	assert.Equal(t, "Иван", messages[2].Username)
	assert.False(t, messages[2].IsYours)
}

func TestMessageService_List_NotPaired(t *testing.T) {
	// Тест: без пары доска пуста, а не ошибка
	messageService, messageRepo, _, _ := createTestMessageService(t)
	user := &entity.User{ID: 1}

	// Act
	messages, err := messageService.List(user)

	// Assert
	require.NoError(t, err)
	assert.Empty(t, messages)
	messageRepo.AssertNotCalled(t, "ListByCouple", mock.Anything, mock.Anything)
}
