package service

import (
	"fmt"
	"log"
	"strings"

	"github.com/yourusername/loveapp-api/internal/domain/entity"
	"github.com/yourusername/loveapp-api/internal/domain/repository"
	"github.com/yourusername/loveapp-api/internal/handler/dto"
	apperrors "github.com/yourusername/loveapp-api/internal/pkg/errors"
	ws "github.com/yourusername/loveapp-api/internal/websocket"
)

// MessageService управляет доской сообщений пары
type MessageService struct {
	messageRepo repository.MessageRepository
	userRepo    repository.UserRepository
	notifier    CoupleNotifier
}

// NewMessageService создает новый сервис сообщений
func NewMessageService(
	messageRepo repository.MessageRepository,
	userRepo repository.UserRepository,
	notifier CoupleNotifier,
) (*MessageService, error) {
	if messageRepo == nil || userRepo == nil {
		return nil, fmt.Errorf("all repositories are required for MessageService")
	}

	return &MessageService{
		messageRepo: messageRepo,
		userRepo:    userRepo,
		notifier:    notifier,
	}, nil
}

// Send публикует сообщение на доске пары пользователя
func (s *MessageService) Send(user *entity.User, text string, isAnonymous bool) (*entity.LoveMessage, error) {
	if !user.HasCouple() {
		return nil, fmt.Errorf("%w: user has no couple", apperrors.ErrValidation)
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return nil, fmt.Errorf("%w: message text is required", apperrors.ErrValidation)
	}

	message := &entity.LoveMessage{
		UserID:      user.ID,
		CoupleID:    *user.CoupleID,
		Message:     text,
		IsAnonymous: isAnonymous,
	}
	if err := s.messageRepo.Create(message); err != nil {
		return nil, fmt.Errorf("failed to create message: %w", err)
	}

	log.Printf("[MessageService] Сообщение ID=%d опубликовано в паре ID=%d", message.ID, message.CoupleID)

	if s.notifier != nil {
		s.notifier.NotifyCouple(message.CoupleID, ws.Event{
			"type":       ws.EventNewMessage,
			"message_id": message.ID,
		})
	}
	return message, nil
}

// List возвращает последние сообщения пары, новые первыми.
// Без пары доска пуста, а не ошибка: фронтенд показывает пустое состояние.
func (s *MessageService) List(user *entity.User) ([]dto.MessageResponse, error) {
	if !user.HasCouple() {
		return []dto.MessageResponse{}, nil
	}
	coupleID := *user.CoupleID

	messages, err := s.messageRepo.ListByCouple(coupleID, entity.MessagesPageLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to load messages: %w", err)
	}

	members, err := s.userRepo.GetByCouple(coupleID)
	if err != nil {
		return nil, fmt.Errorf("failed to load couple members: %w", err)
	}
	usernames := make(map[uint]string, len(members))
	for _, m := range members {
		usernames[m.ID] = m.Username
	}

	resp := make([]dto.MessageResponse, 0, len(messages))
	for _, m := range messages {
		username := usernames[m.UserID]
		if m.IsAnonymous {
			username = entity.AnonymousAuthorName
		}
		resp = append(resp, dto.MessageResponse{
			ID:        m.ID,
			Username:  username,
			Message:   m.Message,
			CreatedAt: m.CreatedAt,
			IsYours:   m.UserID == user.ID,
		})
	}
	return resp, nil
}
