package service

import (
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/yourusername/loveapp-api/internal/domain/repository"
	apperrors "github.com/yourusername/loveapp-api/internal/pkg/errors"
)

// MediaService отвечает за загрузку и хранение аватаров
type MediaService struct {
	userRepo  repository.UserRepository
	avatarDir string
}

// NewMediaService создает новый сервис медиафайлов
func NewMediaService(userRepo repository.UserRepository, avatarDir string) (*MediaService, error) {
	if userRepo == nil {
		return nil, fmt.Errorf("UserRepository is required for MediaService")
	}
	if avatarDir == "" {
		return nil, fmt.Errorf("avatar directory is required for MediaService")
	}

	return &MediaService{
		userRepo:  userRepo,
		avatarDir: avatarDir,
	}, nil
}

// SaveAvatar сохраняет загруженный аватар на диск и обновляет профиль пользователя.
// Возвращает публичный URL файла.
func (s *MediaService) SaveAvatar(userID uint, fileHeader *multipart.FileHeader) (string, error) {
	contentType := fileHeader.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		return "", fmt.Errorf("%w: file must be an image", apperrors.ErrValidation)
	}

	if err := os.MkdirAll(s.avatarDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create avatar directory: %w", err)
	}

	// Имя файла не зависит от пользовательского ввода, кроме расширения
	filename := fmt.Sprintf("%d_%d%s", userID, time.Now().Unix(), filepath.Ext(fileHeader.Filename))
	dstPath := filepath.Join(s.avatarDir, filename)

	src, err := fileHeader.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer src.Close()

	dst, err := os.Create(dstPath)
	if err != nil {
		return "", fmt.Errorf("failed to create avatar file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		os.Remove(dstPath)
		return "", fmt.Errorf("failed to write avatar file: %w", err)
	}

	avatarURL := "/uploads/avatars/" + filename
	if err := s.userRepo.UpdateAvatar(userID, avatarURL); err != nil {
		os.Remove(dstPath)
		return "", fmt.Errorf("failed to update avatar url: %w", err)
	}

	log.Printf("[MediaService] Аватар пользователя ID=%d сохранен: %s", userID, avatarURL)
	return avatarURL, nil
}
