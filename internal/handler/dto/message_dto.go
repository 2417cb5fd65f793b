package dto

import (
	"time"
)

// MessageResponse — сообщение доски пары в выдаче списка.
// Для анонимных сообщений имя автора заменяется заглушкой.
type MessageResponse struct {
	ID        uint      `json:"id"`
	Username  string    `json:"username"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
	IsYours   bool      `json:"is_yours"`
}
