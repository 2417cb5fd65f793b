package service

import (
	ws "github.com/yourusername/loveapp-api/internal/websocket"
)

// CoupleNotifier рассылает события участникам пары.
// Реализуется websocket.Hub; в тестах подменяется моком, nil допустим.
type CoupleNotifier interface {
	NotifyCouple(coupleID uint, event ws.Event)
}
