package websocket

import (
	"context"
	"encoding/json"
	"log"
	"time"
)

// Event — произвольное JSON-событие для участников пары
type Event map[string]interface{}

// Типы событий, которые сервер рассылает паре
const (
	EventNewMessage        = "new_message"
	EventSharedResultReady = "shared_result_ready"
)

// coupleMessage — сериализованное событие, адресованное одной паре
type coupleMessage struct {
	coupleID uint
	payload  []byte
}

// Hub хранит активные соединения, сгруппированные по парам,
// и рассылает события обоим партнерам.
type Hub struct {
	register   chan *Client
	unregister chan *Client
	broadcast  chan coupleMessage

	// Доступ только из горутины Run
	clients map[uint]map[*Client]bool
}

// NewHub создает новый hub
func NewHub() *Hub {
	return &Hub{
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan coupleMessage, 64),
		clients:    make(map[uint]map[*Client]bool),
	}
}

// Run обрабатывает регистрацию клиентов и рассылку событий до отмены контекста
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case client := <-h.register:
			if h.clients[client.CoupleID] == nil {
				h.clients[client.CoupleID] = make(map[*Client]bool)
			}
			h.clients[client.CoupleID][client] = true
			log.Printf("[WebSocket] Клиент %s подключен (user=%d, couple=%d)", client.ConnectionID, client.UserID, client.CoupleID)

		case client := <-h.unregister:
			if conns, ok := h.clients[client.CoupleID]; ok {
				if _, ok := conns[client]; ok {
					delete(conns, client)
					close(client.send)
					if len(conns) == 0 {
						delete(h.clients, client.CoupleID)
					}
					log.Printf("[WebSocket] Клиент %s отключен (user=%d)", client.ConnectionID, client.UserID)
				}
			}

		case msg := <-h.broadcast:
			for client := range h.clients[msg.coupleID] {
				select {
				case client.send <- msg.payload:
				default:
					// Переполненный буфер: клиент не успевает читать, отключаем
					delete(h.clients[msg.coupleID], client)
					close(client.send)
					log.Printf("[WebSocket] Буфер клиента %s переполнен, соединение закрыто", client.ConnectionID)
				}
			}

		case <-ctx.Done():
			for coupleID, conns := range h.clients {
				for client := range conns {
					close(client.send)
				}
				delete(h.clients, coupleID)
			}
			log.Println("[WebSocket] Hub остановлен")
			return
		}
	}
}

// NotifyCouple отправляет JSON-событие всем подключенным участникам пары.
// Отправка неблокирующая: если hub перегружен, событие теряется, а не
// задерживает HTTP-запрос.
func (h *Hub) NotifyCouple(coupleID uint, event Event) {
	if event == nil {
		return
	}
	if _, ok := event["timestamp"]; !ok {
		event["timestamp"] = time.Now().Format(time.RFC3339)
	}

	payload, err := json.Marshal(event)
	if err != nil {
		log.Printf("[WebSocket] Ошибка сериализации события для пары %d: %v", coupleID, err)
		return
	}

	select {
	case h.broadcast <- coupleMessage{coupleID: coupleID, payload: payload}:
	default:
		log.Printf("[WebSocket] Канал рассылки переполнен, событие для пары %d отброшено", coupleID)
	}
}
