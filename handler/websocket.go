package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strconv"
	"sync"

	"github.com/gofiber/contrib/websocket"
	"github.com/redis/go-redis/v9"
)

var (
	redisClient = redis.NewClient(&redis.Options{Addr: redisAddr()})

	clients = make(map[uint]map[*websocket.Conn]bool)
	mu      sync.Mutex
)

func redisAddr() string {
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		return addr
	}
	return "localhost:6379"
}

// PublishSeatDelta đẩy trạng thái mới của các ghế thay đổi lên kênh Redis của
// suất chiếu; mọi instance đang phục vụ WS cho suất đó sẽ fanout cho client
func PublishSeatDelta(showtimeId uint, seatIds []uint) {
	delta := make([]SeatUI, 0, len(seatIds))
	for _, seatId := range seatIds {
		view, err := SeatStore.View(showtimeId, seatId)
		if err != nil {
			continue
		}
		delta = append(delta, SeatUI{
			Id:        view.SeatId,
			Status:    view.Status,
			HeldBy:    view.HeldBy,
			ExpiredAt: view.ExpiredAt,
			CoupleId:  view.CoupleId,
		})
	}
	if len(delta) == 0 {
		return
	}

	payload, err := json.Marshal(wsMessage{Type: "seat_delta", Seats: delta})
	if err != nil {
		return
	}
	if err := redisClient.Publish(
		context.Background(),
		fmt.Sprintf("showtime:%d", showtimeId),
		payload,
	).Err(); err != nil {
		log.Printf("Lỗi publish delta ghế suất %d: %v", showtimeId, err)
	}
}

type wsMessage struct {
	Type  string   `json:"type"`
	Seats []SeatUI `json:"seats"`
}

// SeatWebsocket xử lý WS connection theo dõi ghế của một suất chiếu
func SeatWebsocket(c *websocket.Conn) {
	showtimeIdStr := c.Params("id")
	id64, err := strconv.ParseUint(showtimeIdStr, 10, 64)
	if err != nil {
		log.Printf("Invalid showtimeId: %s", showtimeIdStr)
		c.Close()
		return
	}
	showtimeId := uint(id64)

	// Khi WS disconnect → xoá client
	defer func() {
		mu.Lock()
		if clients[showtimeId] != nil {
			delete(clients[showtimeId], c)
			if len(clients[showtimeId]) == 0 {
				delete(clients, showtimeId)
			}
		}
		mu.Unlock()
		c.Close()
	}()

	// Thêm client mới vào room
	mu.Lock()
	if clients[showtimeId] == nil {
		clients[showtimeId] = make(map[*websocket.Conn]bool)
	}
	clients[showtimeId][c] = true
	mu.Unlock()

	// Gửi sơ đồ ghế đầy đủ lần đầu
	if seatMap, err := BuildSeatMap(showtimeId); err == nil {
		c.WriteJSON(seatMap)
	}

	// Sub kênh Redis
	pubsub := redisClient.Subscribe(
		context.Background(),
		fmt.Sprintf("showtime:%d", showtimeId),
	)
	defer pubsub.Close()

	// Lắng nghe message từ Redis
	channel := pubsub.Channel()

	for msg := range channel {
		payload := []byte(msg.Payload)

		mu.Lock()
		for conn := range clients[showtimeId] {
			// Nếu client lỗi → xoá
			if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				conn.Close()
				delete(clients[showtimeId], conn)
			}
		}
		mu.Unlock()
	}
}
