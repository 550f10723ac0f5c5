package inventory

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrShowtimeUnknown: suất chiếu chưa được đăng ký vào store
	ErrShowtimeUnknown = errors.New("showtime not registered")
	// ErrHoldExpired: xác nhận đến sau khi hold đã hết hạn – phải đặt lại từ đầu
	ErrHoldExpired = errors.New("hold expired")
	// ErrNotHolder: ghế đang được giữ bởi người khác (hold cũ không được "nâng cấp")
	ErrNotHolder = errors.New("seat held by another party")
)

// InvalidSeatError: ghế không tồn tại, đã tắt bán, hoặc thiếu nửa còn lại của cặp
type InvalidSeatError struct {
	SeatIds []uint
	Reason  string
}

func (e *InvalidSeatError) Error() string {
	return fmt.Sprintf("invalid seat %s: %s", joinIds(e.SeatIds), e.Reason)
}

// SeatUnavailableError: ghế đã bị giữ hoặc đã bán; caller phải chọn ghế khác
type SeatUnavailableError struct {
	SeatIds []uint
}

func (e *SeatUnavailableError) Error() string {
	return fmt.Sprintf("seat unavailable: %s", joinIds(e.SeatIds))
}

func joinIds(ids []uint) string {
	parts := make([]string, 0, len(ids))
	for _, id := range ids {
		parts = append(parts, fmt.Sprintf("%d", id))
	}
	return strings.Join(parts, ",")
}
